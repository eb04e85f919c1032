// Package settings persists player tuning overrides between runs.
package settings

import (
	"errors"
	"fmt"

	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/prefabs"
	"github.com/quasilyte/gdata"
)

const tuningKey = "tuning"

var ErrNoBackend = errors.New("settings: no storage backend")

// Backend is the item store the settings live in. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Store struct {
	backend Backend
}

// Open uses gdata's per-user storage for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: open %s: %w", appName, err)
	}
	return &Store{backend: m}, nil
}

func New(b Backend) *Store {
	return &Store{backend: b}
}

// LoadTuning overlays the saved tuning on base. ok is false when nothing has been
// saved yet.
func (s *Store) LoadTuning(base controller.Tuning) (t controller.Tuning, ok bool, err error) {
	if s == nil || s.backend == nil {
		return base, false, ErrNoBackend
	}
	data, err := s.backend.LoadItem(tuningKey)
	if err != nil {
		return base, false, fmt.Errorf("settings: load tuning: %w", err)
	}
	if len(data) == 0 {
		return base, false, nil
	}
	t, err = prefabs.UnmarshalTuning(data, base)
	if err != nil {
		return base, false, err
	}
	return t, true, nil
}

func (s *Store) SaveTuning(t controller.Tuning) error {
	if s == nil || s.backend == nil {
		return ErrNoBackend
	}
	data, err := prefabs.MarshalTuning(t)
	if err != nil {
		return err
	}
	if err := s.backend.SaveItem(tuningKey, data); err != nil {
		return fmt.Errorf("settings: save tuning: %w", err)
	}
	return nil
}

// ResetTuning drops the saved overrides.
func (s *Store) ResetTuning() error {
	if s == nil || s.backend == nil {
		return ErrNoBackend
	}
	if err := s.backend.SaveItem(tuningKey, nil); err != nil {
		return fmt.Errorf("settings: reset tuning: %w", err)
	}
	return nil
}
