package system

import (
	"fmt"
	"log"

	"github.com/milk9111/skul/ecs"
)

const defaultEventHistory = 8

// EventLogSystem drains the world event queue each frame. It keeps the most recent
// lines for overlays and logs them when debug is on.
type EventLogSystem struct {
	debug  bool
	limit  int
	frame  int
	recent []string
}

func NewEventLogSystem(debug bool, limit int) *EventLogSystem {
	if limit <= 0 {
		limit = defaultEventHistory
	}
	return &EventLogSystem{debug: debug, limit: limit}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		line := formatEvent(s.frame, evt)
		if line == "" {
			continue
		}
		s.recent = append(s.recent, line)
		if s.debug {
			log.Printf("events: %s", line)
		}
	}
	if over := len(s.recent) - s.limit; over > 0 {
		s.recent = append(s.recent[:0], s.recent[over:]...)
	}
	s.frame++
}

// Recent returns the retained lines, oldest first.
func (s *EventLogSystem) Recent() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.recent...)
}

func formatEvent(frame int, evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventController:
		ce, ok := evt.Data.(ControllerEvent)
		if !ok || ce.Events == 0 {
			return ""
		}
		return fmt.Sprintf("%05d %s %s", frame, ce.Entity, ce.Events)
	case ecs.EventRespawn:
		return fmt.Sprintf("%05d %v respawn", frame, evt.Data)
	default:
		return fmt.Sprintf("%05d %s", frame, evt.Type)
	}
}
