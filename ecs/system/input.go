package system

import (
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
)

// InputSystem samples each entity's input source once per frame.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		if input.Source == nil {
			input.Last = controller.Input{}
			return
		}
		input.Last = input.Source.Sample()
	})
}
