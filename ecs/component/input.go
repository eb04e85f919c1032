package component

import "github.com/milk9111/skul/controller"

// Input stores the latest sample pulled from Source.
type Input struct {
	Source controller.InputSource
	Last   controller.Input
}

var InputComponent = NewComponent[Input]()
