package component

// Transform is an entity's centre in tile units, y-down.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
}

var TransformComponent = NewComponent[Transform]()
