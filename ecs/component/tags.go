package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type LevelTag struct {
	Name string
}

var LevelTagComponent = NewComponent[LevelTag]()
