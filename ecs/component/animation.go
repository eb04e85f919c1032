package component

// Clip names picked from the animation parameters.
const (
	ClipIdle      = "idle"
	ClipRun       = "run"
	ClipJump      = "jump"
	ClipFall      = "fall"
	ClipWallSlide = "wall_slide"
)

// Animator receives controller parameters and tracks the clip they select.
type Animator struct {
	Bools  map[string]bool
	Floats map[string]float64

	Clip     string
	ClipTime float64
}

var AnimatorComponent = NewComponent[Animator]()

func NewAnimator() *Animator {
	return &Animator{
		Bools:  make(map[string]bool),
		Floats: make(map[string]float64),
		Clip:   ClipIdle,
	}
}

func (a *Animator) SetBool(name string, value bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = value
}

func (a *Animator) SetFloat(name string, value float64) {
	if a.Floats == nil {
		a.Floats = make(map[string]float64)
	}
	a.Floats[name] = value
}
