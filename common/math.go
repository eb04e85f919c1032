package common

// Base render size in pixels.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Follow eases a camera axis towards target and keeps the view of size view inside
// [0, limit].
func Follow(cur, target, view, limit, t float64) float64 {
	next := Lerp(cur, target-view/2, t)
	return Clamp(next, 0, limit-view)
}
