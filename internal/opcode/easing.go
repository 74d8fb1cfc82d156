package opcode

import "github.com/brandon-fryslie/oscilla-animator-sub000/api"

// EasingCurve addresses one of the 7 built-in easing curves by integer
// id, fixed by spec.md §3/§4.5.
type EasingCurve int

const (
	EaseLinear EasingCurve = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseSmoothstep
)

// Ease evaluates curve at t, clamping t to [0,1] first — mandatory per
// spec.md §4.5.
func Ease(curve EasingCurve, t float64) (float64, error) {
	t = Clamp(t, 0, 1)
	switch curve {
	case EaseLinear:
		return t, nil
	case EaseInQuad:
		return t * t, nil
	case EaseOutQuad:
		return t * (2 - t), nil
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t, nil
		}
		return -1 + (4-2*t)*t, nil
	case EaseInCubic:
		return t * t * t, nil
	case EaseOutCubic:
		u := t - 1
		return u*u*u + 1, nil
	case EaseSmoothstep:
		return t * t * (3 - 2*t), nil
	}
	return 0, api.NewError(api.KindInvalidEasingCurveId, int64(curve))
}
