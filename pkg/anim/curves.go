package anim

import "math"

// Curve maps normalized elapsed time in [0, 1] to an eased progress ratio
// in [0, 1]. Curves must be monotonic; inputs outside [0, 1] are clamped.
type Curve func(t float64) float64

// Linear returns the input unchanged (no easing).
func Linear(t float64) float64 {
	return clampUnit(t)
}

// AccelerateDecelerate starts and ends slowly with acceleration in the
// middle. This is the default curve for value animations.
func AccelerateDecelerate(t float64) float64 {
	t = clampUnit(t)
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// Decelerate starts quickly and slows toward the end. This is the default
// curve for spinner length changes.
func Decelerate(t float64) float64 {
	t = clampUnit(t)
	return 1 - (1-t)*(1-t)
}

// Ease is a general-purpose cubic bezier curve, equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns an easing curve matching CSS cubic-bezier(). The
// parameters are the two control points (x1,y1) and (x2,y2); the curve
// starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most inputs.
		for i := 0; i < 8; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fall back to bisection for a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for i := 0; i < 12; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// CurveByName looks up a curve by its configuration name. The second
// return is false for unknown names.
func CurveByName(name string) (Curve, bool) {
	switch name {
	case "linear":
		return Linear, true
	case "accelerate-decelerate":
		return AccelerateDecelerate, true
	case "decelerate":
		return Decelerate, true
	case "ease":
		return Ease, true
	case "ease-in":
		return EaseIn, true
	case "ease-out":
		return EaseOut, true
	case "ease-in-out":
		return EaseInOut, true
	}
	return nil, false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
