package radial

import "math"

const (
	north = 90.0
	south = 270.0

	// Tonal ring, even counts: each side spans 90°.
	evenRightStart = 315.0
	evenLeftStart  = 225.0
	evenSideArc    = 90.0

	// Tonal ring, odd counts: each side spans 120°.
	oddRightStart = 290.0
	oddLeftStart  = 250.0
	oddSideArc    = 120.0

	mutantMinArc  = 40.0
	mutantStepArc = 30.0
	mutantMaxArc  = 120.0

	bottomMinArc  = 40.0
	bottomStepArc = 25.0
	bottomMaxArc  = 140.0
)

// TonalAngle returns the angle in degrees of tonal note i of n.
func TonalAngle(i, n int) float64 {
	switch {
	case n <= 1:
		return south
	case n == 2:
		if i == 0 {
			return 250
		}
		return 290
	case i == n-1:
		return north
	case n%2 == 0 && i == 0:
		return south
	}

	if n%2 == 0 {
		// Notes 1..n-2 alternate right, left, right...
		return sideAngle(i-1, (n-2)/2, evenRightStart, evenLeftStart, evenSideArc)
	}
	// Notes 0..n-2 alternate right, left, right...
	return sideAngle(i, (n-1)/2, oddRightStart, oddLeftStart, oddSideArc)
}

// sideAngle places split position k on one side of the vertical axis. Even
// positions go right and climb counter-clockwise from rightStart; odd
// positions go left and descend clockwise from leftStart.
func sideAngle(k, perSide int, rightStart, leftStart, arc float64) float64 {
	step := 0.0
	if perSide > 1 {
		step = arc / float64(perSide-1)
	}
	s := float64(k / 2)
	if k%2 == 0 {
		return normalize(rightStart + s*step)
	}
	return normalize(leftStart - s*step)
}

// MutantAngle returns the angle in degrees of mutant note i of n. Mutants
// fan out above the ding from the right end of their arc.
func MutantAngle(i, n int) float64 {
	if n <= 1 {
		return north
	}
	return arcAngle(i, n, north, min(mutantMaxArc, mutantMinArc+float64(n-1)*mutantStepArc))
}

// BottomAngle returns the angle in degrees of bottom note i of n. Bottoms
// fan out below the shell from the left end of their arc.
func BottomAngle(i, n int) float64 {
	if n <= 1 {
		return south
	}
	return arcAngle(i, n, south, min(bottomMaxArc, bottomMinArc+float64(n-1)*bottomStepArc))
}

// arcAngle spaces n points evenly across an arc of the given width centred on
// center, starting at its lower angle.
func arcAngle(i, n int, center, arc float64) float64 {
	return normalize(center - arc/2 + float64(i)*arc/float64(n-1))
}

// normalize folds an angle into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Polar converts an angle in degrees and a radius to cartesian coordinates
// with +y up.
func Polar(deg, r float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return r * math.Cos(rad), r * math.Sin(rad)
}
