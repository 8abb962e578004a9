package mandel

import "github.com/marben/mandel/bitmap"

// EscapeTime iterates z = z² + c from z = 0 with c = x + iy and returns the
// number of iterations completed before |z|² exceeds 4, or maxIter if it never does.
func EscapeTime(x, y float64, maxIter int) int {
	var zx, zy float64
	iter := 0
	for iter < maxIter && zx*zx+zy*zy <= 4 {
		zx, zy = zx*zx-zy*zy+x, 2*zx*zy+y
		iter++
	}
	return iter
}

// IterationToColor scales iter linearly onto gray 0..255, clamping iter to [0, maxIter].
// A non-positive maxIter maps everything to black.
func IterationToColor(iter, maxIter int) bitmap.Color {
	if maxIter <= 0 {
		return bitmap.MakeRGBA(0, 0, 0, 0)
	}
	iter = min(max(iter, 0), maxIter)
	gray := uint8(255 * iter / maxIter)
	return bitmap.MakeRGBA(gray, gray, gray, 0)
}

// IterationsAtPoint returns the gray level for point (x, y) of the complex plane.
// It touches no shared state and is safe for concurrent use.
func IterationsAtPoint(x, y float64, maxIter int) bitmap.Color {
	return IterationToColor(EscapeTime(x, y, maxIter), maxIter)
}
