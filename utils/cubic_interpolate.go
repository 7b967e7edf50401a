// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at
// fraction x of the way from y1 to y2. It passes through y1 at x=0 and y2
// at x=1, and reproduces straight lines exactly.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := 0.5*(y3-y0) + 1.5*(y1-y2)
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}
