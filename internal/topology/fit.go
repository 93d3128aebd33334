package topology

import "math"

// FitOLS fits y = slope*x + intercept to points by ordinary least squares, ignoring Z.
// It returns ErrDegenerateFit when there are no points or all x values are equal.
func FitOLS(points []Vec3) (Fit, error) {
	n := float64(len(points))
	if n == 0 {
		return Fit{}, ErrDegenerateFit
	}
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x, y := float64(p.X), float64(p.Y)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if math.Abs(den) <= 1e-9*math.Max(1, n*sumXX) {
		return Fit{}, ErrDegenerateFit
	}
	slope := (n*sumXY - sumX*sumY) / den
	intercept := (sumY - slope*sumX) / n
	return Fit{Slope: float32(slope), Intercept: float32(intercept)}, nil
}

// At evaluates the fitted line at x.
func (f Fit) At(x float32) float32 {
	return f.Slope*x + f.Intercept
}
