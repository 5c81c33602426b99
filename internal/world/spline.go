package world

import (
	"sort"

	"voxel-terrain/internal/config"
)

// Spline is a piecewise-linear remap through ordered knots.
type Spline struct {
	knots []config.Knot
}

// NewSpline copies and sorts knots by input. An empty knot list is a caller error;
// such a spline reports ok=false from ClampedSample.
func NewSpline(knots []config.Knot) *Spline {
	ks := make([]config.Knot, len(knots))
	copy(ks, knots)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].In < ks[j].In })
	return &Spline{knots: ks}
}

// ClampedSample interpolates at x, clamping x to the knot domain.
func (s *Spline) ClampedSample(x float64) (float64, bool) {
	n := len(s.knots)
	if n == 0 {
		return 0, false
	}
	if x <= s.knots[0].In {
		return s.knots[0].Out, true
	}
	if x >= s.knots[n-1].In {
		return s.knots[n-1].Out, true
	}
	// first knot strictly above x; x lies in [i-1, i)
	i := sort.Search(n, func(i int) bool { return s.knots[i].In > x })
	a, b := s.knots[i-1], s.knots[i]
	if b.In == a.In {
		return b.Out, true
	}
	t := (x - a.In) / (b.In - a.In)
	return lerp(a.Out, b.Out, t), true
}

// SampleOr is ClampedSample with a fallback for an empty spline.
func (s *Spline) SampleOr(x, fallback float64) float64 {
	if v, ok := s.ClampedSample(x); ok {
		return v
	}
	return fallback
}

// Domain returns the first and last knot inputs.
func (s *Spline) Domain() (lo, hi float64) {
	if len(s.knots) == 0 {
		return 0, 0
	}
	return s.knots[0].In, s.knots[len(s.knots)-1].In
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
