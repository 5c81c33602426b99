package world

import (
	"math"

	"voxel-terrain/internal/config"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseField is a deterministic scalar field returning values in [-1,1].
// Implementations are read-only after construction and safe for concurrent use.
type NoiseField interface {
	Sample2D(x, z float64) float64
	Sample3D(x, y, z float64) float64
}

// gradientSource is one single-octave gradient noise lattice with output in [-1,1].
type gradientSource interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

// simplexSource adapts opensimplex to gradientSource.
type simplexSource struct {
	n opensimplex.Noise
}

func (s simplexSource) Noise2D(x, y float64) float64    { return clampUnit(s.n.Eval2(x, y)) }
func (s simplexSource) Noise3D(x, y, z float64) float64 { return clampUnit(s.n.Eval3(x, y, z)) }

const (
	// go-perlin repeats every 256 lattice cells
	perlinPeriod = 256
	// peak magnitudes of one go-perlin octave: the analytic 2-D bound and the
	// highest 3-D value seen over the stock seeds
	perlin2DPeak = math.Sqrt2 / 2
	perlin3DPeak = 0.62
)

// perlinSource stretches go-perlin to [-1,1]. Inputs are wrapped into the first
// period because the library truncates toward zero far below the origin and
// drops to 2-D noise for negative z.
type perlinSource struct {
	p *perlin.Perlin
}

func wrapLattice(v float64) float64 {
	v = math.Mod(v, perlinPeriod)
	if v < 0 {
		v += perlinPeriod
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func (s perlinSource) Noise2D(x, y float64) float64 {
	return clampUnit(s.p.Noise2D(wrapLattice(x), wrapLattice(y)) / perlin2DPeak)
}

func (s perlinSource) Noise3D(x, y, z float64) float64 {
	return clampUnit(s.p.Noise3D(wrapLattice(x), wrapLattice(y), wrapLattice(z)) / perlin3DPeak)
}

func newGradientSource(basis string, seed int64) gradientSource {
	if basis == config.BasisSimplex {
		return simplexSource{n: opensimplex.New(seed)}
	}
	// alpha/beta only matter for n > 1; one octave gives plain Perlin noise
	return perlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Single is one un-fractaled gradient noise channel.
type Single struct {
	src gradientSource
}

// NewSingle creates a Perlin channel for seed.
func NewSingle(seed uint32) *Single {
	return &Single{src: newGradientSource(config.BasisPerlin, int64(seed))}
}

// NewSingleBasis creates a channel for seed using the named basis.
func NewSingleBasis(basis string, seed uint32) *Single {
	return &Single{src: newGradientSource(basis, int64(seed))}
}

func (s *Single) Sample2D(x, z float64) float64    { return s.src.Noise2D(x, z) }
func (s *Single) Sample3D(x, y, z float64) float64 { return s.src.Noise3D(x, y, z) }

// Fractal is a hybrid multifractal: every octave after the first is weighted by the
// running product of the previous octaves, so rough detail concentrates in high areas.
// Octave i has amplitude persistence^i and the sum is rescaled so the first octave
// carries unit weight, then clamped to [-1,1].
type Fractal struct {
	sources     []gradientSource
	frequency   float64
	lacunarity  float64
	persistence float64
	scale       float64
}

// NewFractal builds a fractal channel from its parameters. Octave i uses seed+i.
func NewFractal(p config.NoiseParams) *Fractal {
	octaves := max(p.Octaves, 1)
	lac := p.Lacunarity
	if lac == 0 {
		lac = config.DefaultLacunarity
	}
	pers := p.Persistence
	if pers == 0 {
		pers = config.DefaultPersistence
	}

	f := &Fractal{
		sources:     make([]gradientSource, octaves),
		frequency:   p.Frequency,
		lacunarity:  lac,
		persistence: pers,
		scale:       1 / pers,
	}
	for i := 0; i < octaves; i++ {
		f.sources[i] = newGradientSource(p.Basis, int64(p.Seed)+int64(i))
	}
	return f
}

// Octaves returns the number of octaves summed per sample.
func (f *Fractal) Octaves() int { return len(f.sources) }

func (f *Fractal) Sample2D(x, z float64) float64 {
	x *= f.frequency
	z *= f.frequency

	result := f.sources[0].Noise2D(x, z) * f.persistence
	weight := result
	amp := 1.0
	for i := 1; i < len(f.sources); i++ {
		x *= f.lacunarity
		z *= f.lacunarity
		amp *= f.persistence

		weight = math.Min(weight, 1)
		signal := f.sources[i].Noise2D(x, z) * amp
		result += weight * signal
		weight *= signal
	}
	return clampUnit(result * f.scale)
}

func (f *Fractal) Sample3D(x, y, z float64) float64 {
	x *= f.frequency
	y *= f.frequency
	z *= f.frequency

	result := f.sources[0].Noise3D(x, y, z) * f.persistence
	weight := result
	amp := 1.0
	for i := 1; i < len(f.sources); i++ {
		x *= f.lacunarity
		y *= f.lacunarity
		z *= f.lacunarity
		amp *= f.persistence

		weight = math.Min(weight, 1)
		signal := f.sources[i].Noise3D(x, y, z) * amp
		result += weight * signal
		weight *= signal
	}
	return clampUnit(result * f.scale)
}
