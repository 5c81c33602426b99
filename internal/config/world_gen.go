package config

import "math"

// Noise bases understood by the generator.
const (
	BasisPerlin  = "perlin"
	BasisSimplex = "simplex"
)

// NoiseParams describes one fractal noise channel.
type NoiseParams struct {
	Seed        uint32  `yaml:"seed" json:"seed"`
	Octaves     int     `yaml:"octaves" json:"octaves"`
	Frequency   float64 `yaml:"frequency" json:"frequency"`
	Lacunarity  float64 `yaml:"lacunarity" json:"lacunarity"`
	Persistence float64 `yaml:"persistence" json:"persistence"`
	Basis       string  `yaml:"basis,omitempty" json:"basis,omitempty"` // "perlin" (default) or "simplex"
}

// Knot is one (input, output) control point of a piecewise-linear remap.
type Knot struct {
	In  float64 `yaml:"in" json:"in"`
	Out float64 `yaml:"out" json:"out"`
}

// SplineSet holds the remap tables applied to the 2-D terrain channels.
type SplineSet struct {
	Continents   []Knot `yaml:"continents" json:"continents"`
	Erosion      []Knot `yaml:"erosion" json:"erosion"`
	PeaksValleys []Knot `yaml:"peaks_valleys" json:"peaks_valleys"`
	Squash       []Knot `yaml:"squash" json:"squash"`
}

// WorldGenConfig is the full, immutable parameter set of one world.
// It is built once at world start and shared by pointer; nothing mutates it afterwards.
type WorldGenConfig struct {
	Continents   NoiseParams `yaml:"continents" json:"continents"`
	Erosion      NoiseParams `yaml:"erosion" json:"erosion"`
	PeaksValleys NoiseParams `yaml:"peaks_valleys" json:"peaks_valleys"`
	Temperature  NoiseParams `yaml:"temperature" json:"temperature"`
	Humidity     NoiseParams `yaml:"humidity" json:"humidity"`
	Weirdness    NoiseParams `yaml:"weirdness" json:"weirdness"`

	DensityA   uint32 `yaml:"density_a" json:"density_a"`
	DensityB   uint32 `yaml:"density_b" json:"density_b"`
	DensityC   uint32 `yaml:"density_c" json:"density_c"`
	SpaghettiA uint32 `yaml:"spaghetti_a" json:"spaghetti_a"`
	SpaghettiB uint32 `yaml:"spaghetti_b" json:"spaghetti_b"`

	Splines SplineSet `yaml:"splines" json:"splines"`
}

// Hybrid multifractal defaults, used when a channel only sets seed, octaves and frequency.
const (
	DefaultLacunarity  = 2 * math.Pi / 3
	DefaultPersistence = 0.25
)

// DefaultWorldGen returns the stock world parameters.
func DefaultWorldGen() *WorldGenConfig {
	return &WorldGenConfig{
		Continents:   NoiseParams{Seed: 1234, Octaves: 5, Frequency: 1.1, Lacunarity: 2.8, Persistence: 0.4},
		Erosion:      NoiseParams{Seed: 5678, Octaves: 3, Frequency: 0.5, Lacunarity: 2.0, Persistence: 0.3},
		PeaksValleys: NoiseParams{Seed: 7890, Octaves: 4, Frequency: 0.3, Lacunarity: 2.0, Persistence: 0.5},
		Temperature:  NoiseParams{Seed: 2233, Octaves: 1, Frequency: 0.2, Lacunarity: DefaultLacunarity, Persistence: DefaultPersistence},
		Humidity:     NoiseParams{Seed: 4455, Octaves: 2, Frequency: 0.3, Lacunarity: DefaultLacunarity, Persistence: DefaultPersistence},
		Weirdness:    NoiseParams{Seed: 6677, Octaves: 3, Frequency: 0.8, Lacunarity: DefaultLacunarity, Persistence: DefaultPersistence},

		DensityA:   9876,
		DensityB:   5432,
		DensityC:   1111,
		SpaghettiA: 31337,
		SpaghettiB: 73313,

		Splines: DefaultSplines(),
	}
}

// DefaultSplines returns the stock remap tables.
func DefaultSplines() SplineSet {
	return SplineSet{
		Continents: []Knot{
			{-1.0, -128.0},
			{-0.96, -96.0},
			{-0.91, -80.0},
			{-0.8, -64.0},
			{-0.7, -60.0},
			{-0.5, -50.0},
			{-0.4, -40.0},
			{-0.3, -36.0},
			{-0.2, -30.0},
			{-0.1, -26.0},
			{0.0, -20.0},
			{0.1, -16.0},
			{0.2, 10.0},
			{0.7, 10.0},
			// high plateaus
			{0.8, 64.0},
			{0.9, 80.0},
			{1.0, 96.0},
		},
		Erosion: []Knot{
			{-1.0, 48.0},
			{0.0, 36.0},
			{0.667, 6.0},
			{1.0, -48.01},
		},
		PeaksValleys: []Knot{
			{-1.0, 0.0},
			{0.0, 10.0},
			{1.0, 20.0},
		},
		Squash: []Knot{
			{-1.0, 1.0},
			{0.0, 0.4},
			{1.0, 0.03},
		},
	}
}
