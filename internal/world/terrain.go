package world

import (
	"voxel-terrain/internal/config"
)

// Terrain owns every noise channel and spline of one world. It is built once from a
// WorldGenConfig and then only read, so a single instance is shared by all samplers
// on all goroutines without locking.
type Terrain struct {
	cfg *config.WorldGenConfig

	continents   NoiseField
	erosion      NoiseField
	peaksValleys NoiseField
	temperature  NoiseField
	humidity     NoiseField
	weirdness    NoiseField

	continentSpline *Spline
	erosionSpline   *Spline
	pvSpline        *Spline
	squashSpline    *Spline

	densityA   NoiseField
	densityB   NoiseField
	densityC   NoiseField
	spaghettiA NoiseField
	spaghettiB NoiseField
}

// NewTerrain builds the shared noise and spline instances for cfg.
func NewTerrain(cfg *config.WorldGenConfig) *Terrain {
	return &Terrain{
		cfg: cfg,

		continents:   NewFractal(cfg.Continents),
		erosion:      NewFractal(cfg.Erosion),
		peaksValleys: NewFractal(cfg.PeaksValleys),
		temperature:  NewFractal(cfg.Temperature),
		humidity:     NewFractal(cfg.Humidity),
		weirdness:    NewFractal(cfg.Weirdness),

		continentSpline: NewSpline(cfg.Splines.Continents),
		erosionSpline:   NewSpline(cfg.Splines.Erosion),
		pvSpline:        NewSpline(cfg.Splines.PeaksValleys),
		squashSpline:    NewSpline(cfg.Splines.Squash),

		densityA:   NewSingle(cfg.DensityA),
		densityB:   NewSingle(cfg.DensityB),
		densityC:   NewSingle(cfg.DensityC),
		spaghettiA: NewSingle(cfg.SpaghettiA),
		spaghettiB: NewSingle(cfg.SpaghettiB),
	}
}

// Config returns the parameters the terrain was built from.
func (t *Terrain) Config() *config.WorldGenConfig {
	return t.cfg
}
