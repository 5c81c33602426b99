package world

import "math"

const (
	caveScale      = 0.030303030303
	spaghettiScale = 0.0025

	cheeseThreshold    = 0.9813
	meatballThreshold  = -0.494321
	spaghettiThreshold = 0.007654321
)

// CavePredicates are the three independent carve tests of one position.
type CavePredicates struct {
	Cheese    bool // large open blobs
	Meatball  bool // round chambers along the tunnel warp
	Spaghetti bool // thin tunnels where both ridge fields cross zero
}

// Any reports whether at least one predicate holds.
func (p CavePredicates) Any() bool {
	return p.Cheese || p.Meatball || p.Spaghetti
}

// cavePredicates samples the cave channels at p.
func (t *Terrain) cavePredicates(p Coord) CavePredicates {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)

	cheese := t.densityB.Sample3D(x*caveScale, y*caveScale, z*caveScale)
	warp := t.densityC.Sample3D(x*caveScale, y*caveScale, z*caveScale)
	a := math.Abs(t.spaghettiA.Sample3D(x*spaghettiScale, y*spaghettiScale, z*spaghettiScale))
	b := math.Abs(t.spaghettiB.Sample3D(x*spaghettiScale, y*spaghettiScale, z*spaghettiScale))

	return CavePredicates{
		Cheese:    cheese > cheeseThreshold,
		Meatball:  warp+a < meatballThreshold && warp+b < meatballThreshold,
		Spaghetti: a < spaghettiThreshold && b < spaghettiThreshold,
	}
}

// carveable reports whether caves may touch v at height y. Liquids and air are never
// carved, and the soft layers below the sea fill line are kept so the sea has a floor.
func carveable(v Voxel, y int) bool {
	if !v.IsSolid() || v.Material == MaterialWater || v.Material == MaterialIce {
		return false
	}
	if y < SeaFillY {
		switch v.Material {
		case MaterialSand, MaterialSnow, MaterialDirt:
			return false
		}
	}
	return true
}

// inCaveBand reports whether y is low enough relative to the column surface to carve.
func inCaveBand(y int, col ColumnStats) bool {
	return float64(y) <= col.HeightOffset+1
}

// Carve applies the cave predicates to v. A cheese-only hit back-fills with the
// climate's ore instead of opening the space; any tunnel hit opens it.
func Carve(v Voxel, preds CavePredicates, col ColumnStats, y int) Voxel {
	if !carveable(v, y) || !inCaveBand(y, col) || !preds.Any() {
		return v
	}
	if preds.Cheese && !preds.Meatball && !preds.Spaghetti {
		return OreFor(col.Temperature, col.Humidity, col.Weirdness)
	}
	return Air()
}

// OreFor picks the back-fill for cheese pockets from the column climate.
// Climates outside every band stay open as Air.
func OreFor(temperature, humidity, weirdness float64) Voxel {
	switch {
	case temperature < -0.5:
		switch {
		case humidity < -0.5:
			return Solid(MaterialCopper)
		case humidity < -0.1:
			return Solid(MaterialAdamantine)
		case humidity < 0.1:
			return Solid(MaterialIron)
		case humidity < 0.5:
			return Solid(MaterialMarble)
		}
	case temperature < 0.5:
		switch {
		case humidity < -0.5:
			switch {
			case weirdness < -0.5:
				return Solid(MaterialCoal)
			case weirdness < -0.1:
				return Solid(MaterialWood)
			case weirdness < 0.1:
				return Solid(MaterialGold)
			case weirdness < 0.5:
				return Solid(MaterialTin)
			}
		case humidity < -0.1:
			switch {
			case weirdness < -0.5:
				return Solid(MaterialCopper)
			case weirdness < 0.5:
				return Solid(MaterialIron)
			}
		case humidity < 0.1:
			switch {
			case weirdness < -0.5:
				return Solid(MaterialClay)
			case weirdness < 0.5:
				return Solid(MaterialDirt)
			}
		case humidity < 0.5:
			switch {
			case weirdness < -0.5:
				return Solid(MaterialSilver)
			case weirdness < 0.5:
				return Solid(MaterialGold)
			}
		}
	}
	return Air()
}
