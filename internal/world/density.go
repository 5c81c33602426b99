package world

// Vertical layout of generated terrain.
const (
	densityScale = 0.01

	// WorldFloorY is the last y above the lava floor; everything below is Lava.
	WorldFloorY   = -255
	// WorldCeilingY is the highest y that can hold terrain; everything above is Air.
	WorldCeilingY = 255

	// SeaFillY: non-solid voxels below it are filled with liquid.
	SeaFillY  = -10
	iceLayerY = SeaFillY - 1

	surfaceProbe = 1
	fillerProbe  = 5
)

// boundsVoxel applies the hard vertical bounds. ok is false inside the terrain band.
func boundsVoxel(y int) (v Voxel, ok bool) {
	if y < WorldFloorY {
		return Solid(MaterialLava), true
	}
	if y > WorldCeilingY {
		return Air(), true
	}
	return Voxel{}, false
}

// baseDensity samples the 3-D terrain noise at p.
func (t *Terrain) baseDensity(p Coord) float64 {
	return t.densityA.Sample3D(float64(p.X)*densityScale, float64(p.Y)*densityScale, float64(p.Z)*densityScale)
}

// densityAt combines a base noise sample with the column's height gradient. For a fixed
// base and a non-negative squash factor it never increases with y, so a single probe
// above a solid voxel is enough to find the surface.
func densityAt(base float64, y int, col ColumnStats) float64 {
	return base - (float64(y)-col.HeightOffset)*col.Squash
}

// terrainVoxel classifies a position before cave carving. The probes above reuse the
// base sample of the position itself.
func terrainVoxel(base float64, y int, col ColumnStats, biome Biome) Voxel {
	if densityAt(base, y, col) > 0 {
		if densityAt(base, y+surfaceProbe, col) <= 0 {
			return Solid(biome.SurfaceMaterial())
		}
		if densityAt(base, y+fillerProbe, col) <= 0 {
			return Solid(biome.FillerMaterial())
		}
		return Solid(MaterialStone)
	}
	if y < SeaFillY {
		return liquidFill(y, biome)
	}
	return Air()
}

// liquidFill returns the sea voxel for an empty position below SeaFillY. It does not
// look at the actual surface height of the column.
func liquidFill(y int, biome Biome) Voxel {
	if biome == BiomeTundra && y == iceLayerY {
		return Solid(MaterialIce)
	}
	return Solid(MaterialWater)
}
