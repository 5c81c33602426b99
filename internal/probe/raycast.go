package probe

import (
	"math"

	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VoxelSource answers voxel queries at world positions. *world.Terrain satisfies it.
type VoxelSource interface {
	VoxelAt(p world.Coord) world.Voxel
}

// StoreSource reads loaded chunks first and falls back to the terrain for positions
// no loaded buffer sampled.
type StoreSource struct {
	Store   *world.ChunkStore
	Terrain *world.Terrain
}

func (s StoreSource) VoxelAt(p world.Coord) world.Voxel {
	if v, ok := s.Store.Get(p); ok && v.Kind != world.VoxelUnset {
		return v
	}
	return s.Terrain.VoxelAt(p)
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.Coord
	AdjacentPosition world.Coord
	Voxel            world.Voxel
	Distance         float32
	Hit              bool
}

// Raycast walks the voxel grid cell by cell from start along direction and stops at
// the first solid voxel (liquids included) between minDist and maxDist. Voxel (x,y,z)
// occupies the unit cube [x,x+1) x [y,y+1) x [z,z+1).
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, src VoxelSource) RaycastResult {
	defer profiling.Track("probe.Raycast")()

	result := RaycastResult{}
	if direction.Len() == 0 {
		return result
	}
	dir := direction.Normalize()

	cell := [3]int{}
	step := [3]int{}
	tMax := [3]float64{}
	tDelta := [3]float64{}
	for a := 0; a < 3; a++ {
		p, d := float64(start[a]), float64(dir[a])
		cell[a] = int(math.Floor(p))
		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (float64(cell[a]+1) - p) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (p - float64(cell[a])) / -d
			tDelta[a] = 1 / -d
		default:
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}
	}

	last := world.Coord{X: cell[0], Y: cell[1], Z: cell[2]}
	t := 0.0
	for t <= float64(maxDist) {
		pos := world.Coord{X: cell[0], Y: cell[1], Z: cell[2]}
		if t >= float64(minDist) {
			if v := src.VoxelAt(pos); v.IsSolid() {
				result.HitPosition = pos
				result.AdjacentPosition = last
				result.Voxel = v
				result.Distance = float32(t)
				result.Hit = true
				return result
			}
		}
		last = pos

		// advance along the axis whose boundary is nearest
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		cell[a] += step[a]
		t = tMax[a]
		tMax[a] += tDelta[a]
	}

	return result
}

// GroundBelow returns the first solid voxel straight down from start, searching to
// just past the lava floor so it always hits.
func GroundBelow(start mgl32.Vec3, src VoxelSource) RaycastResult {
	depth := start.Y() - float32(world.WorldFloorY) + 2
	return Raycast(start, mgl32.Vec3{0, -1, 0}, 0, max(depth, 0), src)
}
