package world

import (
	"voxel-terrain/internal/config"
	"voxel-terrain/internal/profiling"
)

// Generator hands out per-chunk samplers over one shared Terrain.
type Generator struct {
	terrain   *Terrain
	skirtMode config.SkirtMode
}

// NewGenerator creates a generator over t with the given padding policy.
func NewGenerator(t *Terrain, mode config.SkirtMode) *Generator {
	return &Generator{terrain: t, skirtMode: mode}
}

// Terrain returns the shared terrain.
func (g *Generator) Terrain() *Terrain {
	return g.terrain
}

// Generate returns a fresh sampler for one (chunk, lod) request. Each request gets
// its own column cache; the returned sampler must stay on one goroutine.
func (g *Generator) Generate(chunk ChunkCoord, lod LodLevel) *Sampler {
	lod = max(lod, 1)
	edge := DataShape(lod)
	return &Sampler{
		terrain: g.terrain,
		chunk:   chunk,
		lod:     lod,
		skirt:   SkirtEnabled(lod, g.skirtMode),
		cache:   NewColumnCache(g.terrain, edge*edge),
	}
}

// GenerateBuffer samples the whole padded shape of (chunk, lod) into a new buffer.
func (g *Generator) GenerateBuffer(chunk ChunkCoord, lod LodLevel) *VoxelBuffer {
	s := g.Generate(chunk, lod)
	buf := NewVoxelBuffer(chunk, s.lod)
	s.Fill(buf)
	return buf
}

// Sampler produces voxels for one chunk request. Not safe for concurrent use.
type Sampler struct {
	terrain *Terrain
	chunk   ChunkCoord
	lod     LodLevel
	skirt   bool
	cache   *ColumnCache
}

// Chunk returns the chunk this sampler was built for.
func (s *Sampler) Chunk() ChunkCoord { return s.chunk }

// Lod returns the sampling stride.
func (s *Sampler) Lod() LodLevel { return s.lod }

// Cache exposes the sampler's column cache.
func (s *Sampler) Cache() *ColumnCache { return s.cache }

// Sample returns the voxel at an absolute position.
func (s *Sampler) Sample(p Coord) Voxel {
	if s.skirt && !s.chunk.Contains(p) {
		return Unset()
	}
	if v, ok := boundsVoxel(p.Y); ok {
		return v
	}
	return s.terrain.voxel(p, s.cache.Get(p.X, p.Z))
}

// Fill samples every padded position of buf. Requests lying wholly below the lava
// floor or above the ceiling are filled without touching the noise channels.
func (s *Sampler) Fill(buf *VoxelBuffer) {
	defer profiling.Track("world.Sampler.Fill")()

	if v, ok := s.uniform(buf); ok {
		for i := 0; i < buf.Edge; i++ {
			for k := 0; k < buf.Edge; k++ {
				for j := 0; j < buf.Edge; j++ {
					if s.skirt && !s.chunk.Contains(buf.Position(i, j, k)) {
						buf.Set(i, j, k, Unset())
						continue
					}
					buf.Set(i, j, k, v)
				}
			}
		}
		return
	}

	// y innermost so each column's stats are computed once and then hit
	for i := 0; i < buf.Edge; i++ {
		for k := 0; k < buf.Edge; k++ {
			for j := 0; j < buf.Edge; j++ {
				buf.Set(i, j, k, s.Sample(buf.Position(i, j, k)))
			}
		}
	}
}

// uniform reports the single voxel every sample of buf resolves to, if the padded
// y range lies entirely outside the terrain band.
func (s *Sampler) uniform(buf *VoxelBuffer) (Voxel, bool) {
	lo := buf.Position(0, 0, 0).Y
	hi := buf.Position(0, buf.Edge-1, 0).Y
	if hi < WorldFloorY {
		return Solid(MaterialLava), true
	}
	if lo > WorldCeilingY {
		return Air(), true
	}
	return Voxel{}, false
}

// VoxelAt computes the voxel at p with no cache and no skirt. It equals what any
// sampler returns for p outside skirt positions.
func (t *Terrain) VoxelAt(p Coord) Voxel {
	if v, ok := boundsVoxel(p.Y); ok {
		return v
	}
	return t.voxel(p, t.ColumnAt(p.X, p.Z))
}

// voxel runs biome, density and cave stages for a position inside the terrain band.
func (t *Terrain) voxel(p Coord, col ColumnStats) Voxel {
	biome := col.Biome()
	v := terrainVoxel(t.baseDensity(p), p.Y, col, biome)
	if !carveable(v, p.Y) || !inCaveBand(p.Y, col) {
		return v
	}
	return Carve(v, t.cavePredicates(p), col, p.Y)
}
