package world

import (
	"crypto/sha256"
	"strconv"
	"testing"

	"voxel-terrain/internal/config"
)

func defaultConfig() *config.WorldGenConfig {
	return config.DefaultWorldGen()
}

// hashBuffer computes a SHA-256 hash of every voxel in a buffer
func hashBuffer(b *VoxelBuffer) [32]byte {
	h := sha256.New()
	for _, v := range b.Voxels() {
		h.Write([]byte{byte(v.Kind), byte(v.Material)})
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestGenerateDeterministic verifies independent terrains built from one config produce identical buffers
func TestGenerateDeterministic(t *testing.T) {
	cases := []struct {
		chunk ChunkCoord
		lod   LodLevel
	}{
		{ChunkCoord{0, 0, 0}, 1},
		{ChunkCoord{-3, -1, 5}, 4},
		{ChunkCoord{100, 2, -40}, 2},
	}
	genA := NewGenerator(NewTerrain(defaultConfig()), config.SkirtAtLod2)
	genB := NewGenerator(NewTerrain(defaultConfig()), config.SkirtAtLod2)
	for _, c := range cases {
		first := hashBuffer(genA.GenerateBuffer(c.chunk, c.lod))
		for i := 0; i < 2; i++ {
			if h := hashBuffer(genB.GenerateBuffer(c.chunk, c.lod)); h != first {
				t.Fatalf("chunk %v lod %d: run %d hash differs", c.chunk, c.lod, i)
			}
		}
	}
}

// TestSamplerMatchesUncached verifies the cached sampling path equals the uncached one
func TestSamplerMatchesUncached(t *testing.T) {
	terrain := NewTerrain(defaultConfig())
	gen := NewGenerator(terrain, config.SkirtNone)
	chunk := ChunkCoord{X: 2, Y: -1, Z: -3}
	s := gen.Generate(chunk, 1)
	lo := chunk.Min()
	for i := 0; i < ChunkSize; i += 3 {
		for j := 0; j < ChunkSize; j += 5 {
			for k := 0; k < ChunkSize; k += 7 {
				p := Coord{X: lo.X + i, Y: lo.Y + j, Z: lo.Z + k}
				first := s.Sample(p)
				if again := s.Sample(p); again != first {
					t.Fatalf("sampler not stable at %v: %v then %v", p, first, again)
				}
				if want := terrain.VoxelAt(p); first != want {
					t.Fatalf("sampler %v != uncached %v at %v", first, want, p)
				}
			}
		}
	}
	hits, misses := s.Cache().Stats()
	if hits == 0 || misses == 0 {
		t.Errorf("expected both cache hits and misses, got %d/%d", hits, misses)
	}
}

// TestColumnCacheEquivalence verifies cached stats equal freshly computed ones
func TestColumnCacheEquivalence(t *testing.T) {
	terrain := NewTerrain(defaultConfig())
	cache := NewColumnCache(terrain, 16)
	for x := -40; x <= 40; x += 8 {
		for z := -40; z <= 40; z += 8 {
			if got, want := cache.Get(x, z), terrain.ColumnAt(x, z); got != want {
				t.Fatalf("column (%d,%d): cached %+v, fresh %+v", x, z, got, want)
			}
			cache.Get(x, z)
		}
	}
	hits, misses := cache.Stats()
	if misses != cache.Len() || hits != misses {
		t.Errorf("expected one miss and one hit per column, got %d hits %d misses for %d columns", hits, misses, cache.Len())
	}
}

// TestColumnCacheKeepsFarColumnsApart verifies columns 2^32 apart get separate entries
func TestColumnCacheKeepsFarColumnsApart(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	shift := 32
	far := 5 + 1<<shift

	terrain := NewTerrain(defaultConfig())
	cache := NewColumnCache(terrain, 2)
	near := cache.Get(5, 7)
	got := cache.Get(far, 7)
	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached columns, got %d", cache.Len())
	}
	if want := terrain.ColumnAt(far, 7); got != want {
		t.Errorf("far column: cached %+v, fresh %+v", got, want)
	}
	if again := cache.Get(5, 7); again != near {
		t.Errorf("near column changed after far lookup: %+v then %+v", near, again)
	}
}

// TestCheesePocketsBackfillOre verifies the stock world has cheese-only pockets filled with ore
func TestCheesePocketsBackfillOre(t *testing.T) {
	terrain := NewTerrain(defaultConfig())
	gen := NewGenerator(terrain, config.SkirtNone)
	// a cheese blob sits under the grassland around (411,-18,129)
	chunk := ChunkCoord{X: 12, Y: -1, Z: 4}
	buf := gen.GenerateBuffer(chunk, 1)

	ore := 0
	for i := 1; i < buf.Edge-1; i++ {
		for j := 1; j < buf.Edge-1; j++ {
			for k := 1; k < buf.Edge-1; k++ {
				p := buf.Position(i, j, k)
				preds := terrain.cavePredicates(p)
				if !preds.Cheese || preds.Meatball || preds.Spaghetti {
					continue
				}
				col := terrain.ColumnAt(p.X, p.Z)
				want := OreFor(col.Temperature, col.Humidity, col.Weirdness)
				if v := buf.At(i, j, k); v.IsSolid() && v == want {
					ore++
				}
			}
		}
	}
	if ore == 0 {
		t.Fatalf("chunk %v holds no cheese-only ore voxels", chunk)
	}
}

// TestColumnCacheBoundedByFootprint verifies one fill touches each padded column once
func TestColumnCacheBoundedByFootprint(t *testing.T) {
	gen := NewGenerator(NewTerrain(defaultConfig()), config.SkirtNone)
	for _, lod := range []LodLevel{1, 4} {
		s := gen.Generate(ChunkCoord{}, lod)
		buf := NewVoxelBuffer(ChunkCoord{}, lod)
		s.Fill(buf)
		if want := buf.Edge * buf.Edge; s.Cache().Len() != want {
			t.Errorf("lod %d: cache holds %d columns, want %d", lod, s.Cache().Len(), want)
		}
	}
}

// TestBufferPositionsAgreeAcrossLods verifies a position shared by two LOD buffers holds the same voxel
func TestBufferPositionsAgreeAcrossLods(t *testing.T) {
	gen := NewGenerator(NewTerrain(defaultConfig()), config.SkirtNone)
	chunk := ChunkCoord{X: -1, Y: 0, Z: 1}
	fine := gen.GenerateBuffer(chunk, 1)
	coarse := gen.GenerateBuffer(chunk, 4)
	for i := 1; i < coarse.Edge-1; i++ {
		for j := 1; j < coarse.Edge-1; j++ {
			for k := 1; k < coarse.Edge-1; k++ {
				p := coarse.Position(i, j, k)
				lo := chunk.Min()
				fi, fj, fk := p.X-lo.X+1, p.Y-lo.Y+1, p.Z-lo.Z+1
				if fine.Position(fi, fj, fk) != p {
					t.Fatalf("index mapping mismatch for %v", p)
				}
				if fine.At(fi, fj, fk) != coarse.At(i, j, k) {
					t.Fatalf("voxel at %v differs: lod1 %v, lod4 %v", p, fine.At(fi, fj, fk), coarse.At(i, j, k))
				}
			}
		}
	}
}

func TestSkirtPadding(t *testing.T) {
	terrain := NewTerrain(defaultConfig())
	skirted := NewGenerator(terrain, config.SkirtAtLod2)
	plain := NewGenerator(terrain, config.SkirtNone)

	buf := skirted.GenerateBuffer(ChunkCoord{}, 2)
	for i := 0; i < buf.Edge; i++ {
		for j := 0; j < buf.Edge; j++ {
			for k := 0; k < buf.Edge; k++ {
				padding := i == 0 || j == 0 || k == 0 || i == buf.Edge-1 || j == buf.Edge-1 || k == buf.Edge-1
				v := buf.At(i, j, k)
				if padding && v.Kind != VoxelUnset {
					t.Fatalf("padding (%d,%d,%d) = %v, want unset", i, j, k, v)
				}
				if !padding && v.Kind == VoxelUnset {
					t.Fatalf("core (%d,%d,%d) is unset", i, j, k)
				}
			}
		}
	}

	for _, b := range []*VoxelBuffer{skirted.GenerateBuffer(ChunkCoord{}, 4), plain.GenerateBuffer(ChunkCoord{}, 2)} {
		for _, v := range b.Voxels() {
			if v.Kind == VoxelUnset {
				t.Fatalf("lod %d buffer has unset voxels outside the skirt case", b.Lod)
			}
		}
	}
}

// TestUniformChunks verifies the fast path for chunks beyond the terrain band
func TestUniformChunks(t *testing.T) {
	terrain := NewTerrain(defaultConfig())
	gen := NewGenerator(terrain, config.SkirtAtLod2)

	lava := gen.GenerateBuffer(ChunkCoord{X: 3, Y: -9, Z: -2}, 1)
	if v, ok := lava.Uniform(); !ok || v != Solid(MaterialLava) {
		t.Errorf("chunk below the floor: uniform=%v voxel=%v, want lava", ok, v)
	}
	if lava.SolidCount() != lava.Edge*lava.Edge*lava.Edge {
		t.Errorf("lava chunk solid count %d", lava.SolidCount())
	}

	air := gen.GenerateBuffer(ChunkCoord{X: 0, Y: 9, Z: 0}, 1)
	if v, ok := air.Uniform(); !ok || v != Air() {
		t.Errorf("chunk above the ceiling: uniform=%v voxel=%v, want air", ok, v)
	}

	// the skirt still applies on the fast path
	skirt := gen.GenerateBuffer(ChunkCoord{Y: -20}, 2)
	if v := skirt.At(0, 3, 3); v.Kind != VoxelUnset {
		t.Errorf("skirt padding on uniform chunk = %v, want unset", v)
	}
	if v := skirt.At(3, 3, 3); v != Solid(MaterialLava) {
		t.Errorf("core of deep chunk = %v, want lava", v)
	}

	// the lowest banded chunk straddles the floor
	edge := gen.GenerateBuffer(ChunkCoord{Y: -8}, 1)
	for i := 0; i < edge.Edge; i += 11 {
		for k := 0; k < edge.Edge; k += 11 {
			for j := 0; j < edge.Edge; j += 4 {
				p := edge.Position(i, j, k)
				if want := terrain.VoxelAt(p); edge.At(i, j, k) != want {
					t.Fatalf("%v: buffer %v, uncached %v", p, edge.At(i, j, k), want)
				}
			}
			if v := edge.At(i, 1, k); v != Solid(MaterialLava) {
				t.Fatalf("y=-256 should be lava, got %v", v)
			}
		}
	}
}

func BenchmarkGenerateBufferLod1(b *testing.B) {
	gen := NewGenerator(NewTerrain(defaultConfig()), config.SkirtAtLod2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.GenerateBuffer(ChunkCoord{X: i % 4, Y: -1, Z: 0}, 1)
	}
}

func BenchmarkGenerateBufferLod8(b *testing.B) {
	gen := NewGenerator(NewTerrain(defaultConfig()), config.SkirtAtLod2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.GenerateBuffer(ChunkCoord{X: i % 4, Y: -1, Z: 0}, 8)
	}
}

func BenchmarkColumnAt(b *testing.B) {
	terrain := NewTerrain(defaultConfig())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		terrain.ColumnAt(i, -i)
	}
}
