package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/world"
)

func generated(t *testing.T) (*config.WorldGenConfig, []*world.VoxelBuffer) {
	t.Helper()
	cfg := config.DefaultWorldGen()
	gen := world.NewGenerator(world.NewTerrain(cfg), config.SkirtAtLod2)
	bufs := []*world.VoxelBuffer{
		gen.GenerateBuffer(world.ChunkCoord{X: 1, Y: 0, Z: 0}, 8),
		gen.GenerateBuffer(world.ChunkCoord{X: 0, Y: -1, Z: 0}, 2),
		gen.GenerateBuffer(world.ChunkCoord{X: 0, Y: -9, Z: 0}, 32),
	}
	return cfg, bufs
}

func sameVoxels(a, b *world.VoxelBuffer) bool {
	if a.Coord != b.Coord || a.Lod != b.Lod || a.Edge != b.Edge {
		return false
	}
	av, bv := a.Voxels(), b.Voxels()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func TestRegionRoundTrip(t *testing.T) {
	cfg, bufs := generated(t)
	region := NewRegion(cfg, bufs)
	path := filepath.Join(t.TempDir(), "out", "region.zst")

	if err := WriteRegion(path, region); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadRegion(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Header.ID != region.Header.ID {
		t.Errorf("region id changed: %v != %v", got.Header.ID, region.Header.ID)
	}
	if got.Header.Chunks != 3 || len(got.Chunks) != 3 {
		t.Fatalf("expected 3 chunks, header says %d, body has %d", got.Header.Chunks, len(got.Chunks))
	}
	if got.Header.Config.Continents.Seed != cfg.Continents.Seed {
		t.Errorf("config not preserved")
	}

	byCoord := make(map[world.ChunkCoord]*world.VoxelBuffer)
	for _, b := range bufs {
		byCoord[b.Coord] = b
	}
	for _, rec := range got.Chunks {
		buf, err := rec.Buffer()
		if err != nil {
			t.Fatalf("rebuild %v: %v", rec.Coord(), err)
		}
		if !sameVoxels(buf, byCoord[rec.Coord()]) {
			t.Errorf("chunk %v differs after round trip", rec.Coord())
		}
		if buf.SolidCount() != byCoord[rec.Coord()].SolidCount() {
			t.Errorf("chunk %v solid count %d, want %d", rec.Coord(), buf.SolidCount(), byCoord[rec.Coord()].SolidCount())
		}
	}
}

func TestRegionChunksSorted(t *testing.T) {
	cfg, bufs := generated(t)
	region := NewRegion(cfg, bufs)
	want := []world.ChunkCoord{{X: 0, Y: -9}, {X: 0, Y: -1}, {X: 1}}
	for i, rec := range region.Chunks {
		if rec.Coord() != want[i] {
			t.Fatalf("chunk %d is %v, want %v", i, rec.Coord(), want[i])
		}
	}
}

func TestReadHeaderOnly(t *testing.T) {
	cfg, bufs := generated(t)
	region := NewRegion(cfg, bufs[:1])
	path := filepath.Join(t.TempDir(), "region.zst")
	if err := WriteRegion(path, region); err != nil {
		t.Fatalf("write: %v", err)
	}
	hdr, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if hdr.ID != region.Header.ID || hdr.Chunks != 1 || hdr.ChunkSize != world.ChunkSize {
		t.Fatalf("unexpected header %+v", hdr)
	}
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	cfg, _ := generated(t)
	region := NewRegion(cfg, nil)
	region.Header.Version = FormatVersion + 1

	var buf bytes.Buffer
	if err := Encode(&buf, region); err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err := Decode(&buf)
	if err == nil || !strings.Contains(err.Error(), "unsupported region version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestRecordBufferValidates(t *testing.T) {
	rec := ChunkRecord{Lod: 4, Edge: 5}
	if _, err := rec.Buffer(); err == nil {
		t.Fatal("expected edge mismatch error")
	}
	rec = ChunkRecord{Lod: 3, Edge: world.DataShape(3)}
	if _, err := rec.Buffer(); err == nil {
		t.Fatal("expected invalid lod error")
	}
	rec = ChunkRecord{Lod: 32, Edge: 3, Kinds: make([]uint8, 27), Materials: make([]uint8, 26)}
	if _, err := rec.Buffer(); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
