package world

import "testing"

func TestChunkStoreAddReplace(t *testing.T) {
	store := NewChunkStore()
	coord := ChunkCoord{X: 1, Y: -1, Z: 2}

	if !store.AddChunk(NewVoxelBuffer(coord, 4)) {
		t.Fatal("first AddChunk should install")
	}
	if store.AddChunk(NewVoxelBuffer(coord, 4)) {
		t.Fatal("same-LOD AddChunk should be rejected")
	}
	if !store.HasChunkAt(coord, 4) || store.HasChunkAt(coord, 2) {
		t.Fatal("HasChunkAt mismatch after first install")
	}
	mods := store.GetModCount()

	if !store.AddChunk(NewVoxelBuffer(coord, 2)) {
		t.Fatal("different-LOD AddChunk should replace")
	}
	if !store.HasChunkAt(coord, 2) || store.Len() != 1 {
		t.Fatal("replacement not installed")
	}
	if store.GetModCount() != mods+1 {
		t.Errorf("mod count %d, want %d", store.GetModCount(), mods+1)
	}

	store.RemoveChunk(coord)
	if store.HasChunk(coord) || store.Len() != 0 {
		t.Fatal("RemoveChunk left the chunk behind")
	}
}

func TestChunkStoreGet(t *testing.T) {
	store := NewChunkStore()

	fine := NewVoxelBuffer(ChunkCoord{}, 1)
	fine.Set(4, 5, 6, Solid(MaterialStone))
	store.AddChunk(fine)
	if v, ok := store.Get(Coord{X: 3, Y: 4, Z: 5}); !ok || v != Solid(MaterialStone) {
		t.Errorf("Get(3,4,5) = %v/%v, want stone", v, ok)
	}

	coarse := NewVoxelBuffer(ChunkCoord{X: -1}, 2)
	coarse.Set(16, 1, 1, Solid(MaterialSnow))
	store.AddChunk(coarse)
	if coarse.Position(16, 1, 1) != (Coord{X: -2}) {
		t.Fatalf("unexpected position %v", coarse.Position(16, 1, 1))
	}
	if v, ok := store.Get(Coord{X: -2}); !ok || v != Solid(MaterialSnow) {
		t.Errorf("Get(-2,0,0) = %v/%v, want snow", v, ok)
	}
	if _, ok := store.Get(Coord{X: -3}); ok {
		t.Error("odd x is not sampled at LOD 2")
	}
	if _, ok := store.Get(Coord{Y: 100}); ok {
		t.Error("missing chunk reported a voxel")
	}
}

func TestChunkStoreEvict(t *testing.T) {
	store := NewChunkStore()
	for _, c := range []ChunkCoord{{0, 0, 0}, {3, 0, 0}, {3, 3, 3}, {10, 0, 0}, {0, -6, 0}} {
		store.AddChunk(NewVoxelBuffer(c, 1))
	}
	removed := store.EvictFarChunks(ChunkCoord{}, 5)
	if removed != 3 {
		t.Errorf("removed %d chunks, want 3", removed)
	}
	if !store.HasChunk(ChunkCoord{X: 3}) || store.HasChunk(ChunkCoord{X: 10}) {
		t.Error("wrong chunks evicted")
	}
	if len(store.GetAllChunks()) != 2 {
		t.Errorf("GetAllChunks returned %d entries, want 2", len(store.GetAllChunks()))
	}
}
