package world

import (
	"sync"

	"voxel-terrain/internal/profiling"
)

// ChunkWithCoord pairs a stored buffer with its coordinate.
type ChunkWithCoord struct {
	Coord  ChunkCoord
	Buffer *VoxelBuffer
}

// ChunkStore holds the latest generated buffer of every loaded chunk.
type ChunkStore struct {
	chunks   map[ChunkCoord]*VoxelBuffer
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/replace/remove
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*VoxelBuffer),
	}
}

// GetChunk returns the buffer stored for coord, or nil.
func (cs *ChunkStore) GetChunk(coord ChunkCoord) *VoxelBuffer {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// HasChunk checks if any buffer exists for coord.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// HasChunkAt checks if the buffer for coord exists at exactly lod.
func (cs *ChunkStore) HasChunkAt(coord ChunkCoord, lod LodLevel) bool {
	cs.mu.RLock()
	buf, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists && buf.Lod == lod
}

// AddChunk installs buf, replacing any buffer of a different LOD.
// It returns false when an identical-LOD buffer is already present.
func (cs *ChunkStore) AddChunk(buf *VoxelBuffer) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if existing, ok := cs.chunks[buf.Coord]; ok && existing.Lod == buf.Lod {
		return false
	}
	cs.chunks[buf.Coord] = buf
	cs.modCount++
	return true
}

// RemoveChunk drops the buffer for coord.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; ok {
		delete(cs.chunks, coord)
		cs.modCount++
	}
}

// Get returns the voxel at a world position when a loaded buffer sampled it.
func (cs *ChunkStore) Get(p Coord) (Voxel, bool) {
	coord := ChunkOf(p)
	buf := cs.GetChunk(coord)
	if buf == nil {
		return Unset(), false
	}
	step := int(buf.Lod)
	lx, ly, lz := mod(p.X, ChunkSize), mod(p.Y, ChunkSize), mod(p.Z, ChunkSize)
	if lx%step != 0 || ly%step != 0 || lz%step != 0 {
		return Unset(), false
	}
	return buf.At(lx/step+1, ly/step+1, lz/step+1), true
}

// GetAllChunks returns a slice of all chunks with their coordinates.
func (cs *ChunkStore) GetAllChunks() []ChunkWithCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	chunks := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, buf := range cs.chunks {
		chunks = append(chunks, ChunkWithCoord{Coord: coord, Buffer: buf})
	}
	return chunks
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictFarChunks removes chunks farther than radius (in chunks) from center.
// Returns number of removed chunks.
func (cs *ChunkStore) EvictFarChunks(center ChunkCoord, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	r2 := radius * radius
	cs.mu.Lock()
	for coord := range cs.chunks {
		dx, dy, dz := coord.X-center.X, coord.Y-center.Y, coord.Z-center.Z
		if dx*dx+dy*dy+dz*dz > r2 {
			delete(cs.chunks, coord)
			cs.modCount++
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}
