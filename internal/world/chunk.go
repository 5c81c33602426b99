package world

// VoxelBuffer is the dense, padded voxel grid of one generated chunk at one LOD.
// Index (i,j,k) maps to world position chunkMin + (index-1)*lod on each axis, so
// index 0 and Edge-1 are the padding layers shared with neighbours.
type VoxelBuffer struct {
	Coord ChunkCoord
	Lod   LodLevel
	Edge  int // padded samples per axis

	voxels []Voxel
	solid  int
	dirty  bool
}

// NewVoxelBuffer allocates an all-Unset buffer for (coord, lod).
func NewVoxelBuffer(coord ChunkCoord, lod LodLevel) *VoxelBuffer {
	lod = max(lod, 1)
	edge := DataShape(lod)
	return &VoxelBuffer{
		Coord:  coord,
		Lod:    lod,
		Edge:   edge,
		voxels: make([]Voxel, edge*edge*edge),
		dirty:  true,
	}
}

func (b *VoxelBuffer) index(i, j, k int) int {
	return (i*b.Edge+j)*b.Edge + k
}

func (b *VoxelBuffer) inBounds(i, j, k int) bool {
	return i >= 0 && i < b.Edge && j >= 0 && j < b.Edge && k >= 0 && k < b.Edge
}

// At returns the voxel at buffer index (i,j,k); out-of-range indices are Unset.
func (b *VoxelBuffer) At(i, j, k int) Voxel {
	if !b.inBounds(i, j, k) {
		return Unset()
	}
	return b.voxels[b.index(i, j, k)]
}

// Set stores v at buffer index (i,j,k).
func (b *VoxelBuffer) Set(i, j, k int, v Voxel) {
	if !b.inBounds(i, j, k) {
		return
	}
	idx := b.index(i, j, k)
	old := b.voxels[idx]
	if old == v {
		return
	}
	if old.IsSolid() {
		b.solid--
	}
	if v.IsSolid() {
		b.solid++
	}
	b.voxels[idx] = v
	b.dirty = true
}

// Position returns the world position sampled at buffer index (i,j,k).
func (b *VoxelBuffer) Position(i, j, k int) Coord {
	lo := b.Coord.Min()
	step := int(b.Lod)
	return Coord{
		X: lo.X + (i-1)*step,
		Y: lo.Y + (j-1)*step,
		Z: lo.Z + (k-1)*step,
	}
}

// Voxels returns the backing slice in (x, y, z) order. Callers must not modify it.
func (b *VoxelBuffer) Voxels() []Voxel {
	return b.voxels
}

// SolidCount returns the number of solid voxels, padding included.
func (b *VoxelBuffer) SolidCount() int {
	return b.solid
}

// Uniform reports whether every voxel is identical, and which.
func (b *VoxelBuffer) Uniform() (Voxel, bool) {
	if len(b.voxels) == 0 {
		return Unset(), true
	}
	first := b.voxels[0]
	for _, v := range b.voxels[1:] {
		if v != first {
			return Voxel{}, false
		}
	}
	return first, true
}

// IsDirty returns whether the buffer changed since it was last meshed
func (b *VoxelBuffer) IsDirty() bool {
	return b.dirty
}

// SetClean marks the buffer as meshed
func (b *VoxelBuffer) SetClean() {
	b.dirty = false
}
