package world

// VoxelKind tags what a Voxel holds.
type VoxelKind uint8

const (
	// VoxelUnset means no data, e.g. outside the generation bound or a skirt position.
	VoxelUnset VoxelKind = iota
	VoxelAir
	VoxelSolid
)

// Voxel is a single generated cell: Unset, Air, or Solid with a material.
type Voxel struct {
	Kind     VoxelKind
	Material Material
}

// Air returns an empty voxel.
func Air() Voxel { return Voxel{Kind: VoxelAir} }

// Unset returns a voxel that carries no data.
func Unset() Voxel { return Voxel{Kind: VoxelUnset} }

// Solid returns a voxel filled with m.
func Solid(m Material) Voxel { return Voxel{Kind: VoxelSolid, Material: m} }

// IsSolid reports whether v holds a material.
func (v Voxel) IsSolid() bool { return v.Kind == VoxelSolid }

// Is reports whether v is solid with material m.
func (v Voxel) Is(m Material) bool { return v.Kind == VoxelSolid && v.Material == m }

func (v Voxel) String() string {
	switch v.Kind {
	case VoxelAir:
		return "air"
	case VoxelSolid:
		return "solid(" + v.Material.String() + ")"
	default:
		return "unset"
	}
}

// Coord is an absolute world voxel position.
type Coord struct {
	X, Y, Z int
}

// ChunkCoord identifies a ChunkSize^3 cube of voxels.
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkSize is the edge length of a chunk in voxels.
const ChunkSize = 32

// Min returns the lowest voxel position inside the chunk.
func (c ChunkCoord) Min() Coord {
	return Coord{X: c.X * ChunkSize, Y: c.Y * ChunkSize, Z: c.Z * ChunkSize}
}

// Max returns the exclusive upper voxel bound of the chunk.
func (c ChunkCoord) Max() Coord {
	return Coord{X: (c.X + 1) * ChunkSize, Y: (c.Y + 1) * ChunkSize, Z: (c.Z + 1) * ChunkSize}
}

// Contains reports whether p lies inside the chunk's own bounds.
func (c ChunkCoord) Contains(p Coord) bool {
	lo, hi := c.Min(), c.Max()
	return p.X >= lo.X && p.X < hi.X &&
		p.Y >= lo.Y && p.Y < hi.Y &&
		p.Z >= lo.Z && p.Z < hi.Z
}

// ChunkOf returns the chunk containing p.
func ChunkOf(p Coord) ChunkCoord {
	return ChunkCoord{X: floorDiv(p.X, ChunkSize), Y: floorDiv(p.Y, ChunkSize), Z: floorDiv(p.Z, ChunkSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
