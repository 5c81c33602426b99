package meshing

import (
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz + texture layer)
const VertexStride = 7

// Texture slots returned by a TextureMapper.
const (
	faceTop    = 0
	faceSide   = 1
	faceBottom = 2
)

type faceDir struct {
	nx, ny, nz int
	slot       int
}

var faceDirs = [6]faceDir{
	{+1, 0, 0, faceSide},
	{-1, 0, 0, faceSide},
	{0, +1, 0, faceTop},
	{0, -1, 0, faceBottom},
	{0, 0, +1, faceSide},
	{0, 0, -1, faceSide},
}

// CulledMesher emits one quad per solid face that touches air. Faces against
// Unset padding are skipped; the neighbouring chunk owns that border.
type CulledMesher struct{}

// Mesh builds the face-culled triangle list of buf's core samples in world space.
func (CulledMesher) Mesh(buf *world.VoxelBuffer, textures world.TextureMapper) (Mesh, error) {
	defer profiling.Track("meshing.CulledMesher.Mesh")()

	mesh := Mesh{Coord: buf.Coord, Lod: buf.Lod}
	if buf.SolidCount() == 0 {
		return mesh, nil
	}
	if textures == nil {
		textures = world.TextureIndices
	}

	size := float32(buf.Lod)
	vertices := make([]float32, 0, 1024)

	for i := 1; i < buf.Edge-1; i++ {
		for j := 1; j < buf.Edge-1; j++ {
			for k := 1; k < buf.Edge-1; k++ {
				v := buf.At(i, j, k)
				if !v.IsSolid() {
					continue
				}
				layers := textures(v.Material)
				p := buf.Position(i, j, k)
				for _, d := range faceDirs {
					n := buf.At(i+d.nx, j+d.ny, k+d.nz)
					if n.Kind != world.VoxelAir {
						continue
					}
					vertices = emitFace(vertices, float32(p.X), float32(p.Y), float32(p.Z), size, d, float32(layers[d.slot]))
				}
			}
		}
	}
	mesh.Vertices = vertices
	return mesh, nil
}

// emitFace appends two triangles covering the face of the cube at (x,y,z) with edge
// size that points along d.
func emitFace(out []float32, x, y, z, size float32, d faceDir, layer float32) []float32 {
	var c [4][3]float32
	switch {
	case d.nx != 0:
		fx := x
		if d.nx > 0 {
			fx = x + size
		}
		c = [4][3]float32{{fx, y, z}, {fx, y + size, z}, {fx, y + size, z + size}, {fx, y, z + size}}
	case d.ny != 0:
		fy := y
		if d.ny > 0 {
			fy = y + size
		}
		c = [4][3]float32{{x, fy, z}, {x + size, fy, z}, {x + size, fy, z + size}, {x, fy, z + size}}
	default:
		fz := z
		if d.nz > 0 {
			fz = z + size
		}
		c = [4][3]float32{{x, y, fz}, {x + size, y, fz}, {x + size, y + size, fz}, {x, y + size, fz}}
	}
	nx, ny, nz := float32(d.nx), float32(d.ny), float32(d.nz)
	for _, idx := range [6]int{0, 1, 2, 2, 3, 0} {
		out = append(out, c[idx][0], c[idx][1], c[idx][2], nx, ny, nz, layer)
	}
	return out
}
