package world

import (
	"math"

	"voxel-terrain/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// LodLevel is the sampling stride inside a chunk: 1, 2, 4, 8, 16 or 32.
type LodLevel int

// Strides in increasing order.
var LodLevels = []LodLevel{1, 2, 4, 8, 16, 32}

// lodBreakpoints[i] is the chunk distance at which stride LodLevels[i+1] starts.
var lodBreakpoints = [...]float32{16, 24, 32, 40, 48}

// StrideForDistance maps a chunk-space distance to a stride. It is a step function
// and never decreases as distance grows.
func StrideForDistance(distance float32) LodLevel {
	for i, bp := range lodBreakpoints {
		if distance < bp {
			return LodLevels[i]
		}
	}
	return LodLevels[len(LodLevels)-1]
}

// CameraChunk returns the chunk-space position of a world-space camera position.
func CameraChunk(camera mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Floor(float64(camera.X() / ChunkSize))),
		float32(math.Floor(float64(camera.Y() / ChunkSize))),
		float32(math.Floor(float64(camera.Z() / ChunkSize))),
	}
}

// ChunkDistance is the distance in chunks between a chunk and the camera's chunk.
func ChunkDistance(chunk ChunkCoord, camera mgl32.Vec3) float32 {
	c := mgl32.Vec3{float32(chunk.X), float32(chunk.Y), float32(chunk.Z)}
	return c.Sub(CameraChunk(camera)).Len()
}

// LodFor picks the stride for chunk as seen from a world-space camera position.
func LodFor(chunk ChunkCoord, camera mgl32.Vec3) LodLevel {
	return StrideForDistance(ChunkDistance(chunk, camera))
}

// EdgeLength returns the number of samples along one axis of the chunk core at lod.
func EdgeLength(lod LodLevel) int {
	return ChunkSize / int(max(lod, 1))
}

// DataShape returns the padded edge length: the core plus one sample on each side.
func DataShape(lod LodLevel) int {
	return EdgeLength(lod) + 2
}

// SkirtEnabled reports whether padding samples are forced to Unset. Only the LOD 2
// special case of SkirtAtLod2 does this.
func SkirtEnabled(lod LodLevel, mode config.SkirtMode) bool {
	return mode == config.SkirtAtLod2 && lod == 2
}
