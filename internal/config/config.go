package config

import (
	"runtime"
	"sync"
)

// SkirtMode selects how padding voxels outside a chunk's own bounds are sampled.
type SkirtMode int

const (
	// SkirtNone samples padding voxels like any other position.
	SkirtNone SkirtMode = iota
	// SkirtAtLod2 forces padding voxels to Unset when the chunk stride is exactly 2.
	SkirtAtLod2
)

// StreamSettings holds chunk streaming configuration
type StreamSettings struct {
	mu                 sync.RWMutex
	spawningDistance   int // in chunks
	minDespawnDistance int // in chunks
	workers            int
	skirtMode          SkirtMode
}

var globalStreamSettings = &StreamSettings{
	spawningDistance:   64,
	minDespawnDistance: 1,
	workers:            0, // 0 means runtime.NumCPU()
	skirtMode:          SkirtAtLod2,
}

// GetSpawningDistance returns the radius in chunks around the camera that is generated
func GetSpawningDistance() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.spawningDistance
}

// SetSpawningDistance sets the spawning distance in chunks
func SetSpawningDistance(distance int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 1 {
		distance = 1
	}
	if distance > 128 {
		distance = 128
	}

	globalStreamSettings.spawningDistance = distance
}

// GetMinDespawnDistance returns the distance in chunks inside which chunks are never evicted
func GetMinDespawnDistance() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.minDespawnDistance
}

// SetMinDespawnDistance sets the minimum despawn distance in chunks
func SetMinDespawnDistance(distance int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if distance < 0 {
		distance = 0
	}
	globalStreamSettings.minDespawnDistance = distance
}

// GetChunkEvictRadius returns radius for chunk eviction (never below the min despawn distance)
func GetChunkEvictRadius() int {
	return max(GetSpawningDistance()+1, GetMinDespawnDistance())
}

// GetWorkers returns the number of generation workers
func GetWorkers() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	if globalStreamSettings.workers <= 0 {
		return max(runtime.NumCPU(), 1)
	}
	return globalStreamSettings.workers
}

// SetWorkers sets the number of generation workers; 0 restores the CPU count default
func SetWorkers(n int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if n < 0 {
		n = 0
	}
	globalStreamSettings.workers = n
}

// GetSkirtMode returns the padding policy used by generation
func GetSkirtMode() SkirtMode {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.skirtMode
}

// SetSkirtMode sets the padding policy used by generation
func SetSkirtMode(mode SkirtMode) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	globalStreamSettings.skirtMode = mode
}
