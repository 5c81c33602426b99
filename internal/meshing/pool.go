package meshing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"voxel-terrain/internal/world"
)

// Mesh is the triangle list built for one generated buffer.
type Mesh struct {
	Coord    world.ChunkCoord
	Lod      world.LodLevel
	Vertices []float32 // interleaved, VertexStride floats per vertex
}

// Quads returns the number of emitted faces.
func (m Mesh) Quads() int {
	return len(m.Vertices) / (VertexStride * 6)
}

// Mesher turns a padded voxel buffer into geometry.
type Mesher interface {
	Mesh(buf *world.VoxelBuffer, textures world.TextureMapper) (Mesh, error)
}

// MeshJob represents a meshing job request
type MeshJob struct {
	Buffer *world.VoxelBuffer
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Lod   world.LodLevel
	Mesh  Mesh
	Error error
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	mesher   Mesher
	textures world.TextureMapper
	log      *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool. A nil textures mapper uses
// world.TextureIndices.
func NewWorkerPool(parent context.Context, mesher Mesher, textures world.TextureMapper, workers, queueSize int, log *slog.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parent)
	if textures == nil {
		textures = world.TextureIndices
	}
	if log == nil {
		log = slog.Default()
	}
	workers = max(workers, 1)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		mesher:   mesher,
		textures: textures,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued or the pool stops.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(job.Buffer)
			if result.Error != nil {
				p.log.Warn("mesh failed", "worker", id, "chunk", result.Coord, "err", result.Error)
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) run(buf *world.VoxelBuffer) MeshResult {
	if buf == nil {
		return MeshResult{Error: fmt.Errorf("mesh job without buffer")}
	}
	result := MeshResult{Coord: buf.Coord, Lod: buf.Lod}
	mesh, err := p.mesher.Mesh(buf, p.textures)
	if err != nil {
		result.Error = fmt.Errorf("mesh chunk %v: %w", buf.Coord, err)
		return result
	}
	result.Mesh = mesh
	return result
}

// Shutdown stops the workers. Queued jobs that have not started are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
