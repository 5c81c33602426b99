package world

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertical chunk band that can hold anything other than uniform lava or air.
var (
	MinChunkY = floorDiv(WorldFloorY, ChunkSize)
	MaxChunkY = floorDiv(WorldCeilingY, ChunkSize)
)

// Request is one generation task: a chunk at a stride.
type Request struct {
	Coord ChunkCoord
	Lod   LodLevel
}

// Sink receives every buffer the streamer installs.
type Sink func(buf *VoxelBuffer)

// StreamerOptions configures a ChunkStreamer.
type StreamerOptions struct {
	Workers        int // 0 uses config.GetWorkers()
	QueueSize      int
	MaxPending     int
	MaxJobsPerCall int
	Sink           Sink
	Logger         *slog.Logger
}

// ChunkStreamer generates chunks around the camera on a pool of worker goroutines.
type ChunkStreamer struct {
	jobs       chan Request
	pending    map[Request]struct{}
	pendingMu  sync.Mutex
	maxPending int

	maxJobsPerCall int

	// Latest camera; finished tasks whose chunk left the area or changed LOD are dropped
	camera   mgl32.Vec3
	radius   int
	cameraMu sync.RWMutex

	workers   sync.WaitGroup
	inflight  sync.WaitGroup
	closeOnce sync.Once

	generated atomic.Int64
	discarded atomic.Int64

	// Dependencies
	store *ChunkStore
	gen   *Generator
	sink  Sink
	log   *slog.Logger
}

// NewChunkStreamer creates a new chunk streamer and starts its workers.
func NewChunkStreamer(store *ChunkStore, gen *Generator, opts StreamerOptions) *ChunkStreamer {
	if opts.Workers <= 0 {
		opts.Workers = config.GetWorkers()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 4096
	}
	if opts.MaxPending <= 0 {
		opts.MaxPending = 16384
	}
	if opts.MaxJobsPerCall <= 0 {
		opts.MaxJobsPerCall = 2048
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cs := &ChunkStreamer{
		jobs:           make(chan Request, opts.QueueSize),
		pending:        make(map[Request]struct{}),
		maxPending:     opts.MaxPending,
		maxJobsPerCall: opts.MaxJobsPerCall,
		radius:         config.GetSpawningDistance(),
		store:          store,
		gen:            gen,
		sink:           opts.Sink,
		log:            opts.Logger,
	}

	for i := 0; i < opts.Workers; i++ {
		cs.workers.Add(1)
		go cs.worker()
	}
	return cs
}

// Close stops the background generation workers after the queue drains.
// Update must not be called afterwards.
func (cs *ChunkStreamer) Close() {
	cs.closeOnce.Do(func() {
		close(cs.jobs)
		cs.workers.Wait()
	})
}

// Wait blocks until every queued task has finished.
func (cs *ChunkStreamer) Wait() {
	cs.inflight.Wait()
}

// Stats returns how many buffers were installed and how many finished tasks were dropped.
func (cs *ChunkStreamer) Stats() (generated, discarded int64) {
	return cs.generated.Load(), cs.discarded.Load()
}

func (cs *ChunkStreamer) worker() {
	defer cs.workers.Done()
	for req := range cs.jobs {
		cs.generate(req)
		cs.pendingMu.Lock()
		delete(cs.pending, req)
		cs.pendingMu.Unlock()
		cs.inflight.Done()
	}
}

// generate runs one task to completion and installs its result if it is still wanted.
func (cs *ChunkStreamer) generate(req Request) {
	buf := cs.gen.GenerateBuffer(req.Coord, req.Lod)
	if !cs.wanted(req) {
		cs.discarded.Add(1)
		cs.log.Debug("discarded chunk", "chunk", req.Coord, "lod", req.Lod)
		return
	}
	cs.install(buf)
}

func (cs *ChunkStreamer) install(buf *VoxelBuffer) {
	if !cs.store.AddChunk(buf) {
		return
	}
	cs.generated.Add(1)
	if cs.sink != nil {
		cs.sink(buf)
	}
}

// wanted reports whether req still matches the current area of interest.
func (cs *ChunkStreamer) wanted(req Request) bool {
	cs.cameraMu.RLock()
	camera, radius := cs.camera, cs.radius
	cs.cameraMu.RUnlock()
	if ChunkDistance(req.Coord, camera) > float32(radius) {
		return false
	}
	return LodFor(req.Coord, camera) == req.Lod
}

func (cs *ChunkStreamer) setCamera(camera mgl32.Vec3, radius int) {
	cs.cameraMu.Lock()
	cs.camera = camera
	cs.radius = radius
	cs.cameraMu.Unlock()
}

func cameraCoord(camera mgl32.Vec3) ChunkCoord {
	c := CameraChunk(camera)
	return ChunkCoord{X: int(c.X()), Y: int(c.Y()), Z: int(c.Z())}
}

// StreamChunksAroundSync generates every chunk within radius on the calling goroutine.
func (cs *ChunkStreamer) StreamChunksAroundSync(camera mgl32.Vec3, radius int) {
	defer profiling.Track("world.StreamChunksAroundSync")()
	cs.setCamera(camera, radius)
	center := cameraCoord(camera)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			cs.forColumn(center, camera, radius, center.X+dx, center.Z+dz, func(req Request) bool {
				cs.install(cs.gen.GenerateBuffer(req.Coord, req.Lod))
				return true
			})
		}
	}
}

// Update queues every missing or stale chunk within the spawning distance, nearest
// rings first. It returns the number of queued tasks. Enumeration stops early when
// ctx is done; tasks already queued still run.
func (cs *ChunkStreamer) Update(ctx context.Context, camera mgl32.Vec3) int {
	defer profiling.Track("world.Update")()
	radius := config.GetSpawningDistance()
	cs.setCamera(camera, radius)
	center := cameraCoord(camera)

	jobsPushed := 0
	enqueue := func(req Request) bool {
		if ctx.Err() != nil {
			return false
		}
		if cs.requestChunkLimited(req) {
			jobsPushed++
		}
		return jobsPushed < cs.maxJobsPerCall
	}

	for r := 0; r <= radius; r++ {
		if r == 0 {
			if !cs.forColumn(center, camera, radius, center.X, center.Z, enqueue) {
				break
			}
			continue
		}

		x0, x1 := center.X-r, center.X+r
		z0, z1 := center.Z-r, center.Z+r

		for xk := x0; xk <= x1; xk++ {
			if !cs.forColumn(center, camera, radius, xk, z0, enqueue) {
				return jobsPushed
			}
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			if !cs.forColumn(center, camera, radius, x1, zk, enqueue) {
				return jobsPushed
			}
		}
		for xk := x1; xk >= x0; xk-- {
			if !cs.forColumn(center, camera, radius, xk, z1, enqueue) {
				return jobsPushed
			}
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			if !cs.forColumn(center, camera, radius, x0, zk, enqueue) {
				return jobsPushed
			}
		}
	}
	if jobsPushed > 0 {
		cs.log.Debug("queued chunks", "count", jobsPushed, "center", center, "radius", radius)
	}
	return jobsPushed
}

// forColumn visits the chunks of one (x,z) chunk column that lie within radius and
// are missing or at the wrong LOD. It stops early when fn returns false.
func (cs *ChunkStreamer) forColumn(center ChunkCoord, camera mgl32.Vec3, radius, chunkX, chunkZ int, fn func(Request) bool) bool {
	lo := max(center.Y-radius, MinChunkY)
	hi := min(center.Y+radius, MaxChunkY)
	for cy := lo; cy <= hi; cy++ {
		coord := ChunkCoord{X: chunkX, Y: cy, Z: chunkZ}
		if ChunkDistance(coord, camera) > float32(radius) {
			continue
		}
		lod := LodFor(coord, camera)
		if cs.store.HasChunkAt(coord, lod) {
			continue
		}
		if !fn(Request{Coord: coord, Lod: lod}) {
			return false
		}
	}
	return true
}

// requestChunkLimited respects pending cap and returns true if enqueued.
func (cs *ChunkStreamer) requestChunkLimited(req Request) bool {
	// pending check + cap
	cs.pendingMu.Lock()
	if _, ok := cs.pending[req]; ok {
		cs.pendingMu.Unlock()
		return false
	}
	if cs.maxPending > 0 && len(cs.pending) >= cs.maxPending {
		cs.pendingMu.Unlock()
		return false
	}
	cs.pending[req] = struct{}{}
	cs.pendingMu.Unlock()

	cs.inflight.Add(1)
	select {
	case cs.jobs <- req:
		return true
	default:
		// queue full: rollback
		cs.inflight.Done()
		cs.pendingMu.Lock()
		delete(cs.pending, req)
		cs.pendingMu.Unlock()
		return false
	}
}

// EvictFarChunks removes chunks outside the eviction radius around the camera.
func (cs *ChunkStreamer) EvictFarChunks(camera mgl32.Vec3) int {
	removed := cs.store.EvictFarChunks(cameraCoord(camera), config.GetChunkEvictRadius())
	if removed > 0 {
		cs.log.Debug("evicted chunks", "count", removed)
	}
	return removed
}
