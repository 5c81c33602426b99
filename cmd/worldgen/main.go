package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/export"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/probe"
	"voxel-terrain/internal/preview"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

type options struct {
	configSrc    string
	cacheDir     string
	writeDefault string

	camera  mgl32.Vec3
	ground  bool
	radius  int
	workers int
	skirt   string
	mesh    bool

	previewPath  string
	previewSize  int
	previewStep  int
	previewScale int
	previewMode  string

	exportPath string
	verbose    bool
}

func parseFlags() options {
	var o options
	var x, y, z float64
	flag.StringVar(&o.configSrc, "config", "", "world config: local path or go-getter URL (defaults when empty)")
	flag.StringVar(&o.cacheDir, "cache-dir", filepath.Join(os.TempDir(), "worldgen"), "download dir for remote configs")
	flag.StringVar(&o.writeDefault, "write-default", "", "write the default world config to this path and exit")
	flag.Float64Var(&x, "x", 0, "camera x")
	flag.Float64Var(&y, "y", 0, "camera y")
	flag.Float64Var(&z, "z", 0, "camera z")
	flag.BoolVar(&o.ground, "ground", false, "drop the camera onto the terrain surface at x,z")
	flag.IntVar(&o.radius, "radius", 4, "spawning distance in chunks")
	flag.IntVar(&o.workers, "workers", 0, "generation workers (0 = NumCPU)")
	flag.StringVar(&o.skirt, "skirt", "lod2", "padding policy: lod2 or none")
	flag.BoolVar(&o.mesh, "mesh", false, "mesh generated chunks and report face counts")
	flag.StringVar(&o.previewPath, "preview", "", "write a top-down PNG map to this path")
	flag.IntVar(&o.previewSize, "preview-size", 256, "preview columns per side")
	flag.IntVar(&o.previewStep, "preview-step", 4, "blocks between preview columns")
	flag.IntVar(&o.previewScale, "preview-scale", 2, "output pixels per preview column")
	flag.StringVar(&o.previewMode, "preview-mode", "surface", "preview colouring: surface or biome")
	flag.StringVar(&o.exportPath, "export", "", "write generated chunks as a zstd region to this path")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	o.camera = mgl32.Vec3{float32(x), float32(y), float32(z)}
	return o
}

func main() {
	opts := parseFlags()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	closer.Checked(func() error {
		if err := run(ctx, log, opts); err != nil {
			log.Error("worldgen failed", "error", err)
			return err
		}
		return nil
	}, false)
	closer.Close()
}

func run(ctx context.Context, log *slog.Logger, opts options) error {
	if opts.writeDefault != "" {
		if err := config.WriteDefault(opts.writeDefault); err != nil {
			return err
		}
		log.Info("wrote default config", "path", opts.writeDefault)
		return nil
	}

	cfg := config.DefaultWorldGen()
	if opts.configSrc != "" {
		var err error
		if cfg, err = config.LoadSource(ctx, opts.configSrc, opts.cacheDir); err != nil {
			return err
		}
		log.Info("loaded config", "source", opts.configSrc)
	}

	switch opts.skirt {
	case "lod2":
		config.SetSkirtMode(config.SkirtAtLod2)
	case "none":
		config.SetSkirtMode(config.SkirtNone)
	default:
		return fmt.Errorf("unknown skirt mode %q", opts.skirt)
	}
	mode, err := preview.ParseMode(opts.previewMode)
	if err != nil {
		return err
	}
	config.SetSpawningDistance(opts.radius)
	config.SetWorkers(opts.workers)

	terrain := world.NewTerrain(cfg)
	gen := world.NewGenerator(terrain, config.GetSkirtMode())
	store := world.NewChunkStore()

	if opts.ground {
		top := mgl32.Vec3{opts.camera.X(), float32(world.WorldCeilingY) + 1, opts.camera.Z()}
		hit := probe.GroundBelow(top, terrain)
		opts.camera[1] = float32(hit.HitPosition.Y) + 2
		log.Info("camera on ground", "y", opts.camera.Y(), "surface", hit.Voxel)
	}

	var sink world.Sink
	var meshed sync.WaitGroup
	var quads atomic.Int64
	if opts.mesh {
		pool := meshing.NewWorkerPool(ctx, meshing.CulledMesher{}, world.TextureIndices, config.GetWorkers(), 256, log)
		closer.Bind(pool.Shutdown)
		results := make(chan meshing.MeshResult, 256)
		go func() {
			for r := range results {
				if r.Error == nil {
					quads.Add(int64(r.Mesh.Quads()))
				}
				meshed.Done()
			}
		}()
		sink = func(buf *world.VoxelBuffer) {
			meshed.Add(1)
			if !pool.SubmitJobBlocking(meshing.MeshJob{Buffer: buf, ResultChan: results}) {
				meshed.Done()
			}
		}
	}

	streamer := world.NewChunkStreamer(store, gen, world.StreamerOptions{Sink: sink, Logger: log})
	closer.Bind(streamer.Close)

	start := time.Now()
	queued := streamer.Update(ctx, opts.camera)
	streamer.Wait()
	generated, discarded := streamer.Stats()
	log.Info("streamed chunks",
		"queued", queued,
		"generated", generated,
		"discarded", discarded,
		"stored", store.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if opts.mesh {
		meshed.Wait()
		log.Info("meshed chunks", "quads", quads.Load())
	}

	if opts.previewPath != "" {
		img, err := preview.Build(ctx, gen, preview.Options{
			CenterX: int(opts.camera.X()),
			CenterZ: int(opts.camera.Z()),
			Size:    opts.previewSize,
			Step:    opts.previewStep,
			Scale:   opts.previewScale,
			Mode:    mode,
			Caption: fmt.Sprintf("seed %d  x %d  z %d", cfg.Continents.Seed, int(opts.camera.X()), int(opts.camera.Z())),
			Workers: config.GetWorkers(),
		})
		if err != nil {
			return err
		}
		if err := preview.WritePNG(opts.previewPath, img); err != nil {
			return err
		}
		log.Info("wrote preview", "path", opts.previewPath, "size", img.Bounds().Dx())
	}

	if opts.exportPath != "" {
		chunks := store.GetAllChunks()
		bufs := make([]*world.VoxelBuffer, 0, len(chunks))
		for _, c := range chunks {
			bufs = append(bufs, c.Buffer)
		}
		region := export.NewRegion(cfg, bufs)
		if err := export.WriteRegion(opts.exportPath, region); err != nil {
			return err
		}
		log.Info("wrote region", "path", opts.exportPath, "id", region.Header.ID, "chunks", region.Header.Chunks)
	}

	if opts.ground {
		look := probe.Raycast(opts.camera, mgl32.Vec3{1, -1, 0}, 0.5, 64, probe.StoreSource{Store: store, Terrain: terrain})
		if look.Hit {
			log.Debug("view ray", "hit", look.HitPosition, "voxel", look.Voxel, "distance", look.Distance)
		}
	}

	log.Info("profile", "top", profiling.TopN(8))
	return nil
}
