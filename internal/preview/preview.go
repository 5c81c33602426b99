package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

// Mode selects what a preview pixel shows.
type Mode int

const (
	// ModeSurface colours each column by its topmost solid material, shaded by height.
	ModeSurface Mode = iota
	// ModeBiome colours each column by its biome.
	ModeBiome
)

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "surface", "":
		return ModeSurface, nil
	case "biome":
		return ModeBiome, nil
	}
	return 0, fmt.Errorf("unknown preview mode %q", s)
}

// Options describes the area and output of a preview.
type Options struct {
	CenterX, CenterZ int
	Size             int // columns per side
	Step             int // blocks between sampled columns
	Scale            int // output pixels per sampled column
	Mode             Mode
	Caption          string
	Workers          int
}

func (o Options) withDefaults() Options {
	o.Size = max(o.Size, 1)
	o.Step = max(o.Step, 1)
	o.Scale = max(o.Scale, 1)
	o.Workers = max(o.Workers, 1)
	return o
}

var materialColors = map[world.Material]color.RGBA{
	world.MaterialGrass:      {95, 159, 53, 255},
	world.MaterialDirt:       {134, 96, 67, 255},
	world.MaterialStone:      {125, 125, 125, 255},
	world.MaterialWater:      {44, 92, 200, 255},
	world.MaterialMarble:     {230, 228, 220, 255},
	world.MaterialSand:       {219, 207, 163, 255},
	world.MaterialSnow:       {245, 250, 255, 255},
	world.MaterialIce:        {160, 200, 255, 255},
	world.MaterialWood:       {102, 81, 51, 255},
	world.MaterialLeaves:     {60, 120, 40, 255},
	world.MaterialClay:       {160, 166, 179, 255},
	world.MaterialIron:       {216, 175, 147, 255},
	world.MaterialGold:       {252, 238, 75, 255},
	world.MaterialCoal:       {40, 40, 40, 255},
	world.MaterialCopper:     {184, 115, 51, 255},
	world.MaterialTin:        {211, 212, 213, 255},
	world.MaterialSilver:     {192, 192, 192, 255},
	world.MaterialPlatinum:   {229, 228, 226, 255},
	world.MaterialLava:       {207, 68, 8, 255},
	world.MaterialAdamantine: {110, 30, 140, 255},
}

var biomeColors = map[world.Biome]color.RGBA{
	world.BiomeGrassland:   {141, 179, 96, 255},
	world.BiomeForest:      {5, 102, 33, 255},
	world.BiomePineForest:  {49, 85, 74, 255},
	world.BiomeDesert:      {250, 148, 24, 255},
	world.BiomeSavanna:     {189, 178, 95, 255},
	world.BiomeScrubDesert: {210, 180, 120, 255},
	world.BiomeTaiga:       {11, 102, 89, 255},
	world.BiomeTundra:      {220, 230, 240, 255},
}

var voidColor = color.RGBA{0, 0, 0, 255}

// MaterialColor returns the map colour of m.
func MaterialColor(m world.Material) color.RGBA {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return voidColor
}

// BiomeColor returns the map colour of b.
func BiomeColor(b world.Biome) color.RGBA {
	if c, ok := biomeColors[b]; ok {
		return c
	}
	return voidColor
}

// Surface is the topmost solid voxel of one column.
type Surface struct {
	Y     int
	Voxel world.Voxel
	Biome world.Biome
}

// FindSurface scans the column at (x,z) downward and returns its first solid voxel.
// Scanning starts where the height gradient guarantees air, since the base density
// noise stays within [-2, 2], but never below the sea fill line.
func FindSurface(s *world.Sampler, x, z int) Surface {
	col := s.Cache().Get(x, z)
	top := world.WorldCeilingY
	if col.Squash > 0 {
		bound := col.HeightOffset + 2/col.Squash
		if bound < float64(top) {
			top = max(int(math.Ceil(bound)), world.SeaFillY)
		}
	}
	for y := top; y >= world.WorldFloorY-1; y-- {
		v := s.Sample(world.Coord{X: x, Y: y, Z: z})
		if v.IsSolid() {
			return Surface{Y: y, Voxel: v, Biome: col.Biome()}
		}
	}
	return Surface{Y: world.WorldFloorY - 1, Voxel: world.Solid(world.MaterialLava), Biome: col.Biome()}
}

// Render builds the unscaled map, one pixel per sampled column. Rows are split
// across workers, each with its own sampler.
func Render(ctx context.Context, gen *world.Generator, opts Options) (*image.RGBA, error) {
	defer profiling.Track("preview.Render")()
	opts = opts.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	half := opts.Size / 2

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for row := 0; row < opts.Size; row++ {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			z := opts.CenterZ + (row-half)*opts.Step
			s := gen.Generate(world.ChunkOf(world.Coord{X: opts.CenterX, Z: z}), 1)
			for px := 0; px < opts.Size; px++ {
				x := opts.CenterX + (px-half)*opts.Step
				img.SetRGBA(px, row, pixel(FindSurface(s, x, z), opts.Mode))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

func pixel(surf Surface, mode Mode) color.RGBA {
	if mode == ModeBiome {
		return BiomeColor(surf.Biome)
	}
	c := MaterialColor(surf.Voxel.Material)
	if surf.Voxel.Is(world.MaterialWater) {
		return c
	}
	// brighten peaks, darken valleys
	f := 0.75 + 0.5*float64(surf.Y+128)/384
	f = math.Max(0.5, math.Min(1.25, f))
	return color.RGBA{shade(c.R, f), shade(c.G, f), shade(c.B, f), 255}
}

func shade(v uint8, f float64) uint8 {
	return uint8(math.Min(255, float64(v)*f))
}

// Scale enlarges img by factor with nearest-neighbour sampling.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Caption draws text in the top-left corner of img.
func Caption(img *image.RGBA, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	bg := image.Rect(0, 0, width+8, face.Height+6).Intersect(img.Bounds())
	draw.Draw(img, bg, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(4, face.Ascent+3),
	}
	d.DrawString(text)
}

// Build renders, scales and captions a preview.
func Build(ctx context.Context, gen *world.Generator, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	img, err := Render(ctx, gen, opts)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	if opts.Scale > 1 {
		img = Scale(img, opts.Scale)
	}
	Caption(img, opts.Caption)
	return img, nil
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return f.Close()
}
