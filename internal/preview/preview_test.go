package preview

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/world"
)

func newGenerator() *world.Generator {
	return world.NewGenerator(world.NewTerrain(config.DefaultWorldGen()), config.SkirtAtLod2)
}

func TestFindSurfaceMatchesFullScan(t *testing.T) {
	gen := newGenerator()
	terrain := gen.Terrain()
	for _, c := range [][2]int{{0, 0}, {137, -412}, {-2048, 999}} {
		x, z := c[0], c[1]
		s := gen.Generate(world.ChunkOf(world.Coord{X: x, Z: z}), 1)
		got := FindSurface(s, x, z)

		want := world.WorldFloorY - 1
		for y := world.WorldCeilingY; y >= world.WorldFloorY-1; y-- {
			if terrain.VoxelAt(world.Coord{X: x, Y: y, Z: z}).IsSolid() {
				want = y
				break
			}
		}
		if got.Y != want {
			t.Errorf("column (%d,%d): surface at %d, full scan says %d", x, z, got.Y, want)
		}
		if !got.Voxel.IsSolid() {
			t.Errorf("column (%d,%d): surface voxel %v is not solid", x, z, got.Voxel)
		}
	}
}

func TestBuildScalesAndCaptions(t *testing.T) {
	gen := newGenerator()
	img, err := Build(context.Background(), gen, Options{
		Size:    8,
		Step:    64,
		Scale:   4,
		Caption: "seed 1234",
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("expected 32x32 image, got %v", b)
	}
	// bottom-right block is untouched by the caption and must be a 4x4 solid block
	c := img.RGBAAt(31, 31)
	for dx := 0; dx < 4; dx++ {
		for dy := 0; dy < 4; dy++ {
			if img.RGBAAt(28+dx, 28+dy) != c {
				t.Fatalf("nearest-neighbour block not uniform at (%d,%d)", 28+dx, 28+dy)
			}
		}
	}
	if c == voidColor {
		t.Errorf("expected a coloured pixel, got void")
	}
}

func TestBiomeModeUsesBiomePalette(t *testing.T) {
	gen := newGenerator()
	img, err := Render(context.Background(), gen, Options{Size: 4, Step: 256, Mode: ModeBiome})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	palette := make(map[[4]uint8]bool)
	for _, b := range world.Biomes() {
		c := BiomeColor(b)
		palette[[4]uint8{c.R, c.G, c.B, c.A}] = true
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := img.RGBAAt(x, y)
			if !palette[[4]uint8{c.R, c.G, c.B, c.A}] {
				t.Fatalf("pixel (%d,%d) = %v is not a biome colour", x, y, c)
			}
		}
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, newGenerator(), Options{Size: 4}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestWritePNG(t *testing.T) {
	img, err := Render(context.Background(), newGenerator(), Options{Size: 2, Step: 16})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(t.TempDir(), "maps", "preview.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("biome"); err != nil || m != ModeBiome {
		t.Errorf("ParseMode(biome) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeSurface {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("height"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
