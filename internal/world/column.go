package world

// Horizontal sampling scales of the 2-D channels.
const (
	continentScale   = 0.00025
	erosionScale     = 0.0025
	peaksValleyScale = 0.01
	climateScale     = 0.0006667
	weirdnessScale   = 0.00033

	squashFallback = 0.3
)

// ColumnKey identifies one (x,z) column.
type ColumnKey struct {
	X, Z int
}

// ColumnStats are the per-column scalars shared by every y in the column.
type ColumnStats struct {
	HeightOffset float64
	Squash       float64
	Temperature  float64
	Humidity     float64
	Weirdness    float64
}

// Biome classifies the column.
func (s ColumnStats) Biome() Biome {
	return ClassifyBiome(s.Temperature, s.Humidity, s.Weirdness, s.HeightOffset)
}

// ColumnAt computes the stats of column (x,z) without caching.
func (t *Terrain) ColumnAt(x, z int) ColumnStats {
	fx, fz := float64(x), float64(z)

	height := t.continentSpline.SampleOr(t.continents.Sample2D(fx*continentScale, fz*continentScale), 0)
	height += t.erosionSpline.SampleOr(t.erosion.Sample2D(fx*erosionScale, fz*erosionScale), 0)

	// squash reuses the peaks-valleys sample rather than drawing a new one
	pv := t.peaksValleys.Sample2D(fx*peaksValleyScale, fz*peaksValleyScale)
	height += t.pvSpline.SampleOr(pv, 0)

	return ColumnStats{
		HeightOffset: height,
		Squash:       t.squashSpline.SampleOr(pv, squashFallback),
		Temperature:  t.temperature.Sample2D(fx*climateScale, fz*climateScale),
		Humidity:     t.humidity.Sample2D(fx*climateScale, fz*climateScale),
		Weirdness:    t.weirdness.Sample2D(fx*weirdnessScale, fz*weirdnessScale),
	}
}

// ColumnCache memoises ColumnStats for one generation call. Not safe for concurrent use.
type ColumnCache struct {
	terrain *Terrain
	entries map[ColumnKey]ColumnStats
	hits    int
	misses  int
}

// NewColumnCache creates an empty cache sized for one chunk footprint.
func NewColumnCache(t *Terrain, sizeHint int) *ColumnCache {
	return &ColumnCache{
		terrain: t,
		entries: make(map[ColumnKey]ColumnStats, sizeHint),
	}
}

// Get returns the stats of column (x,z), computing them on first use.
func (c *ColumnCache) Get(x, z int) ColumnStats {
	key := ColumnKey{X: x, Z: z}
	if s, ok := c.entries[key]; ok {
		c.hits++
		return s
	}
	c.misses++
	s := c.terrain.ColumnAt(x, z)
	c.entries[key] = s
	return s
}

// Len returns the number of cached columns.
func (c *ColumnCache) Len() int { return len(c.entries) }

// Stats returns cache hit and miss counts.
func (c *ColumnCache) Stats() (hits, misses int) { return c.hits, c.misses }
