package world

// Biome is derived from climate and height; it is never stored.
type Biome uint8

const (
	// Temperate
	BiomeGrassland Biome = iota
	BiomeForest
	BiomePineForest
	// Arid
	BiomeDesert
	BiomeSavanna
	BiomeScrubDesert
	// Polar
	BiomeTaiga
	BiomeTundra

	biomeCount
)

// Climate thresholds of the classifier.
const (
	hotThreshold   = 0.4
	coldThreshold  = -0.4
	dryThreshold   = -0.3
	humidThreshold = 0.2
	highlandHeight = 50.0
)

type biomeInfo struct {
	Name        string
	TopBlock    Material // surface voxel
	FillerBlock Material // the few voxels beneath the surface
}

var biomes = [biomeCount]biomeInfo{
	BiomeGrassland:   {Name: "grassland", TopBlock: MaterialGrass, FillerBlock: MaterialDirt},
	BiomeForest:      {Name: "forest", TopBlock: MaterialLeaves, FillerBlock: MaterialDirt},
	BiomePineForest:  {Name: "pine_forest", TopBlock: MaterialCoal, FillerBlock: MaterialDirt},
	BiomeDesert:      {Name: "desert", TopBlock: MaterialSand, FillerBlock: MaterialSand},
	BiomeSavanna:     {Name: "savanna", TopBlock: MaterialGold, FillerBlock: MaterialDirt},
	BiomeScrubDesert: {Name: "scrub_desert", TopBlock: MaterialPlatinum, FillerBlock: MaterialDirt},
	BiomeTaiga:       {Name: "taiga", TopBlock: MaterialWood, FillerBlock: MaterialSnow},
	BiomeTundra:      {Name: "tundra", TopBlock: MaterialSnow, FillerBlock: MaterialSnow},
}

// ClassifyBiome maps climate scalars and column height to a biome. It is total:
// every input, NaN included, lands in exactly one branch.
func ClassifyBiome(temperature, humidity, weirdness, heightOffset float64) Biome {
	switch {
	case temperature > hotThreshold:
		if humidity < dryThreshold {
			if heightOffset > highlandHeight {
				return BiomeDesert
			}
			return BiomeSavanna
		}
		return BiomeScrubDesert

	case temperature < coldThreshold:
		if humidity < dryThreshold {
			if heightOffset < highlandHeight {
				return BiomeTundra
			}
			return BiomeTaiga
		}
		if heightOffset < highlandHeight {
			return BiomeTaiga
		}
		return BiomePineForest

	default:
		if humidity < dryThreshold {
			if heightOffset < highlandHeight {
				return BiomeGrassland
			}
			return BiomeScrubDesert
		}
		if humidity > humidThreshold {
			if weirdness > 0 {
				return BiomePineForest
			}
			return BiomeForest
		}
		if weirdness > 0 {
			return BiomeForest
		}
		return BiomeGrassland
	}
}

// SurfaceMaterial is the material of the topmost solid voxel.
func (b Biome) SurfaceMaterial() Material {
	if b >= biomeCount {
		return MaterialStone
	}
	return biomes[b].TopBlock
}

// FillerMaterial is the material just beneath the surface.
func (b Biome) FillerMaterial() Material {
	if b >= biomeCount {
		return MaterialStone
	}
	return biomes[b].FillerBlock
}

func (b Biome) String() string {
	if b >= biomeCount {
		return "unknown"
	}
	return biomes[b].Name
}

// Biomes returns every biome in declaration order.
func Biomes() []Biome {
	out := make([]Biome, 0, biomeCount)
	for b := Biome(0); b < biomeCount; b++ {
		out = append(out, b)
	}
	return out
}
