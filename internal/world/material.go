package world

// Material identifies the substance of a solid voxel.
type Material uint8

const (
	MaterialGrass Material = iota
	MaterialDirt
	MaterialStone
	MaterialWater
	MaterialMarble
	MaterialSand
	MaterialSnow
	MaterialIce
	MaterialWood
	MaterialLeaves
	MaterialClay
	MaterialIron
	MaterialGold
	MaterialCoal
	MaterialCopper
	MaterialTin
	MaterialSilver
	MaterialPlatinum
	MaterialLava
	MaterialAdamantine

	materialCount
)

// AtlasLayers is the number of layers in the voxel texture atlas.
const AtlasLayers = 21

// AtlasPath is the atlas image the texture indices refer to.
const AtlasPath = "textures/voxel_atlas.png"

var materialNames = [materialCount]string{
	"grass", "dirt", "stone", "water", "marble", "sand", "snow", "ice", "wood", "leaves",
	"clay", "iron", "gold", "coal", "copper", "tin", "silver", "platinum", "lava", "adamantine",
}

// Texture layers per material: top, side, bottom
var textureIndices = [materialCount][3]uint32{
	MaterialGrass:      {0, 1, 2},
	MaterialDirt:       {2, 2, 2},
	MaterialStone:      {3, 3, 3},
	MaterialWater:      {4, 4, 4},
	MaterialMarble:     {5, 5, 5},
	MaterialSand:       {6, 6, 6},
	MaterialSnow:       {7, 7, 7},
	MaterialIce:        {8, 8, 8},
	MaterialWood:       {9, 9, 9},
	MaterialLeaves:     {10, 10, 10},
	MaterialClay:       {11, 11, 11},
	MaterialIron:       {12, 12, 12},
	MaterialGold:       {13, 13, 13},
	MaterialCoal:       {14, 14, 14},
	MaterialCopper:     {15, 15, 15},
	MaterialTin:        {16, 16, 16},
	MaterialSilver:     {17, 17, 17},
	MaterialPlatinum:   {18, 18, 18},
	MaterialLava:       {19, 19, 19},
	MaterialAdamantine: {20, 20, 20},
}

// TextureMapper maps a material to its top/side/bottom atlas layers.
type TextureMapper func(Material) [3]uint32

// TextureIndices returns the top/side/bottom atlas layers of m.
func TextureIndices(m Material) [3]uint32 {
	if m >= materialCount {
		return textureIndices[MaterialStone]
	}
	return textureIndices[m]
}

// String returns the lowercase material name.
func (m Material) String() string {
	if m >= materialCount {
		return "unknown"
	}
	return materialNames[m]
}

// Materials returns every material in declaration order.
func Materials() []Material {
	out := make([]Material, 0, materialCount)
	for m := Material(0); m < materialCount; m++ {
		out = append(out, m)
	}
	return out
}
