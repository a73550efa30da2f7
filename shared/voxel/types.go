package voxel

// ID identifica o material de um voxel.
type ID uint16

// Nível fixo da água no mundo (coordenada Y inclusiva).
const WaterLevel = 55

// Materiais registrados. A tabela Registry abaixo segue a mesma ordem.
const (
	Air ID = iota
	Stone
	Dirt
	Grass
	Cobblestone
	Wood
	Leaves
	Sand
	Water
	Glass
	Iron
	Count
)

// Info descreve as propriedades imutáveis de um material.
type Info struct {
	Name        string
	Solid       bool
	Transparent bool

	// Índices de camada de textura por face (topo, base, laterais).
	TextureTop    float32
	TextureBottom float32
	TextureSides  float32

	// Cor base do material (RGBA), usada como fallback de textura
	// e para o flat shading por vértice.
	Color [4]uint8
}

// Registry é a tabela imutável de materiais, inicializada uma única vez
// no carregamento do processo. Nunca deve ser mutada em runtime.
var Registry = [Count]Info{
	Air:         {Name: "Air", Solid: false, Transparent: true, TextureTop: 0, TextureBottom: 0, TextureSides: 0, Color: [4]uint8{0, 0, 0, 0}},
	Stone:       {Name: "Stone", Solid: true, Transparent: false, TextureTop: 1, TextureBottom: 1, TextureSides: 1, Color: [4]uint8{130, 130, 130, 255}},
	Dirt:        {Name: "Dirt", Solid: true, Transparent: false, TextureTop: 2, TextureBottom: 2, TextureSides: 2, Color: [4]uint8{134, 96, 67, 255}},
	Grass:       {Name: "Grass", Solid: true, Transparent: false, TextureTop: 3, TextureBottom: 2, TextureSides: 4, Color: [4]uint8{96, 160, 66, 255}},
	Cobblestone: {Name: "Cobblestone", Solid: true, Transparent: false, TextureTop: 5, TextureBottom: 5, TextureSides: 5, Color: [4]uint8{110, 110, 110, 255}},
	Wood:        {Name: "Wood", Solid: true, Transparent: false, TextureTop: 6, TextureBottom: 6, TextureSides: 7, Color: [4]uint8{104, 80, 50, 255}},
	Leaves:      {Name: "Leaves", Solid: true, Transparent: true, TextureTop: 8, TextureBottom: 8, TextureSides: 8, Color: [4]uint8{56, 112, 40, 255}},
	Sand:        {Name: "Sand", Solid: true, Transparent: false, TextureTop: 9, TextureBottom: 9, TextureSides: 9, Color: [4]uint8{219, 207, 163, 255}},
	Water:       {Name: "Water", Solid: false, Transparent: true, TextureTop: 10, TextureBottom: 10, TextureSides: 10, Color: [4]uint8{52, 108, 202, 160}},
	Glass:       {Name: "Glass", Solid: true, Transparent: true, TextureTop: 42, TextureBottom: 42, TextureSides: 42, Color: [4]uint8{200, 225, 235, 90}},
	Iron:        {Name: "Iron", Solid: true, Transparent: false, TextureTop: 43, TextureBottom: 43, TextureSides: 43, Color: [4]uint8{216, 216, 216, 255}},
}

// IsSolid indica se o material bloqueia fisicamente o espaço.
func IsSolid(id ID) bool {
	return id < Count && Registry[id].Solid
}

// IsTransparent indica se é possível ver através do material.
// IDs fora da tabela são tratados como transparentes (ar).
func IsTransparent(id ID) bool {
	return id >= Count || Registry[id].Transparent
}

// Name retorna o nome do material, ou "Unknown" para IDs inválidos.
func Name(id ID) string {
	if id < Count {
		return Registry[id].Name
	}
	return "Unknown"
}

// TextureLayer retorna o índice de camada de textura do material para a
// face apontada pela direção (topo, base ou laterais).
func TextureLayer(id ID, top, bottom bool) float32 {
	if id >= Count {
		return 0
	}
	info := &Registry[id]
	switch {
	case top:
		return info.TextureTop
	case bottom:
		return info.TextureBottom
	default:
		return info.TextureSides
	}
}
