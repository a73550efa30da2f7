package world

import (
	"sync"
	"sync/atomic"

	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
	"TerraVision/shared/worldgen"
)

// Altura padrão usada quando o chunk é gerado sem modelo de terreno
// (testes e ferramentas).
const defaultFlatHeight = 64

const extSize = util.ChunkSize + 2

// Chunk é uma coluna de 16x64x16 voxels do mundo.
//
// Modelo de concorrência: a geração e as edições de voxel acontecem na
// thread principal (escritor único); os workers de meshing apenas leem.
// As flags e a versão são atômicas para que leitores em outras threads
// vejam estado consistente sem lock no caminho quente de amostragem.
type Chunk struct {
	coord util.ChunkCoord

	// Armazenamento denso, indexado por x*ChunkHeight*ChunkSize + y*ChunkSize + z.
	voxels []voxel.ID

	// Cache de altura do terreno estendido uma célula para cada lado
	// em X/Z, para prever voxels de vizinhos ainda não carregados.
	// Indexado por (x+1)*extSize + (z+1), com x,z em [-1, ChunkSize].
	extHeights []int32

	// version cresce a cada mutação visível (geração concluída, edição).
	// Um mesh construído para a versão N só é aceito se a versão ainda
	// for N na hora do upload.
	version   atomic.Uint64
	generated atomic.Bool
	meshDirty atomic.Bool
	meshing   atomic.Bool

	neighborMu sync.RWMutex
	neighbors  [util.DirCount]*Chunk
}

// NewChunk cria um chunk vazio (não gerado) na coordenada dada.
func NewChunk(coord util.ChunkCoord) *Chunk {
	return &Chunk{
		coord:      coord,
		voxels:     make([]voxel.ID, util.ChunkVolume),
		extHeights: make([]int32, extSize*extSize),
	}
}

// Coord retorna a coordenada do chunk na grade.
func (c *Chunk) Coord() util.ChunkCoord {
	return c.coord
}

// Version retorna a versão atual do conteúdo do chunk.
func (c *Chunk) Version() uint64 {
	return c.version.Load()
}

// Generated indica se o chunk já foi preenchido pelo gerador.
func (c *Chunk) Generated() bool {
	return c.generated.Load()
}

// MeshDirty indica se o mesh do chunk está desatualizado.
func (c *Chunk) MeshDirty() bool {
	return c.meshDirty.Load()
}

// MarkDirty marca o mesh do chunk como desatualizado.
func (c *Chunk) MarkDirty() {
	c.meshDirty.Store(true)
}

// Meshing indica se há um build de mesh em andamento para o chunk.
func (c *Chunk) Meshing() bool {
	return c.meshing.Load()
}

// TryBeginMeshing marca o início de um build de mesh. Retorna false se
// já houver um build em andamento.
func (c *Chunk) TryBeginMeshing() bool {
	return c.meshing.CompareAndSwap(false, true)
}

// EndMeshing marca o fim de um build de mesh (sucesso ou falha).
func (c *Chunk) EndMeshing() {
	c.meshing.Store(false)
}

// MarkMeshBuilt limpa a flag de mesh sujo, mas somente se o chunk não
// mudou desde a versão para a qual o mesh foi construído. Retorna true
// se o mesh construído ainda é válido.
func (c *Chunk) MarkMeshBuilt(builtVersion uint64) bool {
	if c.version.Load() != builtVersion {
		return false
	}
	c.meshDirty.Store(false)
	return true
}

// Neighbor retorna o vizinho na direção dada, ou nil.
func (c *Chunk) Neighbor(dir util.Direction) *Chunk {
	c.neighborMu.RLock()
	defer c.neighborMu.RUnlock()
	return c.neighbors[dir]
}

// setNeighbor instala (ou remove, com nil) o vizinho na direção dada.
// Apenas o World chama; ele mantém os dois lados do link em sincronia.
func (c *Chunk) setNeighbor(dir util.Direction, other *Chunk) {
	c.neighborMu.Lock()
	c.neighbors[dir] = other
	c.neighborMu.Unlock()
}

func voxelIndex(x, y, z int32) int32 {
	return x*util.ChunkHeight*util.ChunkSize + y*util.ChunkSize + z
}

func inBounds(x, y, z int32) bool {
	return x >= 0 && x < util.ChunkSize &&
		y >= 0 && y < util.ChunkHeight &&
		z >= 0 && z < util.ChunkSize
}

// classifyVoxel decide o material de um voxel dado seu Y de mundo e a
// altura do terreno na coluna: pedra no subsolo, terra logo abaixo da
// superfície, grama no topo, água até o nível fixo, ar acima.
func classifyVoxel(worldY, height int32) voxel.ID {
	switch {
	case worldY < height-3:
		return voxel.Stone
	case worldY < height-1:
		return voxel.Dirt
	case worldY < height:
		return voxel.Grass
	case worldY <= voxel.WaterLevel:
		return voxel.Water
	default:
		return voxel.Air
	}
}

// Generate preenche o chunk a partir do modelo de terreno. Idempotente:
// a segunda chamada é um no-op e a versão avança exatamente uma vez.
// Com terrain nil o chunk é preenchido com altura plana (para testes).
func (c *Chunk) Generate(terrain *worldgen.Terrain) {
	if !c.generated.CompareAndSwap(false, true) {
		return
	}

	origin := c.coord.WorldOrigin()

	// Cache estendido: uma célula além da borda em X/Z para que o mesher
	// possa prever colunas de chunks vizinhos ausentes.
	for x := int32(-1); x <= util.ChunkSize; x++ {
		for z := int32(-1); z <= util.ChunkSize; z++ {
			h := int32(defaultFlatHeight)
			if terrain != nil {
				h = terrain.HeightAt(origin.X+x, origin.Z+z)
			}
			c.extHeights[(x+1)*extSize+(z+1)] = h
		}
	}

	for x := int32(0); x < util.ChunkSize; x++ {
		for z := int32(0); z < util.ChunkSize; z++ {
			h := c.extHeights[(x+1)*extSize+(z+1)]
			for y := int32(0); y < util.ChunkHeight; y++ {
				c.voxels[voxelIndex(x, y, z)] = classifyVoxel(origin.Y+y, h)
			}
		}
	}

	c.version.Add(1)
	c.meshDirty.Store(true)
}

// HeightAt retorna a altura de terreno cacheada para a coluna local
// (x, z), aceitando uma célula além da borda em cada direção.
func (c *Chunk) HeightAt(x, z int32) int32 {
	return c.extHeights[(x+1)*extSize+(z+1)]
}

// GetVoxel retorna o voxel na posição local. Fora dos limites retorna ar.
func (c *Chunk) GetVoxel(x, y, z int32) voxel.ID {
	if !inBounds(x, y, z) {
		return voxel.Air
	}
	return c.voxels[voxelIndex(x, y, z)]
}

// SetVoxel grava o voxel na posição local, avança a versão e marca o
// mesh como sujo. Se a posição toca uma borda, os vizinhos afetados
// também são marcados, já que a visibilidade das faces deles muda.
// Retorna false para posições fora dos limites.
func (c *Chunk) SetVoxel(x, y, z int32, id voxel.ID) bool {
	if !inBounds(x, y, z) {
		return false
	}
	idx := voxelIndex(x, y, z)
	if c.voxels[idx] == id {
		return true
	}
	c.voxels[idx] = id
	c.version.Add(1)
	c.meshDirty.Store(true)

	c.markNeighborDirty(x == 0, util.DirLeft)
	c.markNeighborDirty(x == util.ChunkSize-1, util.DirRight)
	c.markNeighborDirty(y == 0, util.DirBottom)
	c.markNeighborDirty(y == util.ChunkHeight-1, util.DirTop)
	c.markNeighborDirty(z == 0, util.DirBack)
	c.markNeighborDirty(z == util.ChunkSize-1, util.DirFront)
	return true
}

func (c *Chunk) markNeighborDirty(onEdge bool, dir util.Direction) {
	if !onEdge {
		return
	}
	if n := c.Neighbor(dir); n != nil {
		n.MarkDirty()
	}
}

// GetVoxelWithNeighbors amostra um voxel em coordenadas locais que podem
// escapar dos limites do chunk. Para posições até uma célula fora, a
// consulta é delegada ao vizinho gerado; sem vizinho, o voxel esperado é
// previsto pelo cache de altura estendido, de modo que chunks de borda
// não exibam paredes falsas enquanto os vizinhos carregam. Posições a
// mais de uma célula retornam pedra (tratadas como interior oculto).
func (c *Chunk) GetVoxelWithNeighbors(x, y, z int32) voxel.ID {
	if inBounds(x, y, z) {
		return c.voxels[voxelIndex(x, y, z)]
	}

	if x < -1 || x > util.ChunkSize || y < -1 || y > util.ChunkHeight || z < -1 || z > util.ChunkSize {
		return voxel.Stone
	}

	dir, nx, ny, nz, ok := neighborLookup(x, y, z)
	if ok {
		if n := c.Neighbor(dir); n != nil && n.Generated() {
			return n.GetVoxel(nx, ny, nz)
		}
	}

	// Vizinho ausente: prevê pelo cache de altura. Para além do teto ou
	// do chão do mundo a coluna continua com a mesma classificação.
	origin := c.coord.WorldOrigin()
	ex, ez := x, z
	if ex < -1 {
		ex = -1
	} else if ex > util.ChunkSize {
		ex = util.ChunkSize
	}
	if ez < -1 {
		ez = -1
	} else if ez > util.ChunkSize {
		ez = util.ChunkSize
	}
	return classifyVoxel(origin.Y+y, c.HeightAt(ex, ez))
}

// neighborLookup traduz uma posição local uma célula fora dos limites
// para a direção do vizinho e a posição local dentro dele. Posições que
// escapam em mais de um eixo (quinas) não têm vizinho direto.
func neighborLookup(x, y, z int32) (util.Direction, int32, int32, int32, bool) {
	outX := x < 0 || x >= util.ChunkSize
	outY := y < 0 || y >= util.ChunkHeight
	outZ := z < 0 || z >= util.ChunkSize

	switch {
	case outX && !outY && !outZ:
		if x < 0 {
			return util.DirLeft, x + util.ChunkSize, y, z, true
		}
		return util.DirRight, x - util.ChunkSize, y, z, true
	case outY && !outX && !outZ:
		if y < 0 {
			return util.DirBottom, x, y + util.ChunkHeight, z, true
		}
		return util.DirTop, x, y - util.ChunkHeight, z, true
	case outZ && !outX && !outY:
		if z < 0 {
			return util.DirBack, x, y, z + util.ChunkSize, true
		}
		return util.DirFront, x, y, z - util.ChunkSize, true
	}
	return 0, 0, 0, 0, false
}
