package meshing

import (
	"sync"

	"TerraVision/shared/util"
	"TerraVision/shared/world"
)

// GeometryData contém os buffers de vértices de uma malha de chunk.
// Quads indexados: 4 vértices e 6 índices por face visível.
type GeometryData struct {
	Vertices []float32 // xyz por vértice
	Normals  []float32 // xyz por vértice
	UVs      []float32 // uv por vértice
	Layers   []float32 // camada de textura por vértice
	Colors   []uint8   // rgba por vértice
	Indices  []uint32
}

// Empty indica se a malha não tem geometria.
func (g GeometryData) Empty() bool {
	return len(g.Indices) == 0
}

// VertexCount retorna o número de vértices da malha.
func (g GeometryData) VertexCount() int {
	return len(g.Vertices) / 3
}

// Clone cria uma cópia profunda dos dados para evitar corrupção de memória.
func (g GeometryData) Clone() GeometryData {
	clone := GeometryData{}
	if len(g.Vertices) > 0 {
		clone.Vertices = make([]float32, len(g.Vertices))
		copy(clone.Vertices, g.Vertices)
	}
	if len(g.Normals) > 0 {
		clone.Normals = make([]float32, len(g.Normals))
		copy(clone.Normals, g.Normals)
	}
	if len(g.UVs) > 0 {
		clone.UVs = make([]float32, len(g.UVs))
		copy(clone.UVs, g.UVs)
	}
	if len(g.Layers) > 0 {
		clone.Layers = make([]float32, len(g.Layers))
		copy(clone.Layers, g.Layers)
	}
	if len(g.Colors) > 0 {
		clone.Colors = make([]uint8, len(g.Colors))
		copy(clone.Colors, g.Colors)
	}
	if len(g.Indices) > 0 {
		clone.Indices = make([]uint32, len(g.Indices))
		copy(clone.Indices, g.Indices)
	}
	return clone
}

// Request representa um pedido de construção de malha para um chunk.
type Request struct {
	Chunk    *world.Chunk
	Version  uint64  // versão do chunk no momento do pedido
	Distance float32 // distância ao observador, para log/priorização
}

// Result contém a geometria construída para um chunk. A água vai em um
// buffer separado para o passe de desenho com blending.
type Result struct {
	Coord   util.ChunkCoord
	Version uint64
	Solid   GeometryData
	Water   GeometryData
}

// Clone realiza uma cópia profunda de um Result.
func (r Result) Clone() Result {
	return Result{
		Coord:   r.Coord,
		Version: r.Version,
		Solid:   r.Solid.Clone(),
		Water:   r.Water.Clone(),
	}
}

// Pool global para reciclar MeshBuffers e evitar pressão de GC durante
// o meshing contínuo.
var meshBufferPool = sync.Pool{
	New: func() interface{} {
		return &MeshBuffer{
			Geometry: GeometryData{
				Vertices: make([]float32, 0, 4096),
				Normals:  make([]float32, 0, 4096),
				UVs:      make([]float32, 0, 2048),
				Layers:   make([]float32, 0, 1024),
				Colors:   make([]uint8, 0, 4096),
				Indices:  make([]uint32, 0, 2048),
			},
		}
	},
}

// GetMeshBuffer aloca ou recicla um buffer vazio para meshing.
func GetMeshBuffer() *MeshBuffer {
	return meshBufferPool.Get().(*MeshBuffer)
}

// PutMeshBuffer zera os buffers e devolve a memória para o pool.
func PutMeshBuffer(b *MeshBuffer) {
	if b == nil {
		return
	}
	b.Geometry.Vertices = b.Geometry.Vertices[:0]
	b.Geometry.Normals = b.Geometry.Normals[:0]
	b.Geometry.UVs = b.Geometry.UVs[:0]
	b.Geometry.Layers = b.Geometry.Layers[:0]
	b.Geometry.Colors = b.Geometry.Colors[:0]
	b.Geometry.Indices = b.Geometry.Indices[:0]
	meshBufferPool.Put(b)
}

// MeshBuffer auxilia na construção de malhas dinâmicas.
type MeshBuffer struct {
	Geometry GeometryData
}

// Reserve pré-dimensiona os buffers para o número estimado de vértices.
func (b *MeshBuffer) Reserve(vertices int) {
	if cap(b.Geometry.Vertices) >= vertices*3 {
		return
	}
	b.Geometry.Vertices = append(make([]float32, 0, vertices*3), b.Geometry.Vertices...)
	b.Geometry.Normals = append(make([]float32, 0, vertices*3), b.Geometry.Normals...)
	b.Geometry.UVs = append(make([]float32, 0, vertices*2), b.Geometry.UVs...)
	b.Geometry.Layers = append(make([]float32, 0, vertices), b.Geometry.Layers...)
	b.Geometry.Colors = append(make([]uint8, 0, vertices*4), b.Geometry.Colors...)
	b.Geometry.Indices = append(make([]uint32, 0, vertices*3/2), b.Geometry.Indices...)
}

// AddQuad adiciona uma face retangular indexada ao buffer: quatro
// vértices em ordem anti-horária e os seis índices dos dois triângulos
// (0,1,2) e (2,3,0).
func (b *MeshBuffer) AddQuad(v1, v2, v3, v4 [3]float32, n [3]float32, layer float32, c [4]uint8) {
	base := uint32(len(b.Geometry.Vertices) / 3)

	b.addVertex(v1, [2]float32{0, 0}, n, layer, c)
	b.addVertex(v2, [2]float32{1, 0}, n, layer, c)
	b.addVertex(v3, [2]float32{1, 1}, n, layer, c)
	b.addVertex(v4, [2]float32{0, 1}, n, layer, c)

	b.Geometry.Indices = append(b.Geometry.Indices,
		base+0, base+1, base+2,
		base+2, base+3, base+0)
}

func (b *MeshBuffer) addVertex(v [3]float32, uv [2]float32, n [3]float32, layer float32, c [4]uint8) {
	b.Geometry.Vertices = append(b.Geometry.Vertices, v[0], v[1], v[2])
	b.Geometry.Normals = append(b.Geometry.Normals, n[0], n[1], n[2])
	b.Geometry.UVs = append(b.Geometry.UVs, uv[0], uv[1])
	b.Geometry.Layers = append(b.Geometry.Layers, layer)
	b.Geometry.Colors = append(b.Geometry.Colors, c[0], c[1], c[2], c[3])
}
