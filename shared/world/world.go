package world

import (
	"log"
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
	"TerraVision/shared/worldgen"
)

const (
	// Máximo de chunks gerados por chamada de Update, para distribuir o
	// custo de geração entre frames.
	loadsPerUpdate = 2

	// Histerese de descarga: um chunk só sai quando fica além de
	// renderDistance + unloadSlack, evitando thrashing na fronteira.
	unloadSlack = 1.5

	// Faixa vertical de chunks mantida: o mundo tem 8 chunks de altura
	// e apenas os 2 acima/abaixo do observador ficam residentes.
	minChunkY = 0
	maxChunkY = 7
	ySpan     = 2
)

// World mantém o conjunto de chunks residentes em torno do observador.
//
// O mapa de chunks é de posse exclusiva do World: só Update muta o
// conjunto, e o RWMutex cobre os leitores. Os workers de meshing
// recebem apenas ponteiros de *Chunk, e os chunks cuidam da própria
// sincronização interna.
type World struct {
	mu      sync.RWMutex
	chunks  map[util.ChunkCoord]*Chunk
	terrain *worldgen.Terrain

	renderDistance float32

	center    util.ChunkCoord
	hasCenter bool
	loadQueue []util.ChunkCoord

	// Coordenadas descarregadas desde o último ConsumeUnloaded, para o
	// renderer liberar os modelos de GPU correspondentes.
	unloaded []util.ChunkCoord
}

// New cria um mundo vazio para a seed e distância de render dadas.
func New(seed uint32, renderDistance float32) *World {
	return &World{
		chunks:         make(map[util.ChunkCoord]*Chunk),
		terrain:        worldgen.NewTerrain(seed),
		renderDistance: renderDistance,
	}
}

// Terrain expõe o modelo de terreno do mundo.
func (w *World) Terrain() *worldgen.Terrain {
	return w.terrain
}

// RenderDistance retorna a distância de render atual, em chunks.
func (w *World) RenderDistance() float32 {
	return w.renderDistance
}

// SetRenderDistance altera a distância de render. O conjunto desejado é
// recalculado no próximo Update.
func (w *World) SetRenderDistance(d float32) {
	if d < 1 {
		d = 1
	}
	w.mu.Lock()
	w.renderDistance = d
	w.hasCenter = false
	w.mu.Unlock()
}

// Len retorna o número de chunks residentes.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// PendingLoads retorna quantos chunks desejados ainda aguardam geração.
func (w *World) PendingLoads() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.loadQueue)
}

// GetChunk retorna o chunk na coordenada dada, ou nil se não residente.
func (w *World) GetChunk(coord util.ChunkCoord) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[coord]
}

// chunkDist mede a distância entre coordenadas de chunk com o eixo Y
// atenuado: colunas verticais são baratas de manter, então contam menos
// para o raio de carga do que o espalhamento horizontal.
func chunkDist(a, b util.ChunkCoord) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return float32(math.Sqrt(dx*dx + 0.25*dy*dy + dz*dz))
}

// Update avança o streaming de chunks para a posição do observador:
// recalcula o conjunto desejado quando o observador muda de chunk,
// descarrega chunks fora do raio (com histerese) e gera até
// loadsPerUpdate chunks novos, do mais próximo para o mais distante.
func (w *World) Update(viewpoint mgl32.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()

	center := util.WorldToChunk(util.FloorToVoxel(viewpoint))
	center.Y = util.Min(util.Max(center.Y, minChunkY), maxChunkY)

	if !w.hasCenter || center != w.center {
		w.center = center
		w.hasCenter = true
		w.rebuildLoadQueue()
		w.unloadFar()
	}

	loaded := 0
	for len(w.loadQueue) > 0 && loaded < loadsPerUpdate {
		coord := w.loadQueue[0]
		w.loadQueue = w.loadQueue[1:]
		if _, ok := w.chunks[coord]; ok {
			continue
		}
		w.loadChunk(coord)
		loaded++
	}
}

// rebuildLoadQueue recalcula as coordenadas desejadas e ainda não
// residentes, ordenadas da mais próxima para a mais distante.
func (w *World) rebuildLoadQueue() {
	r := int32(math.Ceil(float64(w.renderDistance)))
	yLo := util.Max(w.center.Y-ySpan, minChunkY)
	yHi := util.Min(w.center.Y+ySpan, maxChunkY)

	w.loadQueue = w.loadQueue[:0]
	for x := w.center.X - r; x <= w.center.X+r; x++ {
		for z := w.center.Z - r; z <= w.center.Z+r; z++ {
			for y := yLo; y <= yHi; y++ {
				coord := util.ChunkCoord{X: x, Y: y, Z: z}
				if chunkDist(coord, w.center) > w.renderDistance {
					continue
				}
				if _, ok := w.chunks[coord]; ok {
					continue
				}
				w.loadQueue = append(w.loadQueue, coord)
			}
		}
	}

	sort.Slice(w.loadQueue, func(i, j int) bool {
		return chunkDist(w.loadQueue[i], w.center) < chunkDist(w.loadQueue[j], w.center)
	})
}

// unloadFar remove chunks além do raio de descarga e desfaz os links de
// vizinhança dos dois lados, para que nenhum chunk residente aponte
// para um chunk removido.
func (w *World) unloadFar() {
	limit := w.renderDistance + unloadSlack
	for coord, chunk := range w.chunks {
		if chunkDist(coord, w.center) <= limit {
			continue
		}
		w.unlink(chunk)
		delete(w.chunks, coord)
		w.unloaded = append(w.unloaded, coord)
	}
}

func (w *World) unlink(chunk *Chunk) {
	for dir := util.Direction(0); dir < util.DirCount; dir++ {
		n := chunk.Neighbor(dir)
		if n == nil {
			continue
		}
		n.setNeighbor(dir.Opposite(), nil)
		n.MarkDirty()
		chunk.setNeighbor(dir, nil)
	}
}

// loadChunk cria, gera e liga um chunk novo aos vizinhos residentes.
func (w *World) loadChunk(coord util.ChunkCoord) {
	chunk := NewChunk(coord)
	chunk.Generate(w.terrain)
	w.chunks[coord] = chunk

	for dir := util.Direction(0); dir < util.DirCount; dir++ {
		n, ok := w.chunks[coord.Add(util.DirOffsets[dir])]
		if !ok {
			continue
		}
		chunk.setNeighbor(dir, n)
		n.setNeighbor(dir.Opposite(), chunk)
		// As faces de borda do vizinho podem ter deixado de ser visíveis.
		n.MarkDirty()
	}
}

// ConsumeUnloaded drena as coordenadas descarregadas desde a última
// chamada. O chamador usa a lista para liberar recursos de GPU.
func (w *World) ConsumeUnloaded() []util.ChunkCoord {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.unloaded) == 0 {
		return nil
	}
	out := w.unloaded
	w.unloaded = nil
	return out
}

// DirtyChunks retorna os chunks gerados com mesh desatualizado e sem
// build em andamento, do mais próximo ao mais distante do observador.
func (w *World) DirtyChunks(viewpoint mgl32.Vec3) []*Chunk {
	center := util.WorldToChunk(util.FloorToVoxel(viewpoint))

	w.mu.RLock()
	defer w.mu.RUnlock()

	var dirty []*Chunk
	for _, chunk := range w.chunks {
		if chunk.Generated() && chunk.MeshDirty() && !chunk.Meshing() {
			dirty = append(dirty, chunk)
		}
	}
	sort.Slice(dirty, func(i, j int) bool {
		return chunkDist(dirty[i].Coord(), center) < chunkDist(dirty[j].Coord(), center)
	})
	return dirty
}

// GetVoxel retorna o voxel na coordenada de mundo dada. Regiões não
// residentes (ou ainda não geradas) leem como ar.
func (w *World) GetVoxel(pos util.VoxelCoord) voxel.ID {
	w.mu.RLock()
	chunk, ok := w.chunks[util.WorldToChunk(pos)]
	w.mu.RUnlock()
	if !ok || !chunk.Generated() {
		return voxel.Air
	}
	local := util.WorldToLocal(pos)
	return chunk.GetVoxel(local.X, local.Y, local.Z)
}

// SetVoxel grava o voxel na coordenada de mundo dada. Edições fora da
// região residente são rejeitadas; editar nunca força carga de chunk.
func (w *World) SetVoxel(pos util.VoxelCoord, id voxel.ID) bool {
	w.mu.RLock()
	chunk, ok := w.chunks[util.WorldToChunk(pos)]
	w.mu.RUnlock()
	if !ok || !chunk.Generated() {
		log.Printf("[World] edicao ignorada fora da regiao residente: %v", pos)
		return false
	}
	local := util.WorldToLocal(pos)
	return chunk.SetVoxel(local.X, local.Y, local.Z, id)
}
