package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TerraVision/cliente/internal/meshing"
	"TerraVision/shared/util"
)

// Modelos descarregados por frame pela purga incremental.
const purgePerFrame = 2

// Renderer possui os modelos de GPU dos chunks e faz o desenho em dois
// passes: terreno opaco primeiro, água com blending depois.
//
// Upload e purga acontecem na thread principal (contexto GL); o mutex
// protege o mapa contra leitores do HUD.
type Renderer struct {
	mu     sync.RWMutex
	Models map[util.ChunkCoord]*ChunkModel

	// Textura do atlas de terreno, ou o fallback procedural quando o
	// arquivo não existe.
	terrainTexture rl.Texture2D
	hasTexture     bool

	// Fila de coordenadas aguardando descarga da GPU (evita stutter).
	purgeQueue *util.ThreadSafeQueue[util.ChunkCoord]

	Wireframe bool
}

// NewRenderer cria o renderizador e carrega a textura de terreno, com
// fallback para uma textura sólida gerada em memória.
func NewRenderer(texturePath string) *Renderer {
	r := &Renderer{
		Models:     make(map[util.ChunkCoord]*ChunkModel),
		purgeQueue: util.NewThreadSafeQueue[util.ChunkCoord](),
	}

	if rl.IsWindowReady() {
		if texturePath != "" {
			tex := rl.LoadTexture(texturePath)
			if tex.ID != 0 {
				r.terrainTexture = tex
				r.hasTexture = true
				log.Printf("[Renderer] textura de terreno carregada: %s", texturePath)
			}
		}
		if !r.hasTexture {
			// Sem atlas no disco: cor sólida neutra; o flat shading por
			// vértice carrega a aparência.
			img := rl.GenImageColor(16, 16, rl.White)
			r.terrainTexture = rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			r.hasTexture = true
			log.Printf("[Renderer] sem atlas de textura, usando fallback solido")
		}
	}

	return r
}

// ModelVersion retorna a versão do modelo residente para a coordenada,
// ou 0 se não houver modelo.
func (r *Renderer) ModelVersion(coord util.ChunkCoord) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cm, ok := r.Models[coord]; ok {
		return cm.Version
	}
	return 0
}

// ModelCount retorna o número de modelos residentes na GPU.
func (r *Renderer) ModelCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Models)
}

// UploadResult converte um resultado de meshing em modelos raylib na
// GPU, substituindo qualquer modelo anterior do mesmo chunk.
func (r *Renderer) UploadResult(res meshing.Result) {
	if !rl.IsWindowReady() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.Models[res.Coord]; ok {
		r.unloadModel(old)
		delete(r.Models, res.Coord)
	}

	if res.Solid.Empty() && res.Water.Empty() {
		return
	}

	cm := &ChunkModel{
		Coord:   res.Coord,
		Version: res.Version,
		Active:  true,
	}

	if !res.Solid.Empty() {
		mesh := r.geometryToMesh(res.Solid)
		rl.UploadMesh(&mesh, false)
		r.freeMeshRAM(&mesh)
		cm.Model = rl.LoadModelFromMesh(mesh)
		cm.HasSolid = true
		r.applyTexture(&cm.Model)
	}

	if !res.Water.Empty() {
		mesh := r.geometryToMesh(res.Water)
		rl.UploadMesh(&mesh, false)
		r.freeMeshRAM(&mesh)
		cm.Water = rl.LoadModelFromMesh(mesh)
		cm.HasWater = true
		r.applyTexture(&cm.Water)
	}

	r.Models[res.Coord] = cm
}

func (r *Renderer) applyTexture(model *rl.Model) {
	if !r.hasTexture || model.MaterialCount == 0 {
		return
	}
	materials := unsafe.Slice(model.Materials, model.MaterialCount)
	rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, r.terrainTexture)
}

// geometryToMesh converte os buffers Go em uma rl.Mesh com memória C.
// A raylib libera os buffers com free() no UnloadMesh, então os dados
// precisam sair do heap do Go antes do upload.
func (r *Renderer) geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh

	vertices, indices := data.Vertices, data.Indices
	vCount := len(vertices) / 3

	// raylib indexa malhas com uint16. Chunks patológicos que passam de
	// 65535 vértices são desindexados em triângulos crus.
	if vCount > 0xFFFF {
		data = deindex(data)
		vertices, indices = data.Vertices, nil
		vCount = len(vertices) / 3
		mesh.TriangleCount = int32(vCount / 3)
	} else {
		mesh.TriangleCount = int32(len(indices) / 3)
	}
	mesh.VertexCount = int32(vCount)

	if len(vertices) > 0 {
		mesh.Vertices = (*float32)(r.copyToC(unsafe.Pointer(&vertices[0]), len(vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(r.copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.UVs) > 0 {
		mesh.Texcoords = (*float32)(r.copyToC(unsafe.Pointer(&data.UVs[0]), len(data.UVs)*4))
	}
	if len(data.Colors) > 0 {
		mesh.Colors = (*uint8)(r.copyToC(unsafe.Pointer(&data.Colors[0]), len(data.Colors)))
	}
	if len(data.Layers) > 0 {
		// A camada de textura viaja no segundo conjunto de UVs.
		layerUV := make([]float32, 0, len(data.Layers)*2)
		for _, l := range data.Layers {
			layerUV = append(layerUV, l, 0)
		}
		mesh.Texcoords2 = (*float32)(r.copyToC(unsafe.Pointer(&layerUV[0]), len(layerUV)*4))
	}
	if len(indices) > 0 {
		idx16 := make([]uint16, len(indices))
		for i, v := range indices {
			idx16[i] = uint16(v)
		}
		mesh.Indices = (*uint16)(r.copyToC(unsafe.Pointer(&idx16[0]), len(idx16)*2))
	}
	return mesh
}

// deindex expande uma malha indexada em triângulos crus.
func deindex(data meshing.GeometryData) meshing.GeometryData {
	n := len(data.Indices)
	out := meshing.GeometryData{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		UVs:      make([]float32, 0, n*2),
		Layers:   make([]float32, 0, n),
		Colors:   make([]uint8, 0, n*4),
	}
	for _, idx := range data.Indices {
		i := int(idx)
		out.Vertices = append(out.Vertices, data.Vertices[i*3], data.Vertices[i*3+1], data.Vertices[i*3+2])
		out.Normals = append(out.Normals, data.Normals[i*3], data.Normals[i*3+1], data.Normals[i*3+2])
		out.UVs = append(out.UVs, data.UVs[i*2], data.UVs[i*2+1])
		out.Layers = append(out.Layers, data.Layers[i])
		out.Colors = append(out.Colors, data.Colors[i*4], data.Colors[i*4+1], data.Colors[i*4+2], data.Colors[i*4+3])
	}
	return out
}

func (r *Renderer) copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// freeMeshRAM libera a cópia em RAM (C) de uma malha após o upload para
// a GPU. A geometria continua disponível no ResultStore se precisar ser
// reconstruída.
func (r *Renderer) freeMeshRAM(mesh *rl.Mesh) {
	if mesh.Vertices != nil {
		C.free(unsafe.Pointer(mesh.Vertices))
		mesh.Vertices = nil
	}
	if mesh.Normals != nil {
		C.free(unsafe.Pointer(mesh.Normals))
		mesh.Normals = nil
	}
	if mesh.Texcoords != nil {
		C.free(unsafe.Pointer(mesh.Texcoords))
		mesh.Texcoords = nil
	}
	if mesh.Texcoords2 != nil {
		C.free(unsafe.Pointer(mesh.Texcoords2))
		mesh.Texcoords2 = nil
	}
	if mesh.Colors != nil {
		C.free(unsafe.Pointer(mesh.Colors))
		mesh.Colors = nil
	}
	if mesh.Indices != nil {
		C.free(unsafe.Pointer(mesh.Indices))
		mesh.Indices = nil
	}
}

// Draw desenha os chunks dentro do raio de visão em dois passes:
// terreno opaco primeiro, depois a água com blending alfa, para que a
// transparência componha sobre o terreno já desenhado.
func (r *Renderer) Draw(camera rl.Camera3D, renderDistanceChunks float32) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	camPos := camera.Position
	// Margem sobre a distância de streaming para não cortar chunks da
	// banda de histerese que ainda têm modelo.
	viewRadius := renderDistanceChunks * util.ChunkSize * 1.2
	viewRadiusSq := viewRadius * viewRadius

	// PASS 1: terreno opaco
	for _, cm := range r.Models {
		if !cm.Active || !cm.HasSolid {
			continue
		}
		origin, ok := r.cullChunk(cm, camPos, viewRadiusSq)
		if !ok {
			continue
		}
		if r.Wireframe {
			rl.DrawModelWires(cm.Model, origin, 1.0, rl.White)
		} else {
			rl.DrawModel(cm.Model, origin, 1.0, rl.White)
		}
	}

	// PASS 2: água
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, cm := range r.Models {
		if !cm.Active || !cm.HasWater {
			continue
		}
		origin, ok := r.cullChunk(cm, camPos, viewRadiusSq)
		if !ok {
			continue
		}
		rl.DrawModel(cm.Water, origin, 1.0, rl.White)
	}
	rl.EndBlendMode()
}

func (r *Renderer) cullChunk(cm *ChunkModel, camPos rl.Vector3, viewRadiusSq float32) (rl.Vector3, bool) {
	center := cm.Coord.WorldCenter()
	dx := center.X() - camPos.X
	dz := center.Z() - camPos.Z
	if dx*dx+dz*dz > viewRadiusSq {
		return rl.Vector3{}, false
	}
	origin := cm.Coord.WorldOrigin()
	return rl.Vector3{X: float32(origin.X), Y: float32(origin.Y), Z: float32(origin.Z)}, true
}

// QueuePurge agenda a descarga dos modelos das coordenadas dadas.
func (r *Renderer) QueuePurge(coords []util.ChunkCoord) {
	for _, coord := range coords {
		r.purgeQueue.Push(coord)
	}
}

// ProcessPurge descarrega até purgePerFrame modelos por chamada, para
// diluir o custo de UnloadModel entre frames.
func (r *Renderer) ProcessPurge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < purgePerFrame; i++ {
		coord, ok := r.purgeQueue.Pop()
		if !ok {
			return
		}
		if cm, ok := r.Models[coord]; ok {
			r.unloadModel(cm)
			delete(r.Models, coord)
		}
	}
}

func (r *Renderer) unloadModel(cm *ChunkModel) {
	if !cm.Active {
		return
	}
	if cm.HasSolid {
		rl.UnloadModel(cm.Model)
	}
	if cm.HasWater {
		rl.UnloadModel(cm.Water)
	}
	cm.Active = false
}

// DrawSelection desenha um cubo de destaque no voxel selecionado.
func (r *Renderer) DrawSelection(coord util.VoxelCoord) {
	pos := rl.Vector3{
		X: float32(coord.X) + 0.5,
		Y: float32(coord.Y) + 0.5,
		Z: float32(coord.Z) + 0.5,
	}
	rl.DrawCubeWires(pos, 1.01, 1.01, 1.01, rl.Yellow)
}

// Unload libera todos os modelos e a textura do atlas.
func (r *Renderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cm := range r.Models {
		r.unloadModel(cm)
	}
	r.Models = make(map[util.ChunkCoord]*ChunkModel)
	if r.hasTexture {
		rl.UnloadTexture(r.terrainTexture)
		r.hasTexture = false
	}
	log.Printf("[Renderer] recursos de GPU liberados")
}
