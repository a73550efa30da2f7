package meshing

import (
	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
	"TerraVision/shared/world"
)

// Vértices de cada face, em ordem anti-horária vistos de fora do cubo,
// relativos ao canto (0,0,0) do voxel. A ordem das faces segue
// util.Direction.
var faceVertices = [util.DirCount][4][3]float32{
	util.DirFront:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	util.DirBack:   {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	util.DirRight:  {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	util.DirLeft:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	util.DirTop:    {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	util.DirBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
}

// Deslocamento do voxel vizinho de cada face, em células.
var faceOffsets = [util.DirCount][3]int32{
	util.DirFront:  {0, 0, 1},
	util.DirBack:   {0, 0, -1},
	util.DirRight:  {1, 0, 0},
	util.DirLeft:   {-1, 0, 0},
	util.DirTop:    {0, 1, 0},
	util.DirBottom: {0, -1, 0},
}

// shouldRenderFace decide se a face de um voxel na direção do vizinho
// dado é visível. Os três ramos são deliberadamente separados:
//
//   - água: só expõe faces contra ar, escondendo as laterais contra
//     sólidos e contra outra água (menos overdraw, bordas mais finas);
//   - opaco: face visível quando o vizinho é transparente;
//   - transparente não-água (vidro, folhas): face visível contra
//     qualquer tipo diferente, removendo apenas faces internas entre
//     voxels do mesmo tipo.
func shouldRenderFace(current, neighbor voxel.ID) bool {
	if current == voxel.Water {
		return neighbor == voxel.Air
	}
	if !voxel.IsTransparent(current) {
		return voxel.IsTransparent(neighbor)
	}
	return current != neighbor
}

// BuildChunkMesh constrói a geometria de um chunk a partir do estado
// atual dos voxels: um quad indexado por face visível de cada voxel
// não-ar, sem soldagem de vértices. A água sai em um buffer separado
// para o passe com blending do renderer.
//
// Roda em workers; só lê o chunk (e vizinhos) através dos acessores
// thread-safe.
func BuildChunkMesh(chunk *world.Chunk) (solid, water GeometryData) {
	solidBuf := GetMeshBuffer()
	waterBuf := GetMeshBuffer()
	defer PutMeshBuffer(solidBuf)
	defer PutMeshBuffer(waterBuf)

	// Pré-passe: conta voxels não-ar para dimensionar os buffers sem
	// realocações no laço principal.
	solidCount := 0
	for x := int32(0); x < util.ChunkSize; x++ {
		for y := int32(0); y < util.ChunkHeight; y++ {
			for z := int32(0); z < util.ChunkSize; z++ {
				if chunk.GetVoxel(x, y, z) != voxel.Air {
					solidCount++
				}
			}
		}
	}
	if solidCount == 0 {
		return GeometryData{}, GeometryData{}
	}

	estimated := solidCount * 24
	if limit := util.ChunkVolume / 4; estimated > limit {
		estimated = limit
	}
	solidBuf.Reserve(estimated)

	for x := int32(0); x < util.ChunkSize; x++ {
		for y := int32(0); y < util.ChunkHeight; y++ {
			for z := int32(0); z < util.ChunkSize; z++ {
				current := chunk.GetVoxel(x, y, z)
				if current == voxel.Air {
					continue
				}

				buf := solidBuf
				if current == voxel.Water {
					buf = waterBuf
				}
				info := &voxel.Registry[current]

				for dir := util.Direction(0); dir < util.DirCount; dir++ {
					off := faceOffsets[dir]
					neighbor := chunk.GetVoxelWithNeighbors(x+off[0], y+off[1], z+off[2])
					if !shouldRenderFace(current, neighbor) {
						continue
					}

					layer := voxel.TextureLayer(current, dir == util.DirTop, dir == util.DirBottom)
					fv := &faceVertices[dir]
					buf.AddQuad(
						offsetVertex(fv[0], x, y, z),
						offsetVertex(fv[1], x, y, z),
						offsetVertex(fv[2], x, y, z),
						offsetVertex(fv[3], x, y, z),
						util.DirNormals[dir],
						layer,
						info.Color,
					)
				}
			}
		}
	}

	return solidBuf.Geometry.Clone(), waterBuf.Geometry.Clone()
}

func offsetVertex(v [3]float32, x, y, z int32) [3]float32 {
	return [3]float32{v[0] + float32(x), v[1] + float32(y), v[2] + float32(z)}
}
