package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Dimensões fixas de um chunk de terreno (16x64x16 voxels).
const (
	ChunkSize   = 16
	ChunkHeight = 64
	ChunkVolume = ChunkSize * ChunkHeight * ChunkSize
)

// ChunkCoord representa a posição de um chunk na grade de chunks.
// Uma unidade equivale a um chunk inteiro no espaço do mundo.
type ChunkCoord struct {
	X, Y, Z int32
}

// VoxelCoord representa a posição de um voxel no espaço do mundo.
type VoxelCoord struct {
	X, Y, Z int32
}

// String retorna a representação em string da coordenada.
func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

func (v VoxelCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Add soma duas coordenadas de chunk.
func (c ChunkCoord) Add(other ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Sub subtrai duas coordenadas de chunk.
func (c ChunkCoord) Sub(other ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// WorldOrigin retorna o canto de origem do chunk no espaço do mundo.
func (c ChunkCoord) WorldOrigin() VoxelCoord {
	return VoxelCoord{
		X: c.X * ChunkSize,
		Y: c.Y * ChunkHeight,
		Z: c.Z * ChunkSize,
	}
}

// WorldCenter retorna o centro geométrico do chunk como vetor 3D.
func (c ChunkCoord) WorldCenter() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X)*ChunkSize + ChunkSize*0.5,
		float32(c.Y)*ChunkHeight + ChunkHeight*0.5,
		float32(c.Z)*ChunkSize + ChunkSize*0.5,
	}
}

// FloorDiv realiza divisão inteira com arredondamento para -infinito.
// Coordenadas negativas caem no chunk correto (floor, não truncamento).
func FloorDiv(a, n int32) int32 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// WorldToChunk mapeia uma coordenada de voxel para o chunk que a contém.
func WorldToChunk(v VoxelCoord) ChunkCoord {
	return ChunkCoord{
		X: FloorDiv(v.X, ChunkSize),
		Y: FloorDiv(v.Y, ChunkHeight),
		Z: FloorDiv(v.Z, ChunkSize),
	}
}

// WorldToLocal mapeia uma coordenada de voxel para a posição local (0..N-1)
// dentro do chunk que a contém.
func WorldToLocal(v VoxelCoord) VoxelCoord {
	origin := WorldToChunk(v).WorldOrigin()
	return VoxelCoord{X: v.X - origin.X, Y: v.Y - origin.Y, Z: v.Z - origin.Z}
}

// FloorToVoxel converte uma posição contínua do mundo para o voxel que a contém.
func FloorToVoxel(pos mgl32.Vec3) VoxelCoord {
	return VoxelCoord{
		X: int32(math.Floor(float64(pos.X()))),
		Y: int32(math.Floor(float64(pos.Y()))),
		Z: int32(math.Floor(float64(pos.Z()))),
	}
}

// Direction identifica uma das seis direções de vizinhança de um chunk/face.
type Direction int

const (
	DirFront  Direction = iota // +Z
	DirBack                    // -Z
	DirRight                   // +X
	DirLeft                    // -X
	DirTop                     // +Y
	DirBottom                  // -Y
	DirCount
)

// Opposite retorna a direção oposta (o enum agrupa pares opostos).
func (d Direction) Opposite() Direction {
	if d%2 == 0 {
		return d + 1
	}
	return d - 1
}

// DirOffsets mapeia direções para deslocamentos na grade de chunks.
var DirOffsets = [DirCount]ChunkCoord{
	DirFront:  {X: 0, Y: 0, Z: 1},
	DirBack:   {X: 0, Y: 0, Z: -1},
	DirRight:  {X: 1, Y: 0, Z: 0},
	DirLeft:   {X: -1, Y: 0, Z: 0},
	DirTop:    {X: 0, Y: 1, Z: 0},
	DirBottom: {X: 0, Y: -1, Z: 0},
}

// DirNormals mapeia direções para o vetor normal da face correspondente.
var DirNormals = [DirCount][3]float32{
	DirFront:  {0, 0, 1},
	DirBack:   {0, 0, -1},
	DirRight:  {1, 0, 0},
	DirLeft:   {-1, 0, 0},
	DirTop:    {0, 1, 0},
	DirBottom: {0, -1, 0},
}
