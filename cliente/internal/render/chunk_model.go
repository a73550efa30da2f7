package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"TerraVision/shared/util"
)

// ChunkModel agrupa os modelos de GPU de um chunk: terreno opaco e,
// quando existe, a malha de água desenhada no passe com blending.
type ChunkModel struct {
	Coord    util.ChunkCoord
	Version  uint64
	Active   bool
	Model    rl.Model
	HasWater bool
	Water    rl.Model
	HasSolid bool
}
