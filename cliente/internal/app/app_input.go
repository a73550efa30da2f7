package app

import (
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
	"TerraVision/shared/world"
)

// Alcance máximo da ferramenta de edição, em voxels.
const editReach = 128.0

// updateCamera processa o input de câmera e a interpolação.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)
}

// updateInput processa teclado e a ferramenta de edição de voxels.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		a.Config.WireframeMode = !a.Config.WireframeMode
		a.renderer.Wireframe = a.Config.WireframeMode
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Distância de render em tempo de execução: o mundo recalcula a
	// janela de streaming no próximo update.
	if rl.IsKeyPressed(rl.KeyEqual) {
		a.Config.RenderDistance += 1
		a.world.SetRenderDistance(a.Config.RenderDistance)
		log.Printf("[App] render distance: %.0f chunks", a.Config.RenderDistance)
	}
	if rl.IsKeyPressed(rl.KeyMinus) && a.Config.RenderDistance > 2 {
		a.Config.RenderDistance -= 1
		a.world.SetRenderDistance(a.Config.RenderDistance)
		log.Printf("[App] render distance: %.0f chunks", a.Config.RenderDistance)
	}

	// Escavar com o botão esquerdo, colocar pedra com o direito.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && a.SelectedVoxel != nil {
		if a.world.SetVoxel(*a.SelectedVoxel, voxel.Air) {
			log.Printf("[App] escavado voxel %v", *a.SelectedVoxel)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) && a.PlacementVoxel != nil {
		if a.world.SetVoxel(*a.PlacementVoxel, voxel.Stone) {
			log.Printf("[App] colocado bloco em %v", *a.PlacementVoxel)
		}
	}
}

// updateSelection lança o raio do mouse pelo mundo e guarda o voxel
// sólido atingido e a célula vazia em frente à face atingida.
func (a *App) updateSelection() {
	a.SelectedVoxel = nil
	a.PlacementVoxel = nil

	ray := rl.GetMouseRay(rl.GetMousePosition(), a.Cam.RLCamera)
	origin := mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z}
	dir := mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()

	hit, prev, ok := raycastVoxel(a.world, origin, dir, editReach)
	if !ok {
		return
	}
	a.SelectedVoxel = &hit
	a.PlacementVoxel = &prev
}

// raycastVoxel percorre a grade de voxels com o DDA de Amanatides & Woo
// e retorna o primeiro voxel sólido atingido e a célula atravessada
// imediatamente antes dele.
func raycastVoxel(w *world.World, origin, dir mgl32.Vec3, maxDist float32) (hit, prev util.VoxelCoord, ok bool) {
	cur := util.FloorToVoxel(origin)
	prev = cur

	step := [3]int32{}
	tMax := [3]float32{}
	tDelta := [3]float32{}

	for i := 0; i < 3; i++ {
		d := dir[i]
		switch {
		case d > 0:
			step[i] = 1
			tMax[i] = (float32(axisOf(cur, i)+1) - origin[i]) / d
			tDelta[i] = 1 / d
		case d < 0:
			step[i] = -1
			tMax[i] = (origin[i] - float32(axisOf(cur, i))) / -d
			tDelta[i] = 1 / -d
		default:
			step[i] = 0
			tMax[i] = float32(math.Inf(1))
			tDelta[i] = float32(math.Inf(1))
		}
	}

	for t := float32(0); t <= maxDist; {
		if voxel.IsSolid(w.GetVoxel(cur)) {
			return cur, prev, true
		}
		prev = cur

		// Avança para o próximo limite de célula mais próximo.
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
		cur = addAxis(cur, axis, step[axis])
	}

	return util.VoxelCoord{}, util.VoxelCoord{}, false
}

func axisOf(v util.VoxelCoord, axis int) int32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func addAxis(v util.VoxelCoord, axis int, delta int32) util.VoxelCoord {
	switch axis {
	case 0:
		v.X += delta
	case 1:
		v.Y += delta
	default:
		v.Z += delta
	}
	return v
}
