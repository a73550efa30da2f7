package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena e o HUD.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(110, 170, 220, 255))

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza o mundo 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	a.renderer.Draw(a.Cam.RLCamera, a.Config.RenderDistance)

	if a.SelectedVoxel != nil {
		a.renderer.DrawSelection(*a.SelectedVoxel)
	}

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta de debug.
func (a *App) drawHUD() {
	if a.loading {
		a.drawLoadingBar()
	}

	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(320)
	height := int32(210)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	look := a.Cam.CurrentLookAt
	rl.DrawText(fmt.Sprintf("Foco: (%.0f, %.0f, %.0f)", look.X, look.Y, look.Z), x+10, y+45, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Chunks: %d (fila %d)", a.world.Len(), a.world.PendingLoads()), x+10, y+65, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Modelos GPU: %d", a.renderer.ModelCount()), x+10, y+85, 16, rl.White)

	stats := a.mesher.Stats()
	rl.DrawText(fmt.Sprintf("Mesher: fila %d retry %d", stats.Pending, stats.Retry), x+10, y+105, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Builds: %d (cache %d)", stats.Built, stats.CacheHits), x+10, y+125, 16, rl.LightGray)
	if stats.Timeouts > 0 || stats.Faults > 0 {
		rl.DrawText(fmt.Sprintf("Falhas: %d timeout, %d panic", stats.Timeouts, stats.Faults), x+10, y+145, 16, rl.Orange)
	}

	rl.DrawLine(x+10, y+165, x+width-10, y+165, rl.NewColor(100, 100, 100, 100))
	rl.DrawText("WASD/QE: mover | Meio: orbitar | Scroll: zoom", x+10, y+172, 12, rl.SkyBlue)
	rl.DrawText("Esq: escavar | Dir: colocar | F3 HUD F4 wire +/- dist", x+10, y+188, 12, rl.SkyBlue)
}

// drawLoadingBar mostra o progresso da carga inicial no rodapé.
func (a *App) drawLoadingBar() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	msg := fmt.Sprintf("Gerando terreno... %d chunks residentes, %d na fila",
		a.world.Len(), a.world.PendingLoads())
	msgWidth := rl.MeasureText(msg, 18)
	rl.DrawRectangle(0, screenHeight-40, screenWidth, 40, rl.NewColor(0, 0, 0, 160))
	rl.DrawText(msg, (screenWidth-msgWidth)/2, screenHeight-30, 18, rl.LightGray)
}
