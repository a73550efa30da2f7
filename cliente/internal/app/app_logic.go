package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Orçamento de upload por frame. Um frame a 60 FPS tem 16.6ms; 4ms de
// fatia evitam stutter perceptível mesmo com malhas grandes.
const (
	uploadTimeBudget  = 0.004
	uploadsPerFrame   = 1
	loadingTimeBudget = 0.100
)

// processMesherResults drena o canal de resultados sob orçamento de
// tempo e envia a geometria para a GPU. Em regime permanente, no máximo
// um upload por frame; durante a carga inicial o orçamento é maior para
// o terreno aparecer rápido.
func (a *App) processMesherResults() {
	budget := uploadTimeBudget
	maxUploads := uploadsPerFrame
	if a.loading {
		budget = loadingTimeBudget
		maxUploads = 1 << 30
	}

	startTime := rl.GetTime()
	uploads := 0

	for uploads < maxUploads {
		if rl.GetTime()-startTime > budget {
			break
		}

		select {
		case res := <-a.mesher.Results():
			chunk := a.world.GetChunk(res.Coord)
			if chunk == nil {
				// O chunk saiu da janela enquanto a malha era construída.
				continue
			}

			a.renderer.UploadResult(res)
			uploads++

			// Compare-and-clear: se o chunk mudou depois do build, a
			// flag de sujo permanece e o próximo tick reconstrói.
			if !chunk.MarkMeshBuilt(res.Version) {
				log.Printf("[App] malha de %v ja nasceu obsoleta (v%d != v%d)",
					res.Coord, res.Version, chunk.Version())
			}
			chunk.EndMeshing()
		default:
			a.checkLoadingDone()
			return
		}
	}
	a.checkLoadingDone()
}

// checkLoadingDone encerra a fase de carga inicial quando a área ao
// redor do spawn está carregada e meshada.
func (a *App) checkLoadingDone() {
	if !a.loading {
		return
	}
	if a.world.PendingLoads() == 0 && len(a.world.DirtyChunks(a.Cam.Viewpoint())) == 0 {
		a.loading = false
		log.Printf("[App] carga inicial concluida: %d chunks, %d modelos",
			a.world.Len(), a.renderer.ModelCount())
	}
}
