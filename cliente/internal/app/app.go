package app

import (
	"log"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TerraVision/cliente/internal/camera"
	"TerraVision/cliente/internal/meshing"
	"TerraVision/cliente/internal/render"
	"TerraVision/shared/config"
	"TerraVision/shared/util"
	"TerraVision/shared/world"
)

// App é a aplicação principal do TerraVision: orquestra o streaming do
// mundo, o meshing assíncrono e o desenho, tudo a partir do loop da
// thread principal.
type App struct {
	Config *config.Config

	Cam *camera.Controller

	world       *world.World
	mesher      *meshing.ChunkMesher
	resultStore *meshing.ResultStore
	renderer    *render.Renderer

	frameCount int

	// Voxel sob o cursor neste frame, para o destaque e a edição.
	SelectedVoxel *util.VoxelCoord
	// Célula vazia adjacente à face atingida, onde um bloco novo entra.
	PlacementVoxel *util.VoxelCoord

	// Fase inicial: orçamento de upload mais generoso até a área de
	// spawn ficar toda meshada.
	loading bool
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:  cfg,
		loading: true,
	}
}

// Run inicia a janela e o loop principal. Deve rodar na thread
// principal do processo (runtime.LockOSThread no main).
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	a.world = world.New(a.Config.Seed, a.Config.RenderDistance)

	// Spawn sobre o terreno no centro do mundo.
	spawnHeight := a.world.Terrain().HeightAt(8, 8)
	a.Cam = camera.New(rl.Vector3{X: 8, Y: float32(spawnHeight) + 4, Z: 8})
	a.Cam.MoveSpeed = a.Config.CameraSpeed
	a.Cam.RotateSpeed = a.Config.CameraSensitivity
	a.Cam.ZoomSpeed = a.Config.ZoomSpeed

	log.Printf("[App] seed=%d renderDistance=%.1f spawnHeight=%d",
		a.Config.Seed, a.Config.RenderDistance, spawnHeight)

	workers := a.Config.MesherThreads
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
		if workers < 2 {
			workers = 2
		}
	}

	a.resultStore = meshing.NewResultStore()
	a.renderer = render.NewRenderer(a.Config.TexturePath)
	a.renderer.Wireframe = a.Config.WireframeMode
	a.mesher = meshing.NewChunkMesher(workers, a.resultStore)

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update avança a simulação um frame.
func (a *App) update() {
	a.frameCount++

	a.updateCamera()
	a.updateInput()

	viewpoint := a.Cam.Viewpoint()
	a.world.Update(viewpoint)

	if evicted := a.world.ConsumeUnloaded(); len(evicted) > 0 {
		a.renderer.QueuePurge(evicted)
	}
	a.renderer.ProcessPurge()

	a.mesher.Tick(a.world, viewpoint)
	a.processMesherResults()

	a.updateSelection()

	if a.frameCount%60 == 0 {
		a.logStats()
	}
}

func (a *App) logStats() {
	stats := a.mesher.Stats()
	log.Printf("[App] chunks=%d modelos=%d fila=%d retry=%d built=%d cache=%d timeout=%d fault=%d",
		a.world.Len(), a.renderer.ModelCount(), stats.Pending, stats.Retry,
		stats.Built, stats.CacheHits, stats.Timeouts, stats.Faults)
}

// shutdown encerra os workers e libera recursos de GPU.
func (a *App) shutdown() {
	log.Println("[App] finalizando...")
	a.mesher.Stop()
	a.renderer.Unload()
	if err := a.Config.Save(); err != nil {
		log.Printf("[App] erro ao salvar configuracoes: %v", err)
	}
}
