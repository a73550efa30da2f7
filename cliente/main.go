package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"TerraVision/cliente/internal/app"
	"TerraVision/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO.
	runtime.LockOSThread()

	seed := flag.Uint("seed", 0, "Seed do mundo (0 = usar a do config)")
	renderDist := flag.Float64("dist", 0, "Distância de render em chunks (0 = usar a do config)")
	threads := flag.Int("threads", 0, "Workers de meshing (0 = usar a do config)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	logFile := flag.String("logfile", "", "Arquivo de log (vazio = stderr)")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(f)
		}
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("--- INICIANDO TERRAVISION ---")

	cfg := config.Load()

	// Flags de linha de comando sobrescrevem o config salvo.
	if *seed != 0 {
		cfg.Seed = uint32(*seed)
	}
	if *renderDist > 0 {
		cfg.RenderDistance = float32(*renderDist)
	}
	if *threads > 0 {
		cfg.MesherThreads = *threads
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	application := app.New(cfg)
	application.Run()
}
