package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do TerraVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Mundo
	Seed           uint32  `json:"seed"`
	RenderDistance float32 `json:"render_distance"` // raio de streaming, em chunks
	MesherThreads  int     `json:"mesher_threads"`

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Render
	TexturePath string `json:"texture_path"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "TerraVision",
		Fullscreen:   false,
		TargetFPS:    60,

		Seed:           1337,
		RenderDistance: 8,
		MesherThreads:  4,

		CameraSpeed:       50.0,
		CameraSensitivity: 2.0,
		ZoomSpeed:         10.0,

		TexturePath: "assets/terrain.png",

		ShowDebugInfo: true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração, ao lado do
// executável.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir ou for inválido, retorna os padrões.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
