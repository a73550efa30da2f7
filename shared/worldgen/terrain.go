package worldgen

import (
	"math"

	"TerraVision/shared/util"
)

// Parâmetros do modelo de altura composto.
const (
	// NoiseScale converte coordenadas de voxel para o espaço de ruído.
	NoiseScale float32 = 0.005

	// ErosionThreshold: abaixo deste valor de erosão o termo de montanha
	// contribui; acima dele a amostragem cara de picos/vales é pulada
	// porque o resultado seria descartado de qualquer forma.
	ErosionThreshold float32 = 0.3

	// MountainScale é a amplitude do termo de montanha.
	MountainScale float32 = 50.0
)

// Terrain avalia a altura do terreno para uma seed de mundo.
// As splines são configuração explícita do valor (sem estado global);
// DefaultContinentalSpline/DefaultErosionSpline reproduzem o relevo padrão.
type Terrain struct {
	noise       *NoiseField
	continental []SplinePoint
	erosion     []SplinePoint
}

// DefaultContinentalSpline mapeia continentalidade para altura base.
func DefaultContinentalSpline() []SplinePoint {
	return []SplinePoint{
		{-1.0, 30.0}, {-0.5, 50.0}, {0.0, 80.0}, {0.3, 100.0}, {0.6, 130.0}, {1.0, 160.0},
	}
}

// DefaultErosionSpline mapeia erosão para rebaixamento de altura.
func DefaultErosionSpline() []SplinePoint {
	return []SplinePoint{
		{-1.0, 0.0}, {0.0, 10.0}, {0.5, 25.0}, {1.0, 40.0},
	}
}

// NewTerrain cria o modelo de terreno padrão para uma seed.
func NewTerrain(seed uint32) *Terrain {
	return NewTerrainWithSplines(seed, DefaultContinentalSpline(), DefaultErosionSpline())
}

// NewTerrainWithSplines cria o modelo com splines customizadas.
func NewTerrainWithSplines(seed uint32, continental, erosion []SplinePoint) *Terrain {
	return &Terrain{
		noise:       NewNoiseField(seed),
		continental: continental,
		erosion:     erosion,
	}
}

// Noise expõe o campo de ruído subjacente.
func (t *Terrain) Noise() *NoiseField {
	return t.noise
}

// HeightAt retorna a altura do terreno na coluna de mundo (wx, wz).
//
// altura = splineCont(cont) - splineEro(ero) + montanha, onde
// montanha = max(0, pv - ero)^1.5 * 50 apenas quando ero < 0.3.
// O expoente 1.5 é calculado como m*m*sqrt(m), mais barato que Pow.
//
// Esta função é a única definição da fórmula: tanto o preenchimento do
// cache estendido quanto o recálculo sob demanda passam por aqui, e o
// resultado tem de ser idêntico bit a bit nos dois caminhos.
func (t *Terrain) HeightAt(wx, wz int32) int32 {
	nx := float32(wx) * NoiseScale
	nz := float32(wz) * NoiseScale

	cont := util.Clamp11(t.noise.Continentalness(nx, nz))
	ero := util.Clamp11(t.noise.Erosion(nx, nz))

	height := EvalSpline(t.continental, cont) - EvalSpline(t.erosion, ero)

	if ero < ErosionThreshold {
		pv := util.Clamp11(t.noise.PeaksAndValleys(nx, nz))
		m := pv - ero
		if m > 0 {
			m = m * m * float32(math.Sqrt(float64(m)))
			height += m * MountainScale
		}
	}

	return int32(height)
}
