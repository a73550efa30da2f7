package worldgen

import (
	"github.com/aquilax/go-perlin"
	"github.com/larspensjo/Go-simplex-noise/simplexnoise"
)

// NoiseField agrupa as fontes de ruído independentes usadas pelo modelo
// de terreno. Todas as amostragens são funções puras de (seed, x, z):
// a mesma entrada produz sempre a mesma saída, em qualquer thread.
//
// Cada canal fractal recebe uma seed derivada distinta (seed, seed+1, ...)
// para que os canais sejam de fato independentes entre si.
type NoiseField struct {
	seed uint32

	// Canais FBm. No go-perlin, alpha é o inverso do ganho por oitava
	// (ganho 0.5 -> alpha 2) e beta é a lacunaridade.
	continental *perlin.Perlin // feições grandes e suaves
	erosion     *perlin.Perlin // feições menores e rugosas
	peaks       *perlin.Perlin // picos e vales, escala média
	fractal     *perlin.Perlin // fractal genérico

	// Offset derivado da seed para o sampler simplex puro (a biblioteca
	// não aceita seed; o deslocamento de coordenadas cumpre esse papel).
	offX, offZ float64
}

// NewNoiseField cria o conjunto de fontes de ruído para uma seed de mundo.
func NewNoiseField(seed uint32) *NoiseField {
	base := int64(seed)
	return &NoiseField{
		seed:        seed,
		continental: perlin.NewPerlin(2.0, 1.5, 3, base),
		erosion:     perlin.NewPerlin(2.0, 2.0, 4, base+1),
		peaks:       perlin.NewPerlin(2.0, 2.0, 4, base+2),
		fractal:     perlin.NewPerlin(2.0, 2.0, 4, base+3),
		offX:        hashToUnit(hash(seed)) * 4096.0,
		offZ:        hashToUnit(hash(seed+1)) * 4096.0,
	}
}

// Seed retorna a seed de mundo deste campo de ruído.
func (n *NoiseField) Seed() uint32 {
	return n.seed
}

// Continentalness amostra o canal continental em (x, z).
// Valor nominal em [-1, 1]; quem consome deve aplicar Clamp11.
func (n *NoiseField) Continentalness(x, z float32) float32 {
	return float32(n.continental.Noise2D(float64(x), float64(z)))
}

// Erosion amostra o canal de erosão em (x, z).
func (n *NoiseField) Erosion(x, z float32) float32 {
	return float32(n.erosion.Noise2D(float64(x), float64(z)))
}

// PeaksAndValleys amostra o canal de picos e vales em (x, z).
func (n *NoiseField) PeaksAndValleys(x, z float32) float32 {
	return float32(n.peaks.Noise2D(float64(x), float64(z)))
}

// Fractal amostra o canal fractal genérico em (x, z).
func (n *NoiseField) Fractal(x, z float32) float32 {
	return float32(n.fractal.Noise2D(float64(x), float64(z)))
}

// Simplex amostra ruído simplex puro (uma oitava) em (x, z).
func (n *NoiseField) Simplex(x, z float32) float32 {
	return float32(simplexnoise.Noise2(float64(x)+n.offX, float64(z)+n.offZ))
}

// hash espalha os bits de um inteiro (mistura de Wang).
func hash(x uint32) uint32 {
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = (x >> 16) ^ x
	return x
}

// hashToUnit converte um hash para float em [0, 1).
func hashToUnit(h uint32) float64 {
	return float64(h&0xFFFFFF) / float64(0x1000000)
}
