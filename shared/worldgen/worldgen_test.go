package worldgen

import (
	"testing"
)

func TestEvalSpline(t *testing.T) {
	spline := []SplinePoint{
		{-1.0, 30.0},
		{0.0, 80.0},
		{1.0, 160.0},
	}

	tests := []struct {
		name     string
		input    float32
		expected float32
	}{
		{"below range clamps to first", -2.0, 30.0},
		{"at first point", -1.0, 30.0},
		{"midpoint of first segment", -0.5, 55.0},
		{"at middle point", 0.0, 80.0},
		{"midpoint of second segment", 0.5, 120.0},
		{"at last point", 1.0, 160.0},
		{"above range clamps to last", 2.0, 160.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvalSpline(spline, tt.input)
			if got != tt.expected {
				t.Errorf("EvalSpline(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEvalSplineEmpty(t *testing.T) {
	if got := EvalSpline(nil, 0.5); got != 0 {
		t.Errorf("EvalSpline(nil) = %v, want 0", got)
	}
}

func TestNoiseFieldDeterminism(t *testing.T) {
	a := NewNoiseField(42)
	b := NewNoiseField(42)

	points := [][2]float32{{0, 0}, {0.5, -0.25}, {-10.3, 7.7}, {123.4, -567.8}}
	for _, p := range points {
		if a.Continentalness(p[0], p[1]) != b.Continentalness(p[0], p[1]) {
			t.Errorf("Continentalness differs at %v for same seed", p)
		}
		if a.Erosion(p[0], p[1]) != b.Erosion(p[0], p[1]) {
			t.Errorf("Erosion differs at %v for same seed", p)
		}
		if a.PeaksAndValleys(p[0], p[1]) != b.PeaksAndValleys(p[0], p[1]) {
			t.Errorf("PeaksAndValleys differs at %v for same seed", p)
		}
		if a.Simplex(p[0], p[1]) != b.Simplex(p[0], p[1]) {
			t.Errorf("Simplex differs at %v for same seed", p)
		}
	}
}

func TestNoiseFieldSeedChangesOutput(t *testing.T) {
	a := NewNoiseField(1)
	b := NewNoiseField(2)

	// A single coincidence is possible; all points matching is not.
	same := 0
	points := [][2]float32{{0.1, 0.2}, {3.7, -1.1}, {-50.5, 20.25}, {0.01, 0.99}}
	for _, p := range points {
		if a.Continentalness(p[0], p[1]) == b.Continentalness(p[0], p[1]) {
			same++
		}
	}
	if same == len(points) {
		t.Error("different seeds produced identical continentalness at every sample point")
	}
}

func TestNoiseChannelsAreIndependent(t *testing.T) {
	n := NewNoiseField(7)

	same := 0
	points := [][2]float32{{0.1, 0.2}, {3.7, -1.1}, {-50.5, 20.25}, {0.01, 0.99}}
	for _, p := range points {
		if n.Erosion(p[0], p[1]) == n.PeaksAndValleys(p[0], p[1]) {
			same++
		}
	}
	if same == len(points) {
		t.Error("erosion and peaks channels returned identical values at every sample point")
	}
}

func TestTerrainDeterminism(t *testing.T) {
	a := NewTerrain(1234)
	b := NewTerrain(1234)

	coords := [][2]int32{{0, 0}, {15, 15}, {-1, -1}, {-17, 300}, {10000, -10000}}
	for _, c := range coords {
		ha := a.HeightAt(c[0], c[1])
		hb := b.HeightAt(c[0], c[1])
		if ha != hb {
			t.Errorf("HeightAt(%d, %d) = %d vs %d for same seed", c[0], c[1], ha, hb)
		}
	}
}

func TestTerrainHeightInSplineRange(t *testing.T) {
	tr := NewTerrain(99)

	// Base range is [30-40, 160-0]; the mountain term adds at most 50*2^1.5.
	minH := int32(30 - 40)
	maxH := int32(160 + 142)
	for x := int32(-64); x <= 64; x += 8 {
		for z := int32(-64); z <= 64; z += 8 {
			h := tr.HeightAt(x, z)
			if h < minH || h > maxH {
				t.Fatalf("HeightAt(%d, %d) = %d outside plausible range [%d, %d]", x, z, h, minH, maxH)
			}
		}
	}
}

func TestTerrainCustomSplines(t *testing.T) {
	flatCont := []SplinePoint{{-1, 100}, {1, 100}}
	flatEro := []SplinePoint{{-1, 0}, {1, 0}}
	tr := NewTerrainWithSplines(5, flatCont, flatEro)

	// With flat splines only the mountain term can move the height.
	for x := int32(0); x < 32; x += 4 {
		h := tr.HeightAt(x, x)
		if h < 100 {
			t.Errorf("HeightAt(%d, %d) = %d, want >= 100 with flat splines", x, x, h)
		}
	}
}
