package world

import (
	"testing"

	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
	"TerraVision/shared/worldgen"
)

func TestClassifyVoxel(t *testing.T) {
	tests := []struct {
		name   string
		worldY int32
		height int32
		want   voxel.ID
	}{
		{"deep below surface", 40, 50, voxel.Stone},
		{"just below dirt band", 46, 50, voxel.Stone},
		{"lower dirt", 47, 50, voxel.Dirt},
		{"upper dirt", 48, 50, voxel.Dirt},
		{"surface grass", 49, 50, voxel.Grass},
		{"water starts at height", 50, 50, voxel.Water},
		{"water at sea level", 55, 50, voxel.Water},
		{"air above sea level", 56, 50, voxel.Air},
		{"tall column grass top", 59, 60, voxel.Grass},
		{"tall column air above", 60, 60, voxel.Air},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyVoxel(tt.worldY, tt.height); got != tt.want {
				t.Errorf("classifyVoxel(%d, %d) = %v, want %v", tt.worldY, tt.height, voxel.Name(got), voxel.Name(tt.want))
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	c := NewChunk(util.ChunkCoord{X: 0, Y: 0, Z: 0})
	terrain := worldgen.NewTerrain(42)

	c.Generate(terrain)
	if !c.Generated() {
		t.Fatal("chunk not marked generated")
	}
	v1 := c.Version()
	if v1 == 0 {
		t.Fatal("generation did not advance the version")
	}

	snapshot := c.GetVoxel(8, 30, 8)
	c.Generate(terrain)
	if c.Version() != v1 {
		t.Errorf("second Generate advanced version to %d, want %d", c.Version(), v1)
	}
	if c.GetVoxel(8, 30, 8) != snapshot {
		t.Error("second Generate changed chunk contents")
	}
}

func TestGenerateMatchesTerrain(t *testing.T) {
	terrain := worldgen.NewTerrain(7)
	coord := util.ChunkCoord{X: 2, Y: 0, Z: -3}
	c := NewChunk(coord)
	c.Generate(terrain)

	origin := coord.WorldOrigin()
	for x := int32(0); x < util.ChunkSize; x += 5 {
		for z := int32(0); z < util.ChunkSize; z += 5 {
			h := terrain.HeightAt(origin.X+x, origin.Z+z)
			if got := c.HeightAt(x, z); got != h {
				t.Errorf("cached height at (%d,%d) = %d, want %d", x, z, got, h)
			}
			for y := int32(0); y < util.ChunkHeight; y += 7 {
				want := classifyVoxel(origin.Y+y, h)
				if got := c.GetVoxel(x, y, z); got != want {
					t.Errorf("voxel (%d,%d,%d) = %v, want %v", x, y, z, voxel.Name(got), voxel.Name(want))
				}
			}
		}
	}
}

func TestGetVoxelOutOfBounds(t *testing.T) {
	c := NewChunk(util.ChunkCoord{})
	c.Generate(nil)

	cases := [][3]int32{{-1, 0, 0}, {16, 0, 0}, {0, -1, 0}, {0, 64, 0}, {0, 0, -1}, {0, 0, 16}}
	for _, p := range cases {
		if got := c.GetVoxel(p[0], p[1], p[2]); got != voxel.Air {
			t.Errorf("GetVoxel%v = %v, want Air", p, voxel.Name(got))
		}
	}
}

func TestSetVoxelVersionAndDirty(t *testing.T) {
	c := NewChunk(util.ChunkCoord{})
	c.Generate(nil)
	c.MarkMeshBuilt(c.Version())
	if c.MeshDirty() {
		t.Fatal("chunk dirty after MarkMeshBuilt")
	}
	v := c.Version()

	if !c.SetVoxel(5, 10, 5, voxel.Glass) {
		t.Fatal("SetVoxel failed in bounds")
	}
	if c.Version() != v+1 {
		t.Errorf("version = %d, want %d", c.Version(), v+1)
	}
	if !c.MeshDirty() {
		t.Error("chunk not dirty after edit")
	}

	// Writing the same value is a no-op.
	v = c.Version()
	c.SetVoxel(5, 10, 5, voxel.Glass)
	if c.Version() != v {
		t.Error("idempotent write advanced the version")
	}

	if c.SetVoxel(-1, 0, 0, voxel.Stone) {
		t.Error("SetVoxel accepted an out-of-bounds position")
	}
}

func TestSetVoxelBoundaryDirtiesNeighbor(t *testing.T) {
	a := NewChunk(util.ChunkCoord{X: 0})
	b := NewChunk(util.ChunkCoord{X: 1})
	a.Generate(nil)
	b.Generate(nil)
	a.setNeighbor(util.DirRight, b)
	b.setNeighbor(util.DirLeft, a)

	a.MarkMeshBuilt(a.Version())
	b.MarkMeshBuilt(b.Version())

	// Interior edit: only the edited chunk goes dirty.
	a.SetVoxel(8, 10, 8, voxel.Glass)
	if b.MeshDirty() {
		t.Error("interior edit dirtied the neighbor")
	}

	b.MarkMeshBuilt(b.Version())
	// Boundary edit on the +X face reaches the neighbor.
	a.SetVoxel(util.ChunkSize-1, 10, 8, voxel.Glass)
	if !b.MeshDirty() {
		t.Error("boundary edit did not dirty the +X neighbor")
	}
}

func TestMarkMeshBuiltStaleVersion(t *testing.T) {
	c := NewChunk(util.ChunkCoord{})
	c.Generate(nil)
	built := c.Version()
	c.SetVoxel(1, 1, 1, voxel.Iron)

	if c.MarkMeshBuilt(built) {
		t.Error("MarkMeshBuilt accepted a stale version")
	}
	if !c.MeshDirty() {
		t.Error("stale MarkMeshBuilt cleared the dirty flag")
	}
	if !c.MarkMeshBuilt(c.Version()) {
		t.Error("MarkMeshBuilt rejected the current version")
	}
}

func TestGetVoxelWithNeighborsUsesNeighbor(t *testing.T) {
	terrain := worldgen.NewTerrain(42)
	a := NewChunk(util.ChunkCoord{X: 0})
	b := NewChunk(util.ChunkCoord{X: 1})
	a.Generate(terrain)
	b.Generate(terrain)
	a.setNeighbor(util.DirRight, b)
	b.setNeighbor(util.DirLeft, a)

	for y := int32(0); y < util.ChunkHeight; y += 9 {
		for z := int32(0); z < util.ChunkSize; z += 3 {
			want := b.GetVoxel(0, y, z)
			if got := a.GetVoxelWithNeighbors(util.ChunkSize, y, z); got != want {
				t.Errorf("sample across +X at (%d,%d) = %v, want %v", y, z, voxel.Name(got), voxel.Name(want))
			}
		}
	}
}

func TestGetVoxelWithNeighborsPredictionMatchesGeneration(t *testing.T) {
	// Without the neighbor loaded, the height-cache prediction must agree
	// with what the neighbor will actually contain once generated.
	terrain := worldgen.NewTerrain(1234)
	a := NewChunk(util.ChunkCoord{X: 0})
	a.Generate(terrain)

	b := NewChunk(util.ChunkCoord{X: 1})
	b.Generate(terrain)

	for y := int32(0); y < util.ChunkHeight; y += 5 {
		for z := int32(0); z < util.ChunkSize; z += 3 {
			predicted := a.GetVoxelWithNeighbors(util.ChunkSize, y, z)
			actual := b.GetVoxel(0, y, z)
			if predicted != actual {
				t.Errorf("prediction at (%d,%d) = %v, generated = %v", y, z, voxel.Name(predicted), voxel.Name(actual))
			}
		}
	}
}

func TestGetVoxelWithNeighborsFarOutsideIsStone(t *testing.T) {
	c := NewChunk(util.ChunkCoord{})
	c.Generate(nil)

	cases := [][3]int32{{-2, 10, 0}, {17, 10, 0}, {0, 10, -2}, {0, 10, 17}, {0, -2, 0}}
	for _, p := range cases {
		if got := c.GetVoxelWithNeighbors(p[0], p[1], p[2]); got != voxel.Stone {
			t.Errorf("sample %v = %v, want Stone", p, voxel.Name(got))
		}
	}
}
