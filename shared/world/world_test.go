package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"TerraVision/shared/util"
	"TerraVision/shared/voxel"
)

// settle runs enough update ticks at a fixed viewpoint to drain the
// load queue completely.
func settle(w *World, viewpoint mgl32.Vec3) {
	for i := 0; i < 500; i++ {
		w.Update(viewpoint)
	}
}

func TestUpdateLoadsIncrementally(t *testing.T) {
	w := New(42, 2)
	viewpoint := mgl32.Vec3{8, 80, 8}

	w.Update(viewpoint)
	if w.Len() == 0 || w.Len() > loadsPerUpdate {
		t.Fatalf("first update loaded %d chunks, want 1..%d", w.Len(), loadsPerUpdate)
	}

	// The observer's own chunk loads first.
	if w.GetChunk(util.ChunkCoord{X: 0, Y: 1, Z: 0}) == nil {
		t.Error("center chunk not loaded first")
	}

	settle(w, viewpoint)
	total := w.Len()
	if total < 10 {
		t.Fatalf("settled world has only %d chunks", total)
	}

	// All resident chunks are generated and within the load radius.
	center := util.ChunkCoord{X: 0, Y: 1, Z: 0}
	for coord, chunk := range w.chunks {
		if !chunk.Generated() {
			t.Errorf("resident chunk %v not generated", coord)
		}
		if chunkDist(coord, center) > w.RenderDistance() {
			t.Errorf("chunk %v resident beyond render distance", coord)
		}
	}
}

func TestNeighborLinksAreSymmetric(t *testing.T) {
	w := New(42, 2)
	settle(w, mgl32.Vec3{8, 80, 8})

	for coord, chunk := range w.chunks {
		for dir := util.Direction(0); dir < util.DirCount; dir++ {
			n := chunk.Neighbor(dir)
			expected := w.GetChunk(coord.Add(util.DirOffsets[dir]))
			if n != expected {
				t.Errorf("chunk %v neighbor %d = %v, resident map says %v", coord, dir, n != nil, expected != nil)
				continue
			}
			if n != nil && n.Neighbor(dir.Opposite()) != chunk {
				t.Errorf("chunk %v link %d is not symmetric", coord, dir)
			}
		}
	}
}

func TestUnloadClearsBackrefs(t *testing.T) {
	w := New(42, 3)
	settle(w, mgl32.Vec3{8, 80, 8})

	w.SetRenderDistance(1)
	settle(w, mgl32.Vec3{8, 80, 8})

	unloaded := w.ConsumeUnloaded()
	if len(unloaded) == 0 {
		t.Fatal("shrinking the render distance unloaded nothing")
	}
	for _, coord := range unloaded {
		if w.GetChunk(coord) != nil {
			t.Errorf("unloaded coord %v still resident", coord)
		}
	}

	// No surviving chunk may hold a link to a chunk outside the map.
	for coord, chunk := range w.chunks {
		for dir := util.Direction(0); dir < util.DirCount; dir++ {
			n := chunk.Neighbor(dir)
			if n == nil {
				continue
			}
			if w.GetChunk(n.Coord()) != n {
				t.Errorf("chunk %v keeps a dangling link towards %v", coord, n.Coord())
			}
		}
	}

	// Drained list does not repeat.
	if again := w.ConsumeUnloaded(); again != nil {
		t.Errorf("second ConsumeUnloaded returned %d coords, want none", len(again))
	}
}

func TestUnloadHysteresis(t *testing.T) {
	w := New(42, 2)
	settle(w, mgl32.Vec3{8, 80, 8})

	// A chunk on the load boundary must survive a one-chunk step of the
	// observer: it is now outside the load radius but inside the unload
	// radius.
	edge := util.ChunkCoord{X: -2, Y: 1, Z: 0}
	if w.GetChunk(edge) == nil {
		t.Fatal("edge chunk not resident after settling")
	}

	settle(w, mgl32.Vec3{24, 80, 8})
	if w.GetChunk(edge) == nil {
		t.Error("edge chunk unloaded while inside the hysteresis band")
	}

	// Far beyond the band it does get unloaded.
	settle(w, mgl32.Vec3{24 + 16*4, 80, 8})
	if w.GetChunk(edge) != nil {
		t.Error("edge chunk still resident far outside the unload radius")
	}
}

func TestVerticalRangeClamped(t *testing.T) {
	w := New(42, 3)
	settle(w, mgl32.Vec3{8, 8, 8})

	for coord := range w.chunks {
		if coord.Y < minChunkY || coord.Y > maxChunkY {
			t.Errorf("chunk %v outside the vertical world range", coord)
		}
	}
}

func TestWorldVoxelAccess(t *testing.T) {
	w := New(42, 2)
	settle(w, mgl32.Vec3{8, 80, 8})

	// Unresident region reads as air and rejects edits.
	far := util.VoxelCoord{X: 100000, Y: 30, Z: 100000}
	if got := w.GetVoxel(far); got != voxel.Air {
		t.Errorf("unresident voxel = %v, want Air", voxel.Name(got))
	}
	if w.SetVoxel(far, voxel.Stone) {
		t.Error("SetVoxel succeeded outside the resident region")
	}
	if w.GetChunk(util.WorldToChunk(far)) != nil {
		t.Error("rejected edit force-loaded a chunk")
	}

	// Resident edit round-trips through world coordinates.
	pos := util.VoxelCoord{X: 3, Y: 70, Z: 3}
	if !w.SetVoxel(pos, voxel.Iron) {
		t.Fatal("SetVoxel failed inside the resident region")
	}
	if got := w.GetVoxel(pos); got != voxel.Iron {
		t.Errorf("edited voxel = %v, want Iron", voxel.Name(got))
	}
}

func TestDirtyChunksSortedByDistance(t *testing.T) {
	w := New(42, 3)
	viewpoint := mgl32.Vec3{8, 80, 8}
	settle(w, viewpoint)

	dirty := w.DirtyChunks(viewpoint)
	if len(dirty) == 0 {
		t.Fatal("no dirty chunks after initial generation")
	}
	center := util.WorldToChunk(util.FloorToVoxel(viewpoint))
	for i := 1; i < len(dirty); i++ {
		if chunkDist(dirty[i-1].Coord(), center) > chunkDist(dirty[i].Coord(), center) {
			t.Fatal("dirty chunks not sorted nearest-first")
		}
	}

	// Chunks with a build in flight are skipped.
	first := dirty[0]
	if !first.TryBeginMeshing() {
		t.Fatal("TryBeginMeshing failed on an idle chunk")
	}
	for _, c := range w.DirtyChunks(viewpoint) {
		if c == first {
			t.Error("chunk with build in flight still listed as dirty")
		}
	}
}
