package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, n, want int32
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
		{31, 16, 1},
		{-33, 16, -3},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.n); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.n, got, tt.want)
		}
	}
}

func TestWorldToChunkNegatives(t *testing.T) {
	tests := []struct {
		pos  VoxelCoord
		want ChunkCoord
	}{
		{VoxelCoord{0, 0, 0}, ChunkCoord{0, 0, 0}},
		{VoxelCoord{15, 63, 15}, ChunkCoord{0, 0, 0}},
		{VoxelCoord{16, 64, 16}, ChunkCoord{1, 1, 1}},
		{VoxelCoord{-1, 0, -1}, ChunkCoord{-1, 0, -1}},
		{VoxelCoord{-16, 0, -17}, ChunkCoord{-1, 0, -2}},
	}
	for _, tt := range tests {
		if got := WorldToChunk(tt.pos); got != tt.want {
			t.Errorf("WorldToChunk(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestWorldToLocalInRange(t *testing.T) {
	positions := []VoxelCoord{
		{0, 0, 0}, {15, 63, 15}, {-1, 5, -1}, {-16, 0, -17}, {100, 200, -300},
	}
	for _, pos := range positions {
		local := WorldToLocal(pos)
		if local.X < 0 || local.X >= ChunkSize ||
			local.Y < 0 || local.Y >= ChunkHeight ||
			local.Z < 0 || local.Z >= ChunkSize {
			t.Errorf("WorldToLocal(%v) = %v out of range", pos, local)
		}
		// Reconstructing the world position must round-trip.
		origin := WorldToChunk(pos).WorldOrigin()
		back := VoxelCoord{origin.X + local.X, origin.Y + local.Y, origin.Z + local.Z}
		if back != pos {
			t.Errorf("round trip of %v gave %v", pos, back)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for d := Direction(0); d < DirCount; d++ {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite is not an involution for %d", d)
		}
		off := DirOffsets[d]
		opp := DirOffsets[d.Opposite()]
		if off.Add(opp) != (ChunkCoord{}) {
			t.Errorf("offsets of %d and its opposite do not cancel", d)
		}
	}
}

func TestFloorToVoxel(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want VoxelCoord
	}{
		{mgl32.Vec3{0.5, 0.5, 0.5}, VoxelCoord{0, 0, 0}},
		{mgl32.Vec3{-0.5, 1.0, -1.5}, VoxelCoord{-1, 1, -2}},
	}
	for _, tt := range tests {
		if got := FloorToVoxel(tt.pos); got != tt.want {
			t.Errorf("FloorToVoxel(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
