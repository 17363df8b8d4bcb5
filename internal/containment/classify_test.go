package containment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomscan/internal/model"
)

// room is the container used throughout: Min(0,0,0) - Max(10,10,3)
var room = model.BoundingBox{MinX: 0, MinY: 0, MinZ: 0, MaxX: 10, MaxY: 10, MaxZ: 3}

func TestClassifyFullyContained(t *testing.T) {
	candidate := model.BoundingBox{MinX: 2, MinY: 2, MinZ: 0, MaxX: 4, MaxY: 4, MaxZ: 1}

	verdict, ok := Classify(room, candidate, 0)

	assert.True(t, ok)
	assert.Equal(t, model.FullyContained, verdict)
}

func TestClassifyCenterOutsideProducesNoVerdict(t *testing.T) {
	// Center at (10.5, 10.5, 0.5), outside on X and Y
	candidate := model.BoundingBox{MinX: 9, MinY: 9, MinZ: 0, MaxX: 12, MaxY: 12, MaxZ: 1}

	_, ok := Classify(room, candidate, 0)

	assert.False(t, ok)
}

func TestClassifyCenterOnBoundaryIsInside(t *testing.T) {
	// Center at (10, 10, 0.5), exactly on the container max faces,
	// but max corner (12, 12) sticks out
	candidate := model.BoundingBox{MinX: 8, MinY: 8, MinZ: 0, MaxX: 12, MaxY: 12, MaxZ: 1}

	verdict, ok := Classify(room, candidate, 0)

	assert.True(t, ok)
	assert.Equal(t, model.CenterPointInside, verdict)
}

func TestClassifyFlushAgainstFaceIsFullyContained(t *testing.T) {
	// Exact equality at the min faces counts as inside on both tests
	candidate := model.BoundingBox{MinX: 0, MinY: 0, MinZ: 0, MaxX: 2, MaxY: 2, MaxZ: 3}

	verdict, ok := Classify(room, candidate, 0)

	assert.True(t, ok)
	assert.Equal(t, model.FullyContained, verdict)
}

func TestClassifyCenterOnMinFace(t *testing.T) {
	// Center X exactly at container min X, other axes strictly inside
	candidate := model.BoundingBox{MinX: -2, MinY: 4, MinZ: 1, MaxX: 2, MaxY: 6, MaxZ: 2}

	verdict, ok := Classify(room, candidate, 0)

	assert.True(t, ok)
	assert.Equal(t, model.CenterPointInside, verdict)
}

func TestClassifyIdenticalBoxes(t *testing.T) {
	verdict, ok := Classify(room, room, 0)

	assert.True(t, ok)
	assert.Equal(t, model.FullyContained, verdict)
}

func TestClassifyCenterOutsideOnSingleAxis(t *testing.T) {
	tests := []struct {
		name      string
		candidate model.BoundingBox
	}{
		{
			name:      "outside on X only",
			candidate: model.BoundingBox{MinX: 10.5, MinY: 4, MinZ: 1, MaxX: 11.5, MaxY: 6, MaxZ: 2},
		},
		{
			name:      "outside on Y only",
			candidate: model.BoundingBox{MinX: 4, MinY: -3, MinZ: 1, MaxX: 6, MaxY: -1, MaxZ: 2},
		},
		{
			name:      "outside on Z only",
			candidate: model.BoundingBox{MinX: 4, MinY: 4, MinZ: 3.5, MaxX: 6, MaxY: 6, MaxZ: 4.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Classify(room, tt.candidate, 0)
			assert.False(t, ok)
		})
	}
}

func TestClassifyEpsilonRelaxesBothTests(t *testing.T) {
	// Center sits just past the max X face, within eps
	center := model.BoundingBox{MinX: 9.5, MinY: 4, MinZ: 1, MaxX: 10.5001, MaxY: 6, MaxZ: 2}
	_, ok := Classify(room, center, 0)
	assert.False(t, ok)

	verdict, ok := Classify(room, center, 1e-3)
	assert.True(t, ok)
	assert.Equal(t, model.CenterPointInside, verdict)

	// Max face a hair beyond the container, within eps: full containment
	full := model.BoundingBox{MinX: 2, MinY: 2, MinZ: 0, MaxX: 10.00005, MaxY: 4, MaxZ: 1}
	verdict, ok = Classify(room, full, 1e-4)
	assert.True(t, ok)
	assert.Equal(t, model.FullyContained, verdict)
}
