package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscan/internal/model"
	"roomscan/internal/service/storage"
)

func newTestService() *AnalysisService {
	return &AnalysisService{
		runs: storage.NewMemoryStorage[string, *model.AnalysisRun](),
	}
}

func TestAdoptCachedRunMarksDirty(t *testing.T) {
	s := newTestService()
	run := &model.AnalysisRun{ID: "run-1", ModelURN: "urn:model:1"}

	s.adoptCachedRun(run)

	got, ok := s.runs.Get("run-1")
	require.True(t, ok)
	assert.Equal(t, run, got)

	// A run recovered from the cache must reach the next PostgreSQL flush
	dirty := s.runs.GetDirty()
	require.Contains(t, dirty, "run-1")
	assert.Equal(t, run, dirty["run-1"])
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestService()
	now := time.Now()
	s.runs.SetClean("old", &model.AnalysisRun{ID: "old", CreatedAt: now.Add(-time.Hour)})
	s.runs.SetClean("new", &model.AnalysisRun{ID: "new", CreatedAt: now})

	runs := s.ListRuns()

	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)
}

func TestPrependCategory(t *testing.T) {
	assert.Equal(t,
		[]string{"Areas", "Rooms", "Spaces"},
		prependCategory("Areas", []string{"Rooms", "Spaces"}))

	// An override already in the fallback list is not duplicated
	assert.Equal(t,
		[]string{"Rooms", "Spaces"},
		prependCategory("Rooms", []string{"Rooms", "Spaces"}))
}
