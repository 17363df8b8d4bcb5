package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscan/internal/aecdm"
	"roomscan/internal/containment"
	"roomscan/internal/model"
)

// fakeAnalysisService serves canned runs and errors to the handlers
type fakeAnalysisService struct {
	run  *model.AnalysisRun
	err  error
	runs map[string]*model.AnalysisRun
	list []*model.AnalysisRun
}

func (f *fakeAnalysisService) RunAnalysis(_ context.Context, _, _, _ string, _ *float64) (*model.AnalysisRun, error) {
	return f.run, f.err
}

func (f *fakeAnalysisService) GetRun(_ context.Context, id string) (*model.AnalysisRun, bool) {
	run, ok := f.runs[id]
	return run, ok
}

func (f *fakeAnalysisService) ListRuns() []*model.AnalysisRun {
	return f.list
}

func setupTestRouter(service AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupAnalysisHandlers(r.Group("/api"), service)
	return r
}

func postAnalysis(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const analyzeBody = `{"model_urn": "urn:model:1", "candidate_category": "Electrical Equipment"}`

func TestRunAnalysisSuccess(t *testing.T) {
	run := &model.AnalysisRun{
		ID:                "run-1",
		ModelURN:          "urn:model:1",
		ContainerCategory: "Rooms",
		CandidateCategory: "Electrical Equipment",
		Mappings: []model.ContainmentMapping{
			{ContainerID: "r1", CandidateID: "c1", ContainmentType: model.FullyContained},
		},
	}
	r := setupTestRouter(&fakeAnalysisService{run: run})

	w := postAnalysis(r, analyzeBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"run-1"`)
	assert.Contains(t, w.Body.String(), `"containment_type":"FullyContained"`)
}

func TestRunAnalysisMissingFields(t *testing.T) {
	r := setupTestRouter(&fakeAnalysisService{})

	// candidate_category is required
	w := postAnalysis(r, `{"model_urn": "urn:model:1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAnalysisNoContainersFound(t *testing.T) {
	// The analyzer wraps the sentinel; the handler must still map it to 422
	err := fmt.Errorf("tried categories %v: %w", []string{"Rooms", "Spaces"}, containment.ErrNoContainersFound)
	r := setupTestRouter(&fakeAnalysisService{err: err})

	w := postAnalysis(r, analyzeBody)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "no container elements")
}

func TestRunAnalysisUpstreamFailure(t *testing.T) {
	// Upstream query errors arrive wrapped from the fetch path and map to 502
	queryErr := &aecdm.QueryError{StatusCode: http.StatusServiceUnavailable, Body: "service unavailable"}
	err := fmt.Errorf("fetching containers for category %q: %w", "Rooms", queryErr)
	r := setupTestRouter(&fakeAnalysisService{err: err})

	w := postAnalysis(r, analyzeBody)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "service unavailable")
}

func TestRunAnalysisInternalError(t *testing.T) {
	r := setupTestRouter(&fakeAnalysisService{err: errors.New("connection reset")})

	w := postAnalysis(r, analyzeBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details stay out of the response body
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGetRunFound(t *testing.T) {
	r := setupTestRouter(&fakeAnalysisService{runs: map[string]*model.AnalysisRun{
		"run-1": {ID: "run-1", ModelURN: "urn:model:1"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/run-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"run-1"`)
}

func TestGetRunNotFound(t *testing.T) {
	r := setupTestRouter(&fakeAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "run not found")
}

func TestListRunsSummaries(t *testing.T) {
	r := setupTestRouter(&fakeAnalysisService{list: []*model.AnalysisRun{
		{
			ID:                "run-2",
			ModelURN:          "urn:model:1",
			ContainerCategory: "Spaces",
			CandidateCategory: "Electrical Equipment",
			Mappings:          []model.ContainmentMapping{{}, {}},
			CreatedAt:         time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mappings":2`)
	assert.Contains(t, w.Body.String(), `"container_category":"Spaces"`)
	// Summaries only: the mapping rows themselves are not serialized
	assert.NotContains(t, w.Body.String(), "containment_type")
}
