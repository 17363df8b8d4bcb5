package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roomscan/internal/aecdm"
	"roomscan/internal/containment"
	"roomscan/internal/model"
)

// AnalysisService is the surface the analysis endpoints need, implemented
// by the analysis service singleton
type AnalysisService interface {
	RunAnalysis(ctx context.Context, modelURN, candidateCategory, containerCategory string, epsilon *float64) (*model.AnalysisRun, error)
	GetRun(ctx context.Context, id string) (*model.AnalysisRun, bool)
	ListRuns() []*model.AnalysisRun
}

type analysisHandlers struct {
	service AnalysisService
}

// SetupAnalysisHandlers registers the containment analysis endpoints
func SetupAnalysisHandlers(router *gin.RouterGroup, service AnalysisService) {
	h := &analysisHandlers{service: service}
	analysisGroup := router.Group("/analysis")

	analysisGroup.POST("", h.RunAnalysis)
	analysisGroup.GET("", h.ListRuns)
	analysisGroup.GET("/:id", h.GetRun)
}

type analyzeRequest struct {
	ModelURN          string   `json:"model_urn" binding:"required"`
	CandidateCategory string   `json:"candidate_category" binding:"required"`
	ContainerCategory string   `json:"container_category"`
	Epsilon           *float64 `json:"epsilon"`
}

// RunAnalysis handles the analysis run endpoint
func (h *analysisHandlers) RunAnalysis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.service.RunAnalysis(c.Request.Context(), req.ModelURN, req.CandidateCategory, req.ContainerCategory, req.Epsilon)
	if err != nil {
		var queryErr *aecdm.QueryError
		switch {
		case errors.Is(err, containment.ErrNoContainersFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &queryErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Analysis run failed", zap.String("model_urn", req.ModelURN), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRun handles the run retrieval endpoint
func (h *analysisHandlers) GetRun(c *gin.Context) {
	run, ok := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

type runSummary struct {
	ID                string `json:"id"`
	ModelURN          string `json:"model_urn"`
	ContainerCategory string `json:"container_category"`
	CandidateCategory string `json:"candidate_category"`
	Mappings          int    `json:"mappings"`
	CreatedAt         string `json:"created_at"`
}

// ListRuns handles the run listing endpoint
func (h *analysisHandlers) ListRuns(c *gin.Context) {
	runs := h.service.ListRuns()

	summaries := make([]runSummary, len(runs))
	for i, run := range runs {
		summaries[i] = runSummary{
			ID:                run.ID,
			ModelURN:          run.ModelURN,
			ContainerCategory: run.ContainerCategory,
			CandidateCategory: run.CandidateCategory,
			Mappings:          len(run.Mappings),
			CreatedAt:         run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}
