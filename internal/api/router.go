package api

import (
	routes "roomscan/internal/api/handlers"
	"roomscan/internal/service/analysis"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, config map[string]string) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), config)

	// Setup analysis handlers
	routes.SetupAnalysisHandlers(api, analysis.GetAnalysisService())
}
