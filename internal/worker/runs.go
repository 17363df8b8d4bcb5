package worker

import (
	"time"

	"go.uber.org/zap"

	"roomscan/internal/config"
	"roomscan/internal/service/analysis"
)

// StartRunsWorker starts the worker that flushes finished analysis runs
// to PostgreSQL
func StartRunsWorker() {
	analysisService := analysis.GetAnalysisService()

	ticker := time.NewTicker(config.PostgresFlushInterval)
	go func() {
		for range ticker.C {
			if err := analysisService.SaveDirtyRunsToPG(); err != nil {
				zap.L().Error("Error saving runs to PostgreSQL", zap.Error(err))
			}
		}
	}()

	zap.L().Info("Runs worker started", zap.Duration("interval", config.PostgresFlushInterval))
}
