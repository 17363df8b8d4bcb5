package worker

import "go.uber.org/zap"

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers() {
	zap.L().Info("Starting all workers...")

	StartRunsWorker()

	zap.L().Info("All workers started")
}
