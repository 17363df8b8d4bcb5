package config

import "time"

// Worker intervals and cache lifetimes
const (
	// PostgresFlushInterval defines how often dirty analysis runs are flushed to PostgreSQL
	PostgresFlushInterval = 30 * time.Second

	// RunCacheTTL defines how long finished run snapshots live in Redis
	RunCacheTTL = 24 * time.Hour
)
