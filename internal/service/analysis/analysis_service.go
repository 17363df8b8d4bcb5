package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomscan/internal/aecdm"
	"roomscan/internal/config"
	"roomscan/internal/containment"
	"roomscan/internal/model"
	pg "roomscan/internal/postgres"
	redis_client "roomscan/internal/redis"
	"roomscan/internal/service/storage"
)

const RunRedisKey = "analysis_run"

// loadedRunsLimit bounds how many historical runs are pulled into memory on startup
const loadedRunsLimit = 200

// AnalysisService orchestrates containment analyses: fetching elements,
// running the analyzer, caching finished runs in Redis and persisting
// them to PostgreSQL
type AnalysisService struct {
	client     *aecdm.Client
	analyzer   *containment.Analyzer
	categories []string

	runs        storage.Storage[string, *model.AnalysisRun]
	initialized bool
	initMutex   sync.RWMutex
}

var (
	analysisServiceInstance *AnalysisService
	analysisServiceOnce     sync.Once
)

// GetAnalysisService returns the singleton instance of AnalysisService.
func GetAnalysisService() *AnalysisService {
	analysisServiceOnce.Do(func() {
		analysisServiceInstance = &AnalysisService{
			runs: storage.NewMemoryStorage[string, *model.AnalysisRun](),
		}
	})
	return analysisServiceInstance
}

// InitService wires the upstream client and analyzer from config and loads
// recent runs from PostgreSQL into memory
func (s *AnalysisService) InitService(ctx context.Context, cfg config.Config) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	zap.L().Info("Initializing AnalysisService...")
	startTime := time.Now()

	s.client = aecdm.NewClient(cfg.AecBaseURL, cfg.AecToken)
	s.analyzer = &containment.Analyzer{
		Epsilon:  cfg.Epsilon,
		Workers:  cfg.AnalysisWorkers,
		UseIndex: cfg.UseSpatialIndex,
	}
	s.categories = cfg.CategoryFallback()

	runs, err := s.loadRecentRunsFromPG()
	if err != nil {
		return fmt.Errorf("failed to load runs from PostgreSQL: %w", err)
	}
	for _, run := range runs {
		s.runs.SetClean(run.ID, run)
	}

	zap.L().Info("AnalysisService initialized",
		zap.Int("runs_loaded", len(runs)),
		zap.Duration("took", time.Since(startTime)))

	s.initialized = true
	return nil
}

// loadRecentRunsFromPG loads the most recent runs with their mappings
func (s *AnalysisService) loadRecentRunsFromPG() ([]*model.AnalysisRun, error) {
	db := pg.GetDB()
	var pgRuns []*model.AnalysisRunPG

	result := db.Preload("Mappings").Order("created_at desc").Limit(loadedRunsLimit).Find(&pgRuns)
	if result.Error != nil {
		return nil, result.Error
	}

	runs := make([]*model.AnalysisRun, len(pgRuns))
	for i, pgRun := range pgRuns {
		runs[i] = model.RunFromPG(pgRun)
	}
	return runs, nil
}

// RunAnalysis fetches containers and candidates for the model, classifies
// every pair and stores the finished run. containerCategory, when set,
// becomes the primary category ahead of the configured fallback list.
// epsilon, when non-nil, overrides the configured tolerance for this run.
func (s *AnalysisService) RunAnalysis(ctx context.Context, modelURN, candidateCategory, containerCategory string, epsilon *float64) (*model.AnalysisRun, error) {
	analyzer := *s.analyzer
	if epsilon != nil {
		analyzer.Epsilon = *epsilon
	}

	categories := s.categories
	if len(categories) == 0 {
		categories = containment.DefaultContainerCategories
	}
	if containerCategory != "" {
		categories = prependCategory(containerCategory, categories)
	}

	startTime := time.Now()
	result, err := analyzer.AnalyzeModel(ctx, s.client.Model(modelURN), categories, candidateCategory)
	if err != nil {
		return nil, err
	}

	for _, d := range result.Diagnostics {
		zap.L().Warn("analysis diagnostic",
			zap.String("model_urn", modelURN),
			zap.String("element_id", d.ElementID),
			zap.String("message", d.Message))
	}

	run := &model.AnalysisRun{
		ID:                uuid.NewString(),
		ModelURN:          modelURN,
		ContainerCategory: result.ContainerCategory,
		CandidateCategory: candidateCategory,
		Epsilon:           analyzer.Epsilon,
		ContainerCount:    result.ContainerCount,
		CandidateCount:    result.CandidateCount,
		Mappings:          result.Mappings,
		Diagnostics:       result.Diagnostics,
		CreatedAt:         time.Now().UTC(),
	}

	s.runs.Set(run.ID, run)

	if err := s.cacheRun(run); err != nil {
		zap.L().Warn("Failed to cache run in Redis", zap.String("run_id", run.ID), zap.Error(err))
	}

	zap.L().Info("Analysis completed",
		zap.String("run_id", run.ID),
		zap.String("model_urn", modelURN),
		zap.String("container_category", run.ContainerCategory),
		zap.Int("mappings", len(run.Mappings)),
		zap.Duration("took", time.Since(startTime)))

	return run, nil
}

// prependCategory puts the override first and keeps the rest of the
// fallback order without duplicating it
func prependCategory(primary string, rest []string) []string {
	categories := []string{primary}
	for _, c := range rest {
		if c != primary {
			categories = append(categories, c)
		}
	}
	return categories
}

// GetRun returns a run by ID, checking memory, then the Redis cache,
// then PostgreSQL
func (s *AnalysisService) GetRun(ctx context.Context, id string) (*model.AnalysisRun, bool) {
	if run, ok := s.runs.Get(id); ok {
		return run, true
	}

	if run, ok := s.loadRunFromRedis(id); ok {
		s.adoptCachedRun(run)
		return run, true
	}

	db := pg.GetDB()
	var pgRun model.AnalysisRunPG
	result := db.Preload("Mappings").First(&pgRun, "id = ?", id)
	if result.Error != nil {
		return nil, false
	}

	run := model.RunFromPG(&pgRun)
	s.runs.SetClean(id, run)
	return run, true
}

// ListRuns returns all in-memory runs, newest first
func (s *AnalysisService) ListRuns() []*model.AnalysisRun {
	runs := s.runs.GetAllValues()
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs
}

// cacheRun stores a JSON snapshot of the run in Redis
func (s *AnalysisService) cacheRun(run *model.AnalysisRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return redis_client.Set(fmt.Sprintf("%s:%s", RunRedisKey, run.ID), data, config.RunCacheTTL)
}

// adoptCachedRun re-registers a run recovered from the Redis cache.
// The run is marked dirty: its cache snapshot may have outlived a
// PostgreSQL flush lost to a restart, so the next flush re-inserts it
// (conflicts on already-persisted runs are ignored).
func (s *AnalysisService) adoptCachedRun(run *model.AnalysisRun) {
	s.runs.Set(run.ID, run)
}

// loadRunFromRedis loads a cached run snapshot
func (s *AnalysisService) loadRunFromRedis(id string) (*model.AnalysisRun, bool) {
	data, err := redis_client.Get(fmt.Sprintf("%s:%s", RunRedisKey, id))
	if err != nil || data == "" {
		return nil, false
	}

	run := &model.AnalysisRun{}
	if err := json.Unmarshal([]byte(data), run); err != nil {
		return nil, false
	}
	return run, true
}

// SaveDirtyRunsToPG persists runs that have not been written to
// PostgreSQL yet. Runs are immutable once finished, so conflicts on
// re-insert are ignored.
func (s *AnalysisService) SaveDirtyRunsToPG() error {
	dirtyRuns := s.runs.GetDirty()
	if len(dirtyRuns) == 0 {
		return nil
	}

	db := pg.GetDB()

	// Collect keys to clear flags after successful save
	keys := make([]string, 0, len(dirtyRuns))

	err := db.Transaction(func(tx *gorm.DB) error {
		for id, run := range dirtyRuns {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(run.ToPG())
			if result.Error != nil {
				return result.Error
			}
			keys = append(keys, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Clear flags only after successful save
	s.runs.ClearDirty(keys)

	zap.L().Info("Saved runs to PostgreSQL", zap.Int("count", len(keys)))
	return nil
}
