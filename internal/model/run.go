package model

import (
	"time"

	"gorm.io/gorm"
)

// ContainmentType is the verdict for a (container, candidate) pair.
// Pairs whose candidate center falls outside the container produce no
// mapping at all, so there is no third "outside" value.
type ContainmentType string

const (
	// FullyContained means the candidate box lies entirely inside the container box
	FullyContained ContainmentType = "FullyContained"

	// CenterPointInside means the candidate center is inside the container
	// but some part of its box sticks out. Downstream surfaces sometimes
	// label this "PartiallyContained"; it is the same verdict.
	CenterPointInside ContainmentType = "CenterPointInside"
)

// ContainmentMapping is one positive containment result
type ContainmentMapping struct {
	ContainerID       string          `json:"container_id"`
	ContainerName     string          `json:"container_name"`
	CandidateID       string          `json:"candidate_id"`
	CandidateName     string          `json:"candidate_name"`
	CandidateCategory string          `json:"candidate_category"`
	ContainmentType   ContainmentType `json:"containment_type"`
}

// Diagnostic records a recoverable problem hit while extracting or
// analyzing, returned to the caller instead of being printed from deep
// inside the processing loop
type Diagnostic struct {
	ElementID string `json:"element_id,omitempty"`
	Message   string `json:"message"`
}

// AnalysisRun is the unified model for one completed containment analysis
// (used for memory storage, Redis snapshots and the API response)
type AnalysisRun struct {
	ID                string               `json:"id"`
	ModelURN          string               `json:"model_urn"`
	ContainerCategory string               `json:"container_category"`
	CandidateCategory string               `json:"candidate_category"`
	Epsilon           float64              `json:"epsilon"`
	ContainerCount    int                  `json:"container_count"`
	CandidateCount    int                  `json:"candidate_count"`
	Mappings          []ContainmentMapping `json:"mappings"`
	Diagnostics       []Diagnostic         `json:"diagnostics,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// AnalysisRunPG model for PostgreSQL storage
type AnalysisRunPG struct {
	ID                string                 `gorm:"primaryKey"`
	ModelURN          string                 `gorm:"size:255;not null;index"`
	ContainerCategory string                 `gorm:"size:100;not null"`
	CandidateCategory string                 `gorm:"size:100;not null"`
	Epsilon           float64                `gorm:"not null"`
	ContainerCount    int                    `gorm:"not null"`
	CandidateCount    int                    `gorm:"not null"`
	Diagnostics       []Diagnostic           `gorm:"type:jsonb;serializer:json"`
	Mappings          []ContainmentMappingPG `gorm:"foreignKey:RunID"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (AnalysisRunPG) TableName() string {
	return "analysis_runs"
}

// ContainmentMappingPG model for PostgreSQL storage
type ContainmentMappingPG struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	RunID             string `gorm:"size:64;not null;index"`
	ContainerID       string `gorm:"size:255;not null"`
	ContainerName     string `gorm:"size:255"`
	CandidateID       string `gorm:"size:255;not null"`
	CandidateName     string `gorm:"size:255"`
	CandidateCategory string `gorm:"size:100"`
	ContainmentType   string `gorm:"size:32;not null"`
}

// TableName overrides the table name
func (ContainmentMappingPG) TableName() string {
	return "containment_mappings"
}

// ToPG converts the run to its PostgreSQL representation
func (r *AnalysisRun) ToPG() *AnalysisRunPG {
	pg := &AnalysisRunPG{
		ID:                r.ID,
		ModelURN:          r.ModelURN,
		ContainerCategory: r.ContainerCategory,
		CandidateCategory: r.CandidateCategory,
		Epsilon:           r.Epsilon,
		ContainerCount:    r.ContainerCount,
		CandidateCount:    r.CandidateCount,
		Diagnostics:       r.Diagnostics,
		CreatedAt:         r.CreatedAt,
	}
	pg.Mappings = make([]ContainmentMappingPG, len(r.Mappings))
	for i, m := range r.Mappings {
		pg.Mappings[i] = ContainmentMappingPG{
			RunID:             r.ID,
			ContainerID:       m.ContainerID,
			ContainerName:     m.ContainerName,
			CandidateID:       m.CandidateID,
			CandidateName:     m.CandidateName,
			CandidateCategory: m.CandidateCategory,
			ContainmentType:   string(m.ContainmentType),
		}
	}
	return pg
}

// RunFromPG creates an AnalysisRun from its PostgreSQL representation
func RunFromPG(pg *AnalysisRunPG) *AnalysisRun {
	run := &AnalysisRun{
		ID:                pg.ID,
		ModelURN:          pg.ModelURN,
		ContainerCategory: pg.ContainerCategory,
		CandidateCategory: pg.CandidateCategory,
		Epsilon:           pg.Epsilon,
		ContainerCount:    pg.ContainerCount,
		CandidateCount:    pg.CandidateCount,
		Diagnostics:       pg.Diagnostics,
		CreatedAt:         pg.CreatedAt,
	}
	run.Mappings = make([]ContainmentMapping, len(pg.Mappings))
	for i, m := range pg.Mappings {
		run.Mappings[i] = ContainmentMapping{
			ContainerID:       m.ContainerID,
			ContainerName:     m.ContainerName,
			CandidateID:       m.CandidateID,
			CandidateName:     m.CandidateName,
			CandidateCategory: m.CandidateCategory,
			ContainmentType:   ContainmentType(m.ContainmentType),
		}
	}
	return run
}
