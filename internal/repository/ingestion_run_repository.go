package repository

import (
	"context"

	"mood-journal/internal/entity"
	"mood-journal/pkg/database"
)

// IngestionRunRepository defines the interface for ingestion run data operations.
type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
	Update(ctx context.Context, run *entity.IngestionRun) error
	FindByRunID(ctx context.Context, runID string) (*entity.IngestionRun, error)
	// FindRecent returns up to limit runs, newest first. limit <= 0 means all.
	FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error)
}

// NewIngestionRunRepository creates a new GORM-based ingestion run repository.
func NewIngestionRunRepository(db *database.Lazy) IngestionRunRepository {
	return &ingestionRunRepository{db: db}
}

type ingestionRunRepository struct {
	db *database.Lazy
}

func (r *ingestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}
	return db.Create(run).Error
}

func (r *ingestionRunRepository) Update(ctx context.Context, run *entity.IngestionRun) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}
	return db.Save(run).Error
}

func (r *ingestionRunRepository) FindByRunID(ctx context.Context, runID string) (*entity.IngestionRun, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var run entity.IngestionRun
	if err := db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *ingestionRunRepository) FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	q := db.Order("started_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var runs []entity.IngestionRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
