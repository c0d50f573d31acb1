package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fittrack/internal/model"
)

// ProgressRepository defines persistence operations for progress entries.
type ProgressRepository interface {
	Create(ctx context.Context, entry *model.ProgressEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProgressEntry, error)
	List(ctx context.Context) ([]model.ProgressEntry, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository builds a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, entry *model.ProgressEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *progressRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProgressEntry, error) {
	var entry model.ProgressEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *progressRepository) List(ctx context.Context) ([]model.ProgressEntry, error) {
	var entries []model.ProgressEntry
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *progressRepository) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.ProgressEntry{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *progressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProgressEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
