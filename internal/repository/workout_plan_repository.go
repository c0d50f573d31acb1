package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fittrack/internal/model"
)

// WorkoutPlanRepository defines persistence operations for workout plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *model.WorkoutPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error)
	List(ctx context.Context) ([]model.WorkoutPlan, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type workoutPlanRepository struct {
	db *gorm.DB
}

// NewWorkoutPlanRepository builds a GORM-backed repository.
func NewWorkoutPlanRepository(db *gorm.DB) WorkoutPlanRepository {
	return &workoutPlanRepository{db: db}
}

func (r *workoutPlanRepository) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *workoutPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error) {
	var plan model.WorkoutPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *workoutPlanRepository) List(ctx context.Context) ([]model.WorkoutPlan, error) {
	var plans []model.WorkoutPlan
	if err := r.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *workoutPlanRepository) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.WorkoutPlan{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workoutPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkoutPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
