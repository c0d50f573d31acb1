package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fittrack/internal/model"
)

// NutritionPlanRepository defines persistence operations for nutrition plans.
type NutritionPlanRepository interface {
	Create(ctx context.Context, plan *model.NutritionPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NutritionPlan, error)
	List(ctx context.Context) ([]model.NutritionPlan, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type nutritionPlanRepository struct {
	db *gorm.DB
}

// NewNutritionPlanRepository builds a GORM-backed repository.
func NewNutritionPlanRepository(db *gorm.DB) NutritionPlanRepository {
	return &nutritionPlanRepository{db: db}
}

func (r *nutritionPlanRepository) Create(ctx context.Context, plan *model.NutritionPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *nutritionPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.NutritionPlan, error) {
	var plan model.NutritionPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *nutritionPlanRepository) List(ctx context.Context) ([]model.NutritionPlan, error) {
	var plans []model.NutritionPlan
	if err := r.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *nutritionPlanRepository) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.NutritionPlan{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *nutritionPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.NutritionPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
