package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
)

// NutritionPlanInput carries the fields of a nutrition plan create request.
type NutritionPlanInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
}

// NutritionPlanPatch carries a partial update; nil fields are left untouched.
type NutritionPlanPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// NutritionPlanService exposes CRUD over nutrition plans.
type NutritionPlanService interface {
	Create(ctx context.Context, in NutritionPlanInput) (*model.NutritionPlan, error)
	Get(ctx context.Context, id uuid.UUID) (*model.NutritionPlan, error)
	List(ctx context.Context) ([]model.NutritionPlan, error)
	Patch(ctx context.Context, id uuid.UUID, patch NutritionPlanPatch) (*model.NutritionPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type nutritionPlanService struct {
	repo      repository.NutritionPlanRepository
	protector *protect.FieldProtector
	timeout   time.Duration
}

// NewNutritionPlanService builds a NutritionPlanService.
func NewNutritionPlanService(repo repository.NutritionPlanRepository, protector *protect.FieldProtector, timeout time.Duration) NutritionPlanService {
	return &nutritionPlanService{repo: repo, protector: protector, timeout: timeout}
}

func (s *nutritionPlanService) Create(ctx context.Context, in NutritionPlanInput) (*model.NutritionPlan, error) {
	if in.UserID == uuid.Nil || in.Title == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, apperrors.ErrValidation
	}

	plan := &model.NutritionPlan{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.protector.Protect(plan); err != nil {
		return nil, fmt.Errorf("protect plan fields: %w", err)
	}

	createCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Create(createCtx, plan); err != nil {
		return nil, fmt.Errorf("create nutrition plan: %w", mapRepoErr(err))
	}

	if err := s.protector.Reveal(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *nutritionPlanService) Get(ctx context.Context, id uuid.UUID) (*model.NutritionPlan, error) {
	findCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	plan, err := s.repo.FindByID(findCtx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if err := s.protector.Reveal(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *nutritionPlanService) List(ctx context.Context) ([]model.NutritionPlan, error) {
	listCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	plans, err := s.repo.List(listCtx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	for i := range plans {
		if err := s.protector.Reveal(&plans[i]); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// Patch transforms only the supplied fields; stored fields are neither
// re-encrypted nor decrypted.
func (s *nutritionPlanService) Patch(ctx context.Context, id uuid.UUID, patch NutritionPlanPatch) (*model.NutritionPlan, error) {
	updates := make(map[string]any)
	if patch.Title != nil {
		ct, err := s.protector.EncryptValue(*patch.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = ct
	}
	if patch.Description != nil {
		ct, err := s.protector.EncryptValue(*patch.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = ct
	}
	if patch.StartDate != nil {
		updates["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updates["end_date"] = *patch.EndDate
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	patchCtx, cancel := persistCtx(ctx, s.timeout)
	err := s.repo.Patch(patchCtx, id, updates)
	cancel()
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return s.Get(ctx, id)
}

func (s *nutritionPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	delCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	return mapRepoErr(s.repo.Delete(delCtx, id))
}
