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

// WorkoutPlanInput carries the fields of a workout plan create request.
type WorkoutPlanInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	Duration    int
	StartDate   time.Time
	EndDate     time.Time
}

// WorkoutPlanPatch carries a partial update; nil fields are left untouched.
type WorkoutPlanPatch struct {
	Title       *string
	Description *string
	Duration    *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// WorkoutPlanService exposes CRUD over workout plans.
type WorkoutPlanService interface {
	Create(ctx context.Context, in WorkoutPlanInput) (*model.WorkoutPlan, error)
	Get(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error)
	List(ctx context.Context) ([]model.WorkoutPlan, error)
	Patch(ctx context.Context, id uuid.UUID, patch WorkoutPlanPatch) (*model.WorkoutPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workoutPlanService struct {
	repo      repository.WorkoutPlanRepository
	protector *protect.FieldProtector
	timeout   time.Duration
}

// NewWorkoutPlanService builds a WorkoutPlanService.
func NewWorkoutPlanService(repo repository.WorkoutPlanRepository, protector *protect.FieldProtector, timeout time.Duration) WorkoutPlanService {
	return &workoutPlanService{repo: repo, protector: protector, timeout: timeout}
}

func (s *workoutPlanService) Create(ctx context.Context, in WorkoutPlanInput) (*model.WorkoutPlan, error) {
	if in.UserID == uuid.Nil || in.Title == "" || in.Duration <= 0 || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, apperrors.ErrValidation
	}

	plan := &model.WorkoutPlan{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.protector.Protect(plan); err != nil {
		return nil, fmt.Errorf("protect plan fields: %w", err)
	}

	createCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Create(createCtx, plan); err != nil {
		return nil, fmt.Errorf("create workout plan: %w", mapRepoErr(err))
	}

	if err := s.protector.Reveal(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *workoutPlanService) Get(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error) {
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

func (s *workoutPlanService) List(ctx context.Context) ([]model.WorkoutPlan, error) {
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
func (s *workoutPlanService) Patch(ctx context.Context, id uuid.UUID, patch WorkoutPlanPatch) (*model.WorkoutPlan, error) {
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
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
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

func (s *workoutPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	delCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	return mapRepoErr(s.repo.Delete(delCtx, id))
}
