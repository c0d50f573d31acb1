package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
)

// ProgressInput carries the fields of a progress entry create request.
// Weight stays plaintext; Measurements is encrypted at rest.
type ProgressInput struct {
	UserID       uuid.UUID
	Weight       decimal.Decimal
	Measurements *string
	Date         time.Time
}

// ProgressPatch carries a partial update; nil fields are left untouched.
type ProgressPatch struct {
	Weight       *decimal.Decimal
	Measurements *string
	Date         *time.Time
}

// ProgressService exposes CRUD over progress entries.
type ProgressService interface {
	Create(ctx context.Context, in ProgressInput) (*model.ProgressEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ProgressEntry, error)
	List(ctx context.Context) ([]model.ProgressEntry, error)
	Patch(ctx context.Context, id uuid.UUID, patch ProgressPatch) (*model.ProgressEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type progressService struct {
	repo      repository.ProgressRepository
	protector *protect.FieldProtector
	timeout   time.Duration
}

// NewProgressService builds a ProgressService.
func NewProgressService(repo repository.ProgressRepository, protector *protect.FieldProtector, timeout time.Duration) ProgressService {
	return &progressService{repo: repo, protector: protector, timeout: timeout}
}

func (s *progressService) Create(ctx context.Context, in ProgressInput) (*model.ProgressEntry, error) {
	if in.UserID == uuid.Nil || in.Weight.LessThanOrEqual(decimal.Zero) || in.Date.IsZero() {
		return nil, apperrors.ErrValidation
	}

	entry := &model.ProgressEntry{
		UserID:       in.UserID,
		Weight:       in.Weight,
		Measurements: in.Measurements,
		Date:         in.Date,
	}
	if err := s.protector.Protect(entry); err != nil {
		return nil, fmt.Errorf("protect progress fields: %w", err)
	}

	createCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Create(createCtx, entry); err != nil {
		return nil, fmt.Errorf("create progress entry: %w", mapRepoErr(err))
	}

	if err := s.protector.Reveal(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *progressService) Get(ctx context.Context, id uuid.UUID) (*model.ProgressEntry, error) {
	findCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	entry, err := s.repo.FindByID(findCtx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if err := s.protector.Reveal(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *progressService) List(ctx context.Context) ([]model.ProgressEntry, error) {
	listCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	entries, err := s.repo.List(listCtx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	for i := range entries {
		if err := s.protector.Reveal(&entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Patch transforms only the supplied fields; stored fields are neither
// re-encrypted nor decrypted.
func (s *progressService) Patch(ctx context.Context, id uuid.UUID, patch ProgressPatch) (*model.ProgressEntry, error) {
	updates := make(map[string]any)
	if patch.Weight != nil {
		updates["weight"] = *patch.Weight
	}
	if patch.Measurements != nil {
		ct, err := s.protector.EncryptValue(*patch.Measurements)
		if err != nil {
			return nil, err
		}
		updates["measurements"] = ct
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
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

func (s *progressService) Delete(ctx context.Context, id uuid.UUID) error {
	delCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	return mapRepoErr(s.repo.Delete(delCtx, id))
}
