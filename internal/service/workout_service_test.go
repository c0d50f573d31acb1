package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/model"
)

// MockWorkoutPlanRepository is a mock implementation of WorkoutPlanRepository.
type MockWorkoutPlanRepository struct {
	mock.Mock
}

func (m *MockWorkoutPlanRepository) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlanRepository) List(ctx context.Context) ([]model.WorkoutPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlanRepository) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkoutPlanService_CreateEncryptsTitleAndDescription(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)

	var persisted model.WorkoutPlan
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.WorkoutPlan")).
		Run(func(args mock.Arguments) {
			persisted = *args.Get(1).(*model.WorkoutPlan)
			if persisted.Description != nil {
				d := *persisted.Description
				persisted.Description = &d
			}
		}).
		Return(nil)

	svc := NewWorkoutPlanService(mockRepo, testProtector(t), time.Second)
	plan, err := svc.Create(context.Background(), WorkoutPlanInput{
		UserID:      uuid.New(),
		Title:       "Beginner Cardio",
		Description: strPtr("A beginner-friendly cardio workout plan."),
		Duration:    30,
		StartDate:   date(2026, time.September, 1),
		EndDate:     date(2026, time.October, 1),
	})
	require.NoError(t, err)

	// Ciphertext went to the repository; plaintext came back to the caller.
	assert.NotEqual(t, "Beginner Cardio", persisted.Title)
	assert.NotEqual(t, "A beginner-friendly cardio workout plan.", *persisted.Description)
	assert.Equal(t, "Beginner Cardio", plan.Title)
	assert.Equal(t, "A beginner-friendly cardio workout plan.", *plan.Description)
	assert.Equal(t, 30, plan.Duration)

	mockRepo.AssertExpectations(t)
}

func TestWorkoutPlanService_CreateValidation(t *testing.T) {
	svc := NewWorkoutPlanService(new(MockWorkoutPlanRepository), testProtector(t), time.Second)

	tests := []struct {
		name  string
		input WorkoutPlanInput
	}{
		{"missing user", WorkoutPlanInput{Title: "t", Duration: 30, StartDate: date(2026, 9, 1), EndDate: date(2026, 10, 1)}},
		{"missing title", WorkoutPlanInput{UserID: uuid.New(), Duration: 30, StartDate: date(2026, 9, 1), EndDate: date(2026, 10, 1)}},
		{"missing duration", WorkoutPlanInput{UserID: uuid.New(), Title: "t", StartDate: date(2026, 9, 1), EndDate: date(2026, 10, 1)}},
		{"missing dates", WorkoutPlanInput{UserID: uuid.New(), Title: "t", Duration: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestWorkoutPlanService_PatchTouchesOnlySuppliedFields(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)
	protector := testProtector(t)
	planID := uuid.New()

	stored := &model.WorkoutPlan{
		ID:        planID,
		UserID:    uuid.New(),
		Title:     "Beginner Cardio",
		Duration:  45,
		StartDate: date(2026, time.September, 1),
		EndDate:   date(2026, time.October, 1),
	}
	require.NoError(t, protector.Protect(stored))

	// Patching only duration must produce an update map with exactly one
	// column; title/description are neither re-encrypted nor decrypted.
	mockRepo.On("Patch", mock.Anything, planID, map[string]any{"duration": 45}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, planID).Return(stored, nil)

	svc := NewWorkoutPlanService(mockRepo, protector, time.Second)
	duration := 45
	plan, err := svc.Patch(context.Background(), planID, WorkoutPlanPatch{Duration: &duration})
	require.NoError(t, err)

	assert.Equal(t, "Beginner Cardio", plan.Title)
	assert.Equal(t, 45, plan.Duration)
	assert.Equal(t, date(2026, time.September, 1), plan.StartDate)

	mockRepo.AssertExpectations(t)
}

func TestWorkoutPlanService_PatchEncryptsSuppliedSensitiveFields(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)
	protector := testProtector(t)
	planID := uuid.New()

	stored := &model.WorkoutPlan{ID: planID, Title: "Strength Training", Duration: 60}
	require.NoError(t, protector.Protect(stored))

	mockRepo.On("Patch", mock.Anything, planID, mock.MatchedBy(func(updates map[string]any) bool {
		title, ok := updates["title"].(string)
		return ok && len(updates) == 1 && title != "Interval Training"
	})).Return(nil)
	mockRepo.On("FindByID", mock.Anything, planID).Return(stored, nil)

	svc := NewWorkoutPlanService(mockRepo, protector, time.Second)
	_, err := svc.Patch(context.Background(), planID, WorkoutPlanPatch{Title: strPtr("Interval Training")})
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestWorkoutPlanService_GetDecrypts(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)
	protector := testProtector(t)
	planID := uuid.New()

	stored := &model.WorkoutPlan{
		ID:          planID,
		Title:       "Strength Training",
		Description: strPtr("An advanced strength training program."),
		Duration:    60,
	}
	require.NoError(t, protector.Protect(stored))
	mockRepo.On("FindByID", mock.Anything, planID).Return(stored, nil)

	svc := NewWorkoutPlanService(mockRepo, protector, time.Second)
	plan, err := svc.Get(context.Background(), planID)
	require.NoError(t, err)
	assert.Equal(t, "Strength Training", plan.Title)
	assert.Equal(t, "An advanced strength training program.", *plan.Description)
}

func TestWorkoutPlanService_GetNotFound(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)
	planID := uuid.New()
	mockRepo.On("FindByID", mock.Anything, planID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewWorkoutPlanService(mockRepo, testProtector(t), time.Second)
	_, err := svc.Get(context.Background(), planID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWorkoutPlanService_DeleteNotFound(t *testing.T) {
	mockRepo := new(MockWorkoutPlanRepository)
	planID := uuid.New()
	mockRepo.On("Delete", mock.Anything, planID).Return(gorm.ErrRecordNotFound)

	svc := NewWorkoutPlanService(mockRepo, testProtector(t), time.Second)
	err := svc.Delete(context.Background(), planID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
