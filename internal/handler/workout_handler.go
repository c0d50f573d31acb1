package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fittrack/internal/service"
)

// WorkoutPlanHandler bundles workout plan endpoints.
type WorkoutPlanHandler struct {
	svc service.WorkoutPlanService
}

// NewWorkoutPlanHandler creates a handler layer.
func NewWorkoutPlanHandler(svc service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{svc: svc}
}

// CreateWorkoutPlanRequest represents a workout plan create request.
type CreateWorkoutPlanRequest struct {
	UserID      string  `json:"user_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
}

// PatchWorkoutPlanRequest represents a partial update; absent fields are
// left untouched.
type PatchWorkoutPlanRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// Create godoc
// @Summary Create workout plan
// @Tags workout_plans
// @Accept json
// @Produce json
// @Param request body CreateWorkoutPlanRequest true "Workout plan"
// @Success 201 {object} model.WorkoutPlan
// @Failure 400 {object} errors.ErrorResponse
// @Router /workout_plans [post]
func (h *WorkoutPlanHandler) Create(c echo.Context) error {
	var req CreateWorkoutPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest("invalid user_id")
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}

	plan, err := h.svc.Create(c.Request().Context(), service.WorkoutPlanInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// Get godoc
// @Summary Get workout plan by id
// @Tags workout_plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.WorkoutPlan
// @Failure 404 {object} errors.ErrorResponse
// @Router /workout_plans/{id} [get]
func (h *WorkoutPlanHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	plan, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// List godoc
// @Summary List workout plans
// @Tags workout_plans
// @Produce json
// @Success 200 {array} model.WorkoutPlan
// @Router /workout_plans [get]
func (h *WorkoutPlanHandler) List(c echo.Context) error {
	plans, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plans)
}

// Patch godoc
// @Summary Partially update a workout plan
// @Tags workout_plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body PatchWorkoutPlanRequest true "Fields to update"
// @Success 200 {object} model.WorkoutPlan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /workout_plans/{id} [patch]
func (h *WorkoutPlanHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PatchWorkoutPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return err
	}

	plan, err := h.svc.Patch(c.Request().Context(), id, service.WorkoutPlanPatch{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete godoc
// @Summary Delete a workout plan
// @Tags workout_plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /workout_plans/{id} [delete]
func (h *WorkoutPlanHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "plan deleted"})
}
