package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fittrack/internal/service"
)

// NutritionPlanHandler bundles nutrition plan endpoints.
type NutritionPlanHandler struct {
	svc service.NutritionPlanService
}

// NewNutritionPlanHandler creates a handler layer.
func NewNutritionPlanHandler(svc service.NutritionPlanService) *NutritionPlanHandler {
	return &NutritionPlanHandler{svc: svc}
}

// CreateNutritionPlanRequest represents a nutrition plan create request.
type CreateNutritionPlanRequest struct {
	UserID      string  `json:"user_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
}

// PatchNutritionPlanRequest represents a partial update; absent fields are
// left untouched.
type PatchNutritionPlanRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// Create godoc
// @Summary Create nutrition plan
// @Tags nutrition_plans
// @Accept json
// @Produce json
// @Param request body CreateNutritionPlanRequest true "Nutrition plan"
// @Success 201 {object} model.NutritionPlan
// @Failure 400 {object} errors.ErrorResponse
// @Router /nutrition_plans [post]
func (h *NutritionPlanHandler) Create(c echo.Context) error {
	var req CreateNutritionPlanRequest
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

	plan, err := h.svc.Create(c.Request().Context(), service.NutritionPlanInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// Get godoc
// @Summary Get nutrition plan by id
// @Tags nutrition_plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.NutritionPlan
// @Failure 404 {object} errors.ErrorResponse
// @Router /nutrition_plans/{id} [get]
func (h *NutritionPlanHandler) Get(c echo.Context) error {
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
// @Summary List nutrition plans
// @Tags nutrition_plans
// @Produce json
// @Success 200 {array} model.NutritionPlan
// @Router /nutrition_plans [get]
func (h *NutritionPlanHandler) List(c echo.Context) error {
	plans, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plans)
}

// Patch godoc
// @Summary Partially update a nutrition plan
// @Tags nutrition_plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body PatchNutritionPlanRequest true "Fields to update"
// @Success 200 {object} model.NutritionPlan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /nutrition_plans/{id} [patch]
func (h *NutritionPlanHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PatchNutritionPlanRequest
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

	plan, err := h.svc.Patch(c.Request().Context(), id, service.NutritionPlanPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete godoc
// @Summary Delete a nutrition plan
// @Tags nutrition_plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /nutrition_plans/{id} [delete]
func (h *NutritionPlanHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "plan deleted"})
}
