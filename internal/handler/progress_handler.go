package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fittrack/internal/service"
)

// ProgressHandler bundles progress tracking endpoints.
type ProgressHandler struct {
	svc service.ProgressService
}

// NewProgressHandler creates a handler layer.
func NewProgressHandler(svc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// CreateProgressRequest represents a progress entry create request.
type CreateProgressRequest struct {
	UserID       string          `json:"user_id" validate:"required,uuid"`
	Weight       decimal.Decimal `json:"weight" validate:"required"`
	Measurements *string         `json:"measurements,omitempty"`
	Date         string          `json:"date" validate:"required"`
}

// PatchProgressRequest represents a partial update; absent fields are left
// untouched.
type PatchProgressRequest struct {
	Weight       *decimal.Decimal `json:"weight,omitempty"`
	Measurements *string          `json:"measurements,omitempty"`
	Date         *string          `json:"date,omitempty"`
}

// Create godoc
// @Summary Create progress entry
// @Tags progress_tracking
// @Accept json
// @Produce json
// @Param request body CreateProgressRequest true "Progress entry"
// @Success 201 {object} model.ProgressEntry
// @Failure 400 {object} errors.ErrorResponse
// @Router /progress_tracking [post]
func (h *ProgressHandler) Create(c echo.Context) error {
	var req CreateProgressRequest
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
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	entry, err := h.svc.Create(c.Request().Context(), service.ProgressInput{
		UserID:       userID,
		Weight:       req.Weight,
		Measurements: req.Measurements,
		Date:         date,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// Get godoc
// @Summary Get progress entry by id
// @Tags progress_tracking
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} model.ProgressEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /progress_tracking/{id} [get]
func (h *ProgressHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	entry, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// List godoc
// @Summary List progress entries
// @Tags progress_tracking
// @Produce json
// @Success 200 {array} model.ProgressEntry
// @Router /progress_tracking [get]
func (h *ProgressHandler) List(c echo.Context) error {
	entries, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Patch godoc
// @Summary Partially update a progress entry
// @Tags progress_tracking
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body PatchProgressRequest true "Fields to update"
// @Success 200 {object} model.ProgressEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /progress_tracking/{id} [patch]
func (h *ProgressHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PatchProgressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	date, err := parseDatePtr(req.Date)
	if err != nil {
		return err
	}

	entry, err := h.svc.Patch(c.Request().Context(), id, service.ProgressPatch{
		Weight:       req.Weight,
		Measurements: req.Measurements,
		Date:         date,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a progress entry
// @Tags progress_tracking
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /progress_tracking/{id} [delete]
func (h *ProgressHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "entry deleted"})
}
