package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "fittrack/internal/errors"
)

// dateLayout is the wire format for plan and progress dates.
const dateLayout = "2006-01-02"

// respondError translates a domain error into the standardized response.
func respondError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// badRequest returns a 400 with the validation code.
func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  "VALIDATION_ERROR",
	})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, badRequest("invalid id")
	}
	return id, nil
}

// parseDate parses a required YYYY-MM-DD value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, badRequest("invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}

// parseDatePtr parses an optional YYYY-MM-DD value.
func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
