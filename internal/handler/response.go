package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"busline/internal/registry"
	"busline/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps registry/service errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, registry.ErrBusNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, registry.ErrInvalidCapacity),
		errors.Is(err, registry.ErrInvalidCostPerSeat),
		errors.Is(err, registry.ErrInvalidSafetyRating),
		errors.Is(err, registry.ErrInvalidRoute),
		errors.Is(err, registry.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidPassengerName),
		errors.Is(err, service.ErrInvalidSeatCount):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, registry.ErrDuplicateBusNo),
		errors.Is(err, service.ErrNotEnoughSeats):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
