package api

import (
	"errors"
	"net/http"

	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/handler/httperr"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{errs.ErrBookedByRequired, http.StatusBadRequest, "Invalid request"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrInvalidInterval, http.StatusBadRequest, "Invalid interval: end time must be after start time"},
	{errs.ErrResourceNotFound, http.StatusNotFound, "Resource not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrResourceUnavailable, http.StatusUnprocessableEntity, "Resource is unavailable"},
	{errs.ErrResourceHasBookings, http.StatusConflict, "Resource has bookings"},
}

// abortWithUseCaseError maps use-case errors onto HTTP responses.
func abortWithUseCaseError(c *gin.Context, err error) {
	var conflictErr *commands.ConflictError
	if errors.As(err, &conflictErr) {
		httperr.AbortWithConflict(c, err, "Booking conflict", resdto.FromConflictError(conflictErr))
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
