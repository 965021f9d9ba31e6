package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes carried in every error body.
const (
	codeNotFound           = "NOT_FOUND"
	codeAlreadyAssigned    = "ALREADY_ASSIGNED"
	codeAgentUnavailable   = "AGENT_UNAVAILABLE"
	codeOrderNotReady      = "ORDER_NOT_READY"
	codeAlreadyCompleted   = "ALREADY_COMPLETED"
	codeInvalidCode        = "INVALID_CODE"
	codeInvalidCoordinates = "INVALID_COORDINATES"
	codeInvalidTransition  = "INVALID_TRANSITION"
	codeNotAssigned        = "NOT_ASSIGNED"
	codeValidation         = "VALIDATION"
	codeInternal           = "INTERNAL"
)

// classify maps a use case error to an HTTP status and error code.
// ErrInvalidCoordinates wraps the generic invalid-value sentinel, so it
// has to be matched before the validation fallthrough.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, commands.ErrOrderAlreadyClaimed),
		errors.Is(err, commands.ErrOrderAlreadyYours),
		errors.Is(err, order.ErrPilotAlreadyAssigned):
		return http.StatusBadRequest, codeAlreadyAssigned
	case errors.Is(err, commands.ErrPilotUnavailable):
		return http.StatusBadRequest, codeAgentUnavailable
	case errors.Is(err, commands.ErrOrderNotReady):
		return http.StatusBadRequest, codeOrderNotReady
	case errors.Is(err, commands.ErrOrderAlreadyCompleted):
		return http.StatusBadRequest, codeAlreadyCompleted
	case errors.Is(err, services.ErrInvalidCode):
		return http.StatusBadRequest, codeInvalidCode
	case errors.Is(err, kernel.ErrInvalidCoordinates):
		return http.StatusBadRequest, codeInvalidCoordinates
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusBadRequest, codeInvalidTransition
	case errors.Is(err, order.ErrNotAssignedPilot):
		return http.StatusBadRequest, codeNotAssigned
	case errors.Is(err, commands.ErrRatingIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, codeValidation
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeError renders err as the uniform error body. Internal errors keep
// their details out of the response.
func writeError(ctx echo.Context, err error) error {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		return ctx.JSON(status, ErrorResponse{Code: code, Message: "internal error"})
	}
	return ctx.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

func writeValidationError(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    codeValidation,
		Message: err.Error(),
	})
}
