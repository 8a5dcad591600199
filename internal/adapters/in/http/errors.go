package http

import (
	"errors"
	"net/http"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body every endpoint returns on failure. Code is
// machine-readable; Message is for humans and never echoes raw internals.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use case error to its HTTP status and stable error code.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrDeliveryNotFound),
		errors.Is(err, commands.ErrRiderNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    "not_found",
			Message: err.Error(),
		})

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderNotReadyForDelivery):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    "invalid_transition",
			Message: err.Error(),
		})

	case errors.Is(err, rider.ErrRiderUnavailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    "rider_unavailable",
			Message: err.Error(),
		})

	case errors.Is(err, delivery.ErrAlreadyAssigned):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    "already_assigned",
			Message: err.Error(),
		})

	case errors.Is(err, ports.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    "conflict",
			Message: "resource was modified concurrently, retry the request",
		})

	case errors.Is(err, order.ErrTotalInvariantViolated),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    "invalid_request",
			Message: err.Error(),
		})

	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    "internal",
			Message: "internal server error",
		})
	}
}

// badRequest reports a malformed payload without going through error mapping.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    "invalid_request",
		Message: message,
	})
}
