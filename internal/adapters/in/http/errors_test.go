package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"object not found", errs.ErrObjectNotFound, http.StatusNotFound, codeNotFound},
		{"order already claimed", commands.ErrOrderAlreadyClaimed, http.StatusBadRequest, codeAlreadyAssigned},
		{"order already claimed by the same agent", commands.ErrOrderAlreadyYours, http.StatusBadRequest, codeAlreadyAssigned},
		{"pilot already assigned", order.ErrPilotAlreadyAssigned, http.StatusBadRequest, codeAlreadyAssigned},
		{"pilot unavailable", commands.ErrPilotUnavailable, http.StatusBadRequest, codeAgentUnavailable},
		{"order not ready", commands.ErrOrderNotReady, http.StatusBadRequest, codeOrderNotReady},
		{"order already completed", commands.ErrOrderAlreadyCompleted, http.StatusBadRequest, codeAlreadyCompleted},
		{"invalid handoff code", services.ErrInvalidCode, http.StatusBadRequest, codeInvalidCode},
		{"invalid coordinates", kernel.ErrInvalidCoordinates, http.StatusBadRequest, codeInvalidCoordinates},
		{"invalid transition", order.ErrInvalidTransition, http.StatusBadRequest, codeInvalidTransition},
		{"not the assigned pilot", order.ErrNotAssignedPilot, http.StatusBadRequest, codeNotAssigned},
		{"rating out of range", commands.ErrRatingIsOutOfRange, http.StatusBadRequest, codeValidation},
		{"value required", errs.ErrValueIsRequired, http.StatusBadRequest, codeValidation},
		{"value invalid", errs.ErrValueIsInvalid, http.StatusBadRequest, codeValidation},
		{"value out of range", errs.ErrValueIsOutOfRange, http.StatusBadRequest, codeValidation},
		{"unknown error", errors.New("connection refused"), http.StatusInternalServerError, codeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classify(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	t.Run("should classify wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("load order: %w", errs.ErrObjectNotFound)

		status, code := classify(err)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, codeNotFound, code)
	})

	t.Run("should prefer the coordinates code over the validation fallthrough", func(t *testing.T) {
		// ErrInvalidCoordinates wraps the generic invalid-value sentinel.
		require.ErrorIs(t, kernel.ErrInvalidCoordinates, errs.ErrValueIsInvalid)

		_, code := classify(kernel.ErrInvalidCoordinates)

		assert.Equal(t, codeInvalidCoordinates, code)
	})
}

func TestWriteError(t *testing.T) {
	newContext := func() (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("should carry the error message for domain errors", func(t *testing.T) {
		ctx, rec := newContext()

		require.NoError(t, writeError(ctx, services.ErrInvalidCode))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeInvalidCode, body.Code)
		assert.Equal(t, services.ErrInvalidCode.Error(), body.Message)
	})

	t.Run("should mask internal error details", func(t *testing.T) {
		ctx, rec := newContext()

		require.NoError(t, writeError(ctx, errors.New("dial tcp: connection refused")))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, codeInternal, body.Code)
		assert.Equal(t, "internal error", body.Message)
	})
}
