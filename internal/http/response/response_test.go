package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrValidation, http.StatusBadRequest},
		{models.ErrUsernameTaken, http.StatusConflict},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrInvalidToken, http.StatusUnauthorized},
		{models.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{models.ErrUpstreamFormat, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(fmt.Errorf("op: %w", tt.err)))
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("services.planner.Update: %w", fmt.Errorf("%w: end_date is before start_date", models.ErrValidation))
	assert.Equal(t, "validation error: end_date is before start_date", Message(err))
	assert.Equal(t, "internal error", Message(errors.New("pq: password authentication failed")))
}

func TestFromError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plans/1", nil)
	w := httptest.NewRecorder()

	FromError(w, req, fmt.Errorf("storage.GetPlan: %w", models.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"not found"}`, w.Body.String())
}

func TestValidationError(t *testing.T) {
	type request struct {
		Days     int    `json:"days" validate:"required,min=1"`
		MealType string `json:"meal_type" validate:"oneof=breakfast lunch dinner"`
	}
	err := validator.New().Struct(request{MealType: "brunch"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Days is a required field")
	assert.Contains(t, resp.Error, "field MealType must be one of [breakfast lunch dinner]")
}
