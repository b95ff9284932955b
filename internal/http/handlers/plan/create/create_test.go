package create

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Generate(ctx context.Context, userUID string, req models.GeneratePlanRequest) (*models.GeneratedPlan, error) {
	args := m.Called(ctx, userUID, req)
	res, _ := args.Get(0).(*models.GeneratedPlan)
	return res, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	start, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)

	generated := &models.GeneratedPlan{
		Plan: &models.MealPlan{
			ID:        10,
			UserUID:   "uid-1",
			StartDate: start,
			EndDate:   start.AddDays(1),
			Items: []models.MealPlanItem{
				{ID: 1, MealPlanID: 10, ExternalID: "52772", MealDate: start, MealType: models.Breakfast},
			},
		},
		RequestedSlots: 6,
		FilledSlots:    1,
	}

	tests := []struct {
		name       string
		body       string
		userUID    string
		setupMock  func(m *MockService)
		wantStatus int
	}{
		{
			name:    "успешная генерация",
			body:    `{"days":2,"start_date":"2024-01-01","ingredient":"chicken"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Generate", mock.Anything, "uid-1", mock.MatchedBy(func(req models.GeneratePlanRequest) bool {
					return req.Days == 2 && req.StartDate != nil && req.StartDate.String() == "2024-01-01" &&
						req.Ingredient != nil && *req.Ingredient == "chicken"
				})).Return(generated, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "без пользователя",
			body:       `{"days":2}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "days не указан",
			body:       `{}`,
			userUID:    "uid-1",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "неверная дата",
			body:       `{"days":1,"start_date":"01.01.2024"}`,
			userUID:    "uid-1",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "слишком много дней",
			body:    `{"days":400}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Generate", mock.Anything, "uid-1", mock.Anything).Return(nil, models.ErrValidation).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.userUID))
			}
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp struct {
					Data models.GeneratedPlan `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, 6, resp.Data.RequestedSlots)
				assert.Equal(t, 1, resp.Data.FilledSlots)
				assert.Equal(t, "2024-01-02", resp.Data.Plan.EndDate.String())
				assert.Equal(t, "52772", resp.Data.Plan.Items[0].ExternalID)
			}
			svc.AssertExpectations(t)
		})
	}
}
