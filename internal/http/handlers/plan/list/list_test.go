package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.MealPlan, error) {
	args := m.Called(ctx, userUID, limit, offset)
	res, _ := args.Get(0).([]*models.MealPlan)
	return res, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		url        string
		setupMock  func(m *MockService)
		wantStatus int
	}{
		{
			name: "с пагинацией",
			url:  "/plans?limit=5&offset=10",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, "uid-1", 5, 10).Return([]*models.MealPlan{{ID: 1}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "без параметров",
			url:  "/plans",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, "uid-1", 0, 0).Return([]*models.MealPlan{}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "нечисловой limit",
			url:        "/plans?limit=ten",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(middlewarectx.WithUser(req.Context(), "uid-1"))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
