package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListForRecipe(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error) {
	args := m.Called(ctx, externalID, limit, offset)
	res, _ := args.Get(0).([]*models.Review)
	return res, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		target       string
		setupMock    func(m *MockService)
		wantStatus   int
		wantContains []string
	}{
		{
			name:   "default page",
			target: "/reviews/recipe/52772",
			setupMock: func(m *MockService) {
				m.On("ListForRecipe", mock.Anything, "52772", 0, 0).Return([]*models.Review{
					{ID: 1, ExternalID: "52772", Rating: 4, Username: "anna"},
					{ID: 2, ExternalID: "52772", Rating: 2, Username: "boris"},
				}, nil).Once()
			},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"count":2`, "boris"},
		},
		{
			name:   "explicit page",
			target: "/reviews/recipe/52772?limit=1&offset=1",
			setupMock: func(m *MockService) {
				m.On("ListForRecipe", mock.Anything, "52772", 1, 1).Return([]*models.Review{
					{ID: 2, ExternalID: "52772", Rating: 2, Username: "boris"},
				}, nil).Once()
			},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"count":1`},
		},
		{
			name:       "bad limit",
			target:     "/reviews/recipe/52772?limit=ten",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "negative offset",
			target: "/reviews/recipe/52772?offset=-1",
			setupMock: func(m *MockService) {
				m.On("ListForRecipe", mock.Anything, "52772", 0, -1).Return(nil, models.ErrValidation).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Get("/reviews/recipe/{externalID}", New(logger, svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			for _, want := range tt.wantContains {
				assert.Contains(t, w.Body.String(), want)
			}
			svc.AssertExpectations(t)
		})
	}
}
