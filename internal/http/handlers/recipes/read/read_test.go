package read

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

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID string, recipeID int) (*models.CustomRecipe, error) {
	args := m.Called(ctx, userUID, recipeID)
	res, _ := args.Get(0).(*models.CustomRecipe)
	return res, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		id         string
		userUID    string
		setupMock  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "свой рецепт",
			id:      "4",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", 4).
					Return(&models.CustomRecipe{ID: 4, UserUID: "uid-1", Name: "Borscht"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"name":"Borscht"`,
		},
		{
			name:    "чужой рецепт",
			id:      "4",
			userUID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-2", 4).Return(nil, models.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "некорректный id",
			id:         "0",
			userUID:    "uid-1",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "нет пользователя",
			id:         "4",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/recipes/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = middlewarectx.WithUser(ctx, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
