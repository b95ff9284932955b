package itemremove

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

func (m *MockService) RemoveItem(ctx context.Context, userUID string, planID, itemID int) error {
	return m.Called(ctx, userUID, planID, itemID).Error(0)
}

func TestItemRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		planID     string
		itemID     string
		userUID    string
		setupMock  func(m *MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "slot removed",
			planID:  "1",
			itemID:  "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("RemoveItem", mock.Anything, "uid-1", 1, 5).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"deleted_item_id":5`,
		},
		{
			name:    "slot of another plan",
			planID:  "2",
			itemID:  "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("RemoveItem", mock.Anything, "uid-1", 2, 5).Return(models.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad item id",
			planID:     "1",
			itemID:     "-5",
			userUID:    "uid-1",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no user",
			planID:     "1",
			itemID:     "5",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/plans/"+tt.planID+"/items/"+tt.itemID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.planID)
			rctx.URLParams.Add("itemID", tt.itemID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = middlewarectx.WithUser(ctx, tt.userUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
