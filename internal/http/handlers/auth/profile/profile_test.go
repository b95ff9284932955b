package profile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type AuthClientMock struct {
	mock.Mock
}

func (m *AuthClientMock) Profile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

func TestProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := &models.User{
		UUID:         "uid-1",
		Username:     "chef",
		FullName:     "Gordon",
		PasswordHash: "secret-hash",
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		userUID    string
		setupMock  func(m *AuthClientMock)
		wantStatus int
	}{
		{
			name:    "found",
			userUID: "uid-1",
			setupMock: func(m *AuthClientMock) {
				m.On("Profile", mock.Anything, "uid-1").Return(user, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "deleted account",
			userUID: "uid-1",
			setupMock: func(m *AuthClientMock) {
				m.On("Profile", mock.Anything, "uid-1").Return(nil, models.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no user in context",
			setupMock:  func(_ *AuthClientMock) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthClientMock)
			tt.setupMock(authMock)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.userUID != "" {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.userUID))
			}
			rec := httptest.NewRecorder()
			New(logger, authMock).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data map[string]any `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "chef", body.Data["username"])
				assert.Equal(t, "Gordon", body.Data["full_name"])
				assert.Equal(t, "2025-03-01T12:00:00Z", body.Data["created_at"])
				assert.NotContains(t, rec.Body.String(), "secret-hash")
			}
			authMock.AssertExpectations(t)
		})
	}
}
