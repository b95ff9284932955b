package refresh

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

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type AuthClientMock struct {
	mock.Mock
}

func (m *AuthClientMock) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	res, _ := args.Get(0).(*models.TokenPair)
	return res, args.Error(1)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		body       string
		setupMock  func(m *AuthClientMock)
		wantStatus int
		wantAccess string
	}{
		{
			name: "rotated",
			body: `{"refresh_token":"old"}`,
			setupMock: func(m *AuthClientMock) {
				m.On("Refresh", mock.Anything, "old").Return(&models.TokenPair{
					AccessToken:  "acc",
					RefreshToken: "new",
					TokenType:    "Bearer",
					ExpiresIn:    900,
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantAccess: "acc",
		},
		{
			name: "reused or revoked token",
			body: `{"refresh_token":"old"}`,
			setupMock: func(m *AuthClientMock) {
				m.On("Refresh", mock.Anything, "old").Return(nil, models.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "auth service unavailable",
			body: `{"refresh_token":"old"}`,
			setupMock: func(m *AuthClientMock) {
				m.On("Refresh", mock.Anything, "old").Return(nil, models.ErrServiceUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "missing token",
			body:       `{}`,
			setupMock:  func(_ *AuthClientMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "broken json",
			body:       `{"refresh_token":`,
			setupMock:  func(_ *AuthClientMock) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthClientMock)
			tt.setupMock(authMock)

			req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			New(logger, authMock).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantAccess != "" {
				var body struct {
					Data map[string]any `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantAccess, body.Data["access_token"])
				assert.Equal(t, "new", body.Data["refresh_token"])
			}
			authMock.AssertExpectations(t)
		})
	}
}
