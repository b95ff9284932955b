// Package logout отзыв токенов текущей сессии.
//
// Отзывается access токен запроса и, если передан, refresh токен из тела.
package logout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
)

type Request struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type Service interface {
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	log        *slog.Logger
	authClient Service
}

func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request false "Refresh токен для отзыва"
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorResponse
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.TokenFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing token"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	tokens := []string{token}
	if req.RefreshToken != "" {
		tokens = append(tokens, req.RefreshToken)
	}
	for _, t := range tokens {
		if err := h.authClient.Logout(r.Context(), t); err != nil {
			log.Error("logout failed", sl.Err(err))
			response.FromError(w, r, err)
			return
		}
	}

	log.Info("session closed", slog.Int("revoked", len(tokens)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "logged out",
	}))
}
