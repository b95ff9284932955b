// Package profile учётная запись текущего пользователя.
package profile

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type Service interface {
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

type Handler struct {
	log        *slog.Logger
	authClient Service
}

func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	user, err := h.authClient.Profile(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid":   user.UUID,
		"username":   user.Username,
		"full_name":  user.FullName,
		"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
	}))
}
