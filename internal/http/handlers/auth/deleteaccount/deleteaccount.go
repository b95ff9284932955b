// Package deleteaccount удаление учётной записи текущего пользователя.
//
// Планы, слоты, пользовательские рецепты и отзывы удаляются каскадно.
// Все выпущенные пользователю токены после удаления отклоняются.
package deleteaccount

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
)

// Service удаляет учётную запись и отзывает её токены.
type Service interface {
	DeleteUser(ctx context.Context, userUID string) error
}

// Handler обрабатывает DELETE /me.
type Handler struct {
	log        *slog.Logger
	authClient Service
}

// New создаёт обработчик удаления учётной записи.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Удаление учётной записи
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /me [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.deleteaccount"

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

	if err := h.authClient.DeleteUser(r.Context(), userUID); err != nil {
		log.Error("failed to delete user", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("account deleted", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": userUID,
		"message":  "account deleted",
	}))
}
