// Package list отдаёт администратору сообщения обратной связи.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context) ([]*models.ContactMessage, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сообщения обратной связи
// @Tags Admin
// @Produce  json
// @Success 200 {array} models.ContactMessage "Сообщения"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/admin/contact-messages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	msgs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list contact messages", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch contact messages"))
		return
	}

	render.JSON(w, r, msgs)
}
