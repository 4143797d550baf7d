// Package list отдаёт одобренные отзывы, новые первыми.
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
	Testimonials(ctx context.Context) ([]*models.Testimonial, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отзывы клиентов
// @Tags Testimonials
// @Produce  json
// @Success 200 {array} models.Testimonial "Одобренные отзывы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/testimonials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimonial.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	testimonials, err := h.service.Testimonials(r.Context())
	if err != nil {
		log.Error("failed to list testimonials", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch testimonials"))
		return
	}

	render.JSON(w, r, testimonials)
}
