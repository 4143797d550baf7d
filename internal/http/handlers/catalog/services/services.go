// Package services отдаёт прайс-лист.
package services

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
	Services(ctx context.Context) ([]*models.Service, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прайс-лист
// @Tags Services
// @Produce  json
// @Success 200 {array} models.Service "Услуги"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.services"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	services, err := h.service.Services(r.Context())
	if err != nil {
		log.Error("failed to fetch services", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch services"))
		return
	}

	render.JSON(w, r, services)
}
