// Package list отдаёт администратору все записи.
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
	List(ctx context.Context) ([]*models.Appointment, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все записи
// @Tags Admin
// @Produce  json
// @Success 200 {array} models.Appointment "Записи"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/admin/appointments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	appts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list appointments", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch appointments"))
		return
	}

	log.Info("appointments listed", slog.Int("count", len(appts)))
	render.JSON(w, r, appts)
}
