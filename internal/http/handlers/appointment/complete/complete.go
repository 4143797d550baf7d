// Package complete отмечает запись выполненной.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Complete(ctx context.Context, id int) (*models.Appointment, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отметить запись выполненной
// @Tags Admin
// @Produce  json
// @Param id path int true "ID записи"
// @Success 200 {object} models.Appointment "Обновлённая запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/admin/appointments/{id}/complete [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("invalid id format", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid appointment ID"))
		return
	}

	appt, err := h.service.Complete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Appointment not found"))
		return
	}
	if err != nil {
		log.Error("failed to update appointment status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to update appointment status"))
		return
	}

	log.Info("appointment completed", slog.Int("id", id))
	render.JSON(w, r, appt)
}
