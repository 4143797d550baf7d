// Package available отдаёт свободные слоты рабочего дня на дату.
package available

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/lib/slots"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	AvailableSlots(ctx context.Context, date string) ([]string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Свободные слоты на дату
// @Tags Appointments
// @Produce  json
// @Param date path string true "Дата в формате 2006-01-02"
// @Success 200 {array} string "Метки свободных слотов"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/appointments/available/{date} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.available"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := chi.URLParam(r, "date")
	if !slots.IsDate(date) {
		log.Info("invalid date", slog.String("date", date))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date, expected YYYY-MM-DD"))
		return
	}

	available, err := h.service.AvailableSlots(r.Context(), date)
	if err != nil {
		log.Error("failed to get available slots", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch appointments"))
		return
	}

	render.JSON(w, r, available)
}
