// Package taken отдаёт занятые слоты на дату. Наружу уходят только метки времени.
package taken

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	TakenSlots(ctx context.Context, date string) ([]string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Занятые слоты на дату
// @Tags Appointments
// @Produce  json
// @Param date path string true "Дата в формате 2006-01-02"
// @Success 200 {array} string "Метки занятых слотов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/appointments/date/{date} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.taken"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := chi.URLParam(r, "date")
	taken, err := h.service.TakenSlots(r.Context(), date)
	if err != nil {
		log.Error("failed to get taken slots", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch appointments"))
		return
	}

	render.JSON(w, r, taken)
}
