// Package create реализует HTTP-обработчик записи клиента на слот.
//
// Handler декодирует JSON, валидирует поля и передаёт запись сервису бронирования.
// Занятый слот отдаётся как 409, ошибки валидации как 400.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/http/validation"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/services/booking"
)

// Handler управляет HTTP-запросами на создание записи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бронирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Book(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на приём
// @Description Создаёт запись на свободный слот. На один слот (дата, время) допускается одна запись.
// @Tags Appointments
// @Accept  json
// @Produce  json
// @Param request body models.DummyAppointment true "Данные записи"
// @Success 201 {object} models.Appointment "Созданная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Слот уже занят"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/appointments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAppointment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	appt, err := h.service.Book(r.Context(), req.Input())
	if errors.Is(err, booking.ErrInvalidSlot) {
		log.Info("invalid slot", slog.String("date", req.Date), slog.String("time", req.Time))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date or time slot"))
		return
	}
	if errors.Is(err, booking.ErrSlotTaken) {
		log.Info("slot already booked", slog.String("date", req.Date), slog.String("time", req.Time))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("This time slot is already booked. Please select another time."))
		return
	}
	if err != nil {
		log.Error("failed to create appointment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to create appointment"))
		return
	}

	log.Info("appointment created", slog.Int("id", appt.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, appt)
}
