// Package booking реализует запись клиентов на слоты.
//
// На один слот (дата, время) допускается не больше одной записи. Проверка
// занятости и создание записи выполняются под блокировкой слота из slotlock;
// что именно сериализуется, зависит от переданной реализации Locker.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/barbershop/internal/lib/slots"
	"github.com/magabrotheeeer/barbershop/internal/metrics"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/slotlock"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

var (
	// ErrSlotTaken означает, что на слот уже есть запись.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrInvalidSlot означает дату не в формате 2006-01-02 или время вне сетки слотов.
	ErrInvalidSlot = errors.New("invalid appointment slot")
)

// ConflictError описывает занятый слот. errors.Is(err, ErrSlotTaken) для него истинно.
type ConflictError struct {
	Date string
	Time string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is already booked", e.Date, e.Time)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}

// AppointmentRepository — часть хранилища, нужная сервису записи.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
	GetAppointments(ctx context.Context) ([]*models.Appointment, error)
	GetAppointmentsByDate(ctx context.Context, date string) ([]*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) (bool, error)
	UpdateAppointmentStatus(ctx context.Context, id int, completed bool) (*models.Appointment, error)
}

// Service управляет записями на приём.
type Service struct {
	repo    AppointmentRepository
	locker  slotlock.Locker
	metrics *metrics.Metrics
	log     *slog.Logger
}

// New создаёт сервис. m может быть nil.
func New(repo AppointmentRepository, locker slotlock.Locker, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		locker:  locker,
		metrics: m,
		log:     log,
	}
}

// Book создаёт запись, если слот свободен, иначе возвращает *ConflictError.
// Слот вне сетки отклоняется с ErrInvalidSlot до взятия блокировки.
func (s *Service) Book(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	const op = "services.booking.Book"

	if !slots.IsDate(in.Date) || !slots.IsLabel(in.Time) {
		return nil, fmt.Errorf("%s: %w: %q %q", op, ErrInvalidSlot, in.Date, in.Time)
	}

	unlock, err := s.locker.Lock(ctx, slotlock.Key(in.Date, in.Time))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	existing, err := s.repo.GetAppointmentsByDate(ctx, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, appt := range existing {
		if appt.Time == in.Time {
			s.metrics.BookingConflict()
			s.log.Info("slot already booked",
				slog.String("date", in.Date),
				slog.String("time", in.Time),
				slog.Int("existing_id", appt.ID),
			)
			return nil, &ConflictError{Date: in.Date, Time: in.Time}
		}
	}

	appt, err := s.repo.CreateAppointment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.BookingCreated()
	s.log.Info("appointment booked",
		slog.Int("id", appt.ID),
		slog.String("date", appt.Date),
		slog.String("time", appt.Time),
	)
	return appt, nil
}

// TakenSlots возвращает только метки занятых слотов на дату, без данных клиентов.
func (s *Service) TakenSlots(ctx context.Context, date string) ([]string, error) {
	const op = "services.booking.TakenSlots"

	appts, err := s.repo.GetAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	taken := make([]string, 0, len(appts))
	for _, appt := range appts {
		taken = append(taken, appt.Time)
	}
	return taken, nil
}

// AvailableSlots возвращает свободные слоты рабочего дня на дату.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	const op = "services.booking.AvailableSlots"

	taken, err := s.TakenSlots(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slots.Available(taken), nil
}

// List возвращает все записи.
func (s *Service) List(ctx context.Context) ([]*models.Appointment, error) {
	const op = "services.booking.List"

	appts, err := s.repo.GetAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return appts, nil
}

// Remove удаляет запись. Для неизвестного id возвращает storage.ErrNotFound.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.booking.Remove"

	deleted, err := s.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.log.Info("appointment removed", slog.Int("id", id))
	return nil
}

// Complete отмечает запись выполненной.
func (s *Service) Complete(ctx context.Context, id int) (*models.Appointment, error) {
	const op = "services.booking.Complete"

	appt, err := s.repo.UpdateAppointmentStatus(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("appointment completed", slog.Int("id", id))
	return appt, nil
}
