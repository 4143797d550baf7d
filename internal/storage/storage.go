// Package storage описывает единый контракт хранилища сайта барбершопа
// и общие для всех реализаций вещи: ошибки и начальные данные (seed).
//
// Реализации лежат во вложенных пакетах: memory (в памяти процесса),
// file (JSON-файлы на диске) и postgresql (реляционная БД).
// Пересечение слотов хранилище не проверяет, это делает сервис бронирования.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/barbershop/internal/models"
)

// ErrNotFound возвращается, если запись с указанным идентификатором или именем отсутствует.
var ErrNotFound = errors.New("not found")

// Storage определяет методы для работы с данными сайта в хранилище.
type Storage interface {
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser сохраняет пользователя и возвращает его с присвоенным ID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// CreateAppointment сохраняет запись с completed=false и текущим createdAt.
	CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
	// GetAppointments возвращает все записи.
	GetAppointments(ctx context.Context) ([]*models.Appointment, error)
	// GetAppointmentByID возвращает запись по ID.
	GetAppointmentByID(ctx context.Context, id int) (*models.Appointment, error)
	// GetAppointmentsByDate возвращает записи, у которых дата совпадает со строкой date.
	GetAppointmentsByDate(ctx context.Context, date string) ([]*models.Appointment, error)
	// DeleteAppointment удаляет запись и сообщает, существовала ли она.
	DeleteAppointment(ctx context.Context, id int) (bool, error)
	// UpdateAppointmentStatus меняет признак completed; ErrNotFound, если записи нет.
	UpdateAppointmentStatus(ctx context.Context, id int, completed bool) (*models.Appointment, error)

	// CreateTestimonial сохраняет отзыв сразу одобренным.
	CreateTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error)
	// GetApprovedTestimonials возвращает одобренные отзывы, новые первыми.
	GetApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error)

	// CreateContactMessage сохраняет сообщение обратной связи.
	CreateContactMessage(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error)
	// GetContactMessages возвращает все сообщения обратной связи.
	GetContactMessages(ctx context.Context) ([]*models.ContactMessage, error)
	// DeleteContactMessage удаляет сообщение и сообщает, существовало ли оно.
	DeleteContactMessage(ctx context.Context, id int) (bool, error)

	// GetServices возвращает прайс-лист.
	GetServices(ctx context.Context) ([]*models.Service, error)

	// Seed заполняет пустые коллекции начальными данными. Повторный вызов ничего не меняет.
	Seed(ctx context.Context, admin models.User) error
	// Close освобождает ресурсы хранилища.
	Close() error
}
