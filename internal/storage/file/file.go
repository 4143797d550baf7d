// Package file реализует хранилище на JSON-файлах: по одному массиву на тип сущности.
//
// Каждая операция целиком читает файл, изменяет массив и целиком записывает его обратно.
// Между процессами блокировок нет, побеждает последняя запись. Внутри процесса
// операции чтения-изменения-записи сериализуются мьютексом.
//
// Отсутствующий или повреждённый файл при чтении считается пустой коллекцией
// и пересоздаётся с пустым массивом. Ошибки записи логируются; если включён
// строгий режим, они дополнительно возвращаются вызывающему.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// Имена файлов в каталоге данных.
const (
	UsersFile           = "users.json"
	AppointmentsFile    = "appointments.json"
	TestimonialsFile    = "testimonials.json"
	ContactMessagesFile = "contact-messages.json"
	ServicesFile        = "services.json"
)

var allFiles = []string{UsersFile, AppointmentsFile, TestimonialsFile, ContactMessagesFile, ServicesFile}

// Storage хранит данные в каталоге dir.
type Storage struct {
	dir    string
	log    *slog.Logger
	strict bool
	mu     sync.Mutex
	now    func() time.Time
}

// Option настраивает Storage.
type Option func(*Storage)

// WithStrictWrites включает возврат ошибок записи вызывающему.
func WithStrictWrites(strict bool) Option {
	return func(s *Storage) {
		s.strict = strict
	}
}

// New создаёт каталог данных и пустые файлы для отсутствующих коллекций.
func New(dir string, log *slog.Logger, opts ...Option) (*Storage, error) {
	const op = "storage.file.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{
		dir: dir,
		log: log.With(slog.String("storage", "file"), slog.String("dir", dir)),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range allFiles {
		path := s.path(name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			s.log.Info("created data file", slog.String("file", name))
		}
	}
	return s, nil
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readAll читает массив из файла. Ошибки не возвращаются: вместо них пустой массив,
// а сам файл перезаписывается пустым массивом.
func readAll[T any](s *Storage, name string) []T {
	data, err := os.ReadFile(s.path(name))
	if err == nil {
		var items []T
		if err = json.Unmarshal(data, &items); err == nil {
			if items == nil {
				items = []T{}
			}
			return items
		}
	}

	s.log.Warn("failed to read data file, using empty collection", slog.String("file", name), sl.Err(err))
	if werr := os.WriteFile(s.path(name), []byte("[]"), 0o644); werr != nil {
		s.log.Error("failed to recreate data file", slog.String("file", name), sl.Err(werr))
	}
	return []T{}
}

// writeAll сериализует и записывает массив целиком.
func writeAll[T any](s *Storage, name string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err == nil {
		err = os.WriteFile(s.path(name), data, 0o644)
	}
	if err != nil {
		s.log.Error("failed to write data file", slog.String("file", name), sl.Err(err))
		if s.strict {
			return err
		}
	}
	return nil
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

func userID(u models.User) int                     { return u.ID }
func appointmentID(a models.Appointment) int       { return a.ID }
func testimonialID(t models.Testimonial) int       { return t.ID }
func contactMessageID(m models.ContactMessage) int { return m.ID }

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.file.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range readAll[models.User](s, UsersFile) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.file.GetUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range readAll[models.User](s, UsersFile) {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// CreateUser сохраняет пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.file.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := readAll[models.User](s, UsersFile)
	user.ID = storage.NextID(users, userID)
	users = append(users, user)
	if err := writeAll(s, UsersFile, users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// CreateAppointment сохраняет новую запись.
func (s *Storage) CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	const op = "storage.file.CreateAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointments := readAll[models.Appointment](s, AppointmentsFile)
	appt := models.Appointment{
		ID:        storage.NextID(appointments, appointmentID),
		Date:      in.Date,
		Time:      in.Time,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Service:   in.Service,
		Notes:     in.Notes,
		Completed: false,
		CreatedAt: s.now(),
	}
	appointments = append(appointments, appt)
	if err := writeAll(s, AppointmentsFile, appointments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &appt, nil
}

// GetAppointments возвращает все записи в порядке хранения в файле.
func (s *Storage) GetAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return s.filterAppointments(ctx, "storage.file.GetAppointments", func(models.Appointment) bool { return true })
}

// GetAppointmentsByDate возвращает записи на указанную дату.
func (s *Storage) GetAppointmentsByDate(ctx context.Context, date string) ([]*models.Appointment, error) {
	return s.filterAppointments(ctx, "storage.file.GetAppointmentsByDate", func(a models.Appointment) bool {
		return a.Date == date
	})
}

func (s *Storage) filterAppointments(ctx context.Context, op string, keep func(models.Appointment) bool) ([]*models.Appointment, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointments := readAll[models.Appointment](s, AppointmentsFile)
	result := make([]*models.Appointment, 0, len(appointments))
	for i := range appointments {
		if keep(appointments[i]) {
			result = append(result, &appointments[i])
		}
	}
	return result, nil
}

// GetAppointmentByID возвращает запись по ID.
func (s *Storage) GetAppointmentByID(ctx context.Context, id int) (*models.Appointment, error) {
	const op = "storage.file.GetAppointmentByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, appt := range readAll[models.Appointment](s, AppointmentsFile) {
		if appt.ID == id {
			return &appt, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// DeleteAppointment удаляет запись по ID.
func (s *Storage) DeleteAppointment(ctx context.Context, id int) (bool, error) {
	const op = "storage.file.DeleteAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointments := readAll[models.Appointment](s, AppointmentsFile)
	kept := make([]models.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.ID != id {
			kept = append(kept, appt)
		}
	}
	if err := writeAll(s, AppointmentsFile, kept); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return len(kept) < len(appointments), nil
}

// UpdateAppointmentStatus меняет признак выполнения записи.
func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id int, completed bool) (*models.Appointment, error) {
	const op = "storage.file.UpdateAppointmentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appointments := readAll[models.Appointment](s, AppointmentsFile)
	for i := range appointments {
		if appointments[i].ID != id {
			continue
		}
		appointments[i].Completed = completed
		if err := writeAll(s, AppointmentsFile, appointments); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		appt := appointments[i]
		return &appt, nil
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// CreateTestimonial сохраняет отзыв с approved=true.
func (s *Storage) CreateTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error) {
	const op = "storage.file.CreateTestimonial"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	testimonials := readAll[models.Testimonial](s, TestimonialsFile)
	t := models.Testimonial{
		ID:        storage.NextID(testimonials, testimonialID),
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Approved:  true,
		CreatedAt: s.now(),
	}
	testimonials = append(testimonials, t)
	if err := writeAll(s, TestimonialsFile, testimonials); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// GetApprovedTestimonials возвращает одобренные отзывы, новые первыми.
func (s *Storage) GetApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "storage.file.GetApprovedTestimonials"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	testimonials := readAll[models.Testimonial](s, TestimonialsFile)
	result := make([]*models.Testimonial, 0, len(testimonials))
	for i := range testimonials {
		if testimonials[i].Approved {
			result = append(result, &testimonials[i])
		}
	}
	storage.SortNewestFirst(result)
	return result, nil
}

// CreateContactMessage сохраняет сообщение обратной связи.
func (s *Storage) CreateContactMessage(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error) {
	const op = "storage.file.CreateContactMessage"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	messages := readAll[models.ContactMessage](s, ContactMessagesFile)
	msg := models.ContactMessage{
		ID:        storage.NextID(messages, contactMessageID),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	messages = append(messages, msg)
	if err := writeAll(s, ContactMessagesFile, messages); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &msg, nil
}

// GetContactMessages возвращает все сообщения в порядке хранения в файле.
func (s *Storage) GetContactMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	const op = "storage.file.GetContactMessages"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	messages := readAll[models.ContactMessage](s, ContactMessagesFile)
	result := make([]*models.ContactMessage, 0, len(messages))
	for i := range messages {
		result = append(result, &messages[i])
	}
	return result, nil
}

// DeleteContactMessage удаляет сообщение по ID.
func (s *Storage) DeleteContactMessage(ctx context.Context, id int) (bool, error) {
	const op = "storage.file.DeleteContactMessage"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	messages := readAll[models.ContactMessage](s, ContactMessagesFile)
	kept := make([]models.ContactMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	if err := writeAll(s, ContactMessagesFile, kept); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return len(kept) < len(messages), nil
}

// GetServices возвращает прайс-лист.
func (s *Storage) GetServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.file.GetServices"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	services := readAll[models.Service](s, ServicesFile)
	result := make([]*models.Service, 0, len(services))
	for i := range services {
		result = append(result, &services[i])
	}
	return result, nil
}

// Seed заполняет пустые файлы пользователей, услуг и отзывов.
func (s *Storage) Seed(ctx context.Context, admin models.User) error {
	const op = "storage.file.Seed"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(readAll[models.User](s, UsersFile)) == 0 {
		admin.ID = 1
		if err := writeAll(s, UsersFile, []models.User{admin}); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("seeded admin user", slog.String("username", admin.Username))
	}
	if len(readAll[models.Service](s, ServicesFile)) == 0 {
		if err := writeAll(s, ServicesFile, storage.SeedServices()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("seeded services")
	}
	if len(readAll[models.Testimonial](s, TestimonialsFile)) == 0 {
		if err := writeAll(s, TestimonialsFile, storage.SeedTestimonials(s.now())); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("seeded testimonials")
	}
	return nil
}

// Close ничего не делает: файлы не держатся открытыми между операциями.
func (s *Storage) Close() error {
	return nil
}
