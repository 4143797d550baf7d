// Package memory реализует хранилище в памяти процесса.
// Данные теряются при перезапуске, ID выдаются счётчиком на каждую сущность.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// Storage хранит записи в map по ID под общим RWMutex.
type Storage struct {
	mu sync.RWMutex

	users           map[int]models.User
	appointments    map[int]models.Appointment
	testimonials    map[int]models.Testimonial
	contactMessages map[int]models.ContactMessage
	services        map[int]models.Service

	userID           int
	appointmentID    int
	testimonialID    int
	contactMessageID int

	now func() time.Time
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:           make(map[int]models.User),
		appointments:    make(map[int]models.Appointment),
		testimonials:    make(map[int]models.Testimonial),
		contactMessages: make(map[int]models.ContactMessage),
		services:        make(map[int]models.Service),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// sortedKeys возвращает ключи map по возрастанию, чтобы порядок выдачи был стабильным.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.memory.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &user, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.memory.GetUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedKeys(s.users) {
		if user := s.users[id]; user.Username == username {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// CreateUser сохраняет пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.memory.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID++
	user.ID = s.userID
	s.users[user.ID] = user
	return &user, nil
}

// CreateAppointment сохраняет новую запись.
func (s *Storage) CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	const op = "storage.memory.CreateAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointmentID++
	appt := models.Appointment{
		ID:        s.appointmentID,
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
	s.appointments[appt.ID] = appt
	return &appt, nil
}

// GetAppointments возвращает все записи в порядке ID.
func (s *Storage) GetAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return s.filterAppointments(ctx, "storage.memory.GetAppointments", func(models.Appointment) bool { return true })
}

// GetAppointmentsByDate возвращает записи на указанную дату.
func (s *Storage) GetAppointmentsByDate(ctx context.Context, date string) ([]*models.Appointment, error) {
	return s.filterAppointments(ctx, "storage.memory.GetAppointmentsByDate", func(a models.Appointment) bool {
		return a.Date == date
	})
}

func (s *Storage) filterAppointments(ctx context.Context, op string, keep func(models.Appointment) bool) ([]*models.Appointment, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Appointment, 0, len(s.appointments))
	for _, id := range sortedKeys(s.appointments) {
		appt := s.appointments[id]
		if keep(appt) {
			result = append(result, &appt)
		}
	}
	return result, nil
}

// GetAppointmentByID возвращает запись по ID.
func (s *Storage) GetAppointmentByID(ctx context.Context, id int) (*models.Appointment, error) {
	const op = "storage.memory.GetAppointmentByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &appt, nil
}

// DeleteAppointment удаляет запись по ID.
func (s *Storage) DeleteAppointment(ctx context.Context, id int) (bool, error) {
	const op = "storage.memory.DeleteAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return false, nil
	}
	delete(s.appointments, id)
	return true, nil
}

// UpdateAppointmentStatus меняет признак выполнения записи.
func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id int, completed bool) (*models.Appointment, error) {
	const op = "storage.memory.UpdateAppointmentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	appt.Completed = completed
	s.appointments[id] = appt
	return &appt, nil
}

// CreateTestimonial сохраняет отзыв с approved=true.
func (s *Storage) CreateTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error) {
	const op = "storage.memory.CreateTestimonial"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.testimonialID++
	t := models.Testimonial{
		ID:        s.testimonialID,
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Approved:  true,
		CreatedAt: s.now(),
	}
	s.testimonials[t.ID] = t
	return &t, nil
}

// GetApprovedTestimonials возвращает одобренные отзывы, новые первыми.
func (s *Storage) GetApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "storage.memory.GetApprovedTestimonials"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Testimonial, 0, len(s.testimonials))
	for _, id := range sortedKeys(s.testimonials) {
		t := s.testimonials[id]
		if t.Approved {
			result = append(result, &t)
		}
	}
	storage.SortNewestFirst(result)
	return result, nil
}

// CreateContactMessage сохраняет сообщение обратной связи.
func (s *Storage) CreateContactMessage(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error) {
	const op = "storage.memory.CreateContactMessage"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contactMessageID++
	msg := models.ContactMessage{
		ID:        s.contactMessageID,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	s.contactMessages[msg.ID] = msg
	return &msg, nil
}

// GetContactMessages возвращает все сообщения в порядке ID.
func (s *Storage) GetContactMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	const op = "storage.memory.GetContactMessages"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ContactMessage, 0, len(s.contactMessages))
	for _, id := range sortedKeys(s.contactMessages) {
		msg := s.contactMessages[id]
		result = append(result, &msg)
	}
	return result, nil
}

// DeleteContactMessage удаляет сообщение по ID.
func (s *Storage) DeleteContactMessage(ctx context.Context, id int) (bool, error) {
	const op = "storage.memory.DeleteContactMessage"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contactMessages[id]; !ok {
		return false, nil
	}
	delete(s.contactMessages, id)
	return true, nil
}

// GetServices возвращает прайс-лист в порядке ID.
func (s *Storage) GetServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.memory.GetServices"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Service, 0, len(s.services))
	for _, id := range sortedKeys(s.services) {
		svc := s.services[id]
		result = append(result, &svc)
	}
	return result, nil
}

// Seed заполняет пустые коллекции пользователей, услуг и отзывов.
func (s *Storage) Seed(ctx context.Context, admin models.User) error {
	const op = "storage.memory.Seed"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) == 0 {
		s.userID++
		admin.ID = s.userID
		s.users[admin.ID] = admin
	}
	if len(s.services) == 0 {
		for _, svc := range storage.SeedServices() {
			s.services[svc.ID] = svc
		}
	}
	if len(s.testimonials) == 0 {
		for _, t := range storage.SeedTestimonials(s.now()) {
			s.testimonials[t.ID] = t
			s.testimonialID = max(s.testimonialID, t.ID)
		}
	}
	return nil
}

// Close ничего не делает: у хранилища в памяти нет внешних ресурсов.
func (s *Storage) Close() error {
	return nil
}
