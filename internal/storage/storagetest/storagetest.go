// Package storagetest содержит общий набор проверок контракта storage.Storage.
// Каждая реализация хранилища прогоняет его в своих тестах, чтобы вести себя одинаково.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// Factory создаёт новое пустое хранилище для одного подтеста.
type Factory func(t *testing.T) storage.Storage

// Admin — пользователь, которым проверки заполняют хранилище при seed.
var Admin = models.User{Username: "deep", Password: "abcdef.0123"}

// NewAppointment возвращает валидные данные записи на указанный слот.
func NewAppointment(date, slot string) models.AppointmentInput {
	return models.AppointmentInput{
		Date:    date,
		Time:    slot,
		Name:    "John Smith",
		Email:   "john@example.com",
		Phone:   "5551234567",
		Service: "CLASSIC CUT",
	}
}

// Run прогоняет все проверки контракта.
func Run(t *testing.T, newStorage Factory) {
	t.Run("CreateAppointment", func(t *testing.T) { testCreateAppointment(t, newStorage(t)) })
	t.Run("NotesNullWhenOmitted", func(t *testing.T) { testNotesNull(t, newStorage(t)) })
	t.Run("GetAppointmentsByDate", func(t *testing.T) { testByDate(t, newStorage(t)) })
	t.Run("DeleteAppointment", func(t *testing.T) { testDeleteAppointment(t, newStorage(t)) })
	t.Run("UpdateAppointmentStatus", func(t *testing.T) { testUpdateStatus(t, newStorage(t)) })
	t.Run("Testimonials", func(t *testing.T) { testTestimonials(t, newStorage(t)) })
	t.Run("ContactMessages", func(t *testing.T) { testContactMessages(t, newStorage(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStorage(t)) })
	t.Run("SeedIdempotent", func(t *testing.T) { testSeed(t, newStorage(t)) })
}

func testCreateAppointment(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	before := time.Now().Add(-time.Minute)

	first, err := s.CreateAppointment(ctx, NewAppointment("2025-01-01", "09:00"))
	require.NoError(t, err)
	second, err := s.CreateAppointment(ctx, NewAppointment("2025-01-01", "10:00"))
	require.NoError(t, err)

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.Completed)
	assert.True(t, first.CreatedAt.After(before))
	assert.Equal(t, "2025-01-01", first.Date)
	assert.Equal(t, "09:00", first.Time)

	got, err := s.GetAppointmentByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
	assert.Equal(t, first.Email, got.Email)
	assert.Equal(t, first.Phone, got.Phone)
	assert.Equal(t, first.Service, got.Service)

	all, err := s.GetAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testNotesNull(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	appt, err := s.CreateAppointment(ctx, NewAppointment("2025-02-01", "11:00"))
	require.NoError(t, err)
	assert.Nil(t, appt.Notes)

	got, err := s.GetAppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)

	notes := "skin fade please"
	in := NewAppointment("2025-02-01", "12:00")
	in.Notes = &notes
	withNotes, err := s.CreateAppointment(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, withNotes.Notes)
	assert.Equal(t, notes, *withNotes.Notes)
}

func testByDate(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	for _, slot := range []string{"09:00", "10:00", "11:00"} {
		_, err := s.CreateAppointment(ctx, NewAppointment("2025-01-01", slot))
		require.NoError(t, err)
	}
	_, err := s.CreateAppointment(ctx, NewAppointment("2025-01-02", "09:00"))
	require.NoError(t, err)

	got, err := s.GetAppointmentsByDate(ctx, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, appt := range got {
		assert.Equal(t, "2025-01-01", appt.Date)
	}

	none, err := s.GetAppointmentsByDate(ctx, "2025-1-1")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testDeleteAppointment(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	deleted, err := s.DeleteAppointment(ctx, 999)
	require.NoError(t, err)
	assert.False(t, deleted)

	appt, err := s.CreateAppointment(ctx, NewAppointment("2025-03-01", "09:00"))
	require.NoError(t, err)

	deleted, err = s.DeleteAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetAppointmentByID(ctx, appt.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	deleted, err = s.DeleteAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testUpdateStatus(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.UpdateAppointmentStatus(ctx, 999, true)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	appt, err := s.CreateAppointment(ctx, NewAppointment("2025-04-01", "15:00"))
	require.NoError(t, err)

	updated, err := s.UpdateAppointmentStatus(ctx, appt.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, appt.ID, updated.ID)

	got, err := s.GetAppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func testTestimonials(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	first, err := s.CreateTestimonial(ctx, models.TestimonialInput{Name: "A", Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.True(t, first.Approved)

	second, err := s.CreateTestimonial(ctx, models.TestimonialInput{Name: "B", Rating: 3, Comment: "ok"})
	require.NoError(t, err)

	got, err := s.GetApprovedTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest testimonial should come first")
	assert.Equal(t, first.ID, got[1].ID)
}

func testContactMessages(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	msg, err := s.CreateContactMessage(ctx, models.ContactMessageInput{
		Name: "Anna", Email: "anna@example.com", Message: "Are you open on Sunday?",
	})
	require.NoError(t, err)
	assert.Positive(t, msg.ID)

	all, err := s.GetContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Are you open on Sunday?", all[0].Message)

	deleted, err := s.DeleteContactMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteContactMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err = s.GetContactMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	created, err := s.CreateUser(ctx, models.User{Username: "barber", Password: "hash.salt"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	byName, err := s.GetUserByUsername(ctx, "barber")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "hash.salt", byName.Password)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "barber", byID.Username)

	_, err = s.GetUser(ctx, created.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testSeed(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, Admin))

	services, err := s.GetServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, len(storage.SeedServices()))
	assert.Equal(t, "CLASSIC CUT", services[0].Name)
	assert.Equal(t, 25, services[0].Price)

	testimonials, err := s.GetApprovedTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 3)

	admin, err := s.GetUserByUsername(ctx, Admin.Username)
	require.NoError(t, err)
	assert.Equal(t, Admin.Password, admin.Password)

	require.NoError(t, s.Seed(ctx, models.User{Username: "other", Password: "x.y"}))

	servicesAgain, err := s.GetServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, services, servicesAgain)

	testimonialsAgain, err := s.GetApprovedTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, testimonialsAgain, 3)

	_, err = s.GetUserByUsername(ctx, "other")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
