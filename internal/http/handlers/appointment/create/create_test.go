package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/services/booking"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Book(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	args := m.Called(ctx, in)
	appt, _ := args.Get(0).(*models.Appointment)
	return appt, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const validBody = `{"name":"John Smith","email":"john@example.com","phone":"5551234567",` +
	`"service":"CLASSIC CUT","date":"2025-01-01","time":"10:00"}`

func validInput() models.AppointmentInput {
	return models.AppointmentInput{
		Date: "2025-01-01", Time: "10:00", Name: "John Smith", Email: "john@example.com",
		Phone: "5551234567", Service: "CLASSIC CUT",
	}
}

func TestCreateHandler(t *testing.T) {
	created := &models.Appointment{
		ID: 1, Date: "2025-01-01", Time: "10:00", Name: "John Smith", Email: "john@example.com",
		Phone: "5551234567", Service: "CLASSIC CUT", CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная запись",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, validInput()).Return(created, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"notes":null`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"invalid request body"}`,
		},
		{
			name: "невалидный email и телефон",
			body: `{"name":"John","email":"nope","phone":"12ab","service":"CUT","date":"2025-01-01","time":"10:00"}`,
			setupMock: func(_ *MockService) {
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "нет обязательных полей",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Name is a required field`,
		},
		{
			name:           "дата в неверном формате",
			body:           `{"name":"John","email":"john@example.com","phone":"5551234567","service":"CUT","date":"01/02/2025","time":"10:00"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Date must be a date in format 2006-01-02`,
		},
		{
			name:           "время вне сетки слотов",
			body:           `{"name":"John","email":"john@example.com","phone":"5551234567","service":"CUT","date":"2025-01-01","time":"9:00"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Time must be an hourly slot from 09:00 to 19:00`,
		},
		{
			name: "сервис отклонил слот",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, validInput()).Return(nil, booking.ErrInvalidSlot).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"invalid date or time slot"}`,
		},
		{
			name: "слот занят",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, validInput()).
					Return(nil, &booking.ConflictError{Date: "2025-01-01", Time: "10:00"}).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `This time slot is already booked`,
		},
		{
			name: "ошибка хранилища",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, validInput()).Return(nil, errors.New("disk full")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"Failed to create appointment"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCreateHandler_NotesPassedThrough(t *testing.T) {
	notes := "beard too"
	in := validInput()
	in.Notes = &notes

	mockService := new(MockService)
	mockService.On("Book", mock.Anything, in).
		Return(&models.Appointment{ID: 2, Date: in.Date, Time: in.Time, Notes: &notes}, nil).Once()

	body := `{"name":"John Smith","email":"john@example.com","phone":"5551234567",` +
		`"service":"CLASSIC CUT","date":"2025-01-01","time":"10:00","notes":"beard too"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	New(newNoopLogger(), mockService).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Notes)
	assert.Equal(t, "beard too", *got.Notes)
	mockService.AssertExpectations(t)
}
