package create

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barbershop/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Send(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error) {
	args := m.Called(ctx, in)
	msg, _ := args.Get(0).(*models.ContactMessage)
	return msg, args.Error(1)
}

func TestCreateContactHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	in := models.ContactMessageInput{Name: "Anna", Email: "anna@example.com", Message: "Open on Sunday?"}
	body := `{"name":"Anna","email":"anna@example.com","message":"Open on Sunday?"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "сообщение сохранено",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Send", mock.Anything, in).Return(&models.ContactMessage{ID: 1, Name: "Anna"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":1`,
		},
		{
			name:           "невалидный email",
			body:           `{"name":"Anna","email":"anna","message":"hi"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "пустое сообщение",
			body:           `{"name":"Anna","email":"anna@example.com","message":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Message is a required field`,
		},
		{
			name: "ошибка сервиса",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Send", mock.Anything, in).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Failed to create contact message"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
