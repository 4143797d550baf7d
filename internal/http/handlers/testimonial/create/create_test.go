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

func (m *MockService) AddTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error) {
	args := m.Called(ctx, in)
	t, _ := args.Get(0).(*models.Testimonial)
	return t, args.Error(1)
}

func TestCreateTestimonialHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	in := models.TestimonialInput{Name: "MARK T.", Rating: 5, Comment: "Great fade"}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "отзыв создан",
			body: `{"name":"MARK T.","rating":5,"comment":"Great fade"}`,
			setupMock: func(m *MockService) {
				m.On("AddTestimonial", mock.Anything, in).
					Return(&models.Testimonial{ID: 4, Name: in.Name, Rating: 5, Comment: in.Comment, Approved: true}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"approved":true`,
		},
		{
			name:           "оценка вне диапазона",
			body:           `{"name":"MARK T.","rating":9,"comment":"Great fade"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Rating must be at most 5`,
		},
		{
			name:           "некорректный JSON",
			body:           `[`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"name":"MARK T.","rating":5,"comment":"Great fade"}`,
			setupMock: func(m *MockService) {
				m.On("AddTestimonial", mock.Anything, in).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Failed to create testimonial"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/testimonials", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
