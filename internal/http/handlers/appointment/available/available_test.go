package available

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	slots, _ := args.Get(0).([]string)
	return slots, args.Error(1)
}

func TestAvailableHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		date           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "свободные слоты",
			date: "2025-01-01",
			setupMock: func(m *MockService) {
				m.On("AvailableSlots", mock.Anything, "2025-01-01").Return([]string{"10:00", "11:00"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `["10:00","11:00"]`,
		},
		{
			name:           "некорректная дата",
			date:           "01-01-2025",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","message":"invalid date, expected YYYY-MM-DD"}`,
		},
		{
			name: "ошибка сервиса",
			date: "2025-01-03",
			setupMock: func(m *MockService) {
				m.On("AvailableSlots", mock.Anything, "2025-01-03").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"Failed to fetch appointments"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/appointments/available/"+tt.date, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("date", tt.date)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
