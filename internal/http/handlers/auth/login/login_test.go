package login

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/services/auth"
)

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) Verify(ctx context.Context, creds models.Credentials) (*models.User, error) {
	args := m.Called(ctx, creds)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	valid := models.Credentials{Username: "deep", Password: "deep8670"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *VerifierMock)
		wantStatusCode int
		wantMessage    string
		wantUsername   string
	}{
		{
			name:        "valid login",
			requestBody: valid,
			setupMock: func(m *VerifierMock) {
				m.On("Verify", mock.Anything, valid).Return(&models.User{ID: 1, Username: "deep"}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantUsername:   "deep",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(_ *VerifierMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "validation error",
			requestBody:    models.Credentials{Username: "deep"},
			setupMock:      func(_ *VerifierMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Password is a required field",
		},
		{
			name:        "wrong credentials",
			requestBody: models.Credentials{Username: "deep", Password: "wrong"},
			setupMock: func(m *VerifierMock) {
				m.On("Verify", mock.Anything, models.Credentials{Username: "deep", Password: "wrong"}).
					Return(nil, auth.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "invalid credentials",
		},
		{
			name:        "verifier failure",
			requestBody: valid,
			setupMock: func(m *VerifierMock) {
				m.On("Verify", mock.Anything, valid).Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(VerifierMock)
			tt.setupMock(verifier)
			handler := New(newNoopLogger(), verifier)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantUsername != "" {
				assert.Equal(t, tt.wantUsername, resp["username"])
				assert.NotContains(t, resp, "password")
			} else {
				assert.Equal(t, "Error", resp["status"])
				assert.Contains(t, resp["message"], tt.wantMessage)
			}
			verifier.AssertExpectations(t)
		})
	}
}
