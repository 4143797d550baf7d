// Package login реализует HTTP-обработчик входа администратора.
//
// Проверка учётных данных делегируется Verifier. Сессия не создаётся:
// при успехе возвращается имя пользователя, признак входа хранит клиент.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barbershop/internal/http/response"
	"github.com/magabrotheeeer/barbershop/internal/http/validation"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	verifier Verifier            // Политика проверки учётных данных
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Verifier проверяет пару логин-пароль.
type Verifier interface {
	Verify(ctx context.Context, creds models.Credentials) (*models.User, error)
}

// Response — тело успешного ответа.
type Response struct {
	Username string `json:"username"`
}

// New создает новый экземпляр Handler с указанными логгером и политикой проверки.
func New(log *slog.Logger, verifier Verifier) *Handler {
	return &Handler{
		log:      log,
		verifier: verifier,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Проверяет имя и пароль администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.Credentials true "Учетные данные"
// @Success 200 {object} Response "Учётные данные верны"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, err := h.verifier.Verify(r.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("username", req.Username))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("login failed"))
		return
	}

	log.Info("login success", slog.String("username", user.Username))
	render.JSON(w, r, Response{Username: user.Username})
}
