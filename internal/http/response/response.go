// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов об ошибках. Успешные ответы отдают записи как есть, без обёртки.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// StatusError — значение статуса для ответа с ошибкой.
const StatusError = "Error"

// ErrorResponse описывает тело ответа с ошибкой.
type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Message string `json:"message" example:"invalid request body"`
}

// MessageResponse — тело успешного ответа без данных, например после удаления.
type MessageResponse struct {
	Message string `json:"message" example:"Appointment deleted successfully"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// Message возвращает MessageResponse.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение превращается в человекочитаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	errsMsgs := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.Tag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a date in format %s", err.Field(), err.Param()))
		case "slot":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be an hourly slot from 09:00 to 19:00", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
