// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Ошибки всегда возвращаются телом вида
// {"error": "..."} без внутренних подробностей, успешные сообщения — телом
// {"message": "..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// MessageResponse — тело успешного ответа с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"user deleted successfully"`
}

// Error возвращает тело ответа с переданным сообщением об ошибке.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Message возвращает тело успешного ответа с текстовым сообщением.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError формирует тело ошибки на основе ошибок валидации.
// Каждое нарушение переводится в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
