// Package health реализует открытый HTTP-обработчик проверки живости API.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// New возвращает обработчик проверки живости.
//
// @Summary Проверка доступности API
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Сервис работает"
// @Router /health [get]
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{
			"status":  "ok",
			"message": "API is running",
		})
	}
}
