// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// Verify сравнивает bcrypt-хеш с введённым паролем.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Verify сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает true только при совпадении. Некорректный или повреждённый хэш
// не приводит к ошибке — такой пароль считается несовпавшим.
func Verify(originalHash, externalPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)) == nil
}
