// Package jwt реализует выпуск и проверку JWT токенов идентичности.
//
// Токен содержит идентификатор пользователя и абсолютный срок действия.
// Maker определяет интерфейс для выпуска и проверки токенов,
// MakerImpl — конкретная реализация на секретном ключе HS256.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и проверки токенов идентичности.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с заданным ID.
	GenerateToken(userID int) (string, error)
	// ParseToken проверяет подпись и срок действия токена,
	// возвращает *CustomClaims с ID пользователя.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
