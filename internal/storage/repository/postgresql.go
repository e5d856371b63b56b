// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, торговыми стратегиями и подписками
// пользователей на стратегии. Уникальность username, email и пары
// (user_id, strategy_id) обеспечивается ограничениями самой базы,
// а не проверками перед вставкой.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is.
var (
	// ErrUserNotFound — пользователь с таким идентификатором или именем не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrStrategyNotFound — стратегия с таким идентификатором не найдена.
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrDuplicate — нарушение уникальности username или email.
	ErrDuplicate = errors.New("duplicate record")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, стратегиями и подписками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// isUniqueViolation определяет, вызвана ли ошибка нарушением
// ограничения уникальности.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isForeignKeyViolation определяет, вызвана ли ошибка нарушением
// внешнего ключа (ссылка на несуществующего пользователя или стратегию).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
