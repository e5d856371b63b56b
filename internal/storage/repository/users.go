package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// CreateUser сохраняет нового пользователя с ролью user и статусом active,
// возвращает созданную запись без хэша пароля. При занятом username или
// email возвращает ErrDuplicate; существующие строки при этом не изменяются.
func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, email, password_hash, role, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, username, email, role, registration_date, last_login, status`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query,
		username, email, passwordHash, models.RoleUser, models.StatusActive).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.RegistrationDate, &u.LastLogin, &u.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает полную запись пользователя, включая хэш пароля.
// Используется только внутри сценария аутентификации.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, role, registration_date, last_login, status
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.RegistrationDate, &u.LastLogin, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByID возвращает пользователя по его ID без хэша пароля.
func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, role, registration_date, last_login, status
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role,
		&u.RegistrationDate, &u.LastLogin, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей без хэшей паролей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, role, registration_date, last_login, status
			  FROM users
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role,
			&u.RegistrationDate, &u.LastLogin, &u.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLastLogin отмечает успешный вход пользователя и возвращает
// новое значение last_login.
func (s *Storage) UpdateLastLogin(ctx context.Context, id int) (time.Time, error) {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return time.Time{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_login = now()
			  WHERE id = $1
			  RETURNING last_login`
	var lastLogin time.Time
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return lastLogin, nil
}

// DeleteUser удаляет пользователя вместе с его подписками и настройками
// в одной транзакции: сначала подписки, затем настройки, затем сама запись.
// Возвращает true, если запись пользователя существовала. Успех определяется
// количеством строк, затронутых именно удалением из users.
func (s *Storage) DeleteUser(ctx context.Context, id int) (bool, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_strategies WHERE user_id = $1`, id); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, id); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// UpsertPreferences сохраняет настройки пользователя, заменяя существующие.
// Используется при первичном наполнении базы.
func (s *Storage) UpsertPreferences(ctx context.Context, prefs models.UserPreferences) error {
	const op = "storage.UpsertPreferences"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	assets, err := marshalJSONB(prefs.AssetPreferences)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	notifications, err := marshalJSONB(prefs.NotificationSettings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO user_preferences (user_id, asset_preferences, risk_tolerance, notification_settings)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_id) DO UPDATE
			  SET asset_preferences = EXCLUDED.asset_preferences,
			      risk_tolerance = EXCLUDED.risk_tolerance,
			      notification_settings = EXCLUDED.notification_settings`
	if _, err = s.DB.ExecContext(ctx, query,
		prefs.UserID, assets, prefs.RiskTolerance, notifications); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
