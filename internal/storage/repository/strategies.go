package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// marshalJSONB кодирует значение для записи в JSONB-колонку.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// scanStrategy читает одну строку стратегии и декодирует JSONB-поля
// assets, performance и historical_data в структурный вид.
func scanStrategy(row interface{ Scan(dest ...any) error }) (*models.Strategy, error) {
	var st models.Strategy
	var assets, performance, historicalData []byte
	if err := row.Scan(&st.ID, &st.Name, &st.Type, &assets, &performance,
		&st.Risk, &st.Creator, &st.Description, &historicalData, &st.CreationDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(assets, &st.Assets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(performance, &st.Performance); err != nil {
		return nil, err
	}
	if historicalData != nil {
		if err := json.Unmarshal(historicalData, &st.HistoricalData); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

const strategyColumns = `id, name, type, assets, performance, risk, creator,
			      description, historical_data, creation_date`

// CreateStrategy вставляет новую стратегию и возвращает её ID.
// Публичного маршрута для создания стратегий нет, метод используется
// при первичном наполнении базы.
func (s *Storage) CreateStrategy(ctx context.Context, st models.Strategy) (int, error) {
	const op = "storage.CreateStrategy"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	assets, err := marshalJSONB(st.Assets)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	performance, err := marshalJSONB(st.Performance)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	historicalData, err := marshalJSONB(st.HistoricalData)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO strategies (name, type, assets, performance, risk, creator,
			      description, historical_data)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		st.Name, st.Type, assets, performance, st.Risk, st.Creator,
		st.Description, historicalData).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListStrategies возвращает все стратегии в порядке создания.
func (s *Storage) ListStrategies(ctx context.Context) ([]*models.Strategy, error) {
	const op = "storage.ListStrategies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + strategyColumns + `
			  FROM strategies
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Strategy, 0)
	for rows.Next() {
		st, err := scanStrategy(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetStrategyByID возвращает стратегию по её ID.
func (s *Storage) GetStrategyByID(ctx context.Context, id int) (*models.Strategy, error) {
	const op = "storage.GetStrategyByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + strategyColumns + `
			  FROM strategies
			  WHERE id = $1`
	st, err := scanStrategy(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrStrategyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// ListStrategiesForUser возвращает стратегии, на которые подписан пользователь,
// соединяя strategies и user_strategies.
func (s *Storage) ListStrategiesForUser(ctx context.Context, userID int) ([]*models.Strategy, error) {
	const op = "storage.ListStrategiesForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.type, s.assets, s.performance, s.risk, s.creator,
			      s.description, s.historical_data, s.creation_date
			  FROM strategies s
			  JOIN user_strategies us ON s.id = us.strategy_id
			  WHERE us.user_id = $1
			  ORDER BY s.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Strategy, 0)
	for rows.Next() {
		st, err := scanStrategy(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Subscribe создаёт подписку пользователя на стратегию. Повторная подписка
// на ту же пару — идемпотентная «пустая» операция: строка не добавляется,
// возвращается false. Ссылка на несуществующего пользователя или стратегию
// также считается неуспехом подписки, а не ошибкой хранилища.
func (s *Storage) Subscribe(ctx context.Context, userID, strategyID int) (bool, error) {
	const op = "storage.Subscribe"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_strategies (user_id, strategy_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, strategy_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, userID, strategyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// Unsubscribe удаляет подписку пользователя на стратегию и возвращает,
// была ли строка действительно удалена. Успех определяется количеством
// строк, затронутых именно этим удалением.
func (s *Storage) Unsubscribe(ctx context.Context, userID, strategyID int) (bool, error) {
	const op = "storage.Unsubscribe"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_strategies
			  WHERE user_id = $1 AND strategy_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userID, strategyID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
