package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/strategy-hub/internal/lib/password"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// seedUser описывает базовую учетную запись первичного наполнения.
type seedUser struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	Prefs    models.UserPreferences
}

var seedUsers = []seedUser{
	{
		Username: "muser",
		Email:    "muser@example.com",
		Password: "muser",
		Role:     models.RoleUser,
		Prefs: models.UserPreferences{
			AssetPreferences:     []string{"Stocks", "Bonds"},
			RiskTolerance:        models.RiskLow,
			NotificationSettings: map[string]bool{"email": true},
		},
	},
	{
		Username: "mvc",
		Email:    "mvc@example.com",
		Password: "mvc",
		Role:     models.RoleAdmin,
		Prefs: models.UserPreferences{
			AssetPreferences:     []string{"Stocks", "Commodities", "FX"},
			RiskTolerance:        models.RiskHigh,
			NotificationSettings: map[string]bool{"email": true},
		},
	},
}

var seedStrategies = []models.Strategy{
	{
		Name:   "Global Macro Diversification",
		Type:   "Multi-Asset",
		Assets: []string{"Stocks", "Bonds", "Commodities", "FX"},
		Performance: map[string]float64{
			"daily": 0.3, "weekly": 1.7, "monthly": 5.2, "yearly": 24.8,
		},
		Risk:        models.RiskMedium,
		Creator:     "Quant Team Alpha",
		Description: "A global macro strategy that allocates across different asset classes based on economic indicators and market trends.",
		HistoricalData: []models.HistoryPoint{
			{Date: "2023-01-01", Value: 100},
			{Date: "2023-04-01", Value: 124.8},
		},
	},
	{
		Name:   "Tech-Commodities Rotation",
		Type:   "Sector Rotation",
		Assets: []string{"Tech Stocks", "Energy Commodities", "Precious Metals"},
		Performance: map[string]float64{
			"daily": -0.2, "weekly": 2.1, "monthly": 6.7, "yearly": 31.2,
		},
		Risk:        models.RiskHigh,
		Creator:     "Sector Specialists",
		Description: "Rotates between technology stocks and commodities based on economic cycles and inflation expectations.",
		HistoricalData: []models.HistoryPoint{
			{Date: "2023-01-01", Value: 100},
			{Date: "2023-04-01", Value: 131.2},
		},
	},
	{
		Name:   "Fixed Income Fortress",
		Type:   "Income",
		Assets: []string{"Government Bonds", "Corporate Bonds", "High-Yield Bonds"},
		Performance: map[string]float64{
			"daily": 0.1, "weekly": 0.5, "monthly": 1.8, "yearly": 8.7,
		},
		Risk:        models.RiskLow,
		Creator:     "Bond Masters",
		Description: "A conservative strategy focused on generating stable income through a diversified bond portfolio.",
		HistoricalData: []models.HistoryPoint{
			{Date: "2023-01-01", Value: 100},
			{Date: "2023-04-01", Value: 108.7},
		},
	},
}

// Seed выполняет идемпотентное первичное наполнение базы: две базовые
// учетные записи (роль user и роль admin) и набор стратегий, который
// вставляется только при пустой таблице strategies. При первой вставке
// стратегий администратор подписывается на все стратегии, а обычная
// учетная запись — на первую и третью. Повторные вызовы ничего не меняют.
func (s *Storage) Seed(ctx context.Context) error {
	const op = "storage.Seed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	userIDs := make(map[string]int, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := password.GetHash(su.Password)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		query := `INSERT INTO users (username, email, password_hash, role, status)
				  VALUES ($1, $2, $3, $4, $5)
				  ON CONFLICT (username) DO NOTHING`
		if _, err = s.DB.ExecContext(ctx, query,
			su.Username, su.Email, hash, su.Role, models.StatusActive); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		var id int
		if err = s.DB.QueryRowContext(ctx,
			`SELECT id FROM users WHERE username = $1`, su.Username).Scan(&id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		userIDs[su.Username] = id

		prefs := su.Prefs
		prefs.UserID = id
		if err = s.UpsertPreferences(ctx, prefs); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	var strategyCount int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM strategies`).Scan(&strategyCount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if strategyCount > 0 {
		return nil
	}

	strategyIDs := make([]int, 0, len(seedStrategies))
	for _, st := range seedStrategies {
		id, err := s.CreateStrategy(ctx, st)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		strategyIDs = append(strategyIDs, id)
	}

	// Администратор подписан на все стратегии.
	for _, strategyID := range strategyIDs {
		if _, err := s.Subscribe(ctx, userIDs["mvc"], strategyID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	// Обычная учетная запись — на первую и третью.
	if len(strategyIDs) >= 3 {
		for _, strategyID := range []int{strategyIDs[0], strategyIDs[2]} {
			if _, err := s.Subscribe(ctx, userIDs["muser"], strategyID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	return nil
}
