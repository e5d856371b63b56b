package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

func TestStorage_CreateAndGetStrategy(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateStrategy(ctx, models.Strategy{
		Name:        "Momentum Trading",
		Type:        "Trend Following",
		Assets:      []string{"BTC", "ETH"},
		Performance: map[string]float64{"daily": 0.3, "yearly": 24.8},
		Risk:        models.RiskMedium,
		Creator:     "Quant Team Alpha",
		Description: "Follows market trends",
		HistoricalData: []models.HistoryPoint{
			{Date: "2023-01-01", Value: 100},
			{Date: "2023-04-01", Value: 124.8},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	st, err := storage.GetStrategyByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Momentum Trading", st.Name)
	assert.Equal(t, []string{"BTC", "ETH"}, st.Assets)
	assert.Equal(t, 24.8, st.Performance["yearly"])
	assert.Equal(t, models.RiskMedium, st.Risk)
	require.Len(t, st.HistoricalData, 2)
	assert.Equal(t, "2023-04-01", st.HistoricalData[1].Date)
	assert.Equal(t, 124.8, st.HistoricalData[1].Value)
	assert.False(t, st.CreationDate.IsZero())
}

func TestStorage_GetStrategyByID_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetStrategyByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestStorage_ListStrategies(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()

	strategies, err := storage.ListStrategies(ctx)
	require.NoError(t, err)
	assert.NotNil(t, strategies)
	assert.Len(t, strategies, 0)

	first := factory.CreateStrategy(t, "Momentum Trading", models.RiskMedium)
	second := factory.CreateStrategy(t, "Index Investing", models.RiskLow)

	strategies, err = storage.ListStrategies(ctx)
	require.NoError(t, err)
	require.Len(t, strategies, 2)
	assert.Equal(t, first, strategies[0].ID)
	assert.Equal(t, second, strategies[1].ID)
}

func TestStorage_Subscribe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "alice", "alice@example.com", "hash1", models.RoleUser)
	strategyID := factory.CreateStrategy(t, "Momentum Trading", models.RiskMedium)

	ok, err := storage.Subscribe(ctx, userID, strategyID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Повторная подписка не добавляет строку и сообщает о неуспехе
	ok, err = storage.Subscribe(ctx, userID, strategyID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, verification.CountSubscriptions(t, userID))
}

func TestStorage_Subscribe_UnknownStrategy(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "alice", "alice@example.com", "hash1", models.RoleUser)

	// Нарушение внешнего ключа — неуспех подписки, а не ошибка хранилища
	ok, err := storage.Subscribe(ctx, userID, 12345)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_Unsubscribe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "alice", "alice@example.com", "hash1", models.RoleUser)
	strategyID := factory.CreateStrategy(t, "Momentum Trading", models.RiskMedium)
	factory.CreateSubscription(t, userID, strategyID)

	ok, err := storage.Unsubscribe(ctx, userID, strategyID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, verification.CountSubscriptions(t, userID))

	// Отписка без подписки — неуспех без изменения состояния
	ok, err = storage.Unsubscribe(ctx, userID, strategyID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_ListStrategiesForUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	alice := factory.CreateUser(t, "alice", "alice@example.com", "hash1", models.RoleUser)
	bob := factory.CreateUser(t, "bob", "bob@example.com", "hash2", models.RoleUser)

	first := factory.CreateStrategy(t, "Momentum Trading", models.RiskMedium)
	second := factory.CreateStrategy(t, "Swing Trading", models.RiskHigh)
	third := factory.CreateStrategy(t, "Index Investing", models.RiskLow)

	factory.CreateSubscription(t, alice, first)
	factory.CreateSubscription(t, alice, third)
	factory.CreateSubscription(t, bob, second)

	strategies, err := storage.ListStrategiesForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, strategies, 2)
	assert.Equal(t, first, strategies[0].ID)
	assert.Equal(t, third, strategies[1].ID)

	// Пользователь без подписок получает пустой список
	carol := factory.CreateUser(t, "carol", "carol@example.com", "hash3", models.RoleUser)
	strategies, err = storage.ListStrategiesForUser(ctx, carol)
	require.NoError(t, err)
	assert.NotNil(t, strategies)
	assert.Len(t, strategies, 0)
}
