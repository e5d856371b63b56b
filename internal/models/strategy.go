package models

import "time"

// Risk — закрытое перечисление уровней риска стратегии.
type Risk string

const (
	// RiskLow — консервативная стратегия.
	RiskLow Risk = "low"
	// RiskMedium — стратегия со средним уровнем риска.
	RiskMedium Risk = "medium"
	// RiskHigh — агрессивная стратегия.
	RiskHigh Risk = "high"
)

// Valid проверяет, что уровень риска принадлежит известному множеству значений.
func (r Risk) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// HistoryPoint — одна точка исторической доходности стратегии.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Strategy описывает торговую стратегию. Поля Assets, Performance и
// HistoricalData хранятся в базе как JSONB и декодируются в структурный
// вид на границе хранилища.
type Strategy struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Assets         []string           `json:"assets"`
	Performance    map[string]float64 `json:"performance"`
	Risk           Risk               `json:"risk"`
	Creator        string             `json:"creator"`
	Description    string             `json:"description"`
	HistoricalData []HistoryPoint     `json:"historical_data"`
	CreationDate   time.Time          `json:"creation_date"`
}

// Subscription — связь "пользователь подписан на стратегию".
// Пара (UserID, StrategyID) уникальна.
type Subscription struct {
	UserID           int       `json:"user_id"`
	StrategyID       int       `json:"strategy_id"`
	SubscriptionDate time.Time `json:"subscription_date"`
}
