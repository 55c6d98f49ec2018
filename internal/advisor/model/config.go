package model

// ================ Config ================
type ConversationConfig struct {
	TTL     string `envconfig:"CONVERSATION_TTL" default:"30m"`
	History struct {
		MaxTurns int `envconfig:"CONVERSATION_HISTORY_MAX_TURNS" default:"20"`
	}
}

type KnowledgeConfig struct {
	// File overrides the embedded knowledge table when set.
	File string `envconfig:"KNOWLEDGE_FILE"`
}

type ForecastConfig struct {
	Seed            uint64  `envconfig:"FORECAST_SEED" default:"42"`
	Paths           int     `envconfig:"FORECAST_PATHS" default:"500"`
	HorizonDays     int     `envconfig:"FORECAST_HORIZON_DAYS" default:"30"`
	HistoryDays     int     `envconfig:"FORECAST_HISTORY_DAYS" default:"30"`
	PriceVolatility float64 `envconfig:"FORECAST_PRICE_VOLATILITY" default:"3.0"`
	CashNoise       float64 `envconfig:"FORECAST_CASH_NOISE" default:"2.0"`
	RiskThreshold   float64 `envconfig:"FORECAST_RISK_THRESHOLD" default:"45"`
}
