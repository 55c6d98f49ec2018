package dialog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrolito-ai/advisor/internal/advisor/forecast"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

func testForecastConfig() model.ForecastConfig {
	return model.ForecastConfig{
		Seed:            42,
		Paths:           60,
		HorizonDays:     10,
		HistoryDays:     30,
		PriceVolatility: 3,
		CashNoise:       2,
		RiskThreshold:   45,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	kb, err := LoadDefault()
	require.NoError(t, err)
	return NewEngine(kb, forecast.New(testForecastConfig(), kb.Defaults()))
}
