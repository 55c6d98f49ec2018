package forecast

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

var testDefaults = map[model.ParamName]float64{
	model.ParamCommodityPrice: 75,
	model.ParamOutputRate:     95,
	model.ParamDebtService:    2,
}

func newTestForecaster() *Forecaster {
	return New(model.ForecastConfig{
		Seed:            42,
		Paths:           200,
		HorizonDays:     15,
		HistoryDays:     30,
		PriceVolatility: 3,
		CashNoise:       2,
		RiskThreshold:   45,
	}, testDefaults)
}

func params(price, output, debt float64) map[model.ParamName]float64 {
	return map[model.ParamName]float64{
		model.ParamCommodityPrice: price,
		model.ParamOutputRate:     output,
		model.ParamDebtService:    debt,
	}
}

func TestForecaster_Project(t *testing.T) {
	f := newTestForecaster()

	tests := []struct {
		name   string
		params map[model.ParamName]float64
		cash   float64
		risk   RiskStatus
	}{
		{"defaults", params(75, 95, 2), BaseCashFlow, RiskStable},
		{"higher price", params(85, 95, 2), 58, RiskStable},
		{"lower price", params(60, 95, 2), 38, RiskCritical},
		{"more output", params(75, 105, 2), 54, RiskStable},
		{"heavier debt", params(75, 95, 4), 40, RiskCritical},
		{"missing parameters use base", map[model.ParamName]float64{}, BaseCashFlow, RiskStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := f.Project(tt.params)
			assert.InDelta(t, tt.cash, p.CashFlow, 1e-9)
			assert.Equal(t, tt.risk, p.Risk)
		})
	}
}

func TestForecaster_Project_IsBitExact(t *testing.T) {
	f := newTestForecaster()
	p := params(82.3, 101.7, 2.9)

	want := BaseCashFlow
	want += (82.3 - 75) * 0.8
	want += (101.7 - 95) * 0.4
	want += (2.9 - 2) * -5

	for i := 0; i < 200; i++ {
		require.Equal(t, want, f.Project(p).CashFlow, "run %d", i)
	}
}

func TestNew_FillsInvalidConfig(t *testing.T) {
	f := New(model.ForecastConfig{}, testDefaults)
	cfg := f.Config()
	assert.Equal(t, 500, cfg.Paths)
	assert.Equal(t, 30, cfg.HorizonDays)
	assert.Equal(t, 30, cfg.HistoryDays)
}

func TestFitOLS_RecoversExactModel(t *testing.T) {
	want := LinearModel{Intercept: 3, DayCoef: 0.5, PriceCoef: 0.8}
	obs := make([]Observation, 20)
	for i := range obs {
		price := 70 + float64((i*i)%7)
		obs[i] = Observation{Day: i, Price: price, CashFlow: want.Predict(float64(i), price)}
	}

	got, err := FitOLS(obs)
	require.NoError(t, err)
	assert.InDelta(t, want.Intercept, got.Intercept, 1e-6)
	assert.InDelta(t, want.DayCoef, got.DayCoef, 1e-6)
	assert.InDelta(t, want.PriceCoef, got.PriceCoef, 1e-6)
}

func TestFitOLS_TooFewObservations(t *testing.T) {
	_, err := FitOLS([]Observation{{Day: 0, Price: 70}, {Day: 1, Price: 71}})
	assert.ErrorIs(t, err, ErrSingular)
}

func TestForecaster_Forecast(t *testing.T) {
	f := newTestForecaster()

	first, err := f.Forecast(params(75, 95, 2))
	require.NoError(t, err)
	second, err := f.Forecast(params(75, 95, 2))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.History, 30)
	// the fitted price sensitivity is close to the projection's
	assert.InDelta(t, 0.8, first.Model.PriceCoef, 0.5)
	assert.InDelta(t, BaseCashFlow, first.Prediction, 10)
}

func TestForecaster_History_UsesInjectedRand(t *testing.T) {
	f := newTestForecaster()
	a := f.History(rand.New(rand.NewPCG(1, 2)), params(75, 95, 2))
	b := f.History(rand.New(rand.NewPCG(1, 2)), params(75, 95, 2))
	c := f.History(rand.New(rand.NewPCG(3, 4)), params(75, 95, 2))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
