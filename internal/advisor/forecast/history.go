package forecast

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

// ErrSingular is returned when the regression design matrix cannot be inverted.
var ErrSingular = errors.New("forecast: singular design matrix")

// Observation is one synthetic day of the monitor.
type Observation struct {
	Day      int
	Price    float64
	Debt     float64
	CashFlow float64
}

// LinearModel is cash = Intercept + DayCoef*day + PriceCoef*price.
type LinearModel struct {
	Intercept float64
	DayCoef   float64
	PriceCoef float64
}

func (m LinearModel) Predict(day, price float64) float64 {
	return m.Intercept + m.DayCoef*day + m.PriceCoef*price
}

// ForecastResult is the next-day prediction built from a synthetic history.
type ForecastResult struct {
	History    []Observation
	Model      LinearModel
	Prediction float64
	Risk       RiskStatus
}

// History generates days of observations around params: price ~ N(price, vol),
// debt ~ N(debt, 0.1), cash = projection + N(0, noise).
func (f *Forecaster) History(rng *rand.Rand, params map[model.ParamName]float64) []Observation {
	price := params[model.ParamCommodityPrice]
	debt := params[model.ParamDebtService]
	obs := make([]Observation, f.cfg.HistoryDays)
	for i := range obs {
		p := price + rng.NormFloat64()*f.cfg.PriceVolatility
		d := debt + rng.NormFloat64()*0.1
		day := with(with(params, model.ParamCommodityPrice, p), model.ParamDebtService, d)
		obs[i] = Observation{
			Day:      i,
			Price:    p,
			Debt:     d,
			CashFlow: f.Project(day).CashFlow + rng.NormFloat64()*f.cfg.CashNoise,
		}
	}
	return obs
}

// Forecast fits cash flow on (day, price) and predicts the next day at the last price.
func (f *Forecaster) Forecast(params map[model.ParamName]float64) (ForecastResult, error) {
	history := f.History(f.newRand(), params)
	m, err := FitOLS(history)
	if err != nil {
		return ForecastResult{}, err
	}
	last := history[len(history)-1]
	pred := m.Predict(float64(last.Day+1), last.Price)
	return ForecastResult{
		History:    history,
		Model:      m,
		Prediction: pred,
		Risk:       f.risk(pred),
	}, nil
}

// FitOLS solves the normal equations for cash ~ 1 + day + price.
func FitOLS(obs []Observation) (LinearModel, error) {
	if len(obs) < 3 {
		return LinearModel{}, ErrSingular
	}
	var a [3][4]float64
	for _, o := range obs {
		x := [3]float64{1, float64(o.Day), o.Price}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a[i][j] += x[i] * x[j]
			}
			a[i][3] += x[i] * o.CashFlow
		}
	}

	// Gauss-Jordan with partial pivoting
	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-9 {
			return LinearModel{}, ErrSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := 0; r < 3; r++ {
			if r == col {
				continue
			}
			factor := a[r][col] / a[col][col]
			for c := col; c < 4; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	return LinearModel{
		Intercept: a[0][3] / a[0][0],
		DayCoef:   a[1][3] / a[1][1],
		PriceCoef: a[2][3] / a[2][2],
	}, nil
}
