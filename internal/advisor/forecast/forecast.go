// Package forecast derives the numeric figures shown next to advisor answers.
//
// Everything here is recomputed from the learned parameters on every call.
// Random components draw from a *rand.Rand that the Forecaster reseeds from
// its configured seed each time, so identical inputs give identical outputs.
package forecast

import (
	"math/rand/v2"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

// BaseCashFlow is the daily cash flow (M USD) at default parameters:
// 75 USD/bbl * 0.8 - 2 M USD debt service * 5.
const BaseCashFlow = 50.0

// DefaultSensitivities is the change in daily cash flow per unit change of a parameter.
var DefaultSensitivities = map[model.ParamName]float64{
	model.ParamCommodityPrice: 0.8,
	model.ParamOutputRate:     0.4,
	model.ParamDebtService:    -5,
}

type RiskStatus string

const (
	RiskStable   RiskStatus = "stable"
	RiskCritical RiskStatus = "critical"
)

// Projection is the deterministic read-time view of the learned parameters.
type Projection struct {
	CashFlow float64
	Risk     RiskStatus
}

type Forecaster struct {
	cfg           model.ForecastConfig
	defaults      map[model.ParamName]float64
	sensitivities map[model.ParamName]float64
}

// New builds a Forecaster. defaults are the parameter values at which the
// projection equals BaseCashFlow.
func New(cfg model.ForecastConfig, defaults map[model.ParamName]float64) *Forecaster {
	if cfg.Paths <= 0 {
		cfg.Paths = 500
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	if cfg.HistoryDays < 3 {
		cfg.HistoryDays = 30
	}
	d := make(map[model.ParamName]float64, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &Forecaster{cfg: cfg, defaults: d, sensitivities: DefaultSensitivities}
}

// Config returns the effective configuration.
func (f *Forecaster) Config() model.ForecastConfig {
	return f.cfg
}

// Project computes base + sum((p - default_p) * sensitivity_p), summed in
// model.ParamNames order so the result is bit-for-bit reproducible.
func (f *Forecaster) Project(params map[model.ParamName]float64) Projection {
	cash := BaseCashFlow
	for _, name := range model.ParamNames() {
		s, ok := f.sensitivities[name]
		if !ok {
			continue
		}
		v, ok := params[name]
		if !ok {
			continue
		}
		cash += (v - f.defaults[name]) * s
	}
	return Projection{CashFlow: cash, Risk: f.risk(cash)}
}

func (f *Forecaster) risk(cash float64) RiskStatus {
	if cash < f.cfg.RiskThreshold {
		return RiskCritical
	}
	return RiskStable
}

// with returns a copy of params with name overridden.
func with(params map[model.ParamName]float64, name model.ParamName, v float64) map[model.ParamName]float64 {
	out := make(map[model.ParamName]float64, len(params))
	for k, val := range params {
		out[k] = val
	}
	out[name] = v
	return out
}

func (f *Forecaster) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(f.cfg.Seed, f.cfg.Seed^0x9e3779b97f4a7c15))
}
