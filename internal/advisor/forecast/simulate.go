package forecast

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

// Band is the per-day percentile spread of simulated cash flow.
type Band struct {
	Day int
	P10 float64
	P50 float64
	P90 float64
}

// Simulate runs the configured number of price random-walk paths from the
// learned price and returns P10/P50/P90 cash-flow bands per day.
func (f *Forecaster) Simulate(params map[model.ParamName]float64) []Band {
	return f.simulate(f.newRand(), params)
}

func (f *Forecaster) simulate(rng *rand.Rand, params map[model.ParamName]float64) []Band {
	paths, horizon := f.cfg.Paths, f.cfg.HorizonDays
	values := make([][]float64, horizon)
	for d := range values {
		values[d] = make([]float64, paths)
	}

	start := params[model.ParamCommodityPrice]
	for p := 0; p < paths; p++ {
		price := start
		for d := 0; d < horizon; d++ {
			price += rng.NormFloat64() * f.cfg.PriceVolatility
			values[d][p] = f.Project(with(params, model.ParamCommodityPrice, price)).CashFlow +
				rng.NormFloat64()*f.cfg.CashNoise
		}
	}

	bands := make([]Band, horizon)
	for d, v := range values {
		slices.Sort(v)
		bands[d] = Band{
			Day: d + 1,
			P10: percentile(v, 0.10),
			P50: percentile(v, 0.50),
			P90: percentile(v, 0.90),
		}
	}
	return bands
}

// percentile uses linear interpolation between closest ranks; sorted must be ascending.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// SavingsMonth holds cumulative monitoring cost (M USD) by month.
type SavingsMonth struct {
	Month    string
	Manual   float64
	Assisted float64
}

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Savings projects one year of cumulative cost, manual (5/month) against
// assisted (3.5/month), and returns the annual difference.
func (f *Forecaster) Savings() ([]SavingsMonth, float64) {
	return savings(f.newRand())
}

func savings(rng *rand.Rand) ([]SavingsMonth, float64) {
	out := make([]SavingsMonth, len(months))
	var manual, assisted float64
	for i, m := range months {
		manual += 5 + rng.NormFloat64()*0.2
		assisted += 3.5 + rng.NormFloat64()*0.1
		out[i] = SavingsMonth{Month: m, Manual: manual, Assisted: assisted}
	}
	return out, manual - assisted
}

func (b Band) String() string {
	return fmt.Sprintf("day %d: p10=%.2f p50=%.2f p90=%.2f", b.Day, b.P10, b.P50, b.P90)
}
