package forecast

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecaster_Simulate(t *testing.T) {
	f := newTestForecaster()

	bands := f.Simulate(params(75, 95, 2))
	require.Len(t, bands, 15)
	for i, b := range bands {
		assert.Equal(t, i+1, b.Day)
		assert.LessOrEqual(t, b.P10, b.P50, b.String())
		assert.LessOrEqual(t, b.P50, b.P90, b.String())
	}
	// random walk spreads out over time
	assert.Greater(t, bands[14].P90-bands[14].P10, bands[0].P90-bands[0].P10)

	assert.Equal(t, bands, f.Simulate(params(75, 95, 2)))
}

func TestSimulate_CentredOnProjection(t *testing.T) {
	f := newTestForecaster()
	bands := f.simulate(rand.New(rand.NewPCG(9, 9)), params(85, 95, 2))
	assert.InDelta(t, 58, bands[0].P50, 2)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3, percentile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 1.4, percentile(sorted, 0.1), 1e-9)
	assert.InDelta(t, 4.6, percentile(sorted, 0.9), 1e-9)
	assert.InDelta(t, 7, percentile([]float64{7}, 0.9), 1e-9)
	assert.Zero(t, percentile(nil, 0.5))
}

func TestForecaster_Savings(t *testing.T) {
	f := newTestForecaster()

	months, annual := f.Savings()
	require.Len(t, months, 12)
	assert.Equal(t, "Jan", months[0].Month)
	assert.Equal(t, "Dec", months[11].Month)
	for i := 1; i < len(months); i++ {
		assert.Greater(t, months[i].Manual, months[i-1].Manual)
		assert.Greater(t, months[i].Assisted, months[i-1].Assisted)
	}
	assert.InDelta(t, 18, annual, 3)
	assert.InDelta(t, months[11].Manual-months[11].Assisted, annual, 1e-9)

	again, annualAgain := f.Savings()
	assert.Equal(t, months, again)
	assert.Equal(t, annual, annualAgain)
}
