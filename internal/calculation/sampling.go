package calculation

import (
	"math"
	"math/rand"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// categoryModel holds the per-category growth parameters of one run
type categoryModel struct {
	expected   float64 // expected monthly growth factor (1+r)^(1/12)
	mu         float64 // monthly log-return mean of the lognormal draw
	sigma      float64 // monthly log-return standard deviation
	stochastic bool
	series     *ReturnSeries
}

// newCategoryModel fits a lognormal whose annual mean is 1+r and annual variance is v:
// s² = ln(1 + v/(1+r)²), annual log-return ~ N(ln(1+r) - s²/2, s²), split into 12 months.
func newCategoryModel(c domain.CategoryAssumption) categoryModel {
	r := c.ExpectedAnnualReturn.InexactFloat64()
	v := c.Variance.InexactFloat64()
	m := categoryModel{expected: math.Pow(1+r, 1.0/12)}
	if v > 0 {
		s2 := math.Log(1 + v/((1+r)*(1+r)))
		m.mu = (math.Log(1+r) - s2/2) / 12
		m.sigma = math.Sqrt(s2 / 12)
		m.stochastic = true
	}
	return m
}

// pathSampler draws the random inputs of one projection path.
// A nil rng gives the expected path.
type pathSampler struct {
	rng     *rand.Rand
	history *ReturnHistory
	years   []int
	drawn   map[int]int // simulated calendar year -> historical year
}

func newPathSampler(rng *rand.Rand, history *ReturnHistory, years []int) *pathSampler {
	return &pathSampler{rng: rng, history: history, years: years, drawn: make(map[int]int)}
}

// growthFactor returns the monthly multiplier of a category for the given month
func (ps *pathSampler) growthFactor(m categoryModel, month dateutil.LocalDate) float64 {
	if ps.rng == nil {
		return m.expected
	}
	if m.series != nil && len(ps.years) > 0 {
		r := m.series.Statistics.Mean
		if v, ok := m.series.Return(ps.historicalYear(month.Year())); ok {
			r = v
		}
		return math.Pow(1+r.InexactFloat64(), 1.0/12)
	}
	if !m.stochastic {
		return m.expected
	}
	return math.Exp(m.mu + m.sigma*ps.normal())
}

// historicalYear draws one historical year per simulated calendar year, shared by
// every category so that the cross-asset correlation of that year is kept
func (ps *pathSampler) historicalYear(simYear int) int {
	if y, ok := ps.drawn[simYear]; ok {
		return y
	}
	y := ps.years[ps.rng.Intn(len(ps.years))]
	ps.drawn[simYear] = y
	return y
}

// monthly draws a monthly amount from N(mean/12, variance/12), floored at zero
func (ps *pathSampler) monthly(e domain.Estimate) decimal.Decimal {
	mean := e.Mean.Div(twelve)
	if ps.rng == nil || !e.Variance.IsPositive() {
		return mean
	}
	std := math.Sqrt(e.Variance.InexactFloat64() / 12)
	v := mean.InexactFloat64() + std*ps.normal()
	if v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// normal draws a standard normal variate with the Box-Muller transform
func (ps *pathSampler) normal() float64 {
	u1 := 1 - ps.rng.Float64() // (0, 1]
	u2 := ps.rng.Float64()
	return boxMullerTransform(u1, u2)
}

// boxMullerTransform implements Box-Muller transform for normal distribution
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
