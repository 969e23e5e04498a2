// Package payoff computes expiration profit and loss for multi-leg option
// strategies: the aggregate payoff curve, profit bounds, and breakeven
// prices.
package payoff

import (
	"encoding/json"
	"math"
	"sort"

	"options-payoff/internal/errors"
)

// Comparison tolerances for zero detection and price deduplication.
const (
	absTol = 1e-9
	relTol = 1e-6
)

// Range bounds the sampled price axis of an evaluation.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point is one sampled price/profit pair on a curve.
type Point struct {
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// Curve is the expiration profit profile of a strategy. MaxProfit is
// math.Inf(1) when profit grows without bound and MaxLoss is math.Inf(-1)
// when loss does; otherwise both are exact profit levels reached at some
// price. Breakevens are ascending and deduplicated. Points sample the
// requested range with every in-range strike included.
type Curve struct {
	Points     []Point
	MaxProfit  float64
	MaxLoss    float64
	Breakevens []float64
}

// Evaluate computes the expiration curve for the given legs, sampling
// prices from rng.Min to rng.Max every step. Summary metrics and breakevens
// are properties of the strategy over every non-negative price, not of the
// sampling window. The same inputs always produce the identical curve.
func Evaluate(legs []Leg, rng Range, step float64) (*Curve, error) {
	if len(legs) == 0 {
		return nil, errors.ErrEmptyStrategy
	}
	for _, l := range legs {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateRange(rng, step); err != nil {
		return nil, err
	}

	profit := func(price float64) float64 {
		var total float64
		for _, l := range legs {
			total += l.Profit(price)
		}
		return total
	}

	critical := criticalPrices(legs)
	slopeUp := totalSlopeAbove(legs)

	maxProfit, maxLoss := extrema(profit, critical, slopeUp)

	return &Curve{
		Points:     samplePoints(profit, legs, rng, step),
		MaxProfit:  maxProfit,
		MaxLoss:    maxLoss,
		Breakevens: findBreakevens(profit, critical, slopeUp),
	}, nil
}

func validateRange(rng Range, step float64) error {
	if math.IsNaN(rng.Min) || math.IsInf(rng.Min, 0) || math.IsNaN(rng.Max) || math.IsInf(rng.Max, 0) {
		return errors.NewRangeError(rng.Min, rng.Max, step, "bounds must be finite numbers")
	}
	if rng.Min < 0 {
		return errors.NewRangeError(rng.Min, rng.Max, step, "min must be non-negative")
	}
	if rng.Max <= rng.Min {
		return errors.NewRangeError(rng.Min, rng.Max, step, "max must be greater than min")
	}
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return errors.NewRangeError(rng.Min, rng.Max, step, "step must be positive")
	}
	return nil
}

// criticalPrices returns zero plus every distinct option strike, ascending.
// The aggregate profit function is linear between consecutive entries and
// on the ray past the last one.
func criticalPrices(legs []Leg) []float64 {
	prices := []float64{0}
	for _, l := range legs {
		if l.Instrument == Underlying {
			continue
		}
		prices = append(prices, l.Strike)
	}
	sort.Float64s(prices)

	out := prices[:1]
	for _, p := range prices[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// totalSlopeAbove is the aggregate profit slope for prices above every
// strike. Leg slopes are whole quantities, so the sum is exact.
func totalSlopeAbove(legs []Leg) float64 {
	var slope float64
	for _, l := range legs {
		slope += l.slopeAbove()
	}
	return slope
}

// extrema computes the profit bounds over all prices from zero upward.
// Piecewise linearity puts every bounded extreme at a critical price; the
// open ray past the last one is unbounded whenever its slope is nonzero.
func extrema(profit func(float64) float64, critical []float64, slopeUp float64) (maxProfit, maxLoss float64) {
	maxProfit = math.Inf(-1)
	maxLoss = math.Inf(1)
	for _, p := range critical {
		v := profit(p)
		if v > maxProfit {
			maxProfit = v
		}
		if v < maxLoss {
			maxLoss = v
		}
	}
	if slopeUp > 0 {
		maxProfit = math.Inf(1)
	}
	if slopeUp < 0 {
		maxLoss = math.Inf(-1)
	}
	return maxProfit, maxLoss
}

// findBreakevens locates the zero crossings of the profit function over
// [0, +inf): exact zeros at critical prices, sign changes between
// consecutive ones resolved by linear interpolation, and at most one
// crossing on the ray past the last critical price.
func findBreakevens(profit func(float64) float64, critical []float64, slopeUp float64) []float64 {
	var breakevens []float64
	add := func(price float64) {
		if n := len(breakevens); n > 0 && floatEq(breakevens[n-1], price) {
			return
		}
		breakevens = append(breakevens, price)
	}

	values := make([]float64, len(critical))
	for i, p := range critical {
		values[i] = profit(p)
	}

	for i, p := range critical {
		if isZero(values[i]) {
			add(p)
			continue
		}
		if i+1 < len(critical) && !isZero(values[i+1]) && (values[i] < 0) != (values[i+1] < 0) {
			a, b := p, critical[i+1]
			pa, pb := values[i], values[i+1]
			add(a + (b-a)*(-pa/(pb-pa)))
		}
	}

	last := len(critical) - 1
	if slopeUp != 0 && !isZero(values[last]) && (values[last] < 0) == (slopeUp > 0) {
		add(critical[last] - values[last]/slopeUp)
	}

	return breakevens
}

// samplePoints evaluates the profit function across the requested window,
// keeping both endpoints and folding in any strikes the regular spacing
// would step over.
func samplePoints(profit func(float64) float64, legs []Leg, rng Range, step float64) []Point {
	n := int(math.Floor((rng.Max-rng.Min)/step + relTol))
	prices := make([]float64, 0, n+2+len(legs))
	for i := 0; i <= n; i++ {
		p := rng.Min + float64(i)*step
		if p > rng.Max {
			p = rng.Max
		}
		prices = append(prices, p)
	}
	if prices[len(prices)-1] < rng.Max {
		prices = append(prices, rng.Max)
	}
	for _, l := range legs {
		if l.Instrument == Underlying {
			continue
		}
		if l.Strike <= rng.Min || l.Strike >= rng.Max {
			continue
		}
		prices = append(prices, l.Strike)
	}
	sort.Float64s(prices)

	points := make([]Point, 0, len(prices))
	for _, p := range prices {
		if len(points) > 0 && floatEq(points[len(points)-1].Price, p) {
			continue
		}
		points = append(points, Point{Price: p, Profit: profit(p)})
	}
	return points
}

// DefaultRange derives an evaluation window from the legs: the span of
// their reference prices (strikes, or the entry price for underlying
// legs) padded by the given percentage on both sides. The lower bound is
// clamped to zero.
func DefaultRange(legs []Leg, paddingPercent float64) Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range legs {
		ref := l.Strike
		if l.Instrument == Underlying {
			ref = l.Premium
		}
		lo = math.Min(lo, ref)
		hi = math.Max(hi, ref)
	}
	if math.IsInf(lo, 1) {
		return Range{Min: 0, Max: 100}
	}

	pad := paddingPercent / 100
	rng := Range{Min: lo * (1 - pad), Max: hi * (1 + pad)}
	if rng.Min < 0 {
		rng.Min = 0
	}
	if rng.Max <= rng.Min {
		rng.Max = rng.Min + 100
	}
	return rng
}

// isZero treats profits within the absolute tolerance as zero.
func isZero(v float64) bool {
	return math.Abs(v) <= absTol
}

// floatEq reports near-equality under the absolute and relative tolerances.
func floatEq(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= absTol {
		return true
	}
	return diff <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

// curveJSON is the wire form of Curve. JSON has no representation for IEEE
// infinities, so an unbounded side is emitted as null with the matching
// unlimited flag set.
type curveJSON struct {
	Points          []Point   `json:"points"`
	MaxProfit       *float64  `json:"max_profit"`
	MaxLoss         *float64  `json:"max_loss"`
	UnlimitedProfit bool      `json:"unlimited_profit"`
	UnlimitedLoss   bool      `json:"unlimited_loss"`
	Breakevens      []float64 `json:"breakevens"`
}

// MarshalJSON implements json.Marshaler.
func (c Curve) MarshalJSON() ([]byte, error) {
	out := curveJSON{
		Points:          c.Points,
		Breakevens:      c.Breakevens,
		UnlimitedProfit: math.IsInf(c.MaxProfit, 1),
		UnlimitedLoss:   math.IsInf(c.MaxLoss, -1),
	}
	if !out.UnlimitedProfit {
		v := c.MaxProfit
		out.MaxProfit = &v
	}
	if !out.UnlimitedLoss {
		v := c.MaxLoss
		out.MaxLoss = &v
	}
	if out.Breakevens == nil {
		out.Breakevens = []float64{}
	}
	return json.Marshal(out)
}
