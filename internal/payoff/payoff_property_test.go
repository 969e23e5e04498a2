package payoff

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// optionLegGen generates a valid option leg with realistic strikes and
// premiums.
func optionLegGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(Leg{}), map[string]gopter.Gen{
		"Instrument": gen.OneConstOf(Call, Put),
		"Direction":  gen.OneConstOf(Long, Short),
		"Strike":     gen.Float64Range(1, 500),
		"Premium":    gen.Float64Range(0, 50),
		"Quantity":   gen.IntRange(1, 10),
	})
}

// legsGen generates a strategy of one to six option legs.
func legsGen() gopter.Gen {
	return gen.SliceOf(optionLegGen()).Map(func(legs []Leg) []Leg {
		if len(legs) == 0 {
			legs = []Leg{{Instrument: Call, Direction: Long, Strike: 100, Premium: 5, Quantity: 1}}
		}
		if len(legs) > 6 {
			legs = legs[:6]
		}
		return legs
	})
}

func legsProfit(legs []Leg, price float64) float64 {
	var total float64
	for _, l := range legs {
		total += l.Profit(price)
	}
	return total
}

func distinctStrikes(legs []Leg) int {
	seen := map[float64]bool{}
	for _, l := range legs {
		if l.Instrument == Underlying {
			continue
		}
		seen[l.Strike] = true
	}
	return len(seen)
}

func TestProperty_LongCallRisksOnlyPremium(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("long call: unlimited upside, loss capped at premium, breakeven at strike plus premium", prop.ForAll(
		func(strike, premium float64, qty int) bool {
			leg, err := NewLeg(Call, Long, strike, premium, qty)
			if err != nil {
				return true
			}

			curve, err := Evaluate([]Leg{leg}, Range{Min: 0, Max: strike * 2}, strike / 20)
			if err != nil {
				return true
			}

			if !math.IsInf(curve.MaxProfit, 1) {
				return false
			}
			wantLoss := -premium * float64(qty)
			if math.Abs(curve.MaxLoss-wantLoss) > 1e-9+1e-6*math.Abs(wantLoss) {
				return false
			}
			if len(curve.Breakevens) != 1 {
				return false
			}
			wantBE := strike + premium
			return math.Abs(curve.Breakevens[0]-wantBE) <= 1e-9+1e-6*wantBE
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(0.1, 50),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_ShortPutLossStopsAtZero(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("short put: max profit is the premium, max loss is finite even when the window never reaches zero", prop.ForAll(
		func(strike, premium float64, qty int) bool {
			leg, err := NewLeg(Put, Short, strike, premium, qty)
			if err != nil {
				return true
			}

			// Window deliberately excludes low prices.
			curve, err := Evaluate([]Leg{leg}, Range{Min: strike * 0.9, Max: strike * 1.1}, strike/50)
			if err != nil {
				return true
			}

			wantProfit := premium * float64(qty)
			if math.Abs(curve.MaxProfit-wantProfit) > 1e-9+1e-6*wantProfit {
				return false
			}
			if math.IsInf(curve.MaxLoss, 0) {
				return false
			}
			wantLoss := (premium - strike) * float64(qty)
			return math.Abs(curve.MaxLoss-wantLoss) <= 1e-9+1e-6*math.Abs(wantLoss)
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(0.1, 9),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("long call plus short put equals long underlying shifted by the premium difference", prop.ForAll(
		func(strike, callPremium, putPremium float64, qty int) bool {
			call, err := NewLeg(Call, Long, strike, callPremium, qty)
			if err != nil {
				return true
			}
			put, err := NewLeg(Put, Short, strike, putPremium, qty)
			if err != nil {
				return true
			}
			stock, err := LongUnderlying(strike, qty)
			if err != nil {
				return true
			}

			curve, err := Evaluate([]Leg{call, put}, Range{Min: 0, Max: strike * 2}, strike/25)
			if err != nil {
				return true
			}

			shift := (callPremium - putPremium) * float64(qty)
			for _, p := range curve.Points {
				want := stock.Profit(p.Price) - shift
				if math.Abs(p.Profit-want) > 1e-9+1e-6*math.Abs(want) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 50),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_MirroredStrategyNegatesCurve(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	// Disable shrinking: shrunk values can fall outside the generator
	// constraints and fail leg validation instead of the property.
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	mirror := func(legs []Leg) []Leg {
		out := make([]Leg, len(legs))
		for i, l := range legs {
			flipped := l
			if l.Direction == Long {
				flipped.Direction = Short
			} else {
				flipped.Direction = Long
			}
			out[i] = flipped
		}
		return out
	}

	properties.Property("flipping every leg direction negates profits and swaps the profit bounds", prop.ForAll(
		func(legs []Leg) bool {
			rng := Range{Min: 0, Max: 1000}
			curve, err := Evaluate(legs, rng, 10)
			if err != nil {
				return true
			}
			mirrored, err := Evaluate(mirror(legs), rng, 10)
			if err != nil {
				return false
			}

			if len(curve.Points) != len(mirrored.Points) {
				return false
			}
			for i := range curve.Points {
				if math.Abs(mirrored.Points[i].Profit+curve.Points[i].Profit) > 1e-6 {
					return false
				}
			}

			negEq := func(a, b float64) bool {
				if math.IsInf(a, 0) || math.IsInf(b, 0) {
					return a == -b
				}
				return math.Abs(a+b) <= 1e-6
			}
			return negEq(mirrored.MaxProfit, curve.MaxLoss) && negEq(mirrored.MaxLoss, curve.MaxProfit)
		},
		legsGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_BreakevenCountBound(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("a strategy with n distinct strikes has at most n+1 breakevens, sorted ascending", prop.ForAll(
		func(legs []Leg) bool {
			curve, err := Evaluate(legs, Range{Min: 0, Max: 1000}, 10)
			if err != nil {
				return true
			}

			if len(curve.Breakevens) > distinctStrikes(legs)+1 {
				return false
			}
			for i := 1; i < len(curve.Breakevens); i++ {
				if curve.Breakevens[i] <= curve.Breakevens[i-1] {
					return false
				}
			}
			return true
		},
		legsGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_BreakevensAreZeroCrossings(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("profit at every reported breakeven is zero within tolerance", prop.ForAll(
		func(legs []Leg) bool {
			curve, err := Evaluate(legs, Range{Min: 0, Max: 1000}, 10)
			if err != nil {
				return true
			}

			for _, be := range curve.Breakevens {
				if be < 0 {
					return false
				}
				if math.Abs(legsProfit(legs, be)) > 1e-6 {
					return false
				}
			}
			return true
		},
		legsGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_SampledProfitsWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("every sampled profit lies between max loss and max profit", prop.ForAll(
		func(legs []Leg) bool {
			curve, err := Evaluate(legs, Range{Min: 0, Max: 1000}, 5)
			if err != nil {
				return true
			}

			for _, p := range curve.Points {
				if p.Profit > curve.MaxProfit+1e-6 {
					return false
				}
				if p.Profit < curve.MaxLoss-1e-6 {
					return false
				}
			}
			return true
		},
		legsGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_EvaluateIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("evaluating the same inputs twice yields bit-identical curves", prop.ForAll(
		func(legs []Leg) bool {
			rng := Range{Min: 0, Max: 750}
			first, err := Evaluate(legs, rng, 2.5)
			if err != nil {
				return true
			}
			second, err := Evaluate(legs, rng, 2.5)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		legsGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_LeftTailSlopeMatchesLegs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("below the lowest strike the curve is linear with the aggregate downside slope", prop.ForAll(
		func(legs []Leg) bool {
			lowest := math.Inf(1)
			var slope float64
			for _, l := range legs {
				slope += l.slopeBelow()
				if l.Instrument != Underlying && l.Strike < lowest {
					lowest = l.Strike
				}
			}
			if math.IsInf(lowest, 1) || lowest < 1 {
				return true
			}

			a, b := lowest*0.25, lowest*0.75
			got := (legsProfit(legs, b) - legsProfit(legs, a)) / (b - a)
			return math.Abs(got-slope) <= 1e-6*(1+math.Abs(slope))
		},
		legsGen(),
	))

	properties.TestingRun(t)
}
