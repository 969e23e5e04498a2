package payoff

import (
	"fmt"
	"math"
	"strings"

	"options-payoff/internal/errors"
)

// Instrument represents the kind of contract a leg holds.
type Instrument string

const (
	Call       Instrument = "CALL"
	Put        Instrument = "PUT"
	Underlying Instrument = "UNDERLYING"
)

// Direction represents whether a leg is bought or written.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// ParseInstrument converts user input to an Instrument.
func ParseInstrument(s string) (Instrument, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CALL", "C":
		return Call, nil
	case "PUT", "P":
		return Put, nil
	case "UNDERLYING", "STOCK", "U", "S":
		return Underlying, nil
	}
	return "", errors.NewLegError("instrument", s, "must be call, put or underlying")
}

// ParseDirection converts user input to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY", "L", "B":
		return Long, nil
	case "SHORT", "SELL", "WRITE", "S":
		return Short, nil
	}
	return "", errors.NewLegError("direction", s, "must be long or short")
}

// Leg represents one position within an option strategy. For option legs
// Premium is the per-unit premium paid or received; for Underlying legs
// Premium holds the entry price and Strike is ignored (zero by convention).
type Leg struct {
	Instrument Instrument `json:"instrument"`
	Direction  Direction  `json:"direction"`
	Strike     float64    `json:"strike"`
	Premium    float64    `json:"premium"`
	Quantity   int        `json:"quantity"`
}

// NewLeg creates a validated Leg.
func NewLeg(instrument Instrument, direction Direction, strike, premium float64, quantity int) (Leg, error) {
	leg := Leg{
		Instrument: instrument,
		Direction:  direction,
		Strike:     strike,
		Premium:    premium,
		Quantity:   quantity,
	}
	if err := leg.Validate(); err != nil {
		return Leg{}, err
	}
	return leg, nil
}

// LongCall creates a bought call leg.
func LongCall(strike, premium float64, quantity int) (Leg, error) {
	return NewLeg(Call, Long, strike, premium, quantity)
}

// ShortCall creates a written call leg.
func ShortCall(strike, premium float64, quantity int) (Leg, error) {
	return NewLeg(Call, Short, strike, premium, quantity)
}

// LongPut creates a bought put leg.
func LongPut(strike, premium float64, quantity int) (Leg, error) {
	return NewLeg(Put, Long, strike, premium, quantity)
}

// ShortPut creates a written put leg.
func ShortPut(strike, premium float64, quantity int) (Leg, error) {
	return NewLeg(Put, Short, strike, premium, quantity)
}

// LongUnderlying creates a long position in the underlying at the given
// entry price.
func LongUnderlying(entryPrice float64, quantity int) (Leg, error) {
	return NewLeg(Underlying, Long, 0, entryPrice, quantity)
}

// ShortUnderlying creates a short position in the underlying at the given
// entry price.
func ShortUnderlying(entryPrice float64, quantity int) (Leg, error) {
	return NewLeg(Underlying, Short, 0, entryPrice, quantity)
}

// Validate reports the first construction invariant the leg violates.
func (l Leg) Validate() error {
	switch l.Instrument {
	case Call, Put, Underlying:
	default:
		return errors.NewLegError("instrument", string(l.Instrument), "must be call, put or underlying")
	}
	switch l.Direction {
	case Long, Short:
	default:
		return errors.NewLegError("direction", string(l.Direction), "must be long or short")
	}
	if math.IsNaN(l.Strike) || math.IsInf(l.Strike, 0) {
		return errors.NewLegError("strike", l.Strike, "must be a finite number")
	}
	if l.Strike < 0 {
		return errors.NewLegError("strike", l.Strike, "must be non-negative")
	}
	if math.IsNaN(l.Premium) || math.IsInf(l.Premium, 0) {
		return errors.NewLegError("premium", l.Premium, "must be a finite number")
	}
	if l.Premium < 0 {
		return errors.NewLegError("premium", l.Premium, "must be non-negative")
	}
	if l.Quantity < 1 {
		return errors.NewLegError("quantity", l.Quantity, "must be at least 1")
	}
	return nil
}

// Intrinsic returns the exercise value of one unit at the given underlying
// price, ignoring premium.
func (l Leg) Intrinsic(price float64) float64 {
	switch l.Instrument {
	case Call:
		return math.Max(price-l.Strike, 0)
	case Put:
		return math.Max(l.Strike-price, 0)
	case Underlying:
		return price
	}
	return 0
}

// Profit returns the expiration profit of the whole leg at the given
// underlying price: intrinsic value net of premium for long legs, premium
// net of intrinsic value for short legs, scaled by quantity.
func (l Leg) Profit(price float64) float64 {
	unit := l.Intrinsic(price) - l.Premium
	if l.Direction == Short {
		unit = -unit
	}
	return unit * float64(l.Quantity)
}

// String renders the leg in the compact form used by CLI tables and logs.
func (l Leg) String() string {
	if l.Instrument == Underlying {
		return fmt.Sprintf("%s %s x%d @ %.2f", strings.ToLower(string(l.Direction)), strings.ToLower(string(l.Instrument)), l.Quantity, l.Premium)
	}
	return fmt.Sprintf("%s %s x%d K=%.2f @ %.2f", strings.ToLower(string(l.Direction)), strings.ToLower(string(l.Instrument)), l.Quantity, l.Strike, l.Premium)
}

// sign is +1 for long legs and -1 for short legs.
func (l Leg) sign() float64 {
	if l.Direction == Short {
		return -1
	}
	return 1
}

// slopeAbove is the profit slope of the whole leg for prices above every
// strike.
func (l Leg) slopeAbove() float64 {
	var unit float64
	switch l.Instrument {
	case Call, Underlying:
		unit = 1
	case Put:
		unit = 0
	}
	return unit * l.sign() * float64(l.Quantity)
}

// slopeBelow is the profit slope of the whole leg for prices below every
// strike.
func (l Leg) slopeBelow() float64 {
	var unit float64
	switch l.Instrument {
	case Put:
		unit = -1
	case Underlying:
		unit = 1
	case Call:
		unit = 0
	}
	return unit * l.sign() * float64(l.Quantity)
}

// NetPremium returns the signed premium flow of the option legs: positive
// when the strategy collects more premium than it pays. Underlying legs
// carry an entry price rather than a premium and are excluded.
func NetPremium(legs []Leg) float64 {
	var net float64
	for _, l := range legs {
		if l.Instrument == Underlying {
			continue
		}
		net += -l.sign() * l.Premium * float64(l.Quantity)
	}
	return net
}
