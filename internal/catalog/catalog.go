// Package catalog defines the built-in option strategy presets and builds
// concrete legs from user-supplied strikes and premiums.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"options-payoff/internal/errors"
	"options-payoff/internal/payoff"
)

// UnderlyingLeg marks a LegSpec that trades the underlying instead of an
// option; the matching premium slot carries the entry price.
const UnderlyingLeg = -1

// LegSpec describes one leg of a preset relative to the caller's strike
// ladder: StrikeIndex selects a strike from the ascending ladder and Ratio
// multiplies the base quantity.
type LegSpec struct {
	Instrument  payoff.Instrument `json:"instrument"`
	Direction   payoff.Direction  `json:"direction"`
	StrikeIndex int               `json:"strike_index"`
	Ratio       int               `json:"ratio"`
}

// Definition is a named strategy preset.
type Definition struct {
	Name    string    `json:"name"`
	Summary string    `json:"summary"`
	Legs    []LegSpec `json:"legs"`
}

// NumStrikes returns how many distinct strikes the preset needs.
func (d Definition) NumStrikes() int {
	max := -1
	for _, spec := range d.Legs {
		if spec.StrikeIndex > max {
			max = spec.StrikeIndex
		}
	}
	return max + 1
}

// NumPremiums returns how many premium values the preset needs, one per leg
// in order. Underlying legs take their entry price through the premium slot.
func (d Definition) NumPremiums() int {
	return len(d.Legs)
}

// Build constructs the preset's legs from an ascending strike ladder and
// per-leg premiums, scaled by the base quantity.
func (d Definition) Build(strikes, premiums []float64, quantity int) ([]payoff.Leg, error) {
	if len(strikes) != d.NumStrikes() {
		return nil, errors.NewStrategyError(d.Name,
			fmt.Sprintf("needs %d strikes, got %d", d.NumStrikes(), len(strikes)), errors.ErrInvalidLeg)
	}
	if len(premiums) != d.NumPremiums() {
		return nil, errors.NewStrategyError(d.Name,
			fmt.Sprintf("needs %d premiums, got %d", d.NumPremiums(), len(premiums)), errors.ErrInvalidLeg)
	}
	for i := 1; i < len(strikes); i++ {
		if strikes[i] <= strikes[i-1] {
			return nil, errors.NewStrategyError(d.Name, "strikes must be strictly ascending", errors.ErrInvalidLeg)
		}
	}
	if quantity < 1 {
		return nil, errors.NewStrategyError(d.Name,
			fmt.Sprintf("quantity %d must be at least 1", quantity), errors.ErrInvalidLeg)
	}

	legs := make([]payoff.Leg, 0, len(d.Legs))
	for i, spec := range d.Legs {
		var strike float64
		if spec.StrikeIndex != UnderlyingLeg {
			strike = strikes[spec.StrikeIndex]
		}
		leg, err := payoff.NewLeg(spec.Instrument, spec.Direction, strike, premiums[i], quantity*spec.Ratio)
		if err != nil {
			return nil, errors.NewStrategyError(d.Name, fmt.Sprintf("leg %d", i+1), err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// Normalize canonicalizes a strategy name for lookup: lower case with
// hyphens and spaces folded to underscores.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Lookup resolves a strategy name or alias to its definition.
func Lookup(name string) (Definition, error) {
	key := Normalize(name)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	def, ok := registry[key]
	if !ok {
		return Definition{}, errors.NewStrategyError(name, "not in the catalog", errors.ErrUnknownStrategy)
	}
	return def, nil
}

// Names returns every canonical strategy name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every definition, sorted by name.
func All() []Definition {
	names := Names()
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, registry[name])
	}
	return defs
}

var registry = map[string]Definition{}

func init() {
	for _, def := range definitions {
		registry[def.Name] = def
	}
}
