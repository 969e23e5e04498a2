package catalog

import (
	"math"
	"testing"

	"options-payoff/internal/errors"
	"options-payoff/internal/payoff"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"canonical", "iron_condor", "iron_condor", false},
		{"hyphenated", "iron-condor", "iron_condor", false},
		{"mixed case with spaces", " Bull Call Spread ", "bull_call_spread", false},
		{"alias straddle", "straddle", "long_straddle", false},
		{"alias married put", "married-put", "protective_put", false},
		{"unknown", "quantum_hedge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Lookup(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrUnknownStrategy) {
					t.Errorf("expected ErrUnknownStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.in, err)
			}
			if def.Name != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.in, def.Name, tt.want)
			}
		})
	}
}

func TestDefinitionCounts(t *testing.T) {
	tests := []struct {
		name         string
		wantStrikes  int
		wantPremiums int
	}{
		{"long_call", 1, 1},
		{"long_underlying", 0, 1},
		{"bull_call_spread", 2, 2},
		{"collar", 2, 3},
		{"long_call_butterfly", 3, 3},
		{"iron_butterfly", 3, 4},
		{"iron_condor", 4, 4},
		{"box_spread", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if got := def.NumStrikes(); got != tt.wantStrikes {
				t.Errorf("NumStrikes = %d, want %d", got, tt.wantStrikes)
			}
			if got := def.NumPremiums(); got != tt.wantPremiums {
				t.Errorf("NumPremiums = %d, want %d", got, tt.wantPremiums)
			}
		})
	}
}

func TestBuildBullCallSpread(t *testing.T) {
	def, err := Lookup("bull_call_spread")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	legs, err := def.Build([]float64{100, 110}, []float64{5, 2}, 1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}

	curve, err := payoff.Evaluate(legs, payoff.Range{Min: 80, Max: 130}, 1)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if math.Abs(curve.MaxProfit-7) > 1e-9 {
		t.Errorf("MaxProfit = %v, want 7", curve.MaxProfit)
	}
	if math.Abs(curve.MaxLoss+3) > 1e-9 {
		t.Errorf("MaxLoss = %v, want -3", curve.MaxLoss)
	}
	if len(curve.Breakevens) != 1 || math.Abs(curve.Breakevens[0]-103) > 1e-9 {
		t.Errorf("Breakevens = %v, want [103]", curve.Breakevens)
	}
}

func TestBuildButterflyDoublesBody(t *testing.T) {
	def, err := Lookup("long_call_butterfly")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	legs, err := def.Build([]float64{95, 100, 105}, []float64{7, 4, 2}, 2)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if legs[0].Quantity != 2 || legs[2].Quantity != 2 {
		t.Errorf("wing quantities = %d, %d, want 2, 2", legs[0].Quantity, legs[2].Quantity)
	}
	if legs[1].Quantity != 4 {
		t.Errorf("body quantity = %d, want 4", legs[1].Quantity)
	}
	if legs[1].Direction != payoff.Short {
		t.Errorf("body direction = %s, want SHORT", legs[1].Direction)
	}
}

func TestBuildCoveredCallUsesEntryPrice(t *testing.T) {
	def, err := Lookup("covered_call")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	legs, err := def.Build([]float64{105}, []float64{100, 3}, 1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if legs[0].Instrument != payoff.Underlying || legs[0].Premium != 100 {
		t.Errorf("stock leg = %+v, want underlying entry at 100", legs[0])
	}
	if legs[1].Instrument != payoff.Call || legs[1].Strike != 105 {
		t.Errorf("call leg = %+v, want strike 105", legs[1])
	}
}

func TestBuildValidation(t *testing.T) {
	def, err := Lookup("bull_call_spread")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	tests := []struct {
		name     string
		strikes  []float64
		premiums []float64
		quantity int
	}{
		{"too few strikes", []float64{100}, []float64{5, 2}, 1},
		{"too many strikes", []float64{100, 110, 120}, []float64{5, 2}, 1},
		{"wrong premium count", []float64{100, 110}, []float64{5}, 1},
		{"descending strikes", []float64{110, 100}, []float64{5, 2}, 1},
		{"equal strikes", []float64{100, 100}, []float64{5, 2}, 1},
		{"zero quantity", []float64{100, 110}, []float64{5, 2}, 0},
		{"negative premium", []float64{100, 110}, []float64{-5, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := def.Build(tt.strikes, tt.premiums, tt.quantity)
			if err == nil {
				t.Fatal("Build should have failed")
			}
			if !errors.Is(err, errors.ErrInvalidLeg) {
				t.Errorf("error should wrap ErrInvalidLeg, got %v", err)
			}
		})
	}
}

func TestAllDefinitionsBuildAndEvaluate(t *testing.T) {
	ladder := []float64{90, 100, 110, 120}

	for _, def := range All() {
		def := def
		t.Run(def.Name, func(t *testing.T) {
			if def.Summary == "" {
				t.Error("definition has no summary")
			}

			strikes := ladder[:def.NumStrikes()]
			premiums := make([]float64, def.NumPremiums())
			for i := range premiums {
				premiums[i] = 2.5
			}

			legs, err := def.Build(strikes, premiums, 1)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if len(legs) != len(def.Legs) {
				t.Fatalf("expected %d legs, got %d", len(def.Legs), len(legs))
			}

			curve, err := payoff.Evaluate(legs, payoff.Range{Min: 50, Max: 160}, 1)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if len(curve.Points) == 0 {
				t.Error("curve has no sampled points")
			}
		})
	}
}
