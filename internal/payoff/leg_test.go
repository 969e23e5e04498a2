package payoff

import (
	"math"
	"testing"

	"options-payoff/internal/errors"
)

func TestNewLegValidation(t *testing.T) {
	tests := []struct {
		name       string
		instrument Instrument
		direction  Direction
		strike     float64
		premium    float64
		quantity   int
		wantField  string
	}{
		{"valid long call", Call, Long, 100, 5, 1, ""},
		{"valid short put", Put, Short, 95, 3.25, 2, ""},
		{"valid underlying", Underlying, Long, 0, 250, 10, ""},
		{"zero strike option", Call, Long, 0, 1, 1, ""},
		{"zero premium", Put, Long, 100, 0, 1, ""},
		{"negative strike", Call, Long, -100, 5, 1, "strike"},
		{"negative premium", Call, Long, 100, -5, 1, "premium"},
		{"zero quantity", Call, Long, 100, 5, 0, "quantity"},
		{"negative quantity", Call, Long, 100, 5, -3, "quantity"},
		{"nan strike", Call, Long, math.NaN(), 5, 1, "strike"},
		{"inf premium", Call, Long, 100, math.Inf(1), 1, "premium"},
		{"unknown instrument", Instrument("FUTURE"), Long, 100, 5, 1, "instrument"},
		{"unknown direction", Call, Direction("HOLD"), 100, 5, 1, "direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLeg(tt.instrument, tt.direction, tt.strike, tt.premium, tt.quantity)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("NewLeg returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("NewLeg should have returned an error")
			}
			if !errors.Is(err, errors.ErrInvalidLeg) {
				t.Errorf("error should wrap ErrInvalidLeg, got %v", err)
			}
			var legErr *errors.LegError
			if !errors.As(err, &legErr) {
				t.Fatalf("error should be a *LegError, got %T", err)
			}
			if legErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, legErr.Field)
			}
		})
	}
}

func TestLegIntrinsic(t *testing.T) {
	tests := []struct {
		name  string
		leg   Leg
		price float64
		want  float64
	}{
		{"call in the money", Leg{Instrument: Call, Strike: 100}, 120, 20},
		{"call at the money", Leg{Instrument: Call, Strike: 100}, 100, 0},
		{"call out of the money", Leg{Instrument: Call, Strike: 100}, 80, 0},
		{"put in the money", Leg{Instrument: Put, Strike: 100}, 80, 20},
		{"put at the money", Leg{Instrument: Put, Strike: 100}, 100, 0},
		{"put out of the money", Leg{Instrument: Put, Strike: 100}, 120, 0},
		{"underlying tracks price", Leg{Instrument: Underlying}, 42.5, 42.5},
		{"underlying at zero", Leg{Instrument: Underlying}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.leg.Intrinsic(tt.price); got != tt.want {
				t.Errorf("Intrinsic(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestLegProfit(t *testing.T) {
	tests := []struct {
		name  string
		leg   Leg
		price float64
		want  float64
	}{
		{"long call itm", Leg{Instrument: Call, Direction: Long, Strike: 100, Premium: 5, Quantity: 1}, 120, 15},
		{"long call otm", Leg{Instrument: Call, Direction: Long, Strike: 100, Premium: 5, Quantity: 1}, 80, -5},
		{"short call itm", Leg{Instrument: Call, Direction: Short, Strike: 100, Premium: 5, Quantity: 1}, 120, -15},
		{"short call otm", Leg{Instrument: Call, Direction: Short, Strike: 100, Premium: 5, Quantity: 1}, 80, 5},
		{"long put itm", Leg{Instrument: Put, Direction: Long, Strike: 100, Premium: 4, Quantity: 1}, 90, 6},
		{"short put itm", Leg{Instrument: Put, Direction: Short, Strike: 100, Premium: 4, Quantity: 1}, 90, -6},
		{"quantity scales profit", Leg{Instrument: Call, Direction: Long, Strike: 100, Premium: 5, Quantity: 3}, 120, 45},
		{"long underlying gain", Leg{Instrument: Underlying, Direction: Long, Premium: 50, Quantity: 2}, 60, 20},
		{"short underlying loss", Leg{Instrument: Underlying, Direction: Short, Premium: 50, Quantity: 2}, 60, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.leg.Profit(tt.price); got != tt.want {
				t.Errorf("Profit(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestParseInstrument(t *testing.T) {
	tests := []struct {
		in      string
		want    Instrument
		wantErr bool
	}{
		{"call", Call, false},
		{"CALL", Call, false},
		{"c", Call, false},
		{"put", Put, false},
		{"P", Put, false},
		{" underlying ", Underlying, false},
		{"stock", Underlying, false},
		{"future", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseInstrument(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseInstrument(%q) should have failed", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInstrument(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInstrument(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"long", Long, false},
		{"BUY", Long, false},
		{"short", Short, false},
		{"sell", Short, false},
		{"write", Short, false},
		{"hold", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q) should have failed", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNetPremium(t *testing.T) {
	long, _ := LongCall(100, 5, 1)
	short, _ := ShortCall(110, 2, 1)
	stock, _ := LongUnderlying(100, 10)

	tests := []struct {
		name string
		legs []Leg
		want float64
	}{
		{"debit spread", []Leg{long, short}, -3},
		{"pure credit", []Leg{short}, 2},
		{"underlying excluded", []Leg{long, stock}, -5},
		{"no legs", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetPremium(tt.legs); got != tt.want {
				t.Errorf("NetPremium = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegString(t *testing.T) {
	leg, _ := LongCall(100, 5.5, 2)
	if got, want := leg.String(), "long call x2 K=100.00 @ 5.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	stock, _ := ShortUnderlying(250, 1)
	if got, want := stock.String(), "short underlying x1 @ 250.00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
