package catalog

import "options-payoff/internal/payoff"

func long(instrument payoff.Instrument, strike int) LegSpec {
	return LegSpec{Instrument: instrument, Direction: payoff.Long, StrikeIndex: strike, Ratio: 1}
}

func short(instrument payoff.Instrument, strike int) LegSpec {
	return LegSpec{Instrument: instrument, Direction: payoff.Short, StrikeIndex: strike, Ratio: 1}
}

func ratio(spec LegSpec, n int) LegSpec {
	spec.Ratio = n
	return spec
}

func buyStock() LegSpec {
	return LegSpec{Instrument: payoff.Underlying, Direction: payoff.Long, StrikeIndex: UnderlyingLeg, Ratio: 1}
}

func sellStock() LegSpec {
	return LegSpec{Instrument: payoff.Underlying, Direction: payoff.Short, StrikeIndex: UnderlyingLeg, Ratio: 1}
}

// definitions lists every preset. Strike indices refer to the caller's
// ascending ladder; premium order follows leg order. Calendar and diagonal
// spreads need a second expiry and binary options a discontinuous payout,
// so neither fits an expiration payoff model.
var definitions = []Definition{
	{
		Name:    "long_call",
		Summary: "Buy a call to profit from a rise in the underlying.",
		Legs:    []LegSpec{long(payoff.Call, 0)},
	},
	{
		Name:    "short_call",
		Summary: "Write a call to collect premium, with unlimited upside risk.",
		Legs:    []LegSpec{short(payoff.Call, 0)},
	},
	{
		Name:    "long_put",
		Summary: "Buy a put to profit from a fall in the underlying.",
		Legs:    []LegSpec{long(payoff.Put, 0)},
	},
	{
		Name:    "short_put",
		Summary: "Write a put to collect premium, risking assignment below the strike.",
		Legs:    []LegSpec{short(payoff.Put, 0)},
	},
	{
		Name:    "long_underlying",
		Summary: "Buy the underlying outright.",
		Legs:    []LegSpec{buyStock()},
	},
	{
		Name:    "short_underlying",
		Summary: "Sell the underlying short.",
		Legs:    []LegSpec{sellStock()},
	},
	{
		Name:    "bull_call_spread",
		Summary: "Buy a call and write a higher-strike call to cap cost and upside.",
		Legs:    []LegSpec{long(payoff.Call, 0), short(payoff.Call, 1)},
	},
	{
		Name:    "bear_call_spread",
		Summary: "Write a call and buy a higher-strike call for a defined-risk credit.",
		Legs:    []LegSpec{short(payoff.Call, 0), long(payoff.Call, 1)},
	},
	{
		Name:    "bull_put_spread",
		Summary: "Buy a put and write a higher-strike put for a defined-risk credit.",
		Legs:    []LegSpec{long(payoff.Put, 0), short(payoff.Put, 1)},
	},
	{
		Name:    "bear_put_spread",
		Summary: "Write a put and buy a higher-strike put to profit from a decline.",
		Legs:    []LegSpec{short(payoff.Put, 0), long(payoff.Put, 1)},
	},
	{
		Name:    "covered_call",
		Summary: "Hold the underlying and write a call against it.",
		Legs:    []LegSpec{buyStock(), short(payoff.Call, 0)},
	},
	{
		Name:    "covered_put",
		Summary: "Short the underlying and write a put against it.",
		Legs:    []LegSpec{sellStock(), short(payoff.Put, 0)},
	},
	{
		Name:    "protective_call",
		Summary: "Short the underlying and buy a call to cap the upside risk.",
		Legs:    []LegSpec{sellStock(), long(payoff.Call, 0)},
	},
	{
		Name:    "protective_put",
		Summary: "Hold the underlying and buy a put to floor the downside.",
		Legs:    []LegSpec{buyStock(), long(payoff.Put, 0)},
	},
	{
		Name:    "collar",
		Summary: "Hold the underlying, buy a protective put and write a covered call.",
		Legs:    []LegSpec{buyStock(), long(payoff.Put, 0), short(payoff.Call, 1)},
	},
	{
		Name:    "risk_reversal",
		Summary: "Write a put to finance a higher-strike call.",
		Legs:    []LegSpec{short(payoff.Put, 0), long(payoff.Call, 1)},
	},
	{
		Name:    "combination",
		Summary: "Buy a put and a call at different strikes.",
		Legs:    []LegSpec{long(payoff.Put, 0), long(payoff.Call, 1)},
	},
	{
		Name:    "long_straddle",
		Summary: "Buy a call and a put at the same strike to trade a large move either way.",
		Legs:    []LegSpec{long(payoff.Call, 0), long(payoff.Put, 0)},
	},
	{
		Name:    "short_straddle",
		Summary: "Write a call and a put at the same strike to sell volatility.",
		Legs:    []LegSpec{short(payoff.Call, 0), short(payoff.Put, 0)},
	},
	{
		Name:    "long_strangle",
		Summary: "Buy an out-of-the-money put and call to trade a large move cheaply.",
		Legs:    []LegSpec{long(payoff.Put, 0), long(payoff.Call, 1)},
	},
	{
		Name:    "short_strangle",
		Summary: "Write an out-of-the-money put and call to sell volatility with a wider cushion.",
		Legs:    []LegSpec{short(payoff.Put, 0), short(payoff.Call, 1)},
	},
	{
		Name:    "long_guts",
		Summary: "Buy an in-the-money call and an in-the-money put.",
		Legs:    []LegSpec{long(payoff.Call, 0), long(payoff.Put, 1)},
	},
	{
		Name:    "short_guts",
		Summary: "Write an in-the-money call and an in-the-money put.",
		Legs:    []LegSpec{short(payoff.Call, 0), short(payoff.Put, 1)},
	},
	{
		Name:    "long_call_butterfly",
		Summary: "Buy the wings and write twice the body using calls.",
		Legs:    []LegSpec{long(payoff.Call, 0), ratio(short(payoff.Call, 1), 2), long(payoff.Call, 2)},
	},
	{
		Name:    "short_call_butterfly",
		Summary: "Write the wings and buy twice the body using calls.",
		Legs:    []LegSpec{short(payoff.Call, 0), ratio(long(payoff.Call, 1), 2), short(payoff.Call, 2)},
	},
	{
		Name:    "long_put_butterfly",
		Summary: "Buy the wings and write twice the body using puts.",
		Legs:    []LegSpec{long(payoff.Put, 0), ratio(short(payoff.Put, 1), 2), long(payoff.Put, 2)},
	},
	{
		Name:    "short_put_butterfly",
		Summary: "Write the wings and buy twice the body using puts.",
		Legs:    []LegSpec{short(payoff.Put, 0), ratio(long(payoff.Put, 1), 2), short(payoff.Put, 2)},
	},
	{
		Name:    "iron_butterfly",
		Summary: "Write a straddle at the body and buy protective wings.",
		Legs:    []LegSpec{long(payoff.Put, 0), short(payoff.Put, 1), short(payoff.Call, 1), long(payoff.Call, 2)},
	},
	{
		Name:    "long_call_condor",
		Summary: "Buy the outer calls and write the two inner calls.",
		Legs:    []LegSpec{long(payoff.Call, 0), short(payoff.Call, 1), short(payoff.Call, 2), long(payoff.Call, 3)},
	},
	{
		Name:    "short_call_condor",
		Summary: "Write the outer calls and buy the two inner calls.",
		Legs:    []LegSpec{short(payoff.Call, 0), long(payoff.Call, 1), long(payoff.Call, 2), short(payoff.Call, 3)},
	},
	{
		Name:    "long_put_condor",
		Summary: "Buy the outer puts and write the two inner puts.",
		Legs:    []LegSpec{long(payoff.Put, 0), short(payoff.Put, 1), short(payoff.Put, 2), long(payoff.Put, 3)},
	},
	{
		Name:    "short_put_condor",
		Summary: "Write the outer puts and buy the two inner puts.",
		Legs:    []LegSpec{short(payoff.Put, 0), long(payoff.Put, 1), long(payoff.Put, 2), short(payoff.Put, 3)},
	},
	{
		Name:    "iron_condor",
		Summary: "Write an out-of-the-money put spread and call spread around the price.",
		Legs:    []LegSpec{long(payoff.Put, 0), short(payoff.Put, 1), short(payoff.Call, 2), long(payoff.Call, 3)},
	},
	{
		Name:    "box_spread",
		Summary: "Combine a bull call spread and a bear put spread on the same strikes.",
		Legs:    []LegSpec{long(payoff.Call, 0), short(payoff.Call, 1), long(payoff.Put, 1), short(payoff.Put, 0)},
	},
	{
		Name:    "long_call_ratio",
		Summary: "Buy a call and write calls at two higher strikes.",
		Legs:    []LegSpec{long(payoff.Call, 0), short(payoff.Call, 1), short(payoff.Call, 2)},
	},
	{
		Name:    "short_call_ratio",
		Summary: "Write a call and buy calls at two higher strikes.",
		Legs:    []LegSpec{short(payoff.Call, 0), long(payoff.Call, 1), long(payoff.Call, 2)},
	},
	{
		Name:    "long_put_ratio",
		Summary: "Buy a put and write puts at two lower strikes.",
		Legs:    []LegSpec{short(payoff.Put, 0), short(payoff.Put, 1), long(payoff.Put, 2)},
	},
	{
		Name:    "short_put_ratio",
		Summary: "Write a put and buy puts at two lower strikes.",
		Legs:    []LegSpec{long(payoff.Put, 0), long(payoff.Put, 1), short(payoff.Put, 2)},
	},
	{
		Name:    "synthetic_call",
		Summary: "Hold the underlying and buy a put to mimic a long call.",
		Legs:    []LegSpec{buyStock(), long(payoff.Put, 0)},
	},
	{
		Name:    "synthetic_put",
		Summary: "Short the underlying and buy a call to mimic a long put.",
		Legs:    []LegSpec{sellStock(), long(payoff.Call, 0)},
	},
}

// aliases maps accepted alternate names onto canonical catalog entries.
var aliases = map[string]string{
	"straddle":     "long_straddle",
	"strangle":     "long_strangle",
	"butterfly":    "long_call_butterfly",
	"married_put":  "protective_put",
	"married_call": "covered_call",
	"naked_call":   "short_call",
	"naked_put":    "short_put",
	"stock":        "long_underlying",
}
