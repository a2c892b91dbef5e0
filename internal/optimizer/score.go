package optimizer

import "math"

// Weights configures the scoring function. Callers inject a Weights
// value instead of mutating package state, so tests and experiments can
// vary the weighting independently.
type Weights struct {
	Efficiency   float64 `json:"efficiency"`
	Gap          float64 `json:"gap"`
	Length       float64 `json:"length"`
	EarlyPenalty float64 `json:"early_penalty"`
}

// DefaultWeights returns the standard scoring weights
func DefaultWeights() Weights {
	return Weights{
		Efficiency:   1.5,
		Gap:          1.0,
		Length:       0.5,
		EarlyPenalty: 0.05,
	}
}

// Score computes the desirability of a candidate period. A period with
// no vacation days is invalid and scores negative infinity.
//
// score = efficiency*w_eff + (1/cost)*w_gap + daysOff*w_len - earlyPenalty
//
// where efficiency is days off gained per budget day spent, and
// earlyPenalty = (1 - (11 - month)/11) * w_early varies with the start
// month so that otherwise-equal candidates spread across the calendar.
func (w Weights) Score(p *Period) float64 {
	if len(p.VacationDays) == 0 || p.Cost <= 0 {
		return math.Inf(-1)
	}

	efficiency := float64(p.TotalDaysOff) / p.Cost
	if efficiency < 0 {
		efficiency = 0
	}

	// 0-indexed month of the period start
	month := float64(int(p.StartDate.Month) - 1)
	earlyPenalty := (1 - (11-month)/11) * w.EarlyPenalty

	return efficiency*w.Efficiency +
		(1/p.Cost)*w.Gap +
		float64(p.TotalDaysOff)*w.Length -
		earlyPenalty
}
