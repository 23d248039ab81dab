package equity

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMaxRounds caps a projection when the caller passes no limit.
const DefaultMaxRounds = 100

// ErrUndefinedSchedule is returned when the number of raises is not a finite,
// non-negative number or the dilution per round is invalid.
var ErrUndefinedSchedule = errors.New("round schedule is undefined for these inputs")

// Round is one step of a projection. Whole rounds come first; the last row
// is the target valuation at the (usually fractional) number of raises.
type Round struct {
	Round            float64 `json:"round" csv:"round"`
	Valuation        float64 `json:"valuation" csv:"valuation"`
	EquityPercentage float64 `json:"equity_percentage" csv:"equity_percentage"`
	StakeValue       float64 `json:"stake_value" csv:"stake_value"`
	Target           bool    `json:"target" csv:"target"`
}

type Schedule struct {
	NumberOfRaises float64 `json:"number_of_raises"`
	Rounds         []Round `json:"rounds"`
	Truncated      bool    `json:"truncated"`
}

// Project walks the company from its current valuation to the potential
// valuation one round at a time. The target row carries the same stake
// value as Compute's PotentialStockValue.
func Project(s State, maxRounds int) (Schedule, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	n := NumberOfRaises(s.CompanyValuation, s.PotentialValuation, s.RoundMultiplier)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return Schedule{}, errors.Wrapf(ErrUndefinedSchedule, "number of raises %v", n)
	}
	if math.IsNaN(Dilution(s.DilutionRatio, n)) {
		return Schedule{}, errors.Wrapf(ErrUndefinedSchedule, "dilution ratio %v", s.DilutionRatio)
	}

	sched := Schedule{NumberOfRaises: n}
	whole := int(math.Ceil(n))
	if whole > maxRounds {
		whole = maxRounds
		sched.Truncated = true
	}

	keep := (100 - s.DilutionRatio) / 100
	for k := 0; k < whole; k++ {
		pct := s.EquityPercentage * math.Pow(keep, float64(k))
		val := s.CompanyValuation * math.Pow(s.RoundMultiplier, float64(k))
		sched.Rounds = append(sched.Rounds, Round{
			Round:            float64(k),
			Valuation:        val,
			EquityPercentage: pct,
			StakeValue:       (pct / 100) * val,
		})
	}

	if !sched.Truncated {
		d := Dilution(s.DilutionRatio, n)
		sched.Rounds = append(sched.Rounds, Round{
			Round:            n,
			Valuation:        s.PotentialValuation,
			EquityPercentage: s.EquityPercentage * d,
			StakeValue:       (s.EquityPercentage / 100) * s.PotentialValuation * d,
			Target:           true,
		})
	}
	return sched, nil
}
