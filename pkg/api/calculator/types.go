package calculator

import (
	"math"

	"stock_potential/pkg/core/display"
	"stock_potential/pkg/core/equity"
	"stock_potential/pkg/core/scenario"
)

// JSON has no NaN or Infinity, so every number that can go non-finite is
// sent as null instead.

// Number is a float that encodes non-finite values as null.
type Number *float64

func num(x float64) Number {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// StateFields maps wire field names to values.
type StateFields map[string]Number

func stateFields(s equity.State) StateFields {
	out := make(StateFields, len(equity.Fields))
	for _, f := range equity.Fields {
		v, _ := s.Get(f)
		out[f.String()] = num(v)
	}
	return out
}

type Outputs struct {
	NumberOfRaises      Number `json:"number_of_raises"`
	Dilution            Number `json:"dilution"`
	PotentialStockValue Number `json:"potential_stock_value"`
}

func outputs(o equity.Outputs) Outputs {
	return Outputs{
		NumberOfRaises:      num(o.NumberOfRaises),
		Dilution:            num(o.Dilution),
		PotentialStockValue: num(o.PotentialStockValue),
	}
}

// ComputeResponse is returned by the defaults and compute endpoints.
type ComputeResponse struct {
	CalculationID string            `json:"calculation_id"`
	State         StateFields       `json:"state"`
	Outputs       Outputs           `json:"outputs"`
	Display       display.Display   `json:"display"`
	Edits         []scenario.Result `json:"edits"`
}

type Round struct {
	Round            Number `json:"round"`
	Valuation        Number `json:"valuation"`
	EquityPercentage Number `json:"equity_percentage"`
	StakeValue       Number `json:"stake_value"`
	Target           bool   `json:"target"`
}

// ProjectionResponse is the JSON form of a round schedule.
type ProjectionResponse struct {
	CalculationID  string  `json:"calculation_id"`
	NumberOfRaises Number  `json:"number_of_raises"`
	Truncated      bool    `json:"truncated"`
	Rounds         []Round `json:"rounds"`
}

func projection(id string, s equity.Schedule) ProjectionResponse {
	resp := ProjectionResponse{
		CalculationID:  id,
		NumberOfRaises: num(s.NumberOfRaises),
		Truncated:      s.Truncated,
		Rounds:         make([]Round, 0, len(s.Rounds)),
	}
	for _, r := range s.Rounds {
		resp.Rounds = append(resp.Rounds, Round{
			Round:            num(r.Round),
			Valuation:        num(r.Valuation),
			EquityPercentage: num(r.EquityPercentage),
			StakeValue:       num(r.StakeValue),
			Target:           r.Target,
		})
	}
	return resp
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
