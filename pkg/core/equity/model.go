// Package equity holds the stock potential model: the calculator inputs, the
// synchronization between stock value and equity percentage, and the derived
// outputs (number of raises, dilution, potential stock value).
package equity

import (
	"math"
)

// State is a plain snapshot of every input field of the model.
type State struct {
	LastRoundSize       float64 `json:"last_round_size" yaml:"last_round_size"`
	ValuationMultiplier float64 `json:"valuation_multiplier" yaml:"valuation_multiplier"`
	CompanyValuation    float64 `json:"company_valuation" yaml:"company_valuation"`
	PotentialValuation  float64 `json:"potential_valuation" yaml:"potential_valuation"`
	RoundMultiplier     float64 `json:"round_multiplier" yaml:"round_multiplier"`

	// DilutionRatio is the percent of equity lost per round.
	DilutionRatio float64 `json:"dilution_ratio" yaml:"dilution_ratio"`
	StockValue    float64 `json:"stock_value" yaml:"stock_value"`

	// EquityPercentage is the stake in percent (0.15 means 0.15%).
	EquityPercentage float64 `json:"equity_percentage" yaml:"equity_percentage"`
}

// Outputs are the derived values shown to the user.
type Outputs struct {
	NumberOfRaises      float64 `json:"number_of_raises"`
	Dilution            float64 `json:"dilution"`
	PotentialStockValue float64 `json:"potential_stock_value"`
}

// Defaults returns the starting state of the calculator.
func Defaults() State {
	return State{
		LastRoundSize:       20000000,
		ValuationMultiplier: 3,
		CompanyValuation:    60000000,
		PotentialValuation:  1000000000,
		RoundMultiplier:     3,
		DilutionRatio:       25,
		StockValue:          90000,
		EquityPercentage:    0.15,
	}
}

// Model owns the calculator state. Every setter runs its dependent
// recomputation inline, so no edit can trigger another edit.
//
// Model is not safe for concurrent use; give each session its own instance.
type Model struct {
	s State
}

// New creates a model seeded with Defaults.
func New() *Model {
	return &Model{s: Defaults()}
}

// FromState restores a snapshot as-is. No synchronization rule runs, so a
// snapshot whose company valuation disagrees with round size × multiplier
// is kept exactly as given.
func FromState(s State) *Model {
	return &Model{s: s}
}

// State returns a copy of the current fields.
func (m *Model) State() State {
	return m.s
}

// SetLastRoundSize updates the last round size and recomputes the company valuation.
func (m *Model) SetLastRoundSize(v float64) {
	m.s.LastRoundSize = v
	m.syncCompanyValuation()
}

// SetValuationMultiplier updates the round-size multiplier and recomputes the company valuation.
func (m *Model) SetValuationMultiplier(v float64) {
	m.s.ValuationMultiplier = v
	m.syncCompanyValuation()
}

// SetCompanyValuation overrides the company valuation directly. Round size and
// multiplier are left untouched; the two sources can diverge.
func (m *Model) SetCompanyValuation(v float64) {
	m.s.CompanyValuation = v
	m.reconcileStake()
}

// SetStockValue sets the dollar value of the stake and derives the equity
// percentage. Setting the current value is a no-op.
func (m *Model) SetStockValue(v float64) {
	if v == m.s.StockValue {
		return
	}
	m.s.StockValue = v
	pct := 100 * v / m.s.CompanyValuation
	if m.s.EquityPercentage != pct {
		m.s.EquityPercentage = pct
	}
}

// SetEquityPercentage sets the stake percentage and derives the stock value.
// Setting the current value is a no-op.
func (m *Model) SetEquityPercentage(v float64) {
	if v == m.s.EquityPercentage {
		return
	}
	m.s.EquityPercentage = v
	value := (v / 100) * m.s.CompanyValuation
	if m.s.StockValue != value {
		m.s.StockValue = value
	}
}

func (m *Model) SetPotentialValuation(v float64) { m.s.PotentialValuation = v }

func (m *Model) SetRoundMultiplier(v float64) { m.s.RoundMultiplier = v }

func (m *Model) SetDilutionRatio(v float64) { m.s.DilutionRatio = v }

func (m *Model) syncCompanyValuation() {
	m.s.CompanyValuation = m.s.LastRoundSize * m.s.ValuationMultiplier
	m.reconcileStake()
}

// reconcileStake keeps the percentage as the held quantity and reprices the
// stock value against the new company valuation.
func (m *Model) reconcileStake() {
	value := (m.s.EquityPercentage / 100) * m.s.CompanyValuation
	if m.s.StockValue != value {
		m.s.StockValue = value
	}
}

// ComputeOutputs derives the displayed values from the current state.
func (m *Model) ComputeOutputs() Outputs {
	return Compute(m.s)
}

// Compute is the pure form of ComputeOutputs. Degenerate inputs yield NaN or
// ±Inf, never a panic.
func Compute(s State) Outputs {
	raises := NumberOfRaises(s.CompanyValuation, s.PotentialValuation, s.RoundMultiplier)
	dilution := Dilution(s.DilutionRatio, raises)
	return Outputs{
		NumberOfRaises:      raises,
		Dilution:            dilution,
		PotentialStockValue: (s.EquityPercentage / 100) * s.PotentialValuation * dilution,
	}
}

// NumberOfRaises is how many rounds of roundMultiplier growth take the
// company from current to potential valuation.
//
// FORMULA: n = ln(potential / current) / ln(roundMultiplier)
func NumberOfRaises(current, potential, roundMultiplier float64) float64 {
	if current <= 0 || potential <= 0 || roundMultiplier <= 0 {
		return math.NaN()
	}
	return math.Log(potential/current) / math.Log(roundMultiplier)
}

// Dilution is the fraction of the stake left after n rounds that each take
// ratio percent.
//
// FORMULA: d = ((100 - ratio) / 100) ^ n
func Dilution(ratio, n float64) float64 {
	if math.IsNaN(n) || math.IsNaN(ratio) || ratio < 0 || ratio > 100 {
		return math.NaN()
	}
	return math.Pow((100-ratio)/100, n)
}
