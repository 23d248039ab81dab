package equity

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownField is returned when a field name or Field value is not recognised.
var ErrUnknownField = errors.New("unknown field")

// Field identifies one editable input of the model.
type Field int

const (
	LastRoundSize Field = iota
	ValuationMultiplier
	CompanyValuation
	PotentialValuation
	RoundMultiplier
	DilutionRatio
	StockValue
	EquityPercentage
)

// Fields lists every editable input in form order.
var Fields = []Field{
	LastRoundSize,
	ValuationMultiplier,
	CompanyValuation,
	DilutionRatio,
	PotentialValuation,
	RoundMultiplier,
	StockValue,
	EquityPercentage,
}

var fieldNames = map[Field]string{
	LastRoundSize:       "last_round_size",
	ValuationMultiplier: "valuation_multiplier",
	CompanyValuation:    "company_valuation",
	PotentialValuation:  "potential_valuation",
	RoundMultiplier:     "round_multiplier",
	DilutionRatio:       "dilution_ratio",
	StockValue:          "stock_value",
	EquityPercentage:    "equity_percentage",
}

var fieldLabels = map[Field]string{
	LastRoundSize:       "Last round size",
	ValuationMultiplier: "Round size to valuation multiplier",
	CompanyValuation:    "Company valuation",
	PotentialValuation:  "Potential company valuation",
	RoundMultiplier:     "Round valuation increase multiplier",
	DilutionRatio:       "Average dilution per round",
	StockValue:          "Stock value",
	EquityPercentage:    "Equity percentage",
}

// String returns the wire name, e.g. "stock_value".
func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// Label is the human-readable form label.
func (f Field) Label() string {
	return fieldLabels[f]
}

// ParseField accepts wire names ("stock_value"), camelCase ("stockValue") and
// is case-insensitive.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	for f, n := range fieldNames {
		if strings.ReplaceAll(n, "_", "") == key {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownField, "%q", name)
}

// Get reads a single field.
func (s State) Get(f Field) (float64, error) {
	switch f {
	case LastRoundSize:
		return s.LastRoundSize, nil
	case ValuationMultiplier:
		return s.ValuationMultiplier, nil
	case CompanyValuation:
		return s.CompanyValuation, nil
	case PotentialValuation:
		return s.PotentialValuation, nil
	case RoundMultiplier:
		return s.RoundMultiplier, nil
	case DilutionRatio:
		return s.DilutionRatio, nil
	case StockValue:
		return s.StockValue, nil
	case EquityPercentage:
		return s.EquityPercentage, nil
	}
	return 0, errors.Wrapf(ErrUnknownField, "%d", int(f))
}

// Put assigns a single field with no synchronization. It is meant for
// building snapshots; edits go through Model.Set.
func (s *State) Put(f Field, v float64) error {
	switch f {
	case LastRoundSize:
		s.LastRoundSize = v
	case ValuationMultiplier:
		s.ValuationMultiplier = v
	case CompanyValuation:
		s.CompanyValuation = v
	case PotentialValuation:
		s.PotentialValuation = v
	case RoundMultiplier:
		s.RoundMultiplier = v
	case DilutionRatio:
		s.DilutionRatio = v
	case StockValue:
		s.StockValue = v
	case EquityPercentage:
		s.EquityPercentage = v
	default:
		return errors.Wrapf(ErrUnknownField, "%d", int(f))
	}
	return nil
}

// Set routes an edit to the matching setter, so the same synchronization
// rules apply as when calling the setter directly.
func (m *Model) Set(f Field, v float64) error {
	switch f {
	case LastRoundSize:
		m.SetLastRoundSize(v)
	case ValuationMultiplier:
		m.SetValuationMultiplier(v)
	case CompanyValuation:
		m.SetCompanyValuation(v)
	case PotentialValuation:
		m.SetPotentialValuation(v)
	case RoundMultiplier:
		m.SetRoundMultiplier(v)
	case DilutionRatio:
		m.SetDilutionRatio(v)
	case StockValue:
		m.SetStockValue(v)
	case EquityPercentage:
		m.SetEquityPercentage(v)
	default:
		return errors.Wrapf(ErrUnknownField, "%d", int(f))
	}
	return nil
}

// SetText applies raw form text to a field. Text that does not parse as a
// finite number is dropped and the field keeps its last valid value; that
// case reports accepted=false with a nil error. An error is only returned
// for an unknown field.
func (m *Model) SetText(f Field, text string) (accepted bool, err error) {
	if _, ok := fieldNames[f]; !ok {
		return false, errors.Wrapf(ErrUnknownField, "%d", int(f))
	}
	v, ok := ParseNumber(text)
	if !ok {
		return false, nil
	}
	return true, m.Set(f, v)
}

// ParseNumber coerces form text to a float. Surrounding spaces, a leading
// "$", a trailing "%" and "," or "_" digit grouping are tolerated. Empty
// text, NaN and infinities are rejected.
func ParseNumber(text string) (float64, bool) {
	t := strings.TrimSpace(text)
	t = strings.TrimPrefix(t, "$")
	t = strings.TrimSuffix(t, "%")
	t = strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(t))
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
