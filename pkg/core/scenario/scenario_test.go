package scenario

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_potential/pkg/core/equity"
)

func TestLoadFile_AllFormatsAgree(t *testing.T) {
	for _, name := range []string{"series_a.yaml", "series_a.hjson", "series_a.json"} {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, "Series A offer", doc.Name)
			require.Len(t, doc.Edits, 4)

			m, results, err := doc.Build(equity.Defaults())
			require.NoError(t, err)

			s := m.State()
			assert.Equal(t, 2000000000.0, s.PotentialValuation)
			assert.Equal(t, 10000000.0, s.LastRoundSize)
			assert.Equal(t, 40000000.0, s.CompanyValuation)
			assert.Equal(t, 0.5, s.EquityPercentage)
			assert.Equal(t, (0.5/100)*40000000, s.StockValue)
			// "twenty" is not a number, the default stays
			assert.Equal(t, 25.0, s.DilutionRatio)

			require.Len(t, results, 4)
			assert.True(t, results[0].Accepted)
			assert.Equal(t, "last_round_size", results[0].Field)
			assert.False(t, results[3].Accepted)
			assert.Equal(t, "twenty", results[3].Value)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("dir/a.yaml"))
	assert.Equal(t, FormatHJSON, FormatFromPath("a.hjson"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.txt"))
}

func TestDecode_LenientJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"strict", `{"edits":[{"field":"stock_value","value":120000}]}`},
		{"missing quotes around keys", `{edits:[{field:"stock_value",value:120000}]}`},
		{"single quotes", `{'edits':[{'field':'stock_value','value':'120000'}]}`},
		{"trailing comma", `{"edits":[{"field":"stock_value","value":120000},]}`},
		{"unclosed object", `{"edits":[{"field":"stock_value","value":120000}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode([]byte(tc.input), FormatJSON)
			require.NoError(t, err)
			require.Len(t, doc.Edits, 1)
			assert.Equal(t, "stock_value", doc.Edits[0].Field)
			assert.Equal(t, Value("120000"), doc.Edits[0].Value)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode([]byte("  \n"), FormatYAML)
	assert.Equal(t, ErrEmptyDocument, err)
}

func TestDecode_BadYAML(t *testing.T) {
	_, err := Decode([]byte("edits: ["), FormatYAML)
	assert.Error(t, err)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var e Edit
	require.NoError(t, json.Unmarshal([]byte(`{"field":"dilution_ratio","value":null}`), &e))
	assert.Equal(t, Value(""), e.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"field":"dilution_ratio","value":1.5e3}`), &e))
	assert.Equal(t, Value("1.5e3"), e.Value)
}

func TestApply_UnknownFieldStops(t *testing.T) {
	doc := &Document{Edits: []Edit{
		{Field: "stock_value", Value: "1000"},
		{Field: "strike_price", Value: "1"},
		{Field: "equity_percentage", Value: "2"},
	}}
	m := equity.New()
	results, err := doc.Apply(m)
	assert.Equal(t, equity.ErrUnknownField, errors.Cause(err))
	assert.Len(t, results, 1)
	assert.Equal(t, 1000.0, m.State().StockValue)
}

func TestBaseState(t *testing.T) {
	doc := &Document{Base: map[string]Value{"companyValuation": "5", "stock_value": "$1,000"}}
	s, err := doc.BaseState(equity.Defaults())
	require.NoError(t, err)
	// raw snapshot: nothing is re-derived
	assert.Equal(t, 5.0, s.CompanyValuation)
	assert.Equal(t, 1000.0, s.StockValue)
	assert.Equal(t, 0.15, s.EquityPercentage)

	doc = &Document{Base: map[string]Value{"stock_value": "abc"}}
	_, err = doc.BaseState(equity.Defaults())
	assert.Error(t, err)

	doc = &Document{Base: map[string]Value{"options": "1"}}
	_, err = doc.BaseState(equity.Defaults())
	assert.Equal(t, equity.ErrUnknownField, errors.Cause(err))
}
