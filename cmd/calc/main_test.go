package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_potential/pkg/core/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CALCULATOR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"calc"}, args...))
	return out.String(), err
}

func TestCompute_Defaults(t *testing.T) {
	out, err := run(t, "compute")
	require.NoError(t, err)
	assert.Contains(t, out, "Company valuation")
	assert.Contains(t, out, "60,000,000")
	assert.Contains(t, out, "$718,023")
}

func TestCompute_FieldFlags(t *testing.T) {
	out, err := run(t, "compute", "--stock_value", "120,000", "--dilution_ratio", "abc")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var equityLine string
	for _, l := range lines {
		if strings.HasPrefix(l, "Equity percentage") {
			equityLine = l
		}
	}
	assert.True(t, strings.HasSuffix(strings.TrimSpace(equityLine), "0.2"), equityLine)
	assert.Contains(t, out, `ignored dilution_ratio`)
}

func TestCompute_Scenario(t *testing.T) {
	out, err := run(t, "compute", "--scenario", filepath.Join("..", "..", "pkg", "core", "scenario", "testdata", "series_a.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "40,000,000")
	assert.Contains(t, out, "2,000,000,000")
}

func TestCompute_ScenarioAndDataConflict(t *testing.T) {
	_, err := run(t, "compute", "--scenario", "a.yaml", "--data", "{}")
	assert.Error(t, err)
}

func TestCompute_UnknownFieldInData(t *testing.T) {
	_, err := run(t, "compute", "--data", `{"edits": [{"field": "strike_price", "value": 1}]}`)
	assert.Error(t, err)
}

func TestProject(t *testing.T) {
	out, err := run(t, "project", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "round,valuation,equity_percentage,stake_value,target", lines[0])

	out, err = run(t, "project")
	require.NoError(t, err)
	assert.Contains(t, out, "2.56*")

	_, err = run(t, "project", "--round_multiplier", "1")
	assert.Error(t, err)
}

func TestDebugLogsStayOffStdout(t *testing.T) {
	prev := logging.L()
	defer logging.Set(prev)

	out, err := run(t, "--debug", "project", "--csv", "--dilution_ratio", "abc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.NotContains(t, l, "[CALC]")
	}
}

func TestChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.svg")
	out, err := run(t, "chart", "--out", path, "--format", "svg")
	require.NoError(t, err)
	assert.Contains(t, out, "4 rounds")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = run(t, "chart")
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	out, err := run(t, "report")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Stock Potential Calculator"))

	out, err = run(t, "report", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
