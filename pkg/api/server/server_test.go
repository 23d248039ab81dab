package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_potential/pkg/api/calculator"
	apiconfig "stock_potential/pkg/api/config"
	"stock_potential/pkg/core/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Environment = "test"
	return cfg
}

func get(t *testing.T, cfg *config.Config, target string) (*http.Response, []byte) {
	t.Helper()
	app := New(cfg)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	resp, body := get(t, testConfig(), "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, version, out["version"])
}

func TestConfigEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRounds = 12
	resp, body := get(t, cfg, "/api/config")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out apiconfig.Response
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "test", out.Environment)
	assert.Equal(t, 12, out.MaxRounds)
	assert.Equal(t, 20000000.0, out.Defaults.LastRoundSize)
	require.Len(t, out.Fields, 8)
	assert.Equal(t, "last_round_size", out.Fields[0].Name)
	assert.Equal(t, "equity_percentage", out.Fields[7].Name)
}

func TestNotFoundUsesErrorResponse(t *testing.T) {
	resp, body := get(t, testConfig(), "/api/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out calculator.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, http.StatusNotFound, out.Code)
	assert.Equal(t, "Not Found", out.Error)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	app := New(cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
