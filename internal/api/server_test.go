package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/domain/validator"
)

// stubRunner returns a canned result and records the options it saw.
type stubRunner struct {
	result *pipeline.Result
	err    error
	opts   pipeline.Options
	calls  int
}

func (s *stubRunner) Run(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	s.calls++
	s.opts = opts
	return s.result, s.err
}

func sampleRunResult() *pipeline.Result {
	return &pipeline.Result{
		RunID:        "run-abc",
		TotalRevenue: 143000,
		FilterSummary: validator.FilterSummary{
			TotalInput: 10, FinalCount: 8,
		},
		RegionStats: []analytics.RegionStat{
			{Region: "North", TotalSales: 135000, TransactionCount: 4, Percentage: 94.41},
		},
		TopProducts: []analytics.ProductStat{
			{Name: "Laptop", Quantity: 3, Revenue: 135000},
		},
		DailyTrend: []analytics.DayStat{
			{Date: "2024-12-01", Revenue: 92500, TransactionCount: 4, UniqueCustomers: 3},
		},
		PeakDay: analytics.PeakDay{Date: "2024-12-01", Revenue: 92500, TransactionCount: 4},
	}
}

func newTestServer(runner Runner) *Server {
	return NewServer(DefaultConfig(), runner, pipeline.Options{InputPath: "data/sales_data.txt"}, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubRunner{})

	w := doRequest(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAnalyze_StoresResult(t *testing.T) {
	runner := &stubRunner{result: sampleRunResult()}
	s := newTestServer(runner)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "data/sales_data.txt", runner.opts.InputPath)

	w = doRequest(t, s, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "run-abc", res.RunID)
	assert.Equal(t, 143000.0, res.TotalRevenue)
}

func TestAnalyze_ForwardsFilterParams(t *testing.T) {
	runner := &stubRunner{result: sampleRunResult()}
	s := newTestServer(runner)

	body := []byte(`{"region":"North","min_amount":100,"top_n":3}`)
	w := doRequest(t, s, http.MethodPost, "/api/analyze", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "North", runner.opts.Filter.Region)
	require.NotNil(t, runner.opts.Filter.MinAmount)
	assert.Equal(t, 100.0, *runner.opts.Filter.MinAmount)
	assert.Nil(t, runner.opts.Filter.MaxAmount)
	assert.Equal(t, 3, runner.opts.TopN)
}

func TestAnalyze_BadBody(t *testing.T) {
	runner := &stubRunner{result: sampleRunResult()}
	s := newTestServer(runner)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", []byte(`{"region":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, runner.calls)
}

func TestAnalyze_NoTransactions(t *testing.T) {
	runner := &stubRunner{
		result: &pipeline.Result{FilterSummary: validator.FilterSummary{TotalInput: 2, Invalid: 2}},
		err:    pipeline.ErrNoTransactions,
	}
	s := newTestServer(runner)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "filter_summary")
}

func TestAnalyze_RunnerError(t *testing.T) {
	runner := &stubRunner{err: errors.New("disk on fire")}
	s := newTestServer(runner)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestReadEndpoints_BeforeAnyRun(t *testing.T) {
	s := newTestServer(&stubRunner{})

	for _, path := range []string{
		"/api/summary", "/api/regions", "/api/products/top",
		"/api/products/low", "/api/customers", "/api/trend",
	} {
		w := doRequest(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestReadEndpoints_AfterRun(t *testing.T) {
	runner := &stubRunner{result: sampleRunResult()}
	s := newTestServer(runner)
	doRequest(t, s, http.MethodPost, "/api/analyze", nil)

	w := doRequest(t, s, http.MethodGet, "/api/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "North")

	w = doRequest(t, s, http.MethodGet, "/api/trend", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "peak_day")
	assert.Contains(t, w.Body.String(), "2024-12-01")
}

func TestCORS_PreflightAllowed(t *testing.T) {
	s := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodOptions, "/api/summary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
