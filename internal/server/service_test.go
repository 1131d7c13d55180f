package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectionResponse struct {
	Params struct {
		Horizon int    `json:"horizon"`
		Variant string `json:"variant"`
	} `json:"params"`
	Years []struct {
		Year           int    `json:"year"`
		Balance        string `json:"balance"`
		DonationImpact string `json:"donation_impact"`
	} `json:"years"`
	Windows []struct {
		Title string `json:"title"`
	} `json:"windows"`
	Summary struct {
		FinalBalance string `json:"final_balance"`
	} `json:"summary"`
}

func newTestService(t *testing.T) (*Service, http.Handler) {
	t.Helper()
	s := New(Config{MaxHorizon: 50, RateLimit: 1000, EventsBuffer: 2}, nil)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	_, h := newTestService(t)
	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok\n", rr.Body.String())
}

func TestProjectionQuery_Defaults(t *testing.T) {
	_, h := newTestService(t)
	rr := do(t, h, http.MethodGet, "/v1/projection", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res projectionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Len(t, res.Years, 5)
	assert.Equal(t, "a", res.Params.Variant)
	assert.Equal(t, "50000", res.Summary.FinalBalance)
	require.Len(t, res.Windows, 1)
	assert.Equal(t, "5 Year Growth", res.Windows[0].Title)
}

func TestProjectionQuery_SeededScenario(t *testing.T) {
	_, h := newTestService(t)
	rr := do(t, h, http.MethodGet,
		"/v1/projection?annual_contribution=$10000CDN&pledge_period=5&roi_rate=7&horizon=2&variant=b", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res projectionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Years, 2)
	assert.Equal(t, "10000", res.Years[0].Balance)
	assert.Equal(t, "0", res.Years[0].DonationImpact)
	assert.Equal(t, "20100", res.Years[1].Balance)
	assert.Equal(t, "400", res.Years[1].DonationImpact)
}

func TestProjectionBody(t *testing.T) {
	_, h := newTestService(t)
	rr := do(t, h, http.MethodPost, "/v1/projection",
		`{"annual_contribution":"10000","pledge_period":5,"roi_rate":6,"horizon":12}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res projectionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Len(t, res.Years, 12)
	require.Len(t, res.Windows, 3)
	assert.Equal(t, "15 Year Growth", res.Windows[2].Title)
}

func TestProjection_InvalidInputIsProblem(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"zero horizon", http.MethodGet, "/v1/projection?horizon=0", ""},
		{"horizon over cap", http.MethodGet, "/v1/projection?horizon=51", ""},
		{"non-numeric pledge", http.MethodGet, "/v1/projection?pledge_period=five", ""},
		{"malformed rate", http.MethodGet, "/v1/projection?roi_rate=1.2.3", ""},
		{"unknown variant", http.MethodGet, "/v1/projection?variant=c", ""},
		{"negative amount", http.MethodPost, "/v1/projection", `{"annual_contribution":"-5"}`},
		{"negative pledge", http.MethodPost, "/v1/projection", `{"pledge_period":-1}`},
		{"unknown field", http.MethodPost, "/v1/projection", `{"amount":5}`},
		{"bad json", http.MethodPost, "/v1/projection", `{`},
		{"huge amount exponent", http.MethodPost, "/v1/projection", `{"annual_contribution":"1e2000000","horizon":1}`},
		{"tiny rate exponent", http.MethodPost, "/v1/projection", `{"roi_rate":"1e-3000000","horizon":1}`},
		{"amount over ceiling", http.MethodGet, "/v1/projection?annual_contribution=99999999999999999999", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestService(t)
			rr := do(t, h, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

			var p ProblemDetail
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
			assert.Equal(t, http.StatusBadRequest, p.Status)
			assert.Contains(t, p.Detail, "invalid input")
			assert.Equal(t, "/v1/projection", p.Instance)
		})
	}
}

func TestOptions(t *testing.T) {
	_, h := newTestService(t)
	rr := do(t, h, http.MethodGet, "/v1/options", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var opts struct {
		PledgePeriods    []int  `json:"pledge_periods"`
		Horizons         []int  `json:"horizons"`
		MaxHorizon       int    `json:"max_horizon"`
		DisbursementRate string `json:"disbursement_rate"`
		AdminFeeRate     string `json:"admin_fee_rate"`
		Variants         []struct {
			ID string `json:"id"`
		} `json:"variants"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, []int{5, 10, 15, 20, 25}, opts.Horizons)
	assert.Len(t, opts.PledgePeriods, 10)
	assert.Equal(t, 50, opts.MaxHorizon)
	assert.Equal(t, "4", opts.DisbursementRate)
	assert.Equal(t, "2", opts.AdminFeeRate)
	assert.Len(t, opts.Variants, 2)
}

func TestStatusCountsAndEventsRingBuffer(t *testing.T) {
	s, h := newTestService(t)

	for _, target := range []string{
		"/v1/projection?horizon=5",
		"/v1/projection?horizon=10",
		"/v1/projection?horizon=15",
		"/v1/projection?horizon=0",
	} {
		do(t, h, http.MethodGet, target, "")
	}

	st := s.snapshotStatus()
	assert.EqualValues(t, 4, st.RequestCount)
	assert.EqualValues(t, 3, st.ProjectionCount)
	assert.Equal(t, 2, st.EventCount)
	assert.Contains(t, st.LastError, "horizon")

	rr := do(t, h, http.MethodGet, "/v1/events", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.EqualValues(t, 2, events[0].ID)
	assert.EqualValues(t, 3, events[1].ID)
	assert.Equal(t, 15, events[1].Horizon)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	_, h := newTestService(t)

	rr := do(t, h, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	rr = do(t, h, http.MethodDelete, "/v1/projection", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestLoadConfig_EnvOverridesBase(t *testing.T) {
	t.Setenv("ENDOW_ADDR", "0.0.0.0:9000")
	t.Setenv("ENDOW_MAX_HORIZON", "30")

	cfg, err := LoadConfig(Config{Addr: "127.0.0.1:1", RateLimit: 10})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, 30, cfg.MaxHorizon)
	assert.Equal(t, 10, cfg.RateLimit)

	t.Setenv("ENDOW_MAX_HORIZON", "lots")
	_, err = LoadConfig(Config{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, nil)
	cfg := s.Config()
	assert.Equal(t, defaultAddr, cfg.Addr)
	assert.Equal(t, defaultMaxHorizon, cfg.MaxHorizon)
	assert.Equal(t, defaultRateLimit, cfg.RateLimit)
	assert.Equal(t, defaultEventsBuffer, cfg.EventsBuffer)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx))
}
