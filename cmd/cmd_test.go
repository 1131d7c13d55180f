package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"
	"github.com/theirongolddev/endow/internal/server"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectionCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addProjectionFlags(c)
	addOutputFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func seededResult(t *testing.T) *pipeline.Result {
	t.Helper()
	p, err := projection.NewParams(10000, 5, 7, 2, model.VariantSeeded)
	require.NoError(t, err)
	res, err := pipeline.Run(p)
	require.NoError(t, err)
	return res
}

func TestResolveParams_ConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Horizon = 10
	cfg.General.Variant = "b"

	p, err := resolveParams(projectionCmd(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Horizon)
	assert.Equal(t, model.VariantSeeded, p.Variant)
	assert.True(t, p.AnnualContribution.Equal(decimal.NewFromInt(10000)))
}

func TestResolveParams_FlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Horizon = 10

	p, err := resolveParams(projectionCmd(t, "--amount", "25000", "--roi", "7.5", "-y", "15", "--variant", "B"), cfg)
	require.NoError(t, err)
	assert.True(t, p.AnnualContribution.Equal(decimal.NewFromInt(25000)))
	assert.True(t, p.ROIRate.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, 15, p.Horizon)
	assert.Equal(t, 5, p.PledgePeriod)
	assert.Equal(t, model.VariantSeeded, p.Variant)
}

func TestResolveParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero horizon", []string{"--horizon", "0"}},
		{"negative amount", []string{"--amount", "-1"}},
		{"negative pledge", []string{"--pledge", "-2"}},
		{"unknown variant", []string{"--variant", "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveParams(projectionCmd(t, tt.args...), config.DefaultConfig())
			assert.ErrorIs(t, err, projection.ErrInvalidInput)
		})
	}
}

func TestResolveParams_BadConfigFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Variant = "nope"

	p, err := resolveParams(projectionCmd(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultParams(), p)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, seededResult(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"1", "10000.00", "0.00", "0.00", "0.00", "0.00", "10000.00"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "400.00", rows[2][3])
	assert.Equal(t, "20100.00", rows[2][6])
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, seededResult(t), "json", cli.ProjectionOptions{}, false))

	var got struct {
		Params struct {
			Variant string `json:"variant"`
		} `json:"params"`
		Years   []json.RawMessage `json:"years"`
		Summary struct {
			FinalBalance string `json:"final_balance"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "b", got.Params.Variant)
	assert.Len(t, got.Years, 2)
	assert.Equal(t, "20100", got.Summary.FinalBalance)
}

func TestWriteResult_Table(t *testing.T) {
	var buf bytes.Buffer
	opts := cli.ProjectionOptions{ShowImpact: true}
	require.NoError(t, writeResult(&buf, seededResult(t), "table", opts, true))

	out := buf.String()
	assert.Contains(t, out, "Endowment Projection")
	assert.Contains(t, out, "5 Year Growth")
	assert.Contains(t, out, "$20,100.00")
	assert.Contains(t, out, "Donation Impact")
	assert.Contains(t, out, "Final Balance")
}

func TestWriteResult_UnknownFormat(t *testing.T) {
	err := writeResult(&bytes.Buffer{}, seededResult(t), "xml", cli.ProjectionOptions{}, false)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "json", true)
	require.NoError(t, err)
	l.Debug("hello", "k", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])

	buf.Reset()
	l, err = newLogger(&buf, "text", false)
	require.NoError(t, err)
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	_, err = newLogger(&buf, "yaml", false)
	assert.Error(t, err)
}

func TestServerConfig_Layering(t *testing.T) {
	t.Setenv("ENDOW_MAX_HORIZON", "40")
	t.Setenv("ENDOW_ADDR", "127.0.0.1:9001")

	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&flagServeAddr, "addr", "", "")
	c.Flags().IntVar(&flagServeMaxHorizon, "max-horizon", 0, "")
	c.Flags().IntVar(&flagServeRateLimit, "rate-limit", 0, "")
	c.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "")
	require.NoError(t, c.ParseFlags([]string{"--addr", "127.0.0.1:9100", "--rate-limit", "5"}))

	cfg := config.DefaultConfig()
	cfg.Server.MaxHorizon = 20
	sc, err := serverConfig(c, cfg)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9100", sc.Addr)
	assert.Equal(t, 40, sc.MaxHorizon)
	assert.Equal(t, 5, sc.RateLimit)
	assert.Equal(t, 0, sc.EventsBuffer)
}

func TestProbeStatus(t *testing.T) {
	svc := server.New(server.Config{MaxHorizon: 25}, nil)
	ts := httptest.NewServer(svc.Handler())
	defer ts.Close()

	var buf bytes.Buffer
	probeStatus(&buf, ts.Client(), ts.URL)
	assert.Contains(t, buf.String(), "Max horizon: 25")
	assert.Contains(t, buf.String(), "Requests: 1")

	buf.Reset()
	probeStatus(&buf, ts.Client(), ts.URL+"/nope")
	assert.Contains(t, buf.String(), "HTTP 404")
}

func TestProbeStatus_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	var buf bytes.Buffer
	probeStatus(&buf, &http.Client{}, url)
	assert.True(t, strings.HasPrefix(buf.String(), "  API status: unreachable"))
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.General.Currency = "CDN"
	printConfig(&buf, cfg, "/tmp/endow/config.toml", false)

	out := buf.String()
	assert.Contains(t, out, "/tmp/endow/config.toml")
	assert.Contains(t, out, "using defaults")
	assert.Contains(t, out, "Currency: CDN")
	assert.Contains(t, out, "Theme: flexoki-dark")
	assert.Contains(t, out, "Address:     default")
}
