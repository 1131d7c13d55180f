package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/endow/internal/config"
	"github.com/theirongolddev/endow/internal/server"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeMaxHorizon   int
	flagServeRateLimit    int
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve projections over a local HTTP JSON API",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running API for its status",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default 127.0.0.1:8787)")
	serveCmd.Flags().IntVar(&flagServeMaxHorizon, "max-horizon", 0, "Largest horizon accepted per request (default 100)")
	serveCmd.Flags().IntVar(&flagServeRateLimit, "rate-limit", 0, "Requests per minute per client IP (default 120)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default 50)")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

// serverConfig layers the config file, ENDOW_* environment and set flags,
// later sources winning.
func serverConfig(cmd *cobra.Command, cfg config.Config) (server.Config, error) {
	sc, err := server.LoadConfig(server.Config{
		Addr:       cfg.Server.Addr,
		MaxHorizon: cfg.Server.MaxHorizon,
	})
	if err != nil {
		return sc, err
	}

	fs := cmd.Flags()
	if fs.Changed("addr") {
		sc.Addr = flagServeAddr
	}
	if fs.Changed("max-horizon") {
		sc.MaxHorizon = flagServeMaxHorizon
	}
	if fs.Changed("rate-limit") {
		sc.RateLimit = flagServeRateLimit
	}
	if fs.Changed("events-buffer") {
		sc.EventsBuffer = flagServeEventsBuffer
	}
	return sc, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc, err := serverConfig(cmd, loadConfig())
	if err != nil {
		return err
	}
	svc := server.New(sc, logger)
	addr := svc.Config().Addr

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  endow API listening on http://%s\n", addr)
	fmt.Fprintf(out, "  Try: curl 'http://%s/v1/projection?annual_contribution=10000&horizon=10'\n", addr)
	fmt.Fprintln(out, "  Stop with Ctrl+C")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	sc, err := serverConfig(cmd, loadConfig())
	if err != nil {
		return err
	}
	addr := server.New(sc, nil).Config().Addr

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	probeStatus(out, client, "http://"+addr)
	return nil
}

// probeStatus prints the /v1/status of the API at baseURL. Failures are
// reported, not returned.
func probeStatus(w io.Writer, client *http.Client, baseURL string) {
	resp, err := client.Get(baseURL + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Fprintf(w, "  API status: unreachable (%v)\n", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(w, "  API status: HTTP %d\n", resp.StatusCode)
		return
	}

	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Fprintf(w, "  API status: malformed response (%v)\n", err)
		return
	}

	fmt.Fprintf(w, "  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "  Uptime: %s\n", (time.Duration(st.UptimeSec) * time.Second).String())
	fmt.Fprintf(w, "  Requests: %d\n", st.RequestCount)
	fmt.Fprintf(w, "  Projections: %d\n", st.ProjectionCount)
	fmt.Fprintf(w, "  Max horizon: %d\n", st.MaxHorizon)
	if st.LastError != "" {
		fmt.Fprintf(w, "  Last error: %s\n", st.LastError)
	}
}
