package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spacex-dash/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "spacex-dash",
	Short: "Interactive dashboard for SpaceX launch records",
	Long: "spacex-dash loads a CSV of SpaceX launch records and serves a page with a\n" +
		"launch-site selector, an outcome pie chart and a payload scatter plot.",
	SilenceUsage:      true,
	PersistentPreRunE: loadDotEnv,
	RunE:              runServe,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP (default)",
	RunE:  runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("data", "", "Path to the launch CSV (overrides data.path)")
	pf.String("addr", "", "Listen address (overrides server.addr)")
	pf.String("backend", "", "Query backend: memory or sqlite (overrides data.backend)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDotEnv(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// resolveConfig applies, in order: defaults, config file, environment, flags.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}

	for name, dst := range map[string]*string{
		"data":       &cfg.Data.Path,
		"addr":       &cfg.Server.Addr,
		"backend":    &cfg.Data.Backend,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())
	return cfg, nil
}

// openQuerier returns the configured backend and a function releasing it.
func openQuerier(ctx context.Context, backend string, ds *Dataset) (Querier, func() error, error) {
	switch backend {
	case backendSQLite:
		s, err := OpenSQLStore(ctx, ds)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return ds, func() error { return nil }, nil
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New("server")

	ds, err := LoadDataset(cfg.Data.Path)
	if err != nil {
		return err
	}
	log.Info("dataset loaded", "path", cfg.Data.Path, "records", ds.Len(),
		"min_payload", ds.MinPayload(), "max_payload", ds.MaxPayload())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, closeQuerier, err := openQuerier(ctx, cfg.Data.Backend, ds)
	if err != nil {
		return err
	}
	defer closeQuerier()

	layout := BuildLayout(ds)
	registry, err := NewRegistry(layout, dashboardBindings(q)...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           withRequestLogging(newDashboardMux(layout, registry)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("SpaceX dashboard is running", "url", "http://"+cfg.Server.Addr, "backend", cfg.Data.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
