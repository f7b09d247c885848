package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reelscope/reelscope/internal/app"
	"github.com/reelscope/reelscope/internal/config"
	"github.com/reelscope/reelscope/internal/domain"
	"github.com/reelscope/reelscope/internal/domain/comments"
	"github.com/reelscope/reelscope/internal/domain/timing"
	"github.com/reelscope/reelscope/internal/enrich"
	"github.com/reelscope/reelscope/internal/infrastructure/cache"
	"github.com/reelscope/reelscope/internal/infrastructure/scraper"
	httpserver "github.com/reelscope/reelscope/internal/interfaces/http"
	"github.com/reelscope/reelscope/internal/interfaces/http/handlers"
)

const (
	appName = "reelscope"
	version = "v1.2.0"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Post metrics and scoring engine",
		Version: version,
		Long: `ReelScope computes engagement metrics, comment statistics, virality
scores and posting-time estimates for scraped social media posts, with
optional text-generation enrichment behind deterministic fallbacks.`,
		SilenceUsage: true,
	}

	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <post.json>",
		Short: "Analyze a post payload from a file (or - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(configPath, args[0])
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare <reel1.json> <reel2.json>",
		Short: "Compare two post payloads",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(args[0], args[1])
		},
	}

	rootCmd.AddCommand(serveCmd, analyzeCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	metrics := httpserver.NewMetricsRegistry()

	postCache := cache.NewPostCache(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL(),
	})

	scrapeClient := scraper.NewClient(scraper.Config{
		BaseURL:           cfg.Scraper.BaseURL,
		Timeout:           cfg.Scraper.Timeout(),
		RequestsPerMinute: cfg.Scraper.RequestsPerMinute,
	})

	estimator := timingEstimator(cfg)

	var generator enrich.TextGenerator
	if cfg.Enrichment.APIKey != "" {
		generator = enrich.NewClient(enrich.ClientConfig{
			APIKey:            cfg.Enrichment.APIKey,
			BaseURL:           cfg.Enrichment.BaseURL,
			Model:             cfg.Enrichment.Model,
			Timeout:           cfg.Enrichment.Timeout(),
			RequestsPerMinute: cfg.Enrichment.RequestsPerMinute,
		})
	} else {
		log.Warn().Msg("No enrichment API key set, sentiment and hashtag endpoints will return 503")
	}
	gateway := enrich.NewGateway(generator,
		enrich.WithObserver(metrics),
		enrich.WithTimingEstimator(estimator),
	)

	h := handlers.New(handlers.Config{
		Analyzer: newAnalyzer(cfg),
		Gateway:  gateway,
		Scraper:  scrapeClient,
		Cache:    postCache,
		Metrics:  metrics,
	})

	server, err := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}, h, metrics)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func runAnalyze(configPath, path string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	post, err := readPost(path)
	if err != nil {
		return err
	}

	report, err := newAnalyzer(cfg).Analyze(post)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runCompare(path1, path2 string) error {
	reel1, err := readPost(path1)
	if err != nil {
		return err
	}
	reel2, err := readPost(path2)
	if err != nil {
		return err
	}

	cmp, err := app.Compare(reel1, reel2)
	if err != nil {
		return err
	}
	return printJSON(cmp)
}

// timingEstimator honors a reference-table override from the config.
func timingEstimator(cfg *config.Config) *timing.Estimator {
	if cfg.Timing != nil {
		return timing.NewEstimatorWithReference(*cfg.Timing)
	}
	return timing.NewEstimator()
}

func newAnalyzer(cfg *config.Config) *app.Analyzer {
	if cfg.Timing == nil {
		return app.NewAnalyzer()
	}
	return app.NewAnalyzerWith(comments.NewAnalyzer(), timingEstimator(cfg))
}

func readPost(path string) (*domain.Post, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read post payload: %w", err)
	}

	var post domain.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return &post, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
