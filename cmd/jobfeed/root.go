package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/adapter"
	"github.com/amishk599/jobfeed/internal/config"
	"github.com/amishk599/jobfeed/internal/dispatcher"
	"github.com/amishk599/jobfeed/internal/filter"
	"github.com/amishk599/jobfeed/internal/logging"
	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/notifier"
	"github.com/amishk599/jobfeed/internal/ratelimit"
	"github.com/amishk599/jobfeed/internal/retry"
	"github.com/amishk599/jobfeed/internal/store"
)

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobfeed",
	Short: "Job feed relay: post new matching listings to chat",
	Long: "jobfeed fetches a JSON job feed, keeps the titles that match the keyword lists, " +
		"and posts listings it has not delivered before to a chat webhook.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Default to `run` so that `jobfeed` with no args does one pass. This keeps
	// cron entries and CI jobs that invoke the binary directly working.
	// Assigned here rather than in the literal to avoid an initialization cycle.
	rootCmd.RunE = runRun
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadEnvFile loads the dotenv file into the process environment. Variables
// already set win. A missing default file is fine; a missing file named
// explicitly with --env-file is a configuration error.
func loadEnvFile() error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("env-file") {
			return nil
		}
		return fmt.Errorf("%w: env file %s: %w", model.ErrConfig, envFile, err)
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("%w: parse env file %s: %w", model.ErrConfig, envFile, err)
	}
	return nil
}

// loadConfig reads .env and the environment into a validated Config. When
// sending is false the notifier is switched to log first, so commands that
// never post do not need webhook credentials.
func loadConfig(sending bool) (*config.Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if !sending {
		cfg = cfg.WithLogNotifier()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	return logging.New(level, cfg.LogFormat, os.Stdout)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// openStore opens the configured seen-set backend. The returned func
// releases it.
func openStore(cfg *config.Config, logger *slog.Logger) (model.SeenStore, func() error, error) {
	switch cfg.State.Backend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.State.Path, cfg.State.LockTimeout, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", model.ErrPersist, err)
		}
		return s, s.Close, nil
	default:
		return store.NewJSONFileStore(cfg.State.Path, cfg.State.LockTimeout, logger), func() error { return nil }, nil
	}
}

func setupFetcher(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Fetcher {
	var f model.Fetcher = adapter.NewFeedAdapter(cfg.JobsURL, httpClient, logger)
	if cfg.FetchRetries > 0 {
		f = retry.NewRetryFetcher(f, cfg.FetchRetries, 2*time.Second, logger)
	}
	return f
}

// setupNotifier builds the configured sink, paced by POST_INTERVAL.
func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.Notifier, error) {
	var n model.Notifier
	switch cfg.Notify.Type {
	case config.NotifierDiscord:
		logger.Info("using discord notifier")
		n = notifier.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL, cfg.Message, httpClient, logger)
	case config.NotifierSlack:
		logger.Info("using slack notifier")
		n = notifier.NewSlackNotifier(cfg.Notify.SlackWebhookURL, cfg.Message, httpClient, logger)
	case config.NotifierTelegram:
		logger.Info("using telegram notifier")
		bot, err := notifier.NewTelegramBot(cfg.Notify.TelegramToken, httpClient)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrDelivery, err)
		}
		n = notifier.NewTelegramNotifier(bot, cfg.Notify.TelegramChatID, cfg.Message, logger)
	default:
		return notifier.NewLogNotifier(logger), nil
	}
	return ratelimit.NewPacedNotifier(n, cfg.PostInterval), nil
}

func setupClassifier(cfg *config.Config) *filter.TitleClassifier {
	return filter.NewTitleClassifier(cfg.Keywords.Include, cfg.Keywords.Exclude)
}

func setupDispatcher(cfg *config.Config, seen model.SeenStore, n model.Notifier, httpClient *http.Client, logger *slog.Logger) *dispatcher.Dispatcher {
	return dispatcher.New(
		setupFetcher(cfg, httpClient, logger),
		setupClassifier(cfg),
		seen,
		n,
		dispatcher.Options{
			MaxPerRun:        cfg.MaxPostsPerRun,
			Policy:           cfg.Dedup,
			BypassClassifier: cfg.Bypass,
		},
		logger,
	)
}

func logConfig(cfg *config.Config, logger *slog.Logger) {
	logger.Info("config loaded",
		"jobs_url", cfg.JobsURL,
		"notifier", cfg.Notify.Type,
		"max_posts_per_run", cfg.MaxPostsPerRun,
		"state_backend", cfg.State.Backend,
		"state_file", cfg.State.Path,
		"dedup_policy", string(cfg.Dedup),
		"include_keywords", len(cfg.Keywords.Include),
		"exclude_keywords", len(cfg.Keywords.Exclude),
	)
	if cfg.Bypass {
		logger.Warn("classifier bypass enabled, every listing is a candidate")
	}
	if cfg.Dedup == dispatcher.PolicyRecordOnly {
		logger.Warn("record-only dedup policy, seen listings will be delivered again")
	}
}
