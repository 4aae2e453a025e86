package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/scheduler"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run on an interval until interrupted",
	Long:  "Runs one pass immediately, then one per --interval; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Minute, "time between runs")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval <= 0 {
		return fmt.Errorf("%w: --interval must be positive, got %v", model.ErrConfig, watchInterval)
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)
	logConfig(cfg, logger)

	seen, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	httpClient := newHTTPClient(cfg)
	n, err := setupNotifier(cfg, httpClient, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sched := scheduler.NewScheduler(setupDispatcher(cfg, seen, n, httpClient, logger), watchInterval, logger)
	if err := sched.Run(ctx); err != nil {
		return err
	}

	logger.Info("goodbye")
	return nil
}
