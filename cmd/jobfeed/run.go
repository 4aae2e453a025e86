package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch the feed once and post new matches",
	Long: "One pass: fetch, classify, skip already delivered listings, post up to " +
		"MAX_POSTS_PER_RUN of them, then save the seen set. Meant for cron or CI.",
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
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

	d := setupDispatcher(cfg, seen, n, httpClient, logger)
	_, err = d.Run(ctx)
	return err
}
