package main

import (
	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/notifier"
	"github.com/amishk599/jobfeed/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry run: log what would be posted, change nothing",
	Long: "Runs the full pipeline against the real seen set, but logs listings instead " +
		"of posting them and never writes the seen set.",
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)
	logger.Info("check mode: nothing will be posted or marked as seen")

	inner, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signalContext()
	defer stop()

	d := setupDispatcher(cfg, store.NewReadOnlyStore(inner, logger), notifier.NewLogNotifier(logger), newHTTPClient(cfg), logger)
	res, err := d.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("check complete", "would_post", res.Delivered, "candidates", res.Candidates, "skipped_seen", res.Skipped)
	return nil
}
