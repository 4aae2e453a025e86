package main

import (
	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a sample listing through the configured notifier. The seen set is not touched.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	n, err := setupNotifier(cfg, newHTTPClient(cfg), logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := notifier.SendTestMessage(ctx, n); err != nil {
		return err
	}
	logger.Info("test notification sent successfully", "notifier", cfg.Notify.Type)
	return nil
}
