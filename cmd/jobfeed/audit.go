package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/audit"
	"github.com/amishk599/jobfeed/internal/logging"
	"github.com/amishk599/jobfeed/internal/model"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Browse the feed interactively (TUI)",
	Long:  "Fetches the feed and shows every listing next to the candidates, each marked new or seen.",
	RunE:  runAuditCmd,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	// Any log output while the alt screen is up corrupts the display.
	silentLogger := logging.Discard()

	s, closeStore, err := openStore(cfg, silentLogger)
	if err != nil {
		return err
	}
	defer closeStore()
	seen := s.Load()

	fetcher := setupFetcher(cfg, newHTTPClient(cfg), silentLogger)
	listings, err := audit.RunLoader(cfg.Message.SourceLabel, cfg.HTTPTimeout, fetcher.FetchListings)
	switch {
	case errors.Is(err, model.ErrSchema):
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; showing no listings\n", err)
		listings = nil
	case err != nil:
		return fmt.Errorf("%w: %w", model.ErrFetch, err)
	}

	all, candidates := audit.BuildEntries(listings, setupClassifier(cfg), seen)
	return audit.RunAuditTUI(all, candidates, cfg.Message.HomepageURL)
}
