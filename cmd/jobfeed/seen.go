package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobfeed/internal/config"
	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/store"
)

var pruneOlderThan time.Duration

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Inspect and maintain the seen set",
}

var seenListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every delivered identity key, sorted",
	Args:  cobra.NoArgs,
	RunE:  runSeenList,
}

var seenCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of delivered identity keys",
	Args:  cobra.NoArgs,
	RunE:  runSeenCount,
}

var seenPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget keys first seen before --older-than (sqlite backend only)",
	Args:  cobra.NoArgs,
	RunE:  runSeenPrune,
}

func init() {
	seenPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 90*24*time.Hour, "forget keys first seen longer ago than this")
	seenCmd.AddCommand(seenListCmd, seenCountCmd, seenPruneCmd)
	rootCmd.AddCommand(seenCmd)
}

func loadSeen() (model.SeenSet, error) {
	cfg, err := loadConfig(false)
	if err != nil {
		return nil, err
	}
	s, closeStore, err := openStore(cfg, setupLogger(cfg))
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return s.Load(), nil
}

func runSeenList(cmd *cobra.Command, args []string) error {
	seen, err := loadSeen()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, k := range seen.Sorted() {
		fmt.Fprintln(out, k)
	}
	return nil
}

func runSeenCount(cmd *cobra.Command, args []string) error {
	seen, err := loadSeen()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), seen.Len())
	return nil
}

func runSeenPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if cfg.State.Backend != config.BackendSQLite {
		return fmt.Errorf("%w: seen prune needs STATE_BACKEND=sqlite; the json backend does not record when keys were first seen", model.ErrConfig)
	}
	if pruneOlderThan <= 0 {
		return fmt.Errorf("%w: --older-than must be positive, got %v", model.ErrConfig, pruneOlderThan)
	}

	logger := setupLogger(cfg)
	s, err := store.NewSQLiteStore(cfg.State.Path, cfg.State.LockTimeout, logger)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersist, err)
	}
	defer s.Close()

	unlock, err := s.Lock(context.Background())
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersist, err)
	}
	defer unlock()

	n, err := s.Prune(pruneOlderThan)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersist, err)
	}
	logger.Info("pruned seen keys", "removed", n, "older_than", pruneOlderThan.String())
	return nil
}
