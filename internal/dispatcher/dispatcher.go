// Package dispatcher runs one fetch → classify → dedup → deliver → persist
// cycle over the feed.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amishk599/jobfeed/internal/identity"
	"github.com/amishk599/jobfeed/internal/model"
)

// Policy controls how the seen set is used when selecting listings.
type Policy string

const (
	// PolicySkipSeen skips listings whose identity key was already delivered.
	PolicySkipSeen Policy = "skip-seen"
	// PolicyRecordOnly delivers every candidate and only records keys. It
	// reproduces the legacy bot, which never consulted its seen set.
	PolicyRecordOnly Policy = "record-only"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicySkipSeen, PolicyRecordOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown dedup policy %q (want %q or %q)", s, PolicySkipSeen, PolicyRecordOnly)
	}
}

// Options tune a run.
type Options struct {
	MaxPerRun        int    // at most this many deliveries per run; 0 delivers nothing
	Policy           Policy // defaults to PolicySkipSeen
	BypassClassifier bool   // treat every listing as a candidate
}

// Result summarizes a run.
type Result struct {
	Fetched    int // listings returned by the feed
	Candidates int // listings accepted by the classifier
	Skipped    int // candidates dropped as already seen
	Selected   int // candidates chosen for delivery
	Delivered  int // successful deliveries
}

// Dispatcher owns the full pipeline for one run:
// fetch → classify → dedup → select → notify → persist.
type Dispatcher struct {
	fetcher  model.Fetcher
	filter   model.ListingFilter
	store    model.SeenStore
	notifier model.Notifier
	opts     Options
	logger   *slog.Logger
}

// New creates a dispatcher wired with all its dependencies.
func New(
	fetcher model.Fetcher,
	filter model.ListingFilter,
	store model.SeenStore,
	notifier model.Notifier,
	opts Options,
	logger *slog.Logger,
) *Dispatcher {
	if opts.Policy == "" {
		opts.Policy = PolicySkipSeen
	}
	if opts.MaxPerRun < 0 {
		opts.MaxPerRun = 0
	}
	return &Dispatcher{
		fetcher:  fetcher,
		filter:   filter,
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
	}
}

type selection struct {
	key     string
	listing model.Listing
}

// Run executes one cycle. Fetch, delivery and persistence failures abort the
// run and wrap model.ErrFetch, model.ErrDelivery or model.ErrPersist. After
// a failed run the seen set on disk is unchanged.
func (d *Dispatcher) Run(ctx context.Context) (Result, error) {
	logger := d.logger.With("run_id", uuid.NewString())
	var res Result

	if locker, ok := d.store.(model.RunLocker); ok {
		unlock, err := locker.Lock(ctx)
		if err != nil {
			return res, fmt.Errorf("%w: %w", model.ErrPersist, err)
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("releasing state lock", "error", err)
			}
		}()
	}

	seen := d.store.Load()
	logger.Debug("seen set loaded", "keys", seen.Len())

	listings, err := d.fetcher.FetchListings(ctx)
	switch {
	case errors.Is(err, model.ErrSchema):
		logger.Warn("feed schema mismatch, treating as empty", "error", err)
		listings = nil
	case err != nil:
		return res, fmt.Errorf("%w: %w", model.ErrFetch, err)
	}
	res.Fetched = len(listings)

	selected := d.selectListings(listings, seen, &res)
	res.Selected = len(selected)

	for i, s := range selected {
		if err := d.notifier.Notify(ctx, s.listing); err != nil {
			logger.Error("delivery failed, aborting run",
				"employer", string(s.listing.Employer),
				"title", string(s.listing.Title),
				"delivered", res.Delivered,
				"not_attempted", len(selected)-i-1,
				"error", err,
			)
			return res, fmt.Errorf("%w: %q: %w", model.ErrDelivery, string(s.listing.Title), err)
		}
		seen.Add(s.key)
		res.Delivered++
		logger.Debug("delivered listing", "key", s.key)
	}

	if err := d.store.Save(seen); err != nil {
		return res, fmt.Errorf("%w: %w", model.ErrPersist, err)
	}

	logger.Info("run complete",
		"fetched", res.Fetched,
		"candidates", res.Candidates,
		"skipped_seen", res.Skipped,
		"delivered", res.Delivered,
		"policy", string(d.opts.Policy),
	)
	return res, nil
}

// selectListings returns up to MaxPerRun candidates in feed order and fills
// the Candidates and Skipped counters.
func (d *Dispatcher) selectListings(listings []model.Listing, seen model.SeenSet, res *Result) []selection {
	var selected []selection
	picked := make(map[string]bool)

	for _, l := range listings {
		if !d.opts.BypassClassifier && !d.filter.Match(l) {
			continue
		}
		res.Candidates++

		key := identity.Key(l)
		if d.opts.Policy == PolicySkipSeen {
			if seen.Has(key) || picked[key] {
				res.Skipped++
				continue
			}
		}

		if len(selected) < d.opts.MaxPerRun {
			selected = append(selected, selection{key: key, listing: l})
			picked[key] = true
		}
	}
	return selected
}
