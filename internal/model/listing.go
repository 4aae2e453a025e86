package model

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// Listing is one job posting from the feed. Every field is optional in the
// source; absent or null values decode to the empty string.
type Listing struct {
	Employer FieldString `json:"employer_name"`
	Title    FieldString `json:"job_title"`
	City     FieldString `json:"job_city"`
	State    FieldString `json:"job_state"`
	ApplyURL FieldString `json:"job_apply_link"`
	PostedAt FieldString `json:"job_posted_at"` // free-form, e.g. "2d ago"
}

// FieldString is a best-effort string extracted from untrusted JSON.
// Strings decode as-is, numbers and booleans keep their JSON text, and
// null, objects and arrays decode to "".
type FieldString string

func (f *FieldString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*f = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldString(s)
	case '{', '[':
		*f = ""
	default:
		*f = FieldString(raw)
	}
	return nil
}

func (f FieldString) String() string { return string(f) }

// Fetcher retrieves the current set of listings from the feed.
type Fetcher interface {
	FetchListings(ctx context.Context) ([]Listing, error)
}

// ListingFilter decides whether a listing belongs to the target category.
type ListingFilter interface {
	Match(l Listing) bool
}

// Notifier delivers a single listing to the chat sink.
type Notifier interface {
	Notify(ctx context.Context, l Listing) error
}

// SeenStore loads and persists the set of delivered identity keys.
// Load never fails: a missing or unreadable resource yields an empty set.
type SeenStore interface {
	Load() SeenSet
	Save(seen SeenSet) error
}

// RunLocker is implemented by stores that can hold an exclusive lock for
// the duration of a run. The returned func releases the lock.
type RunLocker interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// SeenSet is the set of identity keys already delivered.
type SeenSet map[string]struct{}

// NewSeenSet returns a set containing keys.
func NewSeenSet(keys ...string) SeenSet {
	s := make(SeenSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s SeenSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s SeenSet) Add(key string) { s[key] = struct{}{} }

func (s SeenSet) Len() int { return len(s) }

// Sorted returns the keys in ascending order.
func (s SeenSet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of the set.
func (s SeenSet) Clone() SeenSet {
	c := make(SeenSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
