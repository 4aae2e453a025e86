// Package identity derives the deduplication key for a listing.
package identity

import (
	"strings"

	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/normalize"
)

// Separator joins the normalized fields. It is not expected in feed text.
const Separator = "||"

// Key returns the identity key of l: employer, title, city, state, apply
// link and posted-at, each normalized, joined with Separator in that order.
func Key(l model.Listing) string {
	fields := [...]model.FieldString{l.Employer, l.Title, l.City, l.State, l.ApplyURL, l.PostedAt}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = normalize.Text(string(f))
	}
	return strings.Join(parts, Separator)
}
