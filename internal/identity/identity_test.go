package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/jobfeed/internal/model"
)

func TestKey_Format(t *testing.T) {
	l := model.Listing{
		Employer: "Acme",
		Title:    "Data Analyst",
		City:     "Austin",
		State:    "TX",
		ApplyURL: "https://example.com/1",
		PostedAt: "2d ago",
	}
	assert.Equal(t, "acme||data analyst||austin||tx||https://example.com/1||2d ago", Key(l))
}

func TestKey_EmptyListing(t *testing.T) {
	assert.Equal(t, "||||||||||", Key(model.Listing{}))
}

func TestKey_IgnoresCaseAndWhitespace(t *testing.T) {
	a := model.Listing{
		Employer: "Acme Corp",
		Title:    "Data Analyst",
		City:     "New York",
		State:    "NY",
		ApplyURL: "https://example.com/apply",
		PostedAt: "1d",
	}
	b := model.Listing{
		Employer: "  ACME   corp ",
		Title:    "data\tanalyst",
		City:     "new  york",
		State:    " ny",
		ApplyURL: "HTTPS://EXAMPLE.COM/apply ",
		PostedAt: "1D",
	}
	assert.Equal(t, Key(a), Key(b))
}

func TestKey_DistinctFieldsDiffer(t *testing.T) {
	base := model.Listing{Employer: "Acme", Title: "Data Analyst", City: "Austin"}
	other := base
	other.City = "Boston"
	assert.NotEqual(t, Key(base), Key(other))

	// Same text in a different field must not collide.
	shifted := model.Listing{Title: "Acme", Employer: "Data Analyst", City: "Austin"}
	assert.NotEqual(t, Key(base), Key(shifted))
}
