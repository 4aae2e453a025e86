package filter

import (
	"strings"

	"github.com/amishk599/jobfeed/internal/model"
	"github.com/amishk599/jobfeed/internal/normalize"
)

// Ensure TitleClassifier implements model.ListingFilter.
var _ model.ListingFilter = (*TitleClassifier)(nil)

// TitleClassifier accepts titles that contain at least one include keyword
// and none of the exclude keywords. Matching is substring containment on the
// normalized title, so short keywords can hit inside longer words ("intern"
// matches "international"). Keywords are checked in the order given.
type TitleClassifier struct {
	include []string
	exclude []string
}

// Verdict explains a classification.
type Verdict struct {
	Accepted bool
	Include  string // first include keyword found, "" if none
	Exclude  string // first exclude keyword found, "" if none (or not checked)
}

// NewTitleClassifier lowercases the keyword lists and drops blank entries.
func NewTitleClassifier(include, exclude []string) *TitleClassifier {
	return &TitleClassifier{
		include: normalizeKeywords(include),
		exclude: normalizeKeywords(exclude),
	}
}

// Explain classifies title and reports which keywords decided it.
func (c *TitleClassifier) Explain(title string) Verdict {
	t := normalize.Text(title)

	inc := firstContained(t, c.include)
	if inc == "" {
		return Verdict{}
	}
	if exc := firstContained(t, c.exclude); exc != "" {
		return Verdict{Include: inc, Exclude: exc}
	}
	return Verdict{Accepted: true, Include: inc}
}

// Accept reports whether title belongs to the target category.
func (c *TitleClassifier) Accept(title string) bool {
	return c.Explain(title).Accepted
}

// Match classifies the listing by its title.
func (c *TitleClassifier) Match(l model.Listing) bool {
	return c.Accept(string(l.Title))
}

// Include returns the include keywords in match order.
func (c *TitleClassifier) Include() []string { return append([]string(nil), c.include...) }

// Exclude returns the exclude keywords in match order.
func (c *TitleClassifier) Exclude() []string { return append([]string(nil), c.exclude...) }

func firstContained(s string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return kw
		}
	}
	return ""
}

// normalizeKeywords lowercases keywords and drops blank ones. Surrounding
// spaces are significant: "sr " does not match "srilanka".
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		out = append(out, strings.ToLower(kw))
	}
	return out
}
