package audit

import (
	"github.com/amishk599/jobfeed/internal/filter"
	"github.com/amishk599/jobfeed/internal/identity"
	"github.com/amishk599/jobfeed/internal/model"
)

// Entry is one feed listing annotated with its classification and
// seen-set status.
type Entry struct {
	Listing model.Listing
	Key     string
	Verdict filter.Verdict
	Seen    bool
}

// BuildEntries annotates listings in feed order. candidates holds the
// entries the classifier accepts.
func BuildEntries(listings []model.Listing, classifier *filter.TitleClassifier, seen model.SeenSet) (all, candidates []Entry) {
	all = make([]Entry, 0, len(listings))
	for _, l := range listings {
		key := identity.Key(l)
		e := Entry{
			Listing: l,
			Key:     key,
			Verdict: classifier.Explain(string(l.Title)),
			Seen:    seen.Has(key),
		}
		all = append(all, e)
		if e.Verdict.Accepted {
			candidates = append(candidates, e)
		}
	}
	return all, candidates
}

// Summary counts entries for the status bar.
type Summary struct {
	Total      int
	Candidates int
	New        int // candidates not yet in the seen set
}

func summarize(all, candidates []Entry) Summary {
	s := Summary{Total: len(all), Candidates: len(candidates)}
	for _, e := range candidates {
		if !e.Seen {
			s.New++
		}
	}
	return s
}
