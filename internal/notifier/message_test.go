package notifier

import (
	"testing"

	"github.com/amishk599/jobfeed/internal/model"
)

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		city, state string
		want        string
	}{
		{"Austin", "TX", "Austin, TX"},
		{"Austin", "", "Austin"},
		{"", "TX", "TX"},
		{"  ", " ", "Unknown"},
		{"", "", "Unknown"},
	}
	for _, tt := range tests {
		l := model.Listing{City: model.FieldString(tt.city), State: model.FieldString(tt.state)}
		if got := formatLocation(l); got != tt.want {
			t.Errorf("formatLocation(%q, %q) = %q, want %q", tt.city, tt.state, got, tt.want)
		}
	}
}

func TestBuildMessage_Fallbacks(t *testing.T) {
	m := buildMessage(model.Listing{}, MessageOptions{}, fixedNow)

	if m.Employer != "Unknown Company" {
		t.Errorf("Employer = %q", m.Employer)
	}
	if m.Title != "Analyst Role" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Link != DefaultHomepageURL {
		t.Errorf("Link = %q, want homepage fallback", m.Link)
	}
	if m.Age != "N/A" {
		t.Errorf("Age = %q", m.Age)
	}
	if m.Source != DefaultSourceLabel || m.Footer != DefaultFooter {
		t.Errorf("defaults not applied: %+v", m)
	}
	if m.headline() != "Unknown Company — Analyst Role" {
		t.Errorf("headline = %q", m.headline())
	}
}

func TestBuildMessage_CustomOptions(t *testing.T) {
	opts := MessageOptions{SourceLabel: "My Feed", HomepageURL: "https://feed.example", Footer: "go get it"}
	m := buildMessage(model.Listing{Title: " Data Analyst "}, opts, fixedNow)

	if m.Title != "Data Analyst" {
		t.Errorf("Title = %q, want trimmed", m.Title)
	}
	if m.Source != "My Feed" || m.Link != "https://feed.example" || m.Footer != "go get it" {
		t.Errorf("options not applied: %+v", m)
	}
}
