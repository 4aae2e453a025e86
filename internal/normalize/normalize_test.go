package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  A   B ", "a b"},
		{"", ""},
		{"   ", ""},
		{"Data\tAnalyst\n", "data analyst"},
		{"Senior Data  Scientist", "senior data scientist"},
		{"already normal", "already normal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), "Text(%q)", tt.in)
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"  A   B ",
		"MiXeD   Case\tTabs\r\nand lines",
		" em space ",
		"ÄÖÜ  Straße",
		"",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "Text not idempotent for %q", in)
	}
}
