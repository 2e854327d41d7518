package scrape_test

import (
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "whitespace only", input: " \n\t\r ", want: ""},
		{name: "collapses inner runs", input: "Acme   Corp\n\nreports\tgrowth", want: "Acme Corp reports growth"},
		{name: "trims both ends", input: "  Quarterly results  ", want: "Quarterly results"},
		{name: "replaces non-breaking spaces", input: "Acme\u00a0Corp", want: "Acme Corp"},
		{name: "collapses mixed non-breaking runs", input: "a \u00a0 b", want: "a b"},
		{name: "trims leading non-breaking space", input: "\u00a0\u00a0Acme", want: "Acme"},
		{name: "keeps single spaces", input: "already clean", want: "already clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scrape.Normalize(tt.input))
		})
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"\u00a0x\u00a0",
		"a \u00a0 b\n\n c",
		"line one\r\nline two\t\tend",
		"\u2003em space\u2003",
	}

	for _, in := range inputs {
		once := scrape.Normalize(in)
		assert.Equal(t, once, scrape.Normalize(once), "input %q", in)
		assert.Equal(t, once, trimmed(once), "input %q", in)
	}
}

func trimmed(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[len(s)-1] == ' ') {
		if s[0] == ' ' {
			s = s[1:]
		} else {
			s = s[:len(s)-1]
		}
	}
	return s
}
