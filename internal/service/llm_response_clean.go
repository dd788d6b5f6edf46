package service

import (
	"regexp"
	"strings"
)

var (
	fenceStart = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*")
	fenceEnd   = regexp.MustCompile("(?s)\\s*```\\s*$")
)

var quotePairs = [][2]string{
	{"「", "」"},
	{"『", "』"},
	{"“", "”"},
	{`"`, `"`},
}

// cleanCompletion strips a BOM, markdown fences and one pair of quotes
// wrapping the whole completion. Translation prompts quote their input and
// models tend to echo those quotes back.
func cleanCompletion(raw string) string {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "\uFEFF"))
	if s == "" {
		return ""
	}
	s = fenceStart.ReplaceAllString(s, "")
	s = fenceEnd.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			inner := s[len(q[0]) : len(s)-len(q[1])]
			if !strings.Contains(inner, q[0]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return s
}
