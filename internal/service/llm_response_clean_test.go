package service

import "testing"

func TestCleanCompletion(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  plain text ", "plain text"},
		{"\uFEFFbom", "bom"},
		{"「What are the numbers?」", "What are the numbers?"},
		{`"quoted"`, "quoted"},
		{"“smart quotes”", "smart quotes"},
		{"```\nfenced\n```", "fenced"},
		{"```text\nfenced\n```", "fenced"},
		{"「one」and「two」", "「one」and「two」"},
		{`He said "hi" and left`, `He said "hi" and left`},
	}
	for _, tc := range cases {
		if got := cleanCompletion(tc.in); got != tc.want {
			t.Fatalf("cleanCompletion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
