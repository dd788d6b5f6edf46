package domain

import "strings"

// Intent is the topical category of an inbound question.
type Intent string

const (
	IntentLottery Intent = "lottery"
	IntentUnknown Intent = "unknown"
)

// ParseIntent normalizes a raw classifier answer. Anything other than an
// exact "lottery" maps to IntentUnknown.
func ParseIntent(raw string) Intent {
	if strings.ToLower(strings.TrimSpace(raw)) == string(IntentLottery) {
		return IntentLottery
	}
	return IntentUnknown
}

func (i Intent) IsLottery() bool {
	return i == IntentLottery
}
