package domain

import (
	"testing"
	"time"
)

func TestParsePricing(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    PricingConfig
		wantErr bool
	}{
		{name: "full", raw: `{"freeQuota":100,"pricePerThousandTokens":0.5}`, want: PricingConfig{FreeQuota: 100, PricePerThousandTokens: 0.5}},
		{name: "partial keeps default price", raw: `{"freeQuota":10}`, want: PricingConfig{FreeQuota: 10, PricePerThousandTokens: 0.03}},
		{name: "garbage", raw: `not json`, want: DefaultPricing(), wantErr: true},
		{name: "empty", raw: "  ", want: DefaultPricing(), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePricing(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected err=%v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPricingCost(t *testing.T) {
	def := DefaultPricing()
	if got, want := def.Cost(1234), float64(1234)/1000*0.03; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	quota := PricingConfig{FreeQuota: 500, PricePerThousandTokens: 1}
	if got := quota.Cost(200); got != 0 {
		t.Fatalf("expected zero cost under free quota, got %v", got)
	}
	if got := quota.Cost(1500); got != 1 {
		t.Fatalf("expected cost 1, got %v", got)
	}
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, 3, 1, 2, 0, 0, 0, time.FixedZone("Asia/Taipei", 8*3600))
	if got := MonthKey(ts); got != "2026-02" {
		t.Fatalf("expected UTC month 2026-02, got %s", got)
	}
	if !ValidMonthKey("2026-10") || ValidMonthKey("2026-13") || ValidMonthKey("2026-1") {
		t.Fatalf("unexpected month key validation")
	}
	if got := MonthStart(ts); !got.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start %v", got)
	}
}

func TestParseIntent(t *testing.T) {
	if ParseIntent("  Lottery \n") != IntentLottery {
		t.Fatalf("expected lottery")
	}
	for _, raw := range []string{"", "unknown", "lottery.", "lotteries"} {
		if ParseIntent(raw) != IntentUnknown {
			t.Fatalf("expected unknown for %q", raw)
		}
	}
}
