package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PricingConfigKey is the config table key holding the LLM pricing JSON.
const PricingConfigKey = "openai_pricing"

// PricingConfig drives the billable cost of estimated tokens.
type PricingConfig struct {
	FreeQuota              float64 `json:"freeQuota"`
	PricePerThousandTokens float64 `json:"pricePerThousandTokens"`
}

func DefaultPricing() PricingConfig {
	return PricingConfig{FreeQuota: 0, PricePerThousandTokens: 0.03}
}

// ParsePricing decodes the stored JSON value. Fields absent from the document
// keep their default value.
func ParsePricing(raw string) (PricingConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPricing(), fmt.Errorf("pricing config is empty")
	}
	var doc struct {
		FreeQuota              *float64 `json:"freeQuota"`
		PricePerThousandTokens *float64 `json:"pricePerThousandTokens"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return DefaultPricing(), fmt.Errorf("parse pricing config: %w", err)
	}
	cfg := DefaultPricing()
	if doc.FreeQuota != nil {
		cfg.FreeQuota = *doc.FreeQuota
	}
	if doc.PricePerThousandTokens != nil {
		cfg.PricePerThousandTokens = *doc.PricePerThousandTokens
	}
	return cfg, nil
}

// Cost returns the billable cost of tokens under this pricing.
func (p PricingConfig) Cost(tokens int64) float64 {
	billable := float64(tokens) - p.FreeQuota
	if billable < 0 {
		billable = 0
	}
	return billable / 1000 * p.PricePerThousandTokens
}
