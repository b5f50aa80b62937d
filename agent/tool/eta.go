package tool

import (
	"fmt"
	"strings"
)

type ShippingEstimate struct {
	ETADays      string `json:"eta_days"`
	Zip          string `json:"zip"`
	Region       string `json:"region"`
	ShippingNote string `json:"shipping_note"`
}

// Rules are evaluated in order; the first prefix hit wins. A code starting
// with "1" is classified east before any metro rule could apply.
var etaRules = []struct {
	prefixes []string
	region   string
	etaDays  string
}{
	{prefixes: []string{"560", "600", "400"}, region: "metro", etaDays: "2-3"},
	{prefixes: []string{"1", "2", "3"}, region: "east", etaDays: "2-4"},
	{prefixes: []string{"9", "8"}, region: "west", etaDays: "3-5"},
}

func ETA(zip string) ShippingEstimate {
	region, etaDays := "standard", "3-5"

rules:
	for _, rule := range etaRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(zip, prefix) {
				region, etaDays = rule.region, rule.etaDays
				break rules
			}
		}
	}

	return ShippingEstimate{
		ETADays:      etaDays,
		Zip:          zip,
		Region:       region,
		ShippingNote: fmt.Sprintf("Standard shipping to %s: %s business days", zip, etaDays),
	}
}
