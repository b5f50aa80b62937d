package tool

import (
	"strings"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

// ProductSearch returns up to MaxSearchResults products in catalog order whose
// price is within priceMax and whose title or any tag contains query. When tags
// is non-empty a product must also carry one of them (exact, case-insensitive).
func ProductSearch(products []contractx.Product, query string, priceMax int, tags []string) []contractx.Product {
	results := make([]contractx.Product, 0, MaxSearchResults)
	if priceMax < 0 {
		return results
	}

	q := strings.ToLower(query)
	for _, p := range products {
		if len(results) == MaxSearchResults {
			break
		}
		if p.Price > priceMax {
			continue
		}
		if !matchesQuery(p, q) {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(p, tags) {
			continue
		}
		results = append(results, p)
	}
	return results
}

func matchesQuery(p contractx.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasAnyTag(p contractx.Product, tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}
