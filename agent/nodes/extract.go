package supportnode

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultPriceMax = 1000

var (
	zipPattern     = regexp.MustCompile(`\b\d{5,6}\b`)
	orderIDPattern = regexp.MustCompile(`\b[A-Z]\d+\b`)
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	priceMarkers = map[string]struct{}{"under": {}, "below": {}, "max": {}}
	queryTerms   = []string{"wedding", "midi", "party"}
	sizeTriggers = []string{"size", "m/l", "between"}
)

// Params are the values pattern-matched out of a raw message. Empty strings
// mean the token was not present.
type Params struct {
	PriceMax  int
	Query     string
	Zip       string
	OrderID   string
	Email     string
	WantsSize bool
}

func ExtractParams(text string) Params {
	lower := strings.ToLower(text)
	return Params{
		PriceMax:  extractPriceMax(lower),
		Query:     extractQuery(lower),
		Zip:       zipPattern.FindString(text),
		OrderID:   orderIDPattern.FindString(text),
		Email:     emailPattern.FindString(text),
		WantsSize: containsAny(lower, sizeTriggers),
	}
}

// extractPriceMax reads the first parsable token after under/below/max.
func extractPriceMax(lower string) int {
	words := strings.Fields(lower)
	for i, word := range words {
		if _, ok := priceMarkers[word]; !ok || i+1 >= len(words) {
			continue
		}
		raw := strings.NewReplacer("$", "", ",", "").Replace(words[i+1])
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultPriceMax
}

func extractQuery(lower string) string {
	terms := make([]string, 0, len(queryTerms))
	for _, term := range queryTerms {
		if strings.Contains(lower, term) {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return "dress"
	}
	return strings.Join(terms, " ")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
