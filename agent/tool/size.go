package tool

import "strings"

type SizeRecommendation struct {
	RecommendedSize string `json:"recommended_size"`
	Rationale       string `json:"rationale"`
}

// SizeRecommender applies the first matching keyword rule to the preference text.
func SizeRecommender(preference string) SizeRecommendation {
	p := strings.ToLower(preference)
	switch {
	case strings.Contains(p, "between m/l") || strings.Contains(p, "m/l"):
		return SizeRecommendation{
			RecommendedSize: "M",
			Rationale:       "Based on your preference between M/L, I recommend size M for a more fitted look. You can always size up to L if you prefer a looser fit.",
		}
	case strings.Contains(p, "loose") || strings.Contains(p, "comfortable"):
		return SizeRecommendation{
			RecommendedSize: "L",
			Rationale:       "Recommended size L for a comfortable, loose fit.",
		}
	case strings.Contains(p, "fitted") || strings.Contains(p, "tight"):
		return SizeRecommendation{
			RecommendedSize: "M",
			Rationale:       "Recommended size M for a fitted look.",
		}
	default:
		return SizeRecommendation{
			RecommendedSize: "M",
			Rationale:       "Size M recommended as a versatile middle option that works for most body types.",
		}
	}
}
