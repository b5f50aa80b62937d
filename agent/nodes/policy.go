package supportnode

import (
	"strings"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

var discountAlternatives = []string{
	"Sign up for our newsletter to get future discount codes",
	"Check our current promotions page",
	"First-time customers get 10% off their first order",
}

// Guard sets the request's single PolicyDecision. A cancellation decision
// takes precedence over the discount-code guardrail.
func Guard(in RequestState) RequestState {
	in.PolicyDecision = nil

	if in.Results.Cancel != nil {
		decision := in.Results.Cancel.PolicyDecision
		in.PolicyDecision = &decision
		return in
	}

	lower := strings.ToLower(in.Text)
	if strings.Contains(lower, "discount") && strings.Contains(lower, "code") {
		in.PolicyDecision = &contractx.PolicyDecision{
			Refuse:       true,
			Reason:       "Non-existent discount code requested",
			Alternatives: append([]string(nil), discountAlternatives...),
		}
	}
	return in
}
