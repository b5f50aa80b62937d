package supportnode

import (
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	toolx "github.com/tanpawarit/Chative-Support-Agent/agent/tool"
)

// RequestState is the value threaded through the pipeline. Stages never
// mutate their input; each returns an updated copy.
type RequestState struct {
	Text string
	Now  time.Time

	Intent contractx.Intent

	// Catalog snapshot taken during dispatch, used to resolve order items.
	Products []contractx.Product

	ToolsCalled    []string
	Results        ToolResults
	Evidence       []contractx.Evidence
	PolicyDecision *contractx.PolicyDecision
}

// ToolResults holds the output of each tool that ran, keyed by field rather
// than by name. A nil pointer means the tool did not run or found nothing;
// consult ToolsCalled to tell the two apart.
type ToolResults struct {
	ProductSearch []contractx.Product
	Size          *toolx.SizeRecommendation
	ETA           *toolx.ShippingEstimate
	Order         *contractx.Order
	Cancel        *toolx.CancelResult
}

func NewRequestState(text string, now time.Time) RequestState {
	return RequestState{
		Text:        text,
		Now:         now,
		ToolsCalled: []string{},
		Evidence:    []contractx.Evidence{},
	}
}

func (s RequestState) Called(tool string) bool {
	for _, name := range s.ToolsCalled {
		if name == tool {
			return true
		}
	}
	return false
}

func (s RequestState) withTool(tool string) RequestState {
	called := make([]string, len(s.ToolsCalled), len(s.ToolsCalled)+1)
	copy(called, s.ToolsCalled)
	s.ToolsCalled = append(called, tool)
	return s
}

func (s RequestState) withEvidence(ev ...contractx.Evidence) RequestState {
	out := make([]contractx.Evidence, len(s.Evidence), len(s.Evidence)+len(ev))
	copy(out, s.Evidence)
	s.Evidence = append(out, ev...)
	return s
}

// Trace snapshots the externally visible record with the given message.
func (s RequestState) Trace(message string) contractx.Trace {
	tools := make([]string, len(s.ToolsCalled))
	copy(tools, s.ToolsCalled)
	evidence := make([]contractx.Evidence, len(s.Evidence))
	copy(evidence, s.Evidence)

	return contractx.Trace{
		Intent:         s.Intent,
		ToolsCalled:    tools,
		Evidence:       evidence,
		PolicyDecision: s.PolicyDecision,
		FinalMessage:   message,
	}
}
