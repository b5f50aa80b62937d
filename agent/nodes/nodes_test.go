package supportnode

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	toolx "github.com/tanpawarit/Chative-Support-Agent/agent/tool"
)

type fakeCatalog struct {
	products    []contractx.Product
	orders      []contractx.Order
	productsErr error
	ordersErr   error
}

func (f *fakeCatalog) Products(ctx context.Context) ([]contractx.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeCatalog) Orders(ctx context.Context) ([]contractx.Order, error) {
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return f.orders, nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []contractx.Product{
			{ID: "P1", Title: "Satin Wedding Midi Dress", Price: 119, Tags: []string{"wedding", "midi"}, Sizes: []string{"S", "M", "L"}, Color: "champagne"},
			{ID: "P2", Title: "Chiffon Wedding Midi Gown", Price: 149, Tags: []string{"wedding", "midi"}, Sizes: []string{"M"}, Color: "navy"},
			{ID: "P3", Title: "Velvet Party Dress", Price: 85, Tags: []string{"party"}, Sizes: []string{"S"}, Color: "black"},
		},
		orders: []contractx.Order{
			{OrderID: "A1003", Email: "mira@example.com", CreatedAt: "2025-09-07T12:00:00Z", Items: []contractx.OrderItem{{ProductID: "P1", Size: "M"}, {ProductID: "P9", Size: "L"}}},
		},
	}
}

var pinned = time.Date(2025, 9, 7, 12, 35, 0, 0, time.UTC)

func run(t *testing.T, text string, intent contractx.Intent, catalog contractx.CatalogSource, now time.Time) (RequestState, contractx.Trace) {
	t.Helper()

	st := NewRequestState(text, now)
	st.Intent = intent
	st, err := Dispatch(context.Background(), st, catalog)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	st = Guard(st)
	trace, err := Compose(st)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return st, trace
}

func TestProductAssistCallsAllTools(t *testing.T) {
	t.Parallel()

	_, trace := run(t, "Wedding guest, midi, under $120 — I'm between M/L. ETA to 560001?", contractx.IntentProductAssist, newFakeCatalog(), pinned)

	want := []string{toolx.ToolProductSearch, toolx.ToolSizeRecommender, toolx.ToolETA}
	if strings.Join(trace.ToolsCalled, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected tools: %v", trace.ToolsCalled)
	}
	if len(trace.Evidence) != 1 || trace.Evidence[0].Product == nil {
		t.Fatalf("expected one product evidence, got %#v", trace.Evidence)
	}
	if trace.Evidence[0].Product.Price > 120 {
		t.Fatalf("evidence over price ceiling: %d", trace.Evidence[0].Product.Price)
	}
	for _, fragment := range []string{
		"I found 1 great option for you:",
		"1. **Satin Wedding Midi Dress** ($119, champagne) - Available in S, M, L",
		"**Size recommendation:** M -",
		"**Shipping to 560001:** 2-3 business days",
		"Would you like more details about any of these options?",
	} {
		if !strings.Contains(trace.FinalMessage, fragment) {
			t.Fatalf("message missing %q:\n%s", fragment, trace.FinalMessage)
		}
	}
	if trace.PolicyDecision != nil {
		t.Fatalf("unexpected policy decision: %#v", trace.PolicyDecision)
	}
}

func TestProductAssistNoMatches(t *testing.T) {
	t.Parallel()

	_, trace := run(t, "party dress under 50", contractx.IntentProductAssist, newFakeCatalog(), pinned)
	if strings.Join(trace.ToolsCalled, ",") != toolx.ToolProductSearch {
		t.Fatalf("unexpected tools: %v", trace.ToolsCalled)
	}
	if len(trace.Evidence) != 0 {
		t.Fatalf("unexpected evidence: %#v", trace.Evidence)
	}
	if !strings.HasPrefix(trace.FinalMessage, "I don't see any products matching those criteria") {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
}

func TestOrderHelpMissingIdentifiers(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"cancel my order please",
		"cancel order A1003",
		"cancel for mira@example.com",
	} {
		_, trace := run(t, text, contractx.IntentOrderHelp, newFakeCatalog(), pinned)
		if len(trace.ToolsCalled) != 0 {
			t.Fatalf("%q: expected no tools, got %v", text, trace.ToolsCalled)
		}
		if trace.FinalMessage != orderNotFoundMessage {
			t.Fatalf("%q: unexpected message: %s", text, trace.FinalMessage)
		}
	}
}

func TestOrderHelpLookupMiss(t *testing.T) {
	t.Parallel()

	_, trace := run(t, "status of A1003 for someone@example.com", contractx.IntentOrderHelp, newFakeCatalog(), pinned)
	if strings.Join(trace.ToolsCalled, ",") != toolx.ToolOrderLookup {
		t.Fatalf("unexpected tools: %v", trace.ToolsCalled)
	}
	if trace.FinalMessage != orderNotFoundMessage {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
}

func TestOrderHelpDetails(t *testing.T) {
	t.Parallel()

	_, trace := run(t, "Where is A1003? I'm MIRA@example.com", contractx.IntentOrderHelp, newFakeCatalog(), pinned)
	if strings.Join(trace.ToolsCalled, ",") != toolx.ToolOrderLookup {
		t.Fatalf("unexpected tools: %v", trace.ToolsCalled)
	}
	if len(trace.Evidence) != 1 || trace.Evidence[0].Order == nil {
		t.Fatalf("expected order evidence, got %#v", trace.Evidence)
	}
	for _, fragment := range []string{
		"📋 **Order A1003 Details:**",
		"- Satin Wedding Midi Dress (Size M)",
		"- Product P9 (Size L)",
		"- Placed: September 07 at 12:00 PM",
		"- Email: mira@example.com",
	} {
		if !strings.Contains(trace.FinalMessage, fragment) {
			t.Fatalf("message missing %q:\n%s", fragment, trace.FinalMessage)
		}
	}
}

func TestOrderHelpCancelAllowed(t *testing.T) {
	t.Parallel()

	_, trace := run(t, "Cancel order A1003 — email mira@example.com", contractx.IntentOrderHelp, newFakeCatalog(), pinned)

	want := toolx.ToolOrderLookup + "," + toolx.ToolOrderCancel
	if strings.Join(trace.ToolsCalled, ",") != want {
		t.Fatalf("unexpected tools: %v", trace.ToolsCalled)
	}
	if trace.PolicyDecision == nil || trace.PolicyDecision.CancelAllowed == nil || !*trace.PolicyDecision.CancelAllowed {
		t.Fatalf("expected cancel allowed, got %#v", trace.PolicyDecision)
	}
	if !strings.Contains(trace.FinalMessage, "✅ **Order A1003 has been successfully cancelled.**") {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
	if !strings.Contains(trace.FinalMessage, "**Refund:** Full refund will be processed within 3-5 business days.") {
		t.Fatalf("missing refund line: %s", trace.FinalMessage)
	}
}

func TestOrderHelpCancelBlocked(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 7, 14, 0, 0, 0, time.UTC)
	_, trace := run(t, "Cancel order A1003 — email mira@example.com", contractx.IntentOrderHelp, newFakeCatalog(), now)

	if trace.PolicyDecision == nil || trace.PolicyDecision.CancelAllowed == nil || *trace.PolicyDecision.CancelAllowed {
		t.Fatalf("expected cancel blocked, got %#v", trace.PolicyDecision)
	}
	if len(trace.PolicyDecision.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(trace.PolicyDecision.Alternatives))
	}
	if !strings.Contains(trace.FinalMessage, "❌ **Unable to cancel order A1003**") {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
	if strings.Count(trace.FinalMessage, "• **") != 3 {
		t.Fatalf("expected 3 bulleted alternatives: %s", trace.FinalMessage)
	}
	if !strings.Contains(trace.FinalMessage, "120.0 minutes ago") {
		t.Fatalf("missing elapsed minutes: %s", trace.FinalMessage)
	}
}

func TestDispatchCatalogErrorPropagates(t *testing.T) {
	t.Parallel()

	catalogErr := errors.New("disk gone")
	st := NewRequestState("find a dress", pinned)
	st.Intent = contractx.IntentProductAssist

	_, err := Dispatch(context.Background(), st, &fakeCatalog{productsErr: catalogErr})
	if !errors.Is(err, catalogErr) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestDispatchOtherCallsNothing(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{productsErr: errors.New("must not load"), ordersErr: errors.New("must not load")}
	st := NewRequestState("hello 560001 A1003 a@b.co", pinned)
	st.Intent = contractx.IntentOther

	out, err := Dispatch(context.Background(), st, catalog)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(out.ToolsCalled) != 0 {
		t.Fatalf("unexpected tools: %v", out.ToolsCalled)
	}
}

func TestDispatchDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	st := NewRequestState("midi dress size 10001", pinned)
	st.Intent = contractx.IntentProductAssist

	out, err := Dispatch(context.Background(), st, newFakeCatalog())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(st.ToolsCalled) != 0 || len(st.Evidence) != 0 {
		t.Fatalf("input state mutated: %#v", st)
	}
	if len(out.ToolsCalled) != 3 {
		t.Fatalf("unexpected tools: %v", out.ToolsCalled)
	}
}

func TestGuardDiscountRefusal(t *testing.T) {
	t.Parallel()

	st := NewRequestState("any CODE for a Discount?", pinned)
	st.Intent = contractx.IntentOther
	st = Guard(st)

	if st.PolicyDecision == nil || !st.PolicyDecision.Refuse {
		t.Fatalf("expected refusal, got %#v", st.PolicyDecision)
	}
	if len(st.PolicyDecision.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(st.PolicyDecision.Alternatives))
	}

	trace, err := Compose(st)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !strings.Contains(trace.FinalMessage, "• Sign up for our newsletter") {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
}

func TestGuardDiscountWithoutCode(t *testing.T) {
	t.Parallel()

	st := Guard(NewRequestState("is there a discount?", pinned))
	if st.PolicyDecision != nil {
		t.Fatalf("unexpected decision: %#v", st.PolicyDecision)
	}
}

func TestGuardCancellationTakesPrecedence(t *testing.T) {
	t.Parallel()

	st, _ := run(t, "Cancel A1003 mira@example.com and give me a discount code", contractx.IntentOrderHelp, newFakeCatalog(), pinned)
	if st.PolicyDecision == nil || st.PolicyDecision.Refuse || st.PolicyDecision.CancelAllowed == nil {
		t.Fatalf("expected cancellation decision, got %#v", st.PolicyDecision)
	}
}

func TestComposeOtherCapabilities(t *testing.T) {
	t.Parallel()

	st := NewRequestState("hello", pinned)
	st.Intent = contractx.IntentOther
	trace, err := Compose(Guard(st))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if trace.FinalMessage != capabilitiesMessage {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
}

func TestComposeUnknownIntent(t *testing.T) {
	t.Parallel()

	st := NewRequestState("hello", pinned)
	st.Intent = "shopping"
	trace, err := Compose(st)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if trace.FinalMessage != unknownIntentMessage {
		t.Fatalf("unexpected message: %s", trace.FinalMessage)
	}
}

func TestComposeInconsistentState(t *testing.T) {
	t.Parallel()

	st := NewRequestState("cancel", pinned)
	st.Intent = contractx.IntentOrderHelp
	st.Results.Cancel = &toolx.CancelResult{Success: true}

	if _, err := Compose(st); !errors.Is(err, contractx.ErrCompose) {
		t.Fatalf("expected ErrCompose, got %v", err)
	}
}

func TestFormatOrderDate(t *testing.T) {
	t.Parallel()

	if got := FormatOrderDate("2025-09-07T14:05:00Z"); got != "September 07 at 02:05 PM" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := FormatOrderDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
