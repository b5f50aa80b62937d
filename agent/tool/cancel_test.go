package tool

import (
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

func testOrders() []contractx.Order {
	return []contractx.Order{
		{
			OrderID:   "A1003",
			Email:     "mira@example.com",
			CreatedAt: "2025-09-07T12:00:00Z",
			Items:     []contractx.OrderItem{{ProductID: "P1", Size: "M"}},
		},
		{
			OrderID:   "A1009",
			Email:     "broken@example.com",
			CreatedAt: "yesterday",
		},
	}
}

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return ts
}

func TestOrderCancelWithinWindow(t *testing.T) {
	t.Parallel()

	out, err := OrderCancel(testOrders(), "A1003", mustTime(t, "2025-09-07T12:35:00Z"))
	if err != nil {
		t.Fatalf("OrderCancel() error = %v", err)
	}
	if out.State != CancelWithinWindow || !out.Success {
		t.Fatalf("expected within window success, got %#v", out)
	}
	if out.RefundInfo == "" {
		t.Fatal("expected refund info")
	}
	if !strings.Contains(out.Reason, "35.0 minutes") {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}
	if out.PolicyDecision.CancelAllowed == nil || !*out.PolicyDecision.CancelAllowed {
		t.Fatalf("expected cancel_allowed=true, got %#v", out.PolicyDecision)
	}
	if len(out.Alternatives) != 0 {
		t.Fatalf("unexpected alternatives: %#v", out.Alternatives)
	}
}

func TestOrderCancelExpired(t *testing.T) {
	t.Parallel()

	out, err := OrderCancel(testOrders(), "A1003", mustTime(t, "2025-09-07T14:00:00Z"))
	if err != nil {
		t.Fatalf("OrderCancel() error = %v", err)
	}
	if out.State != CancelExpired || out.Success {
		t.Fatalf("expected expired, got %#v", out)
	}
	if len(out.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(out.Alternatives))
	}
	if !strings.Contains(out.Reason, "120.0 minutes") {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}
	if out.PolicyDecision.CancelAllowed == nil || *out.PolicyDecision.CancelAllowed {
		t.Fatalf("expected cancel_allowed=false, got %#v", out.PolicyDecision)
	}
	if out.RefundInfo != "" {
		t.Fatalf("unexpected refund info: %q", out.RefundInfo)
	}
}

func TestOrderCancelBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		at      string
		allowed bool
	}{
		{name: "exactly 60 minutes", at: "2025-09-07T13:00:00Z", allowed: true},
		{name: "60.01 minutes", at: "2025-09-07T13:00:00.6Z", allowed: false},
		{name: "zero elapsed", at: "2025-09-07T12:00:00Z", allowed: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := OrderCancel(testOrders(), "A1003", mustTime(t, tc.at))
			if err != nil {
				t.Fatalf("OrderCancel() error = %v", err)
			}
			if out.Success != tc.allowed {
				t.Fatalf("success = %v, want %v (elapsed %.3f)", out.Success, tc.allowed, out.ElapsedMinutes)
			}
			// exactly one of succeeded/blocked
			if (out.State == CancelWithinWindow) == (out.State == CancelExpired) {
				t.Fatalf("unexpected state: %s", out.State)
			}
		})
	}
}

func TestOrderCancelNotFound(t *testing.T) {
	t.Parallel()

	out, err := OrderCancel(testOrders(), "Z9999", mustTime(t, "2025-09-07T12:35:00Z"))
	if err != nil {
		t.Fatalf("OrderCancel() error = %v", err)
	}
	if out.State != CancelNotFound || out.Success {
		t.Fatalf("expected not found, got %#v", out)
	}
	if out.Reason != "Order not found" {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}
	if out.PolicyDecision.CancelAllowed == nil || *out.PolicyDecision.CancelAllowed {
		t.Fatalf("expected cancel_allowed=false, got %#v", out.PolicyDecision)
	}
}

func TestOrderCancelInvalidTimestamp(t *testing.T) {
	t.Parallel()

	_, err := OrderCancel(testOrders(), "A1009", mustTime(t, "2025-09-07T12:35:00Z"))
	if !errors.Is(err, contractx.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestOrderLookupEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"mira@example.com", "Mira@Example.COM"} {
		got, ok := OrderLookup(testOrders(), "A1003", email)
		if !ok {
			t.Fatalf("expected match for email %q", email)
		}
		if got.OrderID != "A1003" {
			t.Fatalf("unexpected order: %s", got.OrderID)
		}
	}
}

func TestOrderLookupRequiresExactID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"a1003", "A100", "A10033"} {
		if _, ok := OrderLookup(testOrders(), id, "mira@example.com"); ok {
			t.Fatalf("expected no match for id %q", id)
		}
	}
	if _, ok := OrderLookup(testOrders(), "A1003", "other@example.com"); ok {
		t.Fatal("expected no match for different email")
	}
}
