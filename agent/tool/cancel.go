package tool

import (
	"fmt"
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

// CancelWindow is inclusive: an order exactly this old can still be cancelled.
const CancelWindow = 60 * time.Minute

type CancelState string

const (
	CancelNotFound     CancelState = "not_found"
	CancelWithinWindow CancelState = "within_window"
	CancelExpired      CancelState = "expired"
)

const refundInfo = "Full refund will be processed within 3-5 business days."

var cancelAlternatives = []string{
	"Edit your shipping address if the order hasn't shipped yet",
	"Convert to store credit for future purchases",
	"Contact customer support for special assistance",
}

type CancelResult struct {
	OrderID        string                   `json:"order_id"`
	State          CancelState              `json:"state"`
	Success        bool                     `json:"success"`
	Reason         string                   `json:"reason"`
	ElapsedMinutes float64                  `json:"elapsed_minutes,omitempty"`
	RefundInfo     string                   `json:"refund_info,omitempty"`
	Alternatives   []string                 `json:"alternatives,omitempty"`
	PolicyDecision contractx.PolicyDecision `json:"policy_decision"`
}

// OrderCancel decides whether orderID may be cancelled at evaluatedAt. The
// order is matched by id only. A zero evaluatedAt means the current time.
func OrderCancel(orders []contractx.Order, orderID string, evaluatedAt time.Time) (CancelResult, error) {
	order, ok := findOrderByID(orders, orderID)
	if !ok {
		return CancelResult{
			OrderID: orderID,
			State:   CancelNotFound,
			Success: false,
			Reason:  "Order not found",
			PolicyDecision: contractx.PolicyDecision{
				CancelAllowed: boolPtr(false),
				Reason:        "Order not found",
			},
		}, nil
	}

	createdAt, err := time.Parse(time.RFC3339, order.CreatedAt)
	if err != nil {
		return CancelResult{}, fmt.Errorf("%w: order=%s created_at=%q: %v", contractx.ErrInvalidRecord, orderID, order.CreatedAt, err)
	}
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now()
	}

	elapsed := evaluatedAt.Sub(createdAt).Seconds() / 60

	if elapsed <= CancelWindow.Minutes() {
		return CancelResult{
			OrderID:        orderID,
			State:          CancelWithinWindow,
			Success:        true,
			Reason:         fmt.Sprintf("Order cancelled successfully. Cancelled within %.1f minutes of creation.", elapsed),
			ElapsedMinutes: elapsed,
			RefundInfo:     refundInfo,
			PolicyDecision: contractx.PolicyDecision{
				CancelAllowed:  boolPtr(true),
				Reason:         fmt.Sprintf("Within 60-minute window (%.1f minutes elapsed)", elapsed),
				ElapsedMinutes: float64Ptr(elapsed),
				RefundInfo:     refundInfo,
			},
		}, nil
	}

	return CancelResult{
		OrderID:        orderID,
		State:          CancelExpired,
		Success:        false,
		Reason:         fmt.Sprintf("Cancellation not allowed. Order was placed %.1f minutes ago, which exceeds our 60-minute cancellation window.", elapsed),
		ElapsedMinutes: elapsed,
		Alternatives:   append([]string(nil), cancelAlternatives...),
		PolicyDecision: contractx.PolicyDecision{
			CancelAllowed:  boolPtr(false),
			Reason:         fmt.Sprintf("Exceeds 60-minute limit (%.1f minutes elapsed)", elapsed),
			ElapsedMinutes: float64Ptr(elapsed),
			Alternatives:   append([]string(nil), cancelAlternatives...),
		},
	}, nil
}

func boolPtr(v bool) *bool {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}
