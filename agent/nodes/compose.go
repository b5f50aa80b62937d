package supportnode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	toolx "github.com/tanpawarit/Chative-Support-Agent/agent/tool"
)

const (
	ApologyMessage = "I'm having trouble processing your request right now. Please try again or contact customer support."

	orderNotFoundMessage = "I couldn't find an order with that ID and email combination. Please double-check the order number and email address."
	unknownIntentMessage = "I'm not sure how to help with that. Could you please rephrase your request?"
	capabilitiesMessage  = `I'm here to help you find products and manage your orders. I can:

• **Find products** - Search by style, price, size, or occasion
• **Size guidance** - Help you choose between M and L
• **Shipping info** - Provide delivery estimates
• **Order help** - Look up orders and handle cancellations (within 60 minutes)

What would you like help with?`

	orderDateLayout = "January 02 at 03:04 PM"
)

// Compose renders the final message and returns the completed trace.
func Compose(in RequestState) (contractx.Trace, error) {
	var (
		message string
		err     error
	)

	switch in.Intent {
	case contractx.IntentProductAssist:
		message = composeProduct(in)
	case contractx.IntentOrderHelp:
		message, err = composeOrder(in)
	case contractx.IntentOther:
		message = composeOther(in)
	default:
		message = unknownIntentMessage
	}
	if err != nil {
		return contractx.Trace{}, err
	}

	return in.Trace(message), nil
}

func composeProduct(in RequestState) string {
	parts := make([]string, 0, 6)

	if in.Called(toolx.ToolProductSearch) {
		products := in.Results.ProductSearch
		if len(products) > 0 {
			plural := ""
			if len(products) > 1 {
				plural = "s"
			}
			parts = append(parts, fmt.Sprintf("I found %d great option%s for you:\n", len(products), plural))
			for i, p := range products {
				parts = append(parts, fmt.Sprintf("%d. **%s** ($%d, %s) - Available in %s",
					i+1, p.Title, p.Price, p.Color, strings.Join(p.Sizes, ", ")))
			}
		} else {
			parts = append(parts, "I don't see any products matching those criteria in our current collection.")
		}
	}

	if rec := in.Results.Size; rec != nil {
		parts = append(parts, fmt.Sprintf("\n**Size recommendation:** %s - %s", rec.RecommendedSize, rec.Rationale))
	}
	if eta := in.Results.ETA; eta != nil {
		parts = append(parts, fmt.Sprintf("\n**Shipping to %s:** %s business days", eta.Zip, eta.ETADays))
	}

	parts = append(parts, "\nWould you like more details about any of these options?")
	return strings.Join(parts, "\n")
}

func composeOrder(in RequestState) (string, error) {
	order := in.Results.Order
	if order == nil {
		if in.Results.Cancel != nil {
			return "", fmt.Errorf("%w: cancellation result without a matched order", contractx.ErrCompose)
		}
		return orderNotFoundMessage, nil
	}

	items := orderItemLines(order.Items, in.Products)
	placed := FormatOrderDate(order.CreatedAt)

	cancel := in.Results.Cancel
	if cancel == nil {
		return fmt.Sprintf("📋 **Order %s Details:**\n\n%s\n- Placed: %s\n- Email: %s\n\nHow can I help you with this order?",
			order.OrderID, items, placed, order.Email), nil
	}

	if cancel.Success {
		refund := cancel.RefundInfo
		if refund == "" {
			refund = "Full refund will be processed within 3-5 business days to your original payment method."
		}
		return fmt.Sprintf("✅ **Order %s has been successfully cancelled.**\n\nOrder details:\n%s\n- Placed: %s\n- Cancelled within our 60-minute window\n\n**Refund:** %s\n\nIs there anything else I can help you with?",
			order.OrderID, items, placed, refund), nil
	}

	alternatives := make([]string, 0, len(cancel.Alternatives))
	for _, alt := range cancel.Alternatives {
		alternatives = append(alternatives, fmt.Sprintf("• **%s**", alt))
	}
	return fmt.Sprintf("❌ **Unable to cancel order %s**\n\n%s\n\n**Alternative options:**\n%s\n\nWhich option would work best for you?",
		order.OrderID, cancel.Reason, strings.Join(alternatives, "\n")), nil
}

func composeOther(in RequestState) string {
	decision := in.PolicyDecision
	if decision != nil && decision.Refuse && strings.Contains(strings.ToLower(in.Text), "discount") {
		alternatives := make([]string, 0, len(decision.Alternatives))
		for _, alt := range decision.Alternatives {
			alternatives = append(alternatives, "• "+alt)
		}
		return fmt.Sprintf("I don't have access to create custom discount codes, but here are some ways you can save:\n\n%s\n\nIs there anything else I can help you find today?",
			strings.Join(alternatives, "\n"))
	}
	return capabilitiesMessage
}

func orderItemLines(items []contractx.OrderItem, products []contractx.Product) string {
	byID := make(map[string]contractx.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		if p, ok := byID[item.ProductID]; ok {
			lines = append(lines, fmt.Sprintf("- %s (Size %s)", p.Title, item.Size))
		} else {
			lines = append(lines, fmt.Sprintf("- Product %s (Size %s)", item.ProductID, item.Size))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatOrderDate renders an ISO-8601 timestamp as "September 07 at 12:00 PM",
// returning the input unchanged when it does not parse.
func FormatOrderDate(iso string) string {
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return ts.Format(orderDateLayout)
}
