package contract

import "encoding/json"

type Intent string

const (
	IntentProductAssist Intent = "product_assist"
	IntentOrderHelp     Intent = "order_help"
	IntentOther         Intent = "other"
	IntentError         Intent = "error"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentProductAssist, IntentOrderHelp, IntentOther:
		return true
	default:
		return false
	}
}

type Product struct {
	ID    string   `json:"id" validate:"required"`
	Title string   `json:"title" validate:"required"`
	Price int      `json:"price" validate:"gte=0"`
	Tags  []string `json:"tags" validate:"dive,required"`
	Sizes []string `json:"sizes" validate:"dive,required"`
	Color string   `json:"color"`
}

type OrderItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

type Order struct {
	OrderID   string      `json:"order_id" validate:"required"`
	Email     string      `json:"email" validate:"required"`
	CreatedAt string      `json:"created_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Items     []OrderItem `json:"items" validate:"dive"`
}

// PolicyDecision is the single business-rule outcome attached to a request.
// CancelAllowed is set only by the cancellation policy; Refuse only by the
// discount guardrail.
type PolicyDecision struct {
	CancelAllowed  *bool    `json:"cancel_allowed,omitempty"`
	Refuse         bool     `json:"refuse,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	ElapsedMinutes *float64 `json:"elapsed_minutes,omitempty"`
	RefundInfo     string   `json:"refund_info,omitempty"`
	Alternatives   []string `json:"alternatives,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type ProductEvidence struct {
	ProductID string   `json:"product_id"`
	Title     string   `json:"title"`
	Price     int      `json:"price"`
	Sizes     []string `json:"sizes"`
	Color     string   `json:"color"`
}

type OrderEvidence struct {
	OrderID   string      `json:"order_id"`
	Email     string      `json:"email"`
	CreatedAt string      `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// Evidence holds exactly one of Product or Order and marshals as that object.
type Evidence struct {
	Product *ProductEvidence
	Order   *OrderEvidence
}

func ProductEvidenceFrom(p Product) Evidence {
	return Evidence{Product: &ProductEvidence{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Sizes:     p.Sizes,
		Color:     p.Color,
	}}
}

func OrderEvidenceFrom(o Order) Evidence {
	return Evidence{Order: &OrderEvidence{
		OrderID:   o.OrderID,
		Email:     o.Email,
		CreatedAt: o.CreatedAt,
		Items:     o.Items,
	}}
}

func (e Evidence) MarshalJSON() ([]byte, error) {
	switch {
	case e.Product != nil:
		return json.Marshal(e.Product)
	case e.Order != nil:
		return json.Marshal(e.Order)
	default:
		return []byte("{}"), nil
	}
}

type Trace struct {
	Intent         Intent          `json:"intent"`
	ToolsCalled    []string        `json:"tools_called"`
	Evidence       []Evidence      `json:"evidence"`
	PolicyDecision *PolicyDecision `json:"policy_decision,omitempty"`
	FinalMessage   string          `json:"final_message"`
}

type Result struct {
	Trace        Trace  `json:"json_trace"`
	FinalMessage string `json:"final_message"`
}
