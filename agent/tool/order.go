package tool

import (
	"strings"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

// OrderLookup returns the first order whose id matches exactly and whose email
// matches case-insensitively.
func OrderLookup(orders []contractx.Order, orderID string, email string) (contractx.Order, bool) {
	for _, o := range orders {
		if o.OrderID == orderID && strings.EqualFold(o.Email, email) {
			return o, true
		}
	}
	return contractx.Order{}, false
}

func findOrderByID(orders []contractx.Order, orderID string) (contractx.Order, bool) {
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return contractx.Order{}, false
}
