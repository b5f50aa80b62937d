package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateProducts checks field constraints and id uniqueness.
func ValidateProducts(products []contractx.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		if err := validate.Struct(products[i]); err != nil {
			return fmt.Errorf("%w: product[%d]: %v", contractx.ErrInvalidRecord, i, describe(err))
		}
		if _, dup := seen[products[i].ID]; dup {
			return fmt.Errorf("%w: duplicate product id=%s", contractx.ErrInvalidRecord, products[i].ID)
		}
		seen[products[i].ID] = struct{}{}
	}
	return nil
}

// ValidateOrders checks field constraints and order id uniqueness.
func ValidateOrders(orders []contractx.Order) error {
	seen := make(map[string]struct{}, len(orders))
	for i := range orders {
		if err := validate.Struct(orders[i]); err != nil {
			return fmt.Errorf("%w: order[%d]: %v", contractx.ErrInvalidRecord, i, describe(err))
		}
		if _, dup := seen[orders[i].OrderID]; dup {
			return fmt.Errorf("%w: duplicate order id=%s", contractx.ErrInvalidRecord, orders[i].OrderID)
		}
		seen[orders[i].OrderID] = struct{}{}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("field %s failed %s", fe.Namespace(), fe.Tag())
	}
	return err.Error()
}
