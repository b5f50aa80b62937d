package contract

import "errors"

var (
	ErrModelInvoke        = errors.New("model invoke failed")
	ErrValidation         = errors.New("validation failed")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrInvalidRecord      = errors.New("catalog record is invalid")
	ErrCompose            = errors.New("response composition failed")
)
