package contract

import "context"

// Classifier maps free text to an intent. Implementations may return any
// string; callers normalise out-of-vocabulary values.
type Classifier interface {
	Classify(ctx context.Context, text string) (Intent, error)
}

// CatalogSource returns full read-only snapshots of the product and order lists.
type CatalogSource interface {
	Products(ctx context.Context) ([]Product, error)
	Orders(ctx context.Context) ([]Order, error)
}

// Generator is a single-turn text completion backend.
type Generator interface {
	Generate(ctx context.Context, system string, user string) (string, error)
}
