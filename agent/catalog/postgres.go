package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       string   `bun:"id,pk"`
	Title    string   `bun:"title,notnull"`
	Price    int      `bun:"price,notnull"`
	Tags     []string `bun:"tags,array"`
	Sizes    []string `bun:"sizes,array"`
	Color    string   `bun:"color"`
	Position int      `bun:"position,notnull"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderID   string                `bun:"order_id,pk"`
	Email     string                `bun:"email,notnull"`
	CreatedAt time.Time             `bun:"created_at,notnull"`
	Items     []contractx.OrderItem `bun:"items,type:jsonb"`
	Position  int                   `bun:"position,notnull"`
}

var _ contractx.CatalogSource = (*PostgresSource)(nil)

// PostgresSource reads the catalog from the products and orders tables. It
// only ever issues SELECTs.
type PostgresSource struct {
	db bun.IDB
}

func NewPostgresSource(db bun.IDB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Products(ctx context.Context) ([]contractx.Product, error) {
	var rows []productRow
	if err := s.db.NewSelect().Model(&rows).Order("p.position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: select products: %v", contractx.ErrCatalogUnavailable, err)
	}

	products := productsFromRows(rows)
	if err := ValidateProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *PostgresSource) Orders(ctx context.Context) ([]contractx.Order, error) {
	var rows []orderRow
	if err := s.db.NewSelect().Model(&rows).Order("o.position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: select orders: %v", contractx.ErrCatalogUnavailable, err)
	}

	orders := ordersFromRows(rows)
	if err := ValidateOrders(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func productsFromRows(rows []productRow) []contractx.Product {
	products := make([]contractx.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, contractx.Product{
			ID:    r.ID,
			Title: r.Title,
			Price: r.Price,
			Tags:  r.Tags,
			Sizes: r.Sizes,
			Color: r.Color,
		})
	}
	return products
}

func ordersFromRows(rows []orderRow) []contractx.Order {
	orders := make([]contractx.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, contractx.Order{
			OrderID:   r.OrderID,
			Email:     r.Email,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
			Items:     r.Items,
		})
	}
	return orders
}
