package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

//go:embed data/products.json data/orders.json
var defaultData embed.FS

type FileConfig struct {
	ProductsPath string `envconfig:"PRODUCTS_PATH" split_words:"true"`
	OrdersPath   string `envconfig:"ORDERS_PATH" split_words:"true"`
}

var _ contractx.CatalogSource = (*FileSource)(nil)

// FileSource reads the catalog JSON files on every call. An empty path falls
// back to the embedded default catalog.
type FileSource struct {
	productsPath string
	ordersPath   string
}

func NewFileSource(cfg FileConfig) *FileSource {
	return &FileSource{
		productsPath: strings.TrimSpace(cfg.ProductsPath),
		ordersPath:   strings.TrimSpace(cfg.OrdersPath),
	}
}

func (s *FileSource) Products(ctx context.Context) ([]contractx.Product, error) {
	raw, err := s.read(s.productsPath, "data/products.json")
	if err != nil {
		return nil, err
	}

	var products []contractx.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", contractx.ErrCatalogUnavailable, err)
	}
	if err := ValidateProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *FileSource) Orders(ctx context.Context) ([]contractx.Order, error) {
	raw, err := s.read(s.ordersPath, "data/orders.json")
	if err != nil {
		return nil, err
	}

	var orders []contractx.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("%w: decode orders: %v", contractx.ErrCatalogUnavailable, err)
	}
	if err := ValidateOrders(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *FileSource) read(path string, embedded string) ([]byte, error) {
	if path == "" {
		raw, err := defaultData.ReadFile(embedded)
		if err != nil {
			return nil, fmt.Errorf("%w: read embedded %s: %v", contractx.ErrCatalogUnavailable, embedded, err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", contractx.ErrCatalogUnavailable, path, err)
	}
	return raw, nil
}
