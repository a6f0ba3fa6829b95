package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domain "shoprec-server/internal/domain/catalog"
)

//go:embed catalog.json
var embeddedCatalog []byte

// StaticRepository is an immutable in-memory catalog snapshot loaded once at
// process start.
type StaticRepository struct {
	products []domain.Product
	byID     map[string]domain.Product
}

var _ domain.Repository = (*StaticRepository)(nil)

// NewEmbeddedRepository loads the catalog shipped with the binary.
func NewEmbeddedRepository() (*StaticRepository, error) {
	var products []domain.Product
	if err := json.Unmarshal(embeddedCatalog, &products); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return newRepository(products)
}

// NewFileRepository loads a catalog override from a JSON or YAML file,
// selected by extension.
func NewFileRepository(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []domain.Product
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("decode catalog yaml %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("decode catalog json %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file extension: %s", path)
	}

	return newRepository(products)
}

func newRepository(products []domain.Product) (*StaticRepository, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byID := make(map[string]domain.Product, len(products))
	for _, product := range products {
		if strings.TrimSpace(product.ID) == "" {
			return nil, fmt.Errorf("catalog entry %q has an empty id", product.Title)
		}
		if _, exists := byID[product.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", product.ID)
		}
		if product.Price < 0 {
			return nil, fmt.Errorf("catalog entry %q has a negative price", product.ID)
		}
		byID[product.ID] = product
	}

	return &StaticRepository{products: products, byID: byID}, nil
}

// All returns every product in catalog order.
func (r *StaticRepository) All() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

// ByID looks up a product by id.
func (r *StaticRepository) ByID(id string) (domain.Product, bool) {
	product, ok := r.byID[id]
	return product, ok
}

// First returns the first n products in catalog order.
func (r *StaticRepository) First(n int) []domain.Product {
	if n > len(r.products) {
		n = len(r.products)
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.Product, n)
	copy(out, r.products[:n])
	return out
}
