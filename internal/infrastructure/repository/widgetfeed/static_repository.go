package widgetfeed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domain "shoprec-server/internal/domain/widgetfeed"
)

//go:embed items.json
var embeddedItems []byte

// StaticRepository is an immutable in-memory widget catalog loaded once at
// process start.
type StaticRepository struct {
	items []domain.Item
}

var _ domain.Repository = (*StaticRepository)(nil)

// NewEmbeddedRepository loads the widget catalog shipped with the binary.
func NewEmbeddedRepository() (*StaticRepository, error) {
	var items []domain.Item
	if err := json.Unmarshal(embeddedItems, &items); err != nil {
		return nil, fmt.Errorf("decode embedded widget catalog: %w", err)
	}
	return newRepository(items)
}

// NewFileRepository loads a widget catalog override from a JSON or YAML
// file, selected by extension.
func NewFileRepository(path string) (*StaticRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read widget catalog file: %w", err)
	}

	var items []domain.Item
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode widget catalog yaml %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode widget catalog json %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported widget catalog file extension: %s", path)
	}

	return newRepository(items)
}

func newRepository(items []domain.Item) (*StaticRepository, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("widget catalog is empty")
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("widget catalog entry %q has an empty id", item.Name)
		}
		if _, exists := seen[item.ID]; exists {
			return nil, fmt.Errorf("duplicate widget catalog id %q", item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("widget catalog entry %q has a negative price", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return &StaticRepository{items: items}, nil
}

// All returns every item in catalog order.
func (r *StaticRepository) All() []domain.Item {
	out := make([]domain.Item, len(r.items))
	copy(out, r.items)
	return out
}
