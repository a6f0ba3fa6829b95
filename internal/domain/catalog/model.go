package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Product is one catalog entry. The catalog is loaded once at process start
// and never mutated afterwards.
type Product struct {
	ID               string               `json:"id" yaml:"id"`
	Title            string               `json:"title" yaml:"title"`
	Price            float64              `json:"price" yaml:"price"`
	Brand            string               `json:"brand" yaml:"brand"`
	Category         string               `json:"category" yaml:"category"`
	Size             string               `json:"size" yaml:"size"`
	Image            string               `json:"image" yaml:"image"`
	ShortDescription string               `json:"shortDescription" yaml:"shortDescription"`
	Description      string               `json:"description" yaml:"description"`
	Features         []string             `json:"features" yaml:"features"`
	Specifications   map[string]SpecValue `json:"specifications" yaml:"specifications"`
}

// SpecValue holds a specification entry whose source value may be a scalar or
// a sequence of scalars.
type SpecValue struct {
	Values []string
}

// String joins the underlying values for display.
func (v SpecValue) String() string {
	return strings.Join(v.Values, ", ")
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		v.Values = make([]string, 0, len(list))
		for _, item := range list {
			v.Values = append(v.Values, formatScalar(item))
		}
		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	v.Values = []string{formatScalar(scalar)}
	return nil
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	if len(v.Values) == 1 {
		return json.Marshal(v.Values[0])
	}
	return json.Marshal(v.Values)
}

func (v *SpecValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		v.Values = list
		return nil
	}

	var scalar string
	if err := node.Decode(&scalar); err != nil {
		return err
	}
	v.Values = []string{scalar}
	return nil
}

func formatScalar(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", typed)
	}
}
