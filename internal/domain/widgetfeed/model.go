package widgetfeed

import "time"

// Item is one entry of the widget catalog. The widget pipeline is
// independent of the chat catalog and only shares the general product shape.
type Item struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Price       float64   `json:"price" yaml:"price"`
	Image       string    `json:"image" yaml:"image"`
	Category    string    `json:"category" yaml:"category"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	Slug        string    `json:"slug" yaml:"slug"`
}

// Repository exposes read access to the immutable widget catalog.
type Repository interface {
	All() []Item
}
