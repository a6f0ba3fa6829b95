package catalog

// Repository exposes read access to an immutable catalog snapshot.
type Repository interface {
	// All returns every product in catalog order.
	All() []Product
	// ByID looks up a product by its unique id.
	ByID(id string) (Product, bool)
	// First returns the first n products in catalog order.
	First(n int) []Product
}
