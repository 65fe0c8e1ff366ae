package models

// Category groups items for browsing and reporting. The ID is assigned by
// the store.
type Category struct {
	ID   string
	Name string
}

// Location names a physical storage spot. The ID is assigned by the store.
type Location struct {
	ID   string
	Name string
}
