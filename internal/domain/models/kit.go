package models

// Kit is a named bundle of items, identified by its own 13-digit barcode.
// The kit document carries only name and description; composition lives in
// Kit_Item join documents.
type Kit struct {
	ID          string
	Name        string
	Description string
}

// KitItem is one Kit_Item join row: how many of one item go into one kit.
// Quantity is independent of the item's live stock count.
type KitItem struct {
	Kit      string
	Item     string
	Quantity int
	Sellable bool
}
