package models

import "time"

// Item holds the fields shared by both item kinds. The ID is the item's
// 13-digit barcode; the same value keys the base document in the Item
// collection and the subtype document in Sellable or NonSellable.
type Item struct {
	ID          string
	Received    time.Time
	Description string
	Condition   Condition
	Quantity    int
	Price       float64
	Category    *Category
	Location    *Location
}

// SellableItem is an item offered for sale.
type SellableItem struct {
	Item
}

// NonSellableItem is a donated or give-away item. Source records the donor
// or origin as free text.
type NonSellableItem struct {
	Item
	Source string
}

// InventoryItem is implemented by both item kinds so kit compositions and
// distribution lines can carry either.
type InventoryItem interface {
	Base() *Item
	Sellable() bool
}

func (s *SellableItem) Base() *Item   { return &s.Item }
func (s *SellableItem) Sellable() bool { return true }

func (n *NonSellableItem) Base() *Item   { return &n.Item }
func (n *NonSellableItem) Sellable() bool { return false }

// NewSellableItem builds a sellable item, applying the field coercions the
// setters enforce.
func NewSellableItem(id string, received time.Time, desc string, quantity int, cond Condition, price float64, cat *Category, loc *Location) *SellableItem {
	item := &SellableItem{Item: Item{
		ID:          id,
		Received:    received,
		Description: desc,
		Condition:   cond,
		Quantity:    quantity,
		Category:    cat,
	}}
	item.SetPrice(price)
	item.SetLocation(loc)
	return item
}

// NewNonSellableItem builds a non-sellable item. A missing source becomes
// the empty string.
func NewNonSellableItem(id string, received time.Time, desc string, quantity int, cond Condition, price float64, cat *Category, source string, loc *Location) *NonSellableItem {
	item := &NonSellableItem{
		Item: Item{
			ID:          id,
			Received:    received,
			Description: desc,
			Condition:   cond,
			Quantity:    quantity,
			Category:    cat,
		},
		Source: source,
	}
	item.SetPrice(price)
	item.SetLocation(loc)
	return item
}

// SetPrice stores the price. Negative input is coerced to 0.0.
func (i *Item) SetPrice(price float64) {
	if price < 0 {
		price = 0.0
	}
	i.Price = price
}

// DecreaseQuantity subtracts quantity from the stock count. Values below 1
// are ignored. There is no floor; the count may go negative.
func (i *Item) DecreaseQuantity(quantity int) {
	if quantity < 1 {
		return
	}
	i.Quantity -= quantity
}

// SetLocation replaces the item's location. Nil input is ignored.
func (i *Item) SetLocation(loc *Location) {
	if loc != nil {
		i.Location = loc
	}
}
