package models

import "time"

// Distribution is one sale or give-away event. Amount is the tax-inclusive
// total as entered by the operator; it is trusted input and never
// recomputed from the event's lines.
type Distribution struct {
	ID     string
	Amount float64
	Date   time.Time
	User   *User
}

// DistItem is one Dist_Item join row, the only durable record of what a
// distribution contained.
type DistItem struct {
	Dist     string
	Item     string
	Quantity int
}
