// Package barcode generates the numeric identifiers printed as item and
// kit barcodes.
package barcode

import (
	"math/rand"
	"strings"
)

// Size is the digit count of an item or kit barcode.
const Size = 13

// New returns a random identifier of Size decimal digits. Identifiers are
// not checked for uniqueness against existing records; the collision risk
// is accepted.
func New() string {
	var b strings.Builder
	b.Grow(Size)
	for i := 0; i < Size; i++ {
		b.WriteByte('0' + byte(rand.Intn(10)))
	}
	return b.String()
}

// Valid reports whether id has the exact length and content of a barcode.
func Valid(id string) bool {
	if len(id) != Size {
		return false
	}
	for i := 0; i < Size; i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}
