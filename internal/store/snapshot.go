package store

import (
	"time"

	"github.com/spf13/cast"
)

// Snapshot is one document read from the store: its key plus the raw,
// schemaless field map. Accessors coerce loosely, the way document-store
// clients do; a missing or nil field yields the zero value, which is also
// how null names and sources collapse to "".
type Snapshot struct {
	ID     string
	Fields Fields
}

// Exists reports whether the document was actually found.
func (s Snapshot) Exists() bool { return s.Fields != nil }

// Str returns field as a string.
func (s Snapshot) Str(field string) string { return cast.ToString(s.Fields[field]) }

// Int returns field as an int.
func (s Snapshot) Int(field string) int { return cast.ToInt(s.Fields[field]) }

// Float returns field as a float64.
func (s Snapshot) Float(field string) float64 { return cast.ToFloat64(s.Fields[field]) }

// Bool returns field as a bool.
func (s Snapshot) Bool(field string) bool { return cast.ToBool(s.Fields[field]) }

// Time returns field as a time.Time.
func (s Snapshot) Time(field string) time.Time { return cast.ToTime(s.Fields[field]) }
