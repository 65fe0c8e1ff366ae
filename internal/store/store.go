// Package store abstracts the remote document store the inventory core
// persists to. Collections are schemaless groups of documents; there are
// no joins and no multi-document transactions. Every method issues its
// remote call asynchronously and returns an Operation handle; callers pass
// the handle through Await to get the blocking, one-call-at-a-time view
// the rest of the core is written against.
package store

import "errors"

// ErrNoDocument is the failure reported by Update and Delete when the
// target document does not exist.
var ErrNoDocument = errors.New("document not found")

// Condition operators accepted by Find.
const (
	OpEq  = "=="
	OpGte = ">="
	OpLt  = "<"
)

// Cond is a single field constraint in a Find.
type Cond struct {
	Field string
	Op    string
	Value any
}

// Eq constrains a field to equal value.
func Eq(field string, value any) Cond { return Cond{Field: field, Op: OpEq, Value: value} }

// Gte constrains a field to be at least value.
func Gte(field string, value any) Cond { return Cond{Field: field, Op: OpGte, Value: value} }

// Lt constrains a field to be below value.
func Lt(field string, value any) Cond { return Cond{Field: field, Op: OpLt, Value: value} }

// Fields is the schemaless body of a document.
type Fields map[string]any

// Store is a handle to the remote document store.
//
// Set creates or overwrites a document under a caller-supplied id. Update
// patches fields of an existing document and fails with ErrNoDocument when
// it is missing. Add writes a document under a store-assigned id, which
// the returned operation carries. Get succeeds even when the document is
// missing; the snapshot's Exists reports the difference. Operations carry
// no caller context: cancellation is deliberately absent (see Await).
type Store interface {
	Set(col, id string, fields Fields) *Operation
	Update(col, id string, fields Fields) *Operation
	Get(col, id string) *Operation
	Add(col string, fields Fields) *Operation
	Find(col string, conds ...Cond) *Operation
	Delete(col, id string) *Operation
	Close() *Operation
}
