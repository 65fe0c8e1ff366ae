package store

import "sync/atomic"

// Operation is the handle for one in-flight remote call. The call runs on
// its own goroutine; callers observe completion through Complete, or block
// on it with Await.
type Operation struct {
	done   atomic.Bool
	result any
	err    error
}

// start runs fn on a new goroutine and returns its handle immediately.
func start(fn func() (any, error)) *Operation {
	op := &Operation{}
	go func() {
		op.result, op.err = fn()
		op.done.Store(true)
	}()
	return op
}

// Complete reports whether the remote call has finished, successfully or
// not.
func (o *Operation) Complete() bool { return o.done.Load() }

// Err returns the call's failure, if any. Only meaningful once Complete
// reports true.
func (o *Operation) Err() error { return o.err }

// Snapshot returns the document produced by a Get.
func (o *Operation) Snapshot() Snapshot {
	s, _ := o.result.(Snapshot)
	return s
}

// Snapshots returns the documents produced by a Find.
func (o *Operation) Snapshots() []Snapshot {
	s, _ := o.result.([]Snapshot)
	return s
}

// ID returns the store-assigned identifier produced by an Add.
func (o *Operation) ID() string {
	s, _ := o.result.(string)
	return s
}
