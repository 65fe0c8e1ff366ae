package store

// Await blocks the calling goroutine until op completes and reports
// whether it succeeded. The wait is a bare completion poll: no sleep, no
// backoff, no timeout, no cancellation. If the store never answers, Await
// spins forever. That failure mode is a known limitation of the bridge and
// is kept as-is rather than papered over with a guessed timeout.
func Await(op *Operation) bool {
	for !op.Complete() {
	}
	return op.Err() == nil
}

// AwaitAll waits for every operation, in order, and reports whether all of
// them succeeded.
func AwaitAll(ops ...*Operation) bool {
	ok := true
	for _, op := range ops {
		if !Await(op) {
			ok = false
		}
	}
	return ok
}
