// Package circuitbreaker short-circuits calls to an external service that keeps
// failing, so a dead extraction endpoint does not hold every request for its
// full timeout.
//
//   - CLOSED: calls pass through and failures are counted
//   - OPEN: calls fail immediately with ErrOpen
//   - HALF-OPEN: one trial call decides whether to close again
//
// Usage:
//
//	b := circuitbreaker.New(5, 30*time.Second)
//	err := b.Call(func() error {
//	    return client.Do(ctx)
//	})
package circuitbreaker
