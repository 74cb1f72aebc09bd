// Package ctxutil holds the context helpers shared by the session manager
// and the file store.
package ctxutil

import "context"

// Canceled reports whether the context is already done, returning its error
// (Canceled or DeadlineExceeded) and nil otherwise. The manager's mutate
// path and every store operation call this at entry so an aborted CLI
// invocation stops before the session file is touched.
//
// ctx.Err() is returned directly: it is nil until Done closes, so no select
// with a default case is needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
