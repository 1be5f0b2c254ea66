// Package workers runs the long-lived background loops of the client daemon.
// It defines the Worker interface and a Workers aggregate that runs several
// workers together and stops them all when one fails.
package workers

import "context"

// Worker is implemented by any background loop. Run blocks until ctx is
// cancelled or the worker fails; a clean stop returns nil.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
