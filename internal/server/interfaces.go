package server

import "context"

// Server defines the lifecycle contract of the transport servers in this
// package.
type Server interface {
	// Run serves requests until ctx is cancelled or a termination signal
	// arrives, then shuts down gracefully.
	Run(ctx context.Context) error
}
