package location

import "context"

// Provider is a source of the device's current position.
type Provider interface {
	// Sample returns the current position. Callers bound the call with a
	// context deadline; implementations must honor cancellation.
	Sample(ctx context.Context) (Position, error)

	// Close releases any resources held by the provider.
	Close() error
}
