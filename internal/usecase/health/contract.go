package health

import "context"

// StorePinger checks vector store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks a model provider's availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}
