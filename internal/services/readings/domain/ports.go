package domain

import "context"

// WriterPort accepts reading submissions
type WriterPort interface {
	Create(ctx context.Context, in CreateInput) (Reading, error)
}

// QueryPort lists persisted readings
type QueryPort interface {
	List(ctx context.Context, f Filters) ([]Row, error)
}

// NotifierPort pushes a committed reading to the billing system
// failures are logged by the caller and never propagated
type NotifierPort interface {
	NotifyReading(ctx context.Context, r Reading) error
}
