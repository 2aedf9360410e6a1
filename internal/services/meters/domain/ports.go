package domain

import "context"

// Port is the meters surface other modules consume
type Port interface {
	List(ctx context.Context, meterType string) ([]Meter, error)
	Get(ctx context.Context, serial string) (Meter, error)
	Create(ctx context.Context, in CreateInput) (Meter, error)
}
