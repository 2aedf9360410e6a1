// Package domain holds agent types
package domain

import "context"

// Agent is a field agent who records readings
type Agent struct {
	ID         string `json:"id_agent"`
	LastName   string `json:"nom"`
	FirstName  string `json:"prenom"`
	DistrictID string `json:"id_quartier,omitempty"`
	District   string `json:"quartier,omitempty"`
}

// CreateInput registers a new agent
type CreateInput struct {
	LastName   string `json:"nom" validate:"required"`
	FirstName  string `json:"prenom" validate:"required"`
	DistrictID string `json:"id_quartier" validate:"omitempty,uuid4"`
}

// Port is the agents surface other modules consume
type Port interface {
	List(ctx context.Context) ([]Agent, error)
	Get(ctx context.Context, id string) (Agent, error)
	Create(ctx context.Context, in CreateInput) (Agent, error)
}
