// Package domain holds client types
package domain

import "context"

// Client is a billed customer
type Client struct {
	ID       string `json:"id_client"`
	FullName string `json:"nom_complet"`
	Email    string `json:"email,omitempty"`
}

// CreateInput registers a new client
type CreateInput struct {
	FullName string `json:"nom_complet" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Port is the clients surface other modules consume
type Port interface {
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, in CreateInput) (Client, error)
}
