// Package domain holds address and district types
package domain

import "context"

// District is a quartier, the unit agents are assigned to
type District struct {
	ID    string `json:"id_quartier"`
	Label string `json:"libelle"`
}

// Address is a full postal address inside a district
type Address struct {
	ID         string `json:"id_adresse"`
	Label      string `json:"libelle_complet"`
	DistrictID string `json:"id_quartier"`
	District   string `json:"quartier,omitempty"`
}

// Port is the addresses surface other modules consume
type Port interface {
	ListAddresses(ctx context.Context) ([]Address, error)
	ListDistricts(ctx context.Context) ([]District, error)
}
