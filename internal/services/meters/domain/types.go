// Package domain holds meter types
package domain

// Meter types stored as text enums
const (
	TypeWater       = "EAU"
	TypeElectricity = "ELECTRICITE"
)

// Meter is one utility meter
type Meter struct {
	Serial       string `json:"numero_serie"`
	Type         string `json:"type"`
	CurrentIndex int64  `json:"index_actuel"`
	MaxCapacity  int64  `json:"capacite_max"`
	AddressID    string `json:"id_adresse,omitempty"`
	ClientID     string `json:"id_client,omitempty"`
	District     string `json:"quartier,omitempty"`
}

// CreateInput registers a new meter
type CreateInput struct {
	Serial       string `json:"numero_serie" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=EAU ELECTRICITE"`
	CurrentIndex int64  `json:"index_actuel" validate:"min=0"`
	MaxCapacity  int64  `json:"capacite_max" validate:"omitempty,min=9"`
	AddressID    string `json:"id_adresse" validate:"omitempty,uuid4"`
	ClientID     string `json:"id_client" validate:"omitempty,uuid4"`
}
