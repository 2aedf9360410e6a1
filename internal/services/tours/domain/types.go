// Package domain holds the mobile tour types
package domain

import (
	"context"

	readingsdom "releves/internal/services/readings/domain"
)

// AgentInfo identifies the agent a tour belongs to
type AgentInfo struct {
	ID        string `json:"id_agent"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	District  string `json:"quartier"`
}

// AddressInfo locates a stop on the tour
type AddressInfo struct {
	ID       string `json:"id_adresse"`
	Label    string `json:"libelle_complet"`
	District string `json:"quartier"`
}

// ClientInfo is the subscriber attached to a meter, when one exists
type ClientInfo struct {
	ID       string `json:"id_client"`
	FullName string `json:"nom_complet"`
}

// Stop is a meter still waiting for its reading this month
type Stop struct {
	MeterSerial  string      `json:"numero_serie"`
	MeterType    string      `json:"type"`
	CurrentIndex int64       `json:"index_actuel"`
	Address      AddressInfo `json:"adresse"`
	Client       *ClientInfo `json:"client"`
}

// Tour is the walk list the mobile app renders for an agent
type Tour struct {
	Agent  AgentInfo `json:"agent"`
	Meters []Stop    `json:"compteurs"`
}

// Port is the mobile surface: the walk list plus reading submission,
// which delegates to the readings service
type Port interface {
	Tour(ctx context.Context, agentID string) (Tour, error)
	SubmitReading(ctx context.Context, in readingsdom.CreateInput) (readingsdom.Reading, error)
}
