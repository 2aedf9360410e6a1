// Package domain holds reading types shared by repo, service and transport
package domain

import "time"

// Reading is one persisted meter reading
type Reading struct {
	ID          string    `json:"id_releve"`
	Date        time.Time `json:"date_releve"`
	OldIndex    int64     `json:"ancien_index"`
	NewIndex    int64     `json:"nouvel_index"`
	Consumption int64     `json:"consommation"`
	Rollover    bool      `json:"rollover"`
	MeterSerial string    `json:"numero_serie"`
	AgentID     string    `json:"id_agent"`
}

// CreateInput is the reading submission payload
type CreateInput struct {
	MeterSerial string `json:"numero_serie" validate:"required"`
	NewIndex    int64  `json:"nouvel_index" validate:"min=0"`
	AgentID     string `json:"id_agent" validate:"required,uuid4"`
}

// Filters narrows the reading listing
type Filters struct {
	From     *time.Time
	To       *time.Time
	District string
}

// Row is a reading joined to its meter, district and agent for listings
type Row struct {
	Reading
	MeterType string `json:"type"`
	District  string `json:"quartier,omitempty"`
	AgentName string `json:"agent,omitempty"`
}

// MeterState is the slice of the meter the submission flow needs
type MeterState struct {
	Serial       string
	Type         string
	CurrentIndex int64
	MaxCapacity  int64
}
