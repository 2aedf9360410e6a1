// Package domain holds the assistant query types.
//
// The assistant always answers with a QueryResponse, never an HTTP error:
// failures downgrade to success=false with a French message so the chat
// surface can render them inline.
package domain

import (
	"context"
	"time"
)

// QueryInput is the natural language question payload
type QueryInput struct {
	Query string `json:"query"`
}

// QueryResponse is the assistant's envelope. Data carries an intent-specific
// payload; Suggestions is only set on unrecognized queries.
type QueryResponse struct {
	Success     bool     `json:"success"`
	Intent      string   `json:"intent"`
	Query       string   `json:"query,omitempty"`
	Message     string   `json:"message"`
	Data        any      `json:"data,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Period is the year/month a figure covers
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ConsumptionData answers "consommation eau janvier" style questions
type ConsumptionData struct {
	Period            Period `json:"periode"`
	MeterType         string `json:"type"`
	Total             int64  `json:"totalConsommation"`
	Readings          int    `json:"nbReleves"`
	AveragePerReading int64  `json:"moyenneConsommation"`
}

// AgentStanding is one agent's line in the monthly ranking
type AgentStanding struct {
	AgentID   string `json:"id_agent"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Readings  int    `json:"nbReleves"`
	Total     int64  `json:"totalConsommation"`
}

// AgentsData answers "top N agents" style questions
type AgentsData struct {
	Period    Period          `json:"periode"`
	TopAgents []AgentStanding `json:"topAgents"`
}

// MeterPreview is the short meter form shown in assistant answers
type MeterPreview struct {
	Serial       string `json:"numero_serie"`
	Type         string `json:"type"`
	CurrentIndex int64  `json:"index_actuel"`
	District     string `json:"quartier,omitempty"`
}

// MetersData answers "compteurs eau" style questions
type MetersData struct {
	MeterType string         `json:"type"`
	Count     int            `json:"nbCompteurs"`
	Meters    []MeterPreview `json:"compteurs"`
}

// ReadingPreview is the short reading form shown in assistant answers
type ReadingPreview struct {
	ID          string    `json:"id_releve"`
	Date        time.Time `json:"date_releve"`
	Consumption int64     `json:"consommation"`
	MeterType   string    `json:"type"`
	District    string    `json:"quartier,omitempty"`
	AgentName   string    `json:"agent,omitempty"`
}

// ReadingsData answers "relevés du quartier X" style questions
type ReadingsData struct {
	District string           `json:"quartier"`
	Count    int              `json:"nbReleves"`
	Readings []ReadingPreview `json:"releves"`
}

// StatisticsData answers "statistiques" style questions for the current month
type StatisticsData struct {
	Period            Period           `json:"periode"`
	Total             int64            `json:"totalConsommation"`
	Readings          int              `json:"nbReleves"`
	AveragePerReading int64            `json:"moyenneConsommation"`
	ByType            map[string]int64 `json:"parType"`
}

// Port is the assistant surface
type Port interface {
	Process(ctx context.Context, query string) QueryResponse
}
