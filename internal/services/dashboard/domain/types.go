// Package domain holds the dashboard aggregate types
package domain

import "context"

// Summary is the back-office overview: fleet counts plus the current
// month's collection figures
type Summary struct {
	Meters               int64 `json:"nb_compteurs"`
	Agents               int64 `json:"nb_agents"`
	Clients              int64 `json:"nb_clients"`
	ReadingsThisMonth    int64 `json:"nb_releves_mois"`
	ConsumptionThisMonth int64 `json:"consommation_mois"`
}

// Port is the dashboard read surface
type Port interface {
	Summary(ctx context.Context) (Summary, error)
}
