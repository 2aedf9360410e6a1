// Package service assembles the back-office dashboard aggregates
package service

import (
	"context"
	"time"

	"releves/internal/modkit/repokit"
	dom "releves/internal/services/dashboard/domain"
	"releves/internal/services/dashboard/repo"
)

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]

	now func() time.Time
}

// New constructs a dashboard service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{tx: tx, binder: binder, now: time.Now}
}

// Summary implements domain.Port. Month figures cover readings dated from
// the first of the current month.
func (s *Service) Summary(ctx context.Context) (dom.Summary, error) {
	st := s.binder.Bind(s.tx)

	meters, err := st.CountMeters(ctx)
	if err != nil {
		return dom.Summary{}, err
	}
	agents, err := st.CountAgents(ctx)
	if err != nil {
		return dom.Summary{}, err
	}
	clients, err := st.CountClients(ctx)
	if err != nil {
		return dom.Summary{}, err
	}

	nowUTC := s.now().UTC()
	monthStart := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := st.MonthFigures(ctx, monthStart)
	if err != nil {
		return dom.Summary{}, err
	}

	return dom.Summary{
		Meters:               meters,
		Agents:               agents,
		Clients:              clients,
		ReadingsThisMonth:    month.Readings,
		ConsumptionThisMonth: month.Consumption,
	}, nil
}

var _ dom.Port = (*Service)(nil)
