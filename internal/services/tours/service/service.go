// Package service builds the mobile walk list and relays reading submissions
package service

import (
	"context"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	readingsdom "releves/internal/services/readings/domain"
	dom "releves/internal/services/tours/domain"
	"releves/internal/services/tours/repo"
)

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	writer readingsdom.WriterPort

	now func() time.Time
}

// New constructs a tours service. writer is the readings submission port;
// mobile submissions go through it so both entry points share one flow.
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], writer readingsdom.WriterPort) *Service {
	return &Service{tx: tx, binder: binder, writer: writer, now: time.Now}
}

// Tour implements domain.Port. The walk list covers the agent's district:
// every meter there without a reading since the first of the current month.
func (s *Service) Tour(ctx context.Context, agentID string) (dom.Tour, error) {
	st := s.binder.Bind(s.tx)

	agent, err := st.Agent(ctx, agentID)
	if err != nil {
		return dom.Tour{}, err
	}
	if agent.DistrictID == "" {
		return dom.Tour{}, perr.NotFoundf("agent %q non affecté à un quartier", agentID)
	}

	nowUTC := s.now().UTC()
	monthStart := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC)

	stops, err := st.PendingMeters(ctx, agent.DistrictID, monthStart)
	if err != nil {
		return dom.Tour{}, err
	}
	if stops == nil {
		stops = []dom.Stop{}
	}
	return dom.Tour{Agent: agent.Info, Meters: stops}, nil
}

// SubmitReading implements domain.Port
func (s *Service) SubmitReading(ctx context.Context, in readingsdom.CreateInput) (readingsdom.Reading, error) {
	return s.writer.Create(ctx, in)
}

var _ dom.Port = (*Service)(nil)
