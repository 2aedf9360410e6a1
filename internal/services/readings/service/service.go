// Package service provides the readings service implementation
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"releves/internal/core/consumption"
	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/logger"
	dom "releves/internal/services/readings/domain"
	"releves/internal/services/readings/repo"
)

// Config for the readings service
type Config struct {
	// ListLimit caps GET listings
	ListLimit int
	// NotifyTimeout bounds the fire-and-forget billing call
	NotifyTimeout time.Duration
}

// Service implements domain.WriterPort and domain.QueryPort
type Service struct {
	tx       repokit.TxRunner
	binder   repokit.Binder[repo.Storage]
	notifier dom.NotifierPort
	cfg      Config

	now func() time.Time
}

// New constructs a readings service. notifier may be nil when billing is disabled
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], notifier dom.NotifierPort, cfg Config) *Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 500
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}
	return &Service{tx: tx, binder: binder, notifier: notifier, cfg: cfg, now: time.Now}
}

// Create implements domain.WriterPort
//
// The meter lookup, reading insert and index bump run in one transaction so a
// concurrent submission for the same meter serializes on the row lock. The
// billing notification happens only after commit and never fails the request
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Reading, error) {
	var out dom.Reading

	err := s.tx.Tx(ctx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)

		meter, err := st.MeterForUpdate(ctx, in.MeterSerial)
		if err != nil {
			return err
		}

		res, err := consumption.Compute(meter.CurrentIndex, in.NewIndex, consumption.Options{
			MeterMax: meter.MaxCapacity,
		})
		if err != nil {
			if errors.Is(err, consumption.ErrIndexRegression) || errors.Is(err, consumption.ErrNegativeIndex) {
				return perr.Validationf("%s", err.Error())
			}
			return err
		}

		out = dom.Reading{
			ID:          uuid.NewString(),
			Date:        s.now().UTC(),
			OldIndex:    meter.CurrentIndex,
			NewIndex:    in.NewIndex,
			Consumption: res.Consumption,
			Rollover:    res.Rollover,
			MeterSerial: meter.Serial,
			AgentID:     in.AgentID,
		}
		if err := st.Insert(ctx, out); err != nil {
			return err
		}
		return st.BumpMeterIndex(ctx, meter.Serial, in.NewIndex)
	})
	if err != nil {
		return dom.Reading{}, err
	}

	s.notifyBilling(out)
	return out, nil
}

// notifyBilling pushes the committed reading to billing in the background
// detached from the request context so a finished request does not cancel it
func (s *Service) notifyBilling(r dom.Reading) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.NotifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyReading(ctx, r); err != nil {
			logger.Named("readings").Warn().
				Err(err).
				Str("id_releve", r.ID).
				Str("numero_serie", r.MeterSerial).
				Msg("billing notification failed")
		}
	}()
}

// List implements domain.QueryPort
func (s *Service) List(ctx context.Context, f dom.Filters) ([]dom.Row, error) {
	st := s.binder.Bind(s.tx)
	return st.List(ctx, f, s.cfg.ListLimit)
}
