// Package service provides the meters service implementation
package service

import (
	"context"

	"releves/internal/core/consumption"
	"releves/internal/modkit/repokit"
	dom "releves/internal/services/meters/domain"
	"releves/internal/services/meters/repo"
)

// Config for the meters service
type Config struct {
	ListLimit int
}

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	cfg    Config
}

// New constructs a meters service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 500
	}
	return &Service{tx: tx, binder: binder, cfg: cfg}
}

// List implements domain.Port
func (s *Service) List(ctx context.Context, meterType string) ([]dom.Meter, error) {
	return s.binder.Bind(s.tx).List(ctx, meterType, s.cfg.ListLimit)
}

// Get implements domain.Port
func (s *Service) Get(ctx context.Context, serial string) (dom.Meter, error) {
	return s.binder.Bind(s.tx).Get(ctx, serial)
}

// Create implements domain.Port
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Meter, error) {
	m := dom.Meter{
		Serial:       in.Serial,
		Type:         in.Type,
		CurrentIndex: in.CurrentIndex,
		MaxCapacity:  in.MaxCapacity,
		AddressID:    in.AddressID,
		ClientID:     in.ClientID,
	}
	if m.MaxCapacity <= 0 {
		m.MaxCapacity = consumption.DefaultMeterMax
	}
	if err := s.binder.Bind(s.tx).Insert(ctx, m); err != nil {
		return dom.Meter{}, err
	}
	return m, nil
}

var _ dom.Port = (*Service)(nil)
