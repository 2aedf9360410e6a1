// Package service provides the addresses service implementation
package service

import (
	"context"

	"releves/internal/modkit/repokit"
	dom "releves/internal/services/addresses/domain"
	"releves/internal/services/addresses/repo"
)

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs an addresses service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{tx: tx, binder: binder}
}

// ListAddresses implements domain.Port
func (s *Service) ListAddresses(ctx context.Context) ([]dom.Address, error) {
	return s.binder.Bind(s.tx).ListAddresses(ctx)
}

// ListDistricts implements domain.Port
func (s *Service) ListDistricts(ctx context.Context) ([]dom.District, error) {
	return s.binder.Bind(s.tx).ListDistricts(ctx)
}

var _ dom.Port = (*Service)(nil)
