// Package service provides the clients service implementation
package service

import (
	"context"

	"github.com/google/uuid"

	"releves/internal/modkit/repokit"
	dom "releves/internal/services/clients/domain"
	"releves/internal/services/clients/repo"
)

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs a clients service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{tx: tx, binder: binder}
}

// List implements domain.Port
func (s *Service) List(ctx context.Context) ([]dom.Client, error) {
	return s.binder.Bind(s.tx).List(ctx)
}

// Create implements domain.Port
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Client, error) {
	c := dom.Client{
		ID:       uuid.NewString(),
		FullName: in.FullName,
		Email:    in.Email,
	}
	if err := s.binder.Bind(s.tx).Insert(ctx, c); err != nil {
		return dom.Client{}, err
	}
	return c, nil
}

var _ dom.Port = (*Service)(nil)
