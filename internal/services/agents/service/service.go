// Package service provides the agents service implementation
package service

import (
	"context"

	"github.com/google/uuid"

	"releves/internal/modkit/repokit"
	dom "releves/internal/services/agents/domain"
	"releves/internal/services/agents/repo"
)

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs an agents service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{tx: tx, binder: binder}
}

// List implements domain.Port
func (s *Service) List(ctx context.Context) ([]dom.Agent, error) {
	return s.binder.Bind(s.tx).List(ctx)
}

// Get implements domain.Port
func (s *Service) Get(ctx context.Context, id string) (dom.Agent, error) {
	return s.binder.Bind(s.tx).Get(ctx, id)
}

// Create implements domain.Port
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Agent, error) {
	a := dom.Agent{
		ID:         uuid.NewString(),
		LastName:   in.LastName,
		FirstName:  in.FirstName,
		DistrictID: in.DistrictID,
	}
	if err := s.binder.Bind(s.tx).Insert(ctx, a); err != nil {
		return dom.Agent{}, err
	}
	return a, nil
}

var _ dom.Port = (*Service)(nil)
