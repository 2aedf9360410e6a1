// Package repo provides the agents repository implementation
package repo

import (
	"context"

	"github.com/google/uuid"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/agents/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the agents repository
type Storage interface {
	List(ctx context.Context) ([]domain.Agent, error)
	Get(ctx context.Context, id string) (domain.Agent, error)
	Insert(ctx context.Context, a domain.Agent) error
}

const agentQuery = `
	SELECT a.id_agent::text, a.nom, a.prenom,
		COALESCE(a.id_quartier::text, ''), COALESCE(q.libelle, '')
	FROM agents a
	LEFT JOIN quartiers q ON q.id_quartier = a.id_quartier`

func scanAgent(r repokit.Row) (domain.Agent, error) {
	var a domain.Agent
	err := r.Scan(&a.ID, &a.LastName, &a.FirstName, &a.DistrictID, &a.District)
	return a, err
}

func (s *pg) List(ctx context.Context) ([]domain.Agent, error) {
	out, err := store.Many(ctx, s.q, scanAgent, agentQuery+"\nORDER BY a.nom, a.prenom")
	if err != nil {
		return nil, perr.FromPostgres(err, "list agents")
	}
	return out, nil
}

func (s *pg) Get(ctx context.Context, id string) (domain.Agent, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Agent{}, perr.InvalidArgf("invalid agent id %q", id)
	}
	a, err := store.One(ctx, s.q, scanAgent, agentQuery+"\nWHERE a.id_agent = $1", id)
	if err != nil {
		if perr.CodeOf(err) == perr.ErrorCodeNotFound {
			return domain.Agent{}, perr.NotFoundf("agent %q inconnu", id)
		}
		return domain.Agent{}, perr.FromPostgres(err, "get agent")
	}
	return a, nil
}

func (s *pg) Insert(ctx context.Context, a domain.Agent) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO agents (id_agent, nom, prenom, id_quartier)
		VALUES ($1,$2,$3, NULLIF($4,'')::uuid)`,
		a.ID, a.LastName, a.FirstName, a.DistrictID,
	)
	return perr.FromPostgres(err, "insert agent")
}
