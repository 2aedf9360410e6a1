// Package repo provides the clients repository implementation
package repo

import (
	"context"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/clients/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the clients repository
type Storage interface {
	List(ctx context.Context) ([]domain.Client, error)
	Insert(ctx context.Context, c domain.Client) error
}

func scanClient(r repokit.Row) (domain.Client, error) {
	var c domain.Client
	err := r.Scan(&c.ID, &c.FullName, &c.Email)
	return c, err
}

func (s *pg) List(ctx context.Context) ([]domain.Client, error) {
	out, err := store.Many(ctx, s.q, scanClient, `
		SELECT id_client::text, nom_complet, COALESCE(email, '')
		FROM clients
		ORDER BY nom_complet`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list clients")
	}
	return out, nil
}

func (s *pg) Insert(ctx context.Context, c domain.Client) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO clients (id_client, nom_complet, email)
		VALUES ($1,$2, NULLIF($3,''))`,
		c.ID, c.FullName, c.Email,
	)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.AttachFieldFromPg(perr.Wrap(err, perr.ErrorCodeDuplicateKey, "client déjà enregistré"))
		}
		return perr.FromPostgres(err, "insert client")
	}
	return nil
}
