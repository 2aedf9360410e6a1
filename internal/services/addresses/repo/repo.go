// Package repo provides the addresses repository implementation
package repo

import (
	"context"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/addresses/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the addresses repository
type Storage interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	ListDistricts(ctx context.Context) ([]domain.District, error)
}

func (s *pg) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	out, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.Address, error) {
		var a domain.Address
		err := r.Scan(&a.ID, &a.Label, &a.DistrictID, &a.District)
		return a, err
	}, `
		SELECT ad.id_adresse::text, ad.libelle_complet, ad.id_quartier::text, q.libelle
		FROM adresses ad
		JOIN quartiers q ON q.id_quartier = ad.id_quartier
		ORDER BY q.libelle, ad.libelle_complet`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list addresses")
	}
	return out, nil
}

func (s *pg) ListDistricts(ctx context.Context) ([]domain.District, error) {
	out, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.District, error) {
		var d domain.District
		err := r.Scan(&d.ID, &d.Label)
		return d, err
	}, `SELECT id_quartier::text, libelle FROM quartiers ORDER BY libelle`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list districts")
	}
	return out, nil
}
