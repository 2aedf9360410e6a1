// Package repo provides the meters repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/meters/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the meters repository
type Storage interface {
	List(ctx context.Context, meterType string, limit int) ([]domain.Meter, error)
	Get(ctx context.Context, serial string) (domain.Meter, error)
	Insert(ctx context.Context, m domain.Meter) error
}

const meterCols = `
	c.numero_serie, c.type, c.index_actuel, c.capacite_max,
	COALESCE(c.id_adresse::text, ''), COALESCE(c.id_client::text, ''),
	COALESCE(q.libelle, '')`

const meterJoin = `
	FROM compteurs c
	LEFT JOIN adresses ad ON ad.id_adresse = c.id_adresse
	LEFT JOIN quartiers q ON q.id_quartier = ad.id_quartier`

func scanMeter(r repokit.Row) (domain.Meter, error) {
	var m domain.Meter
	err := r.Scan(&m.Serial, &m.Type, &m.CurrentIndex, &m.MaxCapacity, &m.AddressID, &m.ClientID, &m.District)
	return m, err
}

// List implements Storage
func (s *pg) List(ctx context.Context, meterType string, limit int) ([]domain.Meter, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT" + meterCols + meterJoin + "\nWHERE 1=1\n")
	if meterType != "" {
		sb.WriteString("  AND c.type = " + arg(meterType) + "\n")
	}
	sb.WriteString("ORDER BY c.numero_serie\nLIMIT " + arg(limit))

	out, err := store.Many(ctx, s.q, scanMeter, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list meters")
	}
	return out, nil
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, serial string) (domain.Meter, error) {
	m, err := store.One(ctx, s.q, scanMeter,
		"SELECT"+meterCols+meterJoin+"\nWHERE c.numero_serie = $1", serial)
	if err != nil {
		if perr.CodeOf(err) == perr.ErrorCodeNotFound {
			return domain.Meter{}, perr.NotFoundf("compteur %q inconnu", serial)
		}
		return domain.Meter{}, perr.FromPostgres(err, "get meter")
	}
	return m, nil
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, m domain.Meter) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO compteurs (numero_serie, type, index_actuel, capacite_max, id_adresse, id_client)
		VALUES ($1,$2,$3,$4, NULLIF($5,'')::uuid, NULLIF($6,'')::uuid)`,
		m.Serial, m.Type, m.CurrentIndex, m.MaxCapacity, m.AddressID, m.ClientID,
	)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.DuplicateKeyf("compteur %q existe déjà", m.Serial)
		}
		return perr.FromPostgres(err, "insert meter")
	}
	return nil
}
