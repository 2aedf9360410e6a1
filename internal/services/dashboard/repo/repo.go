// Package repo provides the dashboard repository implementation
package repo

import (
	"context"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// MonthFigures are the current month's collection aggregates
type MonthFigures struct {
	Readings    int64
	Consumption int64
}

// Storage defines the dashboard repository
type Storage interface {
	CountMeters(ctx context.Context) (int64, error)
	CountAgents(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	MonthFigures(ctx context.Context, since time.Time) (MonthFigures, error)
}

func (s *pg) CountMeters(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM compteurs`)
}

func (s *pg) CountAgents(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM agents`)
}

func (s *pg) CountClients(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM clients`)
}

func (s *pg) count(ctx context.Context, sql string) (int64, error) {
	n, err := store.Scalar[int64](ctx, s.q, sql)
	if err != nil {
		return 0, perr.FromPostgres(err, "dashboard count")
	}
	return n, nil
}

func (s *pg) MonthFigures(ctx context.Context, since time.Time) (MonthFigures, error) {
	f, err := store.One(ctx, s.q, func(r repokit.Row) (MonthFigures, error) {
		var out MonthFigures
		err := r.Scan(&out.Readings, &out.Consumption)
		return out, err
	}, `
		SELECT COUNT(*), COALESCE(SUM(consommation), 0)
		FROM releves
		WHERE date_releve >= $1`, since)
	if err != nil {
		return MonthFigures{}, perr.FromPostgres(err, "dashboard month figures")
	}
	return f, nil
}
