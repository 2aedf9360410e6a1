// Package repo provides the assistant read-only repository
package repo

import (
	"context"
	"fmt"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/assistant/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// AgentReading is one reading attributed to an agent, the raw material for
// the monthly ranking
type AgentReading struct {
	AgentID     string
	LastName    string
	FirstName   string
	Consumption int64
}

// TypedConsumption is one reading's consumption with its meter type
type TypedConsumption struct {
	MeterType   string
	Consumption int64
}

// Storage defines the assistant repository. Every listing carries a hard cap
// so a chat question can never drag the whole table into memory.
type Storage interface {
	ConsumptionValues(ctx context.Context, start, end time.Time, meterType string, limit int) ([]int64, error)
	AgentReadings(ctx context.Context, start, end time.Time) ([]AgentReading, error)
	MetersByType(ctx context.Context, meterType string, limit int) ([]domain.MeterPreview, error)
	DistrictLabels(ctx context.Context) ([]string, error)
	RecentReadings(ctx context.Context, district string, limit int) ([]domain.ReadingPreview, error)
	TypedConsumptions(ctx context.Context, start, end time.Time) ([]TypedConsumption, error)
}

func (s *pg) ConsumptionValues(ctx context.Context, start, end time.Time, meterType string, limit int) ([]int64, error) {
	sql := `
		SELECT r.consommation
		FROM releves r
		JOIN compteurs c ON c.numero_serie = r.numero_serie
		WHERE r.date_releve >= $1 AND r.date_releve < $2`
	args := []any{start, end}
	if meterType != "" {
		sql += " AND c.type = $3"
		args = append(args, meterType)
	}
	sql += " LIMIT " + limitArg(&args, limit)

	out, err := store.Many(ctx, s.q, func(r repokit.Row) (int64, error) {
		var v int64
		err := r.Scan(&v)
		return v, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant consumption values")
	}
	return out, nil
}

func (s *pg) AgentReadings(ctx context.Context, start, end time.Time) ([]AgentReading, error) {
	out, err := store.Many(ctx, s.q, func(r repokit.Row) (AgentReading, error) {
		var ar AgentReading
		err := r.Scan(&ar.AgentID, &ar.LastName, &ar.FirstName, &ar.Consumption)
		return ar, err
	}, `
		SELECT a.id_agent::text, a.nom, a.prenom, r.consommation
		FROM releves r
		JOIN agents a ON a.id_agent = r.id_agent
		WHERE r.date_releve >= $1 AND r.date_releve < $2`, start, end)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant agent readings")
	}
	return out, nil
}

func (s *pg) MetersByType(ctx context.Context, meterType string, limit int) ([]domain.MeterPreview, error) {
	sql := `
		SELECT c.numero_serie, c.type, c.index_actuel, COALESCE(q.libelle, '')
		FROM compteurs c
		LEFT JOIN adresses ad ON ad.id_adresse = c.id_adresse
		LEFT JOIN quartiers q ON q.id_quartier = ad.id_quartier`
	var args []any
	if meterType != "" {
		args = append(args, meterType)
		sql += " WHERE c.type = $1"
	}
	sql += " ORDER BY c.numero_serie LIMIT " + limitArg(&args, limit)

	out, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.MeterPreview, error) {
		var m domain.MeterPreview
		err := r.Scan(&m.Serial, &m.Type, &m.CurrentIndex, &m.District)
		return m, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant meters")
	}
	return out, nil
}

func (s *pg) DistrictLabels(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, s.q, func(r repokit.Row) (string, error) {
		var l string
		err := r.Scan(&l)
		return l, err
	}, `SELECT libelle FROM quartiers ORDER BY libelle`)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant districts")
	}
	return out, nil
}

func (s *pg) RecentReadings(ctx context.Context, district string, limit int) ([]domain.ReadingPreview, error) {
	sql := `
		SELECT r.id_releve::text, r.date_releve, r.consommation,
			COALESCE(c.type, ''), COALESCE(q.libelle, ''),
			COALESCE(a.prenom || ' ' || a.nom, '')
		FROM releves r
		LEFT JOIN compteurs c ON c.numero_serie = r.numero_serie
		LEFT JOIN adresses ad ON ad.id_adresse = c.id_adresse
		LEFT JOIN quartiers q ON q.id_quartier = ad.id_quartier
		LEFT JOIN agents a ON a.id_agent = r.id_agent`
	var args []any
	if district != "" {
		args = append(args, district)
		sql += " WHERE q.libelle = $1"
	}
	sql += " ORDER BY r.date_releve DESC LIMIT " + limitArg(&args, limit)

	out, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.ReadingPreview, error) {
		var rp domain.ReadingPreview
		err := r.Scan(&rp.ID, &rp.Date, &rp.Consumption, &rp.MeterType, &rp.District, &rp.AgentName)
		return rp, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant readings")
	}
	return out, nil
}

func (s *pg) TypedConsumptions(ctx context.Context, start, end time.Time) ([]TypedConsumption, error) {
	out, err := store.Many(ctx, s.q, func(r repokit.Row) (TypedConsumption, error) {
		var tc TypedConsumption
		err := r.Scan(&tc.MeterType, &tc.Consumption)
		return tc, err
	}, `
		SELECT c.type, r.consommation
		FROM releves r
		JOIN compteurs c ON c.numero_serie = r.numero_serie
		WHERE r.date_releve >= $1 AND r.date_releve < $2`, start, end)
	if err != nil {
		return nil, perr.FromPostgres(err, "assistant typed consumptions")
	}
	return out, nil
}

func limitArg(args *[]any, limit int) string {
	*args = append(*args, limit)
	return fmt.Sprintf("$%d", len(*args))
}
