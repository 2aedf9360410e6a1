// Package repo provides the readings repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/services/readings/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the readings repository
type Storage interface {
	// MeterForUpdate loads the meter row with a row lock so the submission
	// flow reads and bumps the current index atomically
	MeterForUpdate(ctx context.Context, serial string) (domain.MeterState, error)
	Insert(ctx context.Context, r domain.Reading) error
	BumpMeterIndex(ctx context.Context, serial string, newIndex int64) error
	List(ctx context.Context, f domain.Filters, limit int) ([]domain.Row, error)
}

// MeterForUpdate implements Storage
func (s *pg) MeterForUpdate(ctx context.Context, serial string) (domain.MeterState, error) {
	var m domain.MeterState
	err := s.q.QueryRow(ctx, `
		SELECT numero_serie, type, index_actuel, capacite_max
		FROM compteurs
		WHERE numero_serie = $1
		FOR UPDATE`, serial,
	).Scan(&m.Serial, &m.Type, &m.CurrentIndex, &m.MaxCapacity)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.MeterState{}, perr.NotFoundf("compteur %q inconnu", serial)
		}
		return domain.MeterState{}, perr.FromPostgres(err, "load meter")
	}
	return m, nil
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, r domain.Reading) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO releves
			(id_releve, date_releve, ancien_index, nouvel_index, consommation, rollover, numero_serie, id_agent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.Date, r.OldIndex, r.NewIndex, r.Consumption, r.Rollover, r.MeterSerial, r.AgentID,
	)
	if err != nil {
		return perr.FromPostgres(err, "insert reading")
	}
	return nil
}

// BumpMeterIndex implements Storage
func (s *pg) BumpMeterIndex(ctx context.Context, serial string, newIndex int64) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE compteurs SET index_actuel = $1 WHERE numero_serie = $2`,
		newIndex, serial,
	)
	if err != nil {
		return perr.FromPostgres(err, "bump meter index")
	}
	if tag.RowsAffected() != 1 {
		return perr.NotFoundf("compteur %q inconnu", serial)
	}
	return nil
}

// List implements Storage
func (s *pg) List(ctx context.Context, f domain.Filters, limit int) ([]domain.Row, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT
			r.id_releve::text, r.date_releve, r.ancien_index, r.nouvel_index,
			r.consommation, r.rollover, r.numero_serie, r.id_agent::text,
			c.type,
			COALESCE(q.libelle, ''),
			COALESCE(a.prenom || ' ' || a.nom, '')
		FROM releves r
		JOIN compteurs c ON c.numero_serie = r.numero_serie
		LEFT JOIN adresses ad ON ad.id_adresse = c.id_adresse
		LEFT JOIN quartiers q ON q.id_quartier = ad.id_quartier
		LEFT JOIN agents a ON a.id_agent = r.id_agent
		WHERE 1=1
	`)
	if f.From != nil {
		sb.WriteString("  AND r.date_releve >= " + arg(*f.From) + "\n")
	}
	if f.To != nil {
		sb.WriteString("  AND r.date_releve < " + arg(*f.To) + "\n")
	}
	if f.District != "" {
		sb.WriteString("  AND q.libelle = " + arg(f.District) + "\n")
	}
	sb.WriteString("ORDER BY r.date_releve DESC\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list readings")
	}
	defer rows.Close()

	out := make([]domain.Row, 0, limit)
	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(
			&r.ID, &r.Date, &r.OldIndex, &r.NewIndex,
			&r.Consumption, &r.Rollover, &r.MeterSerial, &r.AgentID,
			&r.MeterType, &r.District, &r.AgentName,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan reading")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
