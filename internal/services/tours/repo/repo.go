// Package repo provides the tours repository implementation
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/store"
	"releves/internal/services/tours/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Agent carries the district assignment the tour is built from.
// DistrictID is empty for unassigned agents.
type Agent struct {
	Info       domain.AgentInfo
	DistrictID string
}

// Storage defines the tours repository
type Storage interface {
	Agent(ctx context.Context, agentID string) (Agent, error)
	PendingMeters(ctx context.Context, districtID string, since time.Time) ([]domain.Stop, error)
}

func (s *pg) Agent(ctx context.Context, agentID string) (Agent, error) {
	if _, err := uuid.Parse(agentID); err != nil {
		return Agent{}, perr.InvalidArgf("invalid agent id %q", agentID)
	}
	a, err := store.One(ctx, s.q, func(r repokit.Row) (Agent, error) {
		var out Agent
		err := r.Scan(&out.Info.ID, &out.Info.LastName, &out.Info.FirstName,
			&out.DistrictID, &out.Info.District)
		return out, err
	}, `
		SELECT a.id_agent::text, a.nom, a.prenom,
			COALESCE(a.id_quartier::text, ''), COALESCE(q.libelle, '')
		FROM agents a
		LEFT JOIN quartiers q ON q.id_quartier = a.id_quartier
		WHERE a.id_agent = $1`, agentID)
	if err != nil {
		if perr.CodeOf(err) == perr.ErrorCodeNotFound {
			return Agent{}, perr.NotFoundf("agent %q inconnu", agentID)
		}
		return Agent{}, perr.FromPostgres(err, "load agent")
	}
	return a, nil
}

// PendingMeters returns the district's meters with no reading since the
// given instant, ordered for a stable walk
func (s *pg) PendingMeters(ctx context.Context, districtID string, since time.Time) ([]domain.Stop, error) {
	stops, err := store.Many(ctx, s.q, scanStop, `
		SELECT c.numero_serie, c.type, c.index_actuel,
			ad.id_adresse::text, ad.libelle_complet, q.libelle,
			COALESCE(cl.id_client::text, ''), COALESCE(cl.nom_complet, '')
		FROM compteurs c
		JOIN adresses ad ON ad.id_adresse = c.id_adresse
		JOIN quartiers q ON q.id_quartier = ad.id_quartier
		LEFT JOIN clients cl ON cl.id_client = c.id_client
		WHERE ad.id_quartier = $1
			AND NOT EXISTS (
				SELECT 1 FROM releves r
				WHERE r.numero_serie = c.numero_serie AND r.date_releve >= $2)
		ORDER BY ad.libelle_complet, c.numero_serie`, districtID, since)
	if err != nil {
		return nil, perr.FromPostgres(err, "list pending meters")
	}
	return stops, nil
}

func scanStop(r repokit.Row) (domain.Stop, error) {
	var (
		s        domain.Stop
		clientID string
		fullName string
	)
	err := r.Scan(&s.MeterSerial, &s.MeterType, &s.CurrentIndex,
		&s.Address.ID, &s.Address.Label, &s.Address.District,
		&clientID, &fullName)
	if err != nil {
		return domain.Stop{}, err
	}
	if clientID != "" {
		s.Client = &domain.ClientInfo{ID: clientID, FullName: fullName}
	}
	return s, nil
}
