// Package service answers natural language questions about the meter fleet.
//
// Processing never fails outward: repository errors are logged and folded
// into a success=false response so the chat client always gets an answer.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"releves/internal/core/nlquery"
	"releves/internal/modkit/repokit"
	"releves/internal/platform/logger"
	dom "releves/internal/services/assistant/domain"
	"releves/internal/services/assistant/repo"
)

// Listing caps per intent, sized so an answer stays chat-friendly
const (
	consumptionScanCap = 1000
	meterScanCap       = 500
	meterPreviewCap    = 50
	readingScanCap     = 100
	readingPreviewCap  = 20
)

var unrecognizedSuggestions = []string{
	"Consommation eau en janvier",
	"Top 5 agents ce mois",
	"Liste des compteurs d'électricité",
	"Relevés du quartier X",
	"Statistiques de consommation",
}

// Service implements domain.Port
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]

	now func() time.Time
}

// New constructs an assistant service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{tx: tx, binder: binder, now: time.Now}
}

// Process implements domain.Port
func (s *Service) Process(ctx context.Context, raw string) dom.QueryResponse {
	q := nlquery.Normalize(raw)

	switch nlquery.Classify(raw) {
	case nlquery.IntentConsumption:
		return s.consumption(ctx, q)
	case nlquery.IntentAgentRanking:
		return s.agents(ctx, q)
	case nlquery.IntentMeterLookup:
		return s.meters(ctx, q)
	case nlquery.IntentReadingLookup:
		return s.readings(ctx, q)
	case nlquery.IntentStatistics:
		return s.statistics(ctx, q)
	default:
		return dom.QueryResponse{
			Success: false,
			Intent:  string(nlquery.IntentUnrecognized),
			Message: `Je n'ai pas compris votre requête. Essayez des questions comme: "Consommation eau janvier", "Top agents", "Compteurs eau", etc.`,
			Suggestions: append([]string(nil), unrecognizedSuggestions...),
		}
	}
}

func (s *Service) consumption(ctx context.Context, q string) dom.QueryResponse {
	meterType := nlquery.MeterTypeOf(q)
	year, month := nlquery.CurrentMonth(s.now())
	if m, ok := nlquery.MonthOf(q); ok {
		month = m
	}
	start, end := nlquery.MonthRange(year, month)

	values, err := s.binder.Bind(s.tx).ConsumptionValues(ctx, start, end, meterType, consumptionScanCap)
	if err != nil {
		return s.fail(ctx, nlquery.IntentConsumption, err,
			"Erreur lors du traitement de la requête de consommation")
	}

	var total int64
	for _, v := range values {
		total += v
	}
	n := len(values)
	var avg int64
	if n > 0 {
		avg = int64(float64(total)/float64(n) + 0.5)
	}

	label := "totale"
	switch meterType {
	case nlquery.MeterWater:
		label = "d'eau"
	case nlquery.MeterElectricity:
		label = "d'électricité"
	}
	typeField := meterType
	if typeField == "" {
		typeField = "TOUS"
	}

	return dom.QueryResponse{
		Success: true,
		Intent:  string(nlquery.IntentConsumption),
		Query:   q,
		Data: dom.ConsumptionData{
			Period:            dom.Period{Year: year, Month: month},
			MeterType:         typeField,
			Total:             total,
			Readings:          n,
			AveragePerReading: avg,
		},
		Message: fmt.Sprintf("Consommation %s en %s/%d: %d unités (%d relevés)",
			label, nlquery.MonthName(month), year, total, n),
	}
}

func (s *Service) agents(ctx context.Context, q string) dom.QueryResponse {
	limit := nlquery.TopN(q)
	year, month := nlquery.CurrentMonth(s.now())
	if m, ok := nlquery.MonthOf(q); ok {
		month = m
	}
	start, end := nlquery.MonthRange(year, month)

	rows, err := s.binder.Bind(s.tx).AgentReadings(ctx, start, end)
	if err != nil {
		return s.fail(ctx, nlquery.IntentAgentRanking, err,
			"Erreur lors du traitement de la requête sur les agents")
	}

	byAgent := map[string]*dom.AgentStanding{}
	for _, r := range rows {
		st, ok := byAgent[r.AgentID]
		if !ok {
			st = &dom.AgentStanding{AgentID: r.AgentID, LastName: r.LastName, FirstName: r.FirstName}
			byAgent[r.AgentID] = st
		}
		st.Readings++
		st.Total += r.Consumption
	}

	ranking := make([]dom.AgentStanding, 0, len(byAgent))
	for _, st := range byAgent {
		ranking = append(ranking, *st)
	}
	// readings desc, then consumption desc, then id for a stable order
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Readings != ranking[j].Readings {
			return ranking[i].Readings > ranking[j].Readings
		}
		if ranking[i].Total != ranking[j].Total {
			return ranking[i].Total > ranking[j].Total
		}
		return ranking[i].AgentID < ranking[j].AgentID
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	lines := make([]string, 0, len(ranking))
	for _, a := range ranking {
		lines = append(lines, fmt.Sprintf("%s %s (%d relevés)", a.FirstName, a.LastName, a.Readings))
	}

	return dom.QueryResponse{
		Success: true,
		Intent:  string(nlquery.IntentAgentRanking),
		Query:   q,
		Data: dom.AgentsData{
			Period:    dom.Period{Year: year, Month: month},
			TopAgents: ranking,
		},
		Message: fmt.Sprintf("Top %d agents en %d/%d: %s",
			limit, month, year, strings.Join(lines, ", ")),
	}
}

func (s *Service) meters(ctx context.Context, q string) dom.QueryResponse {
	meterType := nlquery.MeterTypeOf(q)

	meters, err := s.binder.Bind(s.tx).MetersByType(ctx, meterType, meterScanCap)
	if err != nil {
		return s.fail(ctx, nlquery.IntentMeterLookup, err,
			"Erreur lors du traitement de la requête sur les compteurs")
	}

	preview := meters
	if len(preview) > meterPreviewCap {
		preview = preview[:meterPreviewCap]
	}

	typeField := meterType
	if typeField == "" {
		typeField = "TOUS"
	}

	msg := fmt.Sprintf("Trouvé %d compteur%s", len(meters), plural(len(meters)))
	switch meterType {
	case nlquery.MeterWater:
		msg += " d'eau"
	case nlquery.MeterElectricity:
		msg += " d'électricité"
	}

	return dom.QueryResponse{
		Success: true,
		Intent:  string(nlquery.IntentMeterLookup),
		Query:   q,
		Data: dom.MetersData{
			MeterType: typeField,
			Count:     len(meters),
			Meters:    preview,
		},
		Message: msg,
	}
}

func (s *Service) readings(ctx context.Context, q string) dom.QueryResponse {
	st := s.binder.Bind(s.tx)

	labels, err := st.DistrictLabels(ctx)
	if err != nil {
		return s.fail(ctx, nlquery.IntentReadingLookup, err,
			"Erreur lors du traitement de la requête sur les relevés")
	}
	var district string
	for _, l := range labels {
		if strings.Contains(q, nlquery.Normalize(l)) {
			district = l
			break
		}
	}

	rows, err := st.RecentReadings(ctx, district, readingScanCap)
	if err != nil {
		return s.fail(ctx, nlquery.IntentReadingLookup, err,
			"Erreur lors du traitement de la requête sur les relevés")
	}

	preview := rows
	if len(preview) > readingPreviewCap {
		preview = preview[:readingPreviewCap]
	}

	districtField := district
	if districtField == "" {
		districtField = "TOUS"
	}

	msg := fmt.Sprintf("Trouvé %d relevé%s", len(rows), plural(len(rows)))
	if district != "" {
		msg += " dans le quartier " + district
	}

	return dom.QueryResponse{
		Success: true,
		Intent:  string(nlquery.IntentReadingLookup),
		Query:   q,
		Data: dom.ReadingsData{
			District: districtField,
			Count:    len(rows),
			Readings: preview,
		},
		Message: msg,
	}
}

func (s *Service) statistics(ctx context.Context, q string) dom.QueryResponse {
	year, month := nlquery.CurrentMonth(s.now())
	start, end := nlquery.MonthRange(year, month)

	rows, err := s.binder.Bind(s.tx).TypedConsumptions(ctx, start, end)
	if err != nil {
		return s.fail(ctx, nlquery.IntentStatistics, err,
			"Erreur lors du traitement de la requête de statistiques")
	}

	byType := map[string]int64{
		nlquery.MeterWater:       0,
		nlquery.MeterElectricity: 0,
	}
	var total int64
	for _, r := range rows {
		total += r.Consumption
		if _, ok := byType[r.MeterType]; ok {
			byType[r.MeterType] += r.Consumption
		}
	}
	n := len(rows)
	var avg int64
	if n > 0 {
		avg = int64(float64(total)/float64(n) + 0.5)
	}

	return dom.QueryResponse{
		Success: true,
		Intent:  string(nlquery.IntentStatistics),
		Query:   q,
		Data: dom.StatisticsData{
			Period:            dom.Period{Year: year, Month: month},
			Total:             total,
			Readings:          n,
			AveragePerReading: avg,
			ByType:            byType,
		},
		Message: fmt.Sprintf("Statistiques du mois: %d unités consommées (%d relevés), moyenne: %d unités/relevé",
			total, n, avg),
	}
}

// fail logs the repository error and downgrades it to a chat answer
func (s *Service) fail(ctx context.Context, intent nlquery.Intent, err error, msg string) dom.QueryResponse {
	logger.C(ctx).Warn().
		Str("component", "assistant").
		Str("intent", string(intent)).
		Err(err).
		Msg("query handling degraded")
	return dom.QueryResponse{
		Success: false,
		Intent:  string(intent),
		Message: msg,
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

var _ dom.Port = (*Service)(nil)
