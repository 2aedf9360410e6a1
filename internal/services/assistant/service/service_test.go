package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	dom "releves/internal/services/assistant/domain"
	"releves/internal/services/assistant/repo"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(fakeTx{})
}

type fakeStorage struct {
	values    []int64
	valuesErr error
	lastStart time.Time
	lastEnd   time.Time
	lastType  string
	lastLimit int

	agentRows []repo.AgentReading

	meters        []dom.MeterPreview
	lastMeterType string

	districts    []string
	readings     []dom.ReadingPreview
	lastDistrict string

	typed []repo.TypedConsumption

	calls int
}

func (f *fakeStorage) ConsumptionValues(_ context.Context, start, end time.Time, meterType string, limit int) ([]int64, error) {
	f.calls++
	f.lastStart, f.lastEnd, f.lastType, f.lastLimit = start, end, meterType, limit
	return f.values, f.valuesErr
}

func (f *fakeStorage) AgentReadings(_ context.Context, start, end time.Time) ([]repo.AgentReading, error) {
	f.calls++
	f.lastStart, f.lastEnd = start, end
	return f.agentRows, nil
}

func (f *fakeStorage) MetersByType(_ context.Context, meterType string, limit int) ([]dom.MeterPreview, error) {
	f.calls++
	f.lastMeterType, f.lastLimit = meterType, limit
	return f.meters, nil
}

func (f *fakeStorage) DistrictLabels(context.Context) ([]string, error) {
	f.calls++
	return f.districts, nil
}

func (f *fakeStorage) RecentReadings(_ context.Context, district string, limit int) ([]dom.ReadingPreview, error) {
	f.calls++
	f.lastDistrict, f.lastLimit = district, limit
	return f.readings, nil
}

func (f *fakeStorage) TypedConsumptions(_ context.Context, start, end time.Time) ([]repo.TypedConsumption, error) {
	f.calls++
	f.lastStart, f.lastEnd = start, end
	return f.typed, nil
}

func bindFake(f *fakeStorage) repokit.Binder[repo.Storage] {
	return repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return f })
}

func newSvc(f *fakeStorage) *Service {
	s := New(fakeTx{}, bindFake(f))
	s.now = func() time.Time {
		return time.Date(2025, time.March, 17, 10, 0, 0, 0, time.Local)
	}
	return s
}

func TestProcess_ConsumptionWaterJanuary(t *testing.T) {
	f := &fakeStorage{values: []int64{100, 150, 70}}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "Consommation eau en janvier")

	if !resp.Success || resp.Intent != "consumption" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	data := resp.Data.(dom.ConsumptionData)
	if data.Period.Month != 1 || data.Period.Year != 2025 {
		t.Fatalf("period = %+v", data.Period)
	}
	if data.MeterType != "EAU" || data.Total != 320 || data.Readings != 3 {
		t.Fatalf("data = %+v", data)
	}
	if data.AveragePerReading != 107 {
		t.Fatalf("avg = %d, want rounded 107", data.AveragePerReading)
	}
	if f.lastType != "EAU" || f.lastLimit != consumptionScanCap {
		t.Fatalf("storage call type=%q limit=%d", f.lastType, f.lastLimit)
	}
	if !strings.Contains(resp.Message, "d'eau en janvier/2025: 320 unités (3 relevés)") {
		t.Fatalf("message = %q", resp.Message)
	}

	wantStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	if !f.lastStart.Equal(wantStart) || !f.lastEnd.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Fatalf("range [%v, %v)", f.lastStart, f.lastEnd)
	}
}

func TestProcess_ConsumptionDefaultsToCurrentMonthAllTypes(t *testing.T) {
	f := &fakeStorage{}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "consommation")

	data := resp.Data.(dom.ConsumptionData)
	if data.Period.Month != 3 || data.MeterType != "TOUS" {
		t.Fatalf("data = %+v", data)
	}
	if data.AveragePerReading != 0 {
		t.Fatalf("avg on empty = %d", data.AveragePerReading)
	}
	if !strings.Contains(resp.Message, "Consommation totale en mars/2025") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestProcess_AgentsRankingOrderAndLimit(t *testing.T) {
	f := &fakeStorage{agentRows: []repo.AgentReading{
		{AgentID: "a-1", LastName: "Diop", FirstName: "Awa", Consumption: 10},
		{AgentID: "a-1", LastName: "Diop", FirstName: "Awa", Consumption: 20},
		{AgentID: "a-2", LastName: "Ba", FirstName: "Omar", Consumption: 90},
		{AgentID: "a-3", LastName: "Sy", FirstName: "Fatou", Consumption: 5},
		{AgentID: "a-3", LastName: "Sy", FirstName: "Fatou", Consumption: 5},
		{AgentID: "a-3", LastName: "Sy", FirstName: "Fatou", Consumption: 5},
	}}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "top 2 agents")

	data := resp.Data.(dom.AgentsData)
	if len(data.TopAgents) != 2 {
		t.Fatalf("got %d agents, want 2", len(data.TopAgents))
	}
	if data.TopAgents[0].AgentID != "a-3" || data.TopAgents[0].Readings != 3 {
		t.Fatalf("first = %+v", data.TopAgents[0])
	}
	if data.TopAgents[1].AgentID != "a-1" {
		t.Fatalf("second = %+v", data.TopAgents[1])
	}
	if !strings.HasPrefix(resp.Message, "Top 2 agents en 3/2025: Fatou Sy (3 relevés), Awa Diop (2 relevés)") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestProcess_MetersPreviewCapped(t *testing.T) {
	meters := make([]dom.MeterPreview, 60)
	for i := range meters {
		meters[i] = dom.MeterPreview{Serial: "CPT", Type: "EAU"}
	}
	f := &fakeStorage{meters: meters}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "liste des compteurs")

	data := resp.Data.(dom.MetersData)
	if data.Count != 60 || len(data.Meters) != meterPreviewCap {
		t.Fatalf("count=%d preview=%d", data.Count, len(data.Meters))
	}
	if data.MeterType != "TOUS" {
		t.Fatalf("type = %q", data.MeterType)
	}
	if resp.Message != "Trouvé 60 compteurs" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestProcess_ReadingsMatchesDistrictFromCatalog(t *testing.T) {
	f := &fakeStorage{
		districts: []string{"Almadies", "Ngor"},
		readings:  []dom.ReadingPreview{{ID: "r-1", District: "Almadies"}},
	}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "relevés du quartier Almadies")

	if f.lastDistrict != "Almadies" {
		t.Fatalf("district filter = %q", f.lastDistrict)
	}
	data := resp.Data.(dom.ReadingsData)
	if data.District != "Almadies" || data.Count != 1 {
		t.Fatalf("data = %+v", data)
	}
	if resp.Message != "Trouvé 1 relevé dans le quartier Almadies" {
		t.Fatalf("message = %q", resp.Message)
	}
}

// "Plateau" contains "eau", so district questions about it route to the
// consumption detector; substring matching is the documented behavior
func TestProcess_DistrictNameContainingWaterKeyword(t *testing.T) {
	f := &fakeStorage{}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "relevés du quartier Plateau")

	if resp.Intent != "consumption" {
		t.Fatalf("intent = %q", resp.Intent)
	}
}

func TestProcess_StatisticsByType(t *testing.T) {
	f := &fakeStorage{typed: []repo.TypedConsumption{
		{MeterType: "EAU", Consumption: 120},
		{MeterType: "ELECTRICITE", Consumption: 300},
		{MeterType: "EAU", Consumption: 80},
	}}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "statistiques")

	data := resp.Data.(dom.StatisticsData)
	if data.Total != 500 || data.Readings != 3 {
		t.Fatalf("data = %+v", data)
	}
	if data.ByType["EAU"] != 200 || data.ByType["ELECTRICITE"] != 300 {
		t.Fatalf("byType = %+v", data.ByType)
	}
	if data.AveragePerReading != 167 {
		t.Fatalf("avg = %d", data.AveragePerReading)
	}
	if !strings.Contains(resp.Message, "500 unités consommées (3 relevés), moyenne: 167") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestProcess_EmptyQueryShortCircuits(t *testing.T) {
	f := &fakeStorage{}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "   ")

	if resp.Success || resp.Intent != "unrecognized" {
		t.Fatalf("envelope = %+v", resp)
	}
	if len(resp.Suggestions) != 5 {
		t.Fatalf("got %d suggestions", len(resp.Suggestions))
	}
	if f.calls != 0 {
		t.Fatalf("storage touched %d times on empty query", f.calls)
	}
}

func TestProcess_RepoFailureDowngrades(t *testing.T) {
	f := &fakeStorage{valuesErr: perr.DBf("boom")}
	svc := newSvc(f)

	resp := svc.Process(context.Background(), "consommation eau")

	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "Erreur lors du traitement de la requête de consommation" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Intent != "consumption" {
		t.Fatalf("intent = %q", resp.Intent)
	}
}
