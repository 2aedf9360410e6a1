package service

import (
	"context"
	"testing"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	readingsdom "releves/internal/services/readings/domain"
	dom "releves/internal/services/tours/domain"
	"releves/internal/services/tours/repo"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(fakeTx{})
}

type fakeStorage struct {
	agent    repo.Agent
	agentErr error

	pending   []dom.Stop
	lastSince time.Time
}

func (f *fakeStorage) Agent(_ context.Context, id string) (repo.Agent, error) {
	if f.agentErr != nil {
		return repo.Agent{}, f.agentErr
	}
	if id != f.agent.Info.ID {
		return repo.Agent{}, perr.NotFoundf("agent %q inconnu", id)
	}
	return f.agent, nil
}

func (f *fakeStorage) PendingMeters(_ context.Context, _ string, since time.Time) ([]dom.Stop, error) {
	f.lastSince = since
	return f.pending, nil
}

func bindFake(f *fakeStorage) repokit.Binder[repo.Storage] {
	return repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return f })
}

type fakeWriter struct {
	got readingsdom.CreateInput
}

func (f *fakeWriter) Create(_ context.Context, in readingsdom.CreateInput) (readingsdom.Reading, error) {
	f.got = in
	return readingsdom.Reading{MeterSerial: in.MeterSerial, NewIndex: in.NewIndex}, nil
}

func TestTour_BuildsWalkListFromMonthStart(t *testing.T) {
	st := &fakeStorage{
		agent: repo.Agent{
			Info:       dom.AgentInfo{ID: "a-1", LastName: "Diop", FirstName: "Awa", District: "Plateau"},
			DistrictID: "q-1",
		},
		pending: []dom.Stop{
			{MeterSerial: "CPT-001", MeterType: "EAU", CurrentIndex: 1200},
			{MeterSerial: "CPT-002", MeterType: "ELECTRICITE", CurrentIndex: 8421},
		},
	}
	svc := New(fakeTx{}, bindFake(st), &fakeWriter{})
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 17, 14, 30, 0, 0, time.UTC)
	}

	tour, err := svc.Tour(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("Tour: %v", err)
	}
	if tour.Agent.District != "Plateau" {
		t.Fatalf("agent district = %q", tour.Agent.District)
	}
	if len(tour.Meters) != 2 {
		t.Fatalf("got %d stops, want 2", len(tour.Meters))
	}

	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !st.lastSince.Equal(want) {
		t.Fatalf("since = %v, want first of month %v", st.lastSince, want)
	}
}

func TestTour_EmptyListIsNotNil(t *testing.T) {
	st := &fakeStorage{
		agent: repo.Agent{
			Info:       dom.AgentInfo{ID: "a-1", LastName: "Diop", FirstName: "Awa"},
			DistrictID: "q-1",
		},
	}
	svc := New(fakeTx{}, bindFake(st), &fakeWriter{})

	tour, err := svc.Tour(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("Tour: %v", err)
	}
	if tour.Meters == nil {
		t.Fatal("meters slice must be non-nil so it encodes as []")
	}
}

func TestTour_UnknownAgent(t *testing.T) {
	st := &fakeStorage{agent: repo.Agent{Info: dom.AgentInfo{ID: "a-1"}, DistrictID: "q-1"}}
	svc := New(fakeTx{}, bindFake(st), &fakeWriter{})

	_, err := svc.Tour(context.Background(), "nope")
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestTour_AgentWithoutDistrict(t *testing.T) {
	st := &fakeStorage{agent: repo.Agent{Info: dom.AgentInfo{ID: "a-1"}}}
	svc := New(fakeTx{}, bindFake(st), &fakeWriter{})

	_, err := svc.Tour(context.Background(), "a-1")
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestSubmitReading_Delegates(t *testing.T) {
	w := &fakeWriter{}
	svc := New(fakeTx{}, bindFake(&fakeStorage{}), w)

	in := readingsdom.CreateInput{MeterSerial: "CPT-001", NewIndex: 1350, AgentID: "a-1"}
	r, err := svc.SubmitReading(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitReading: %v", err)
	}
	if w.got != in {
		t.Fatalf("writer received %+v, want %+v", w.got, in)
	}
	if r.MeterSerial != "CPT-001" || r.NewIndex != 1350 {
		t.Fatalf("unexpected reading %+v", r)
	}
}
