package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"releves/internal/modkit/repokit"
	perr "releves/internal/platform/errors"
	dom "releves/internal/services/readings/domain"
	"releves/internal/services/readings/repo"
)

// fakeTx satisfies repokit.TxRunner; Tx just runs fn against itself
type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(fakeTx{})
}

// fakeStorage is an in-memory repo.Storage
type fakeStorage struct {
	meter    dom.MeterState
	meterErr error

	inserted []dom.Reading
	bumped   map[string]int64
	listed   []dom.Row
	lastCap  int
}

func (f *fakeStorage) MeterForUpdate(_ context.Context, serial string) (dom.MeterState, error) {
	if f.meterErr != nil {
		return dom.MeterState{}, f.meterErr
	}
	if serial != f.meter.Serial {
		return dom.MeterState{}, perr.NotFoundf("compteur %q inconnu", serial)
	}
	return f.meter, nil
}

func (f *fakeStorage) Insert(_ context.Context, r dom.Reading) error {
	f.inserted = append(f.inserted, r)
	return nil
}

func (f *fakeStorage) BumpMeterIndex(_ context.Context, serial string, idx int64) error {
	if f.bumped == nil {
		f.bumped = map[string]int64{}
	}
	f.bumped[serial] = idx
	return nil
}

func (f *fakeStorage) List(_ context.Context, _ dom.Filters, limit int) ([]dom.Row, error) {
	f.lastCap = limit
	return f.listed, nil
}

func bindFake(f *fakeStorage) repokit.Binder[repo.Storage] {
	return repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return f })
}

// fakeNotifier records notifications on a channel
type fakeNotifier struct {
	got chan dom.Reading
	err error
}

func (f *fakeNotifier) NotifyReading(_ context.Context, r dom.Reading) error {
	f.got <- r
	return f.err
}

const agentID = "2f9a7c1e-4b7d-4a1e-9c3e-8d5f6a7b8c9d"

func TestCreate_NormalSubmission(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{meter: dom.MeterState{
		Serial: "CPT-001", Type: "EAU", CurrentIndex: 1200, MaxCapacity: 99999,
	}}
	notif := &fakeNotifier{got: make(chan dom.Reading, 1)}
	svc := New(fakeTx{}, bindFake(st), notif, Config{})

	out, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "CPT-001", NewIndex: 1350, AgentID: agentID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Consumption != 150 || out.Rollover {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out.OldIndex != 1200 || out.NewIndex != 1350 {
		t.Fatalf("indices not carried: %+v", out)
	}
	if out.ID == "" {
		t.Fatal("expected a generated reading id")
	}
	if len(st.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(st.inserted))
	}
	if st.bumped["CPT-001"] != 1350 {
		t.Fatalf("meter index not bumped: %v", st.bumped)
	}

	select {
	case r := <-notif.got:
		if r.ID != out.ID {
			t.Fatalf("notified wrong reading: %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("billing notification never sent")
	}
}

func TestCreate_RolloverPersisted(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{meter: dom.MeterState{
		Serial: "CPT-002", Type: "EAU", CurrentIndex: 99500, MaxCapacity: 99999,
	}}
	svc := New(fakeTx{}, bindFake(st), nil, Config{})

	out, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "CPT-002", NewIndex: 50, AgentID: agentID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !out.Rollover || out.Consumption != 549 {
		t.Fatalf("expected rollover with consumption 549, got %+v", out)
	}
	if len(st.inserted) != 1 || !st.inserted[0].Rollover {
		t.Fatalf("rollover flag not persisted: %+v", st.inserted)
	}
}

func TestCreate_RegressionRejected(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{meter: dom.MeterState{
		Serial: "CPT-003", Type: "ELECTRICITE", CurrentIndex: 50000, MaxCapacity: 99999,
	}}
	notif := &fakeNotifier{got: make(chan dom.Reading, 1)}
	svc := New(fakeTx{}, bindFake(st), notif, Config{})

	_, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "CPT-003", NewIndex: 10, AgentID: agentID,
	})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation code, got %v", perr.CodeOf(err))
	}
	if len(st.inserted) != 0 || len(st.bumped) != 0 {
		t.Fatal("rejected submission must not be persisted")
	}
	select {
	case <-notif.got:
		t.Fatal("billing must not be notified on rejection")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreate_UnknownMeter(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{meter: dom.MeterState{Serial: "CPT-004"}}
	svc := New(fakeTx{}, bindFake(st), nil, Config{})

	_, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "NOPE", NewIndex: 10, AgentID: agentID,
	})
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_NotifierFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{meter: dom.MeterState{
		Serial: "CPT-005", Type: "EAU", CurrentIndex: 10, MaxCapacity: 99999,
	}}
	notif := &fakeNotifier{got: make(chan dom.Reading, 1), err: errors.New("erp down")}
	svc := New(fakeTx{}, bindFake(st), notif, Config{})

	out, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "CPT-005", NewIndex: 20, AgentID: agentID,
	})
	if err != nil {
		t.Fatalf("notifier failure must not fail the submission: %v", err)
	}
	if len(st.inserted) != 1 || out.Consumption != 10 {
		t.Fatalf("submission not persisted: %+v", out)
	}
	<-notif.got
}

func TestCreate_PerMeterCapacity(t *testing.T) {
	t.Parallel()

	// four digit meter rolls over where a five digit one would reject
	st := &fakeStorage{meter: dom.MeterState{
		Serial: "CPT-006", Type: "EAU", CurrentIndex: 9950, MaxCapacity: 9999,
	}}
	svc := New(fakeTx{}, bindFake(st), nil, Config{})

	out, err := svc.Create(context.Background(), dom.CreateInput{
		MeterSerial: "CPT-006", NewIndex: 25, AgentID: agentID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !out.Rollover || out.Consumption != 74 {
		t.Fatalf("expected rollover with consumption 74, got %+v", out)
	}
}

func TestList_DefaultCap(t *testing.T) {
	t.Parallel()

	st := &fakeStorage{}
	svc := New(fakeTx{}, bindFake(st), nil, Config{})

	if _, err := svc.List(context.Background(), dom.Filters{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if st.lastCap != 500 {
		t.Fatalf("expected default cap 500, got %d", st.lastCap)
	}
}
