package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"releves/internal/services/readings/domain"
)

func TestNotifyReading_PostsPayload(t *testing.T) {
	t.Parallel()

	var got notifyPayload
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "sekret"})
	err := c.NotifyReading(context.Background(), domain.Reading{
		ID:          "r-1",
		MeterSerial: "CPT-001",
		AgentID:     "a-1",
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Consumption: 150,
	})
	if err != nil {
		t.Fatalf("NotifyReading: %v", err)
	}
	if gotPath != "/facturation/releves" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sekret" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if got.ReadingID != "r-1" || got.MeterSerial != "CPT-001" || got.Consumption != 150 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestNotifyReading_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if err := c.NotifyReading(context.Background(), domain.Reading{ID: "r-2"}); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestNotifyReading_RespectsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := c.NotifyReading(ctx, domain.Reading{ID: "r-3"}); err == nil {
		t.Fatal("expected context deadline error")
	}
}
