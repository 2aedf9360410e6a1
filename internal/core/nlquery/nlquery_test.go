package nlquery

import (
	"testing"
	"time"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  Intent
	}{
		{"consommation eau en janvier", IntentConsumption},
		{"Consommation EAU en Janvier", IntentConsumption},
		{"combien a-t-on consommé d'électricité", IntentConsumption},
		// consumption keywords beat agent keywords
		{"consommation eau des agents", IntentConsumption},
		// month names parameterize a query but do not pick the intent
		{"top 3 agents en mars", IntentAgentRanking},
		{"février", IntentUnrecognized},
		{"top 5 agents ce mois", IntentAgentRanking},
		{"meilleur agent", IntentAgentRanking},
		{"performance des équipes", IntentAgentRanking},
		{"liste des compteurs", IntentMeterLookup},
		{"metre du client dupont", IntentMeterLookup},
		{"relevés du quartier centre", IntentReadingLookup},
		{"dernières lectures", IntentReadingLookup},
		{"statistiques", IntentStatistics},
		{"moyenne par type", IntentStatistics},
		{"kpi global", IntentStatistics},
		// "réseau" contains "eau", so substring matching routes this to
		// the consumption detector before the kpi keyword is reached
		{"kpi du réseau", IntentConsumption},
		{"bonjour comment ça va", IntentUnrecognized},
		{"", IntentUnrecognized},
		{"   \t  ", IntentUnrecognized},
	}
	for _, c := range cases {
		if got := Classify(c.query); got != c.want {
			t.Fatalf("Classify(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	const q = "relevés et statistiques des compteurs"
	first := Classify(q)
	for i := 0; i < 100; i++ {
		if got := Classify(q); got != first {
			t.Fatalf("classification not deterministic: %q then %q", first, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := Normalize("  Consommation ÉLECTRICITÉ  "); got != "consommation électricité" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestMeterTypeOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  string
	}{
		{"consommation eau", MeterWater},
		{"consommation électricité", MeterElectricity},
		{"consommation electricite", MeterElectricity},
		// water wins when both are present
		{"eau et électricité", MeterWater},
		{"consommation totale", ""},
	}
	for _, c := range cases {
		if got := MeterTypeOf(c.query); got != c.want {
			t.Fatalf("MeterTypeOf(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  int
		ok    bool
	}{
		{"consommation en janvier", 1, true},
		{"consommation en février", 2, true},
		{"consommation en fevrier", 2, true},
		{"relevés d'août", 8, true},
		{"relevés d'aout", 8, true},
		{"bilan décembre", 12, true},
		{"bilan decembre", 12, true},
		{"consommation ce mois", 0, false},
	}
	for _, c := range cases {
		got, ok := MonthOf(c.query)
		if got != c.want || ok != c.ok {
			t.Fatalf("MonthOf(%q) = (%d, %v), want (%d, %v)", c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestTopN(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  int
	}{
		{"top 3 agents en mars", 3},
		{"top10 agents", 10},
		{"top agents", DefaultTopN},
		{"meilleur agent", DefaultTopN},
		{"top 0 agents", DefaultTopN},
	}
	for _, c := range cases {
		if got := TopN(c.query); got != c.want {
			t.Fatalf("TopN(%q) = %d, want %d", c.query, got, c.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	t.Parallel()

	start, end := MonthRange(2026, 2)
	if start.Year() != 2026 || start.Month() != time.February || start.Day() != 1 {
		t.Fatalf("start = %v", start)
	}
	if end.Year() != 2026 || end.Month() != time.March || end.Day() != 1 {
		t.Fatalf("end = %v", end)
	}

	// december rolls into the next year
	start, end = MonthRange(2026, 12)
	if end.Year() != 2027 || end.Month() != time.January {
		t.Fatalf("december end = %v", end)
	}
}

func TestMonthName(t *testing.T) {
	t.Parallel()

	if got := MonthName(2); got != "février" {
		t.Fatalf("MonthName(2) = %q", got)
	}
	if got := MonthName(8); got != "août" {
		t.Fatalf("MonthName(8) = %q", got)
	}
	if got := MonthName(13); got != "13" {
		t.Fatalf("MonthName(13) = %q", got)
	}
}
