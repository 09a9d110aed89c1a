package sink

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/cryptotracker/internal/model"
)

func TestPostgresSink_TransformListings(t *testing.T) {
	s := NewPostgres(nil, nil)
	id := uuid.New()

	rows := s.transformListings(id, testSet())

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	r := rows[0]
	if r.Rank != 1 {
		t.Errorf("Rank = %d, want 1", r.Rank)
	}
	if r.Name == nil || *r.Name != "Bitcoin" {
		t.Errorf("Name = %v, want Bitcoin", r.Name)
	}
	if r.MarketCap == nil || *r.MarketCap != "1320000000000" {
		t.Errorf("MarketCap = %v, want 1320000000000", r.MarketCap)
	}
	if r.PercentChange24h == nil || *r.PercentChange24h != "1.25" {
		t.Errorf("PercentChange24h = %v, want 1.25", r.PercentChange24h)
	}
	if r.Source != "coinmarketcap" {
		t.Errorf("Source = %s, want coinmarketcap", r.Source)
	}
	if r.CycleID != id {
		t.Errorf("CycleID = %v, want %v", r.CycleID, id)
	}
	if !r.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", r.FetchedAt, fetchedAt)
	}

	absent := rows[2]
	if absent.Rank != 3 {
		t.Errorf("Rank = %d, want 3", absent.Rank)
	}
	if absent.Price != nil || absent.MarketCap != nil || absent.Volume24h != nil || absent.PercentChange24h != nil {
		t.Errorf("absent values should be nil: %+v", absent)
	}
}

func TestPostgresSink_TransformAnalysis(t *testing.T) {
	s := NewPostgres(nil, nil)
	now := time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	id := uuid.New()

	rows := s.transformAnalysis(id, testSummary())

	want := []struct {
		position int
		name     string
		value    string
	}{
		{1, model.MetricTopByMarketCap, "Bitcoin, Ethereum, Classic"},
		{2, model.MetricAveragePrice, "33518.92"},
		{3, model.MetricTotalCount, "3"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Position != w.position || rows[i].Name != w.name || rows[i].Value != w.value {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i].metricRecord, w)
		}
		if rows[i].CycleID != id || !rows[i].UpdatedAt.Equal(now) {
			t.Errorf("rows[%d] cycle/time = %v %v", i, rows[i].CycleID, rows[i].UpdatedAt)
		}
	}
}

func TestPostgresSink_TransformEmpty(t *testing.T) {
	s := NewPostgres(nil, nil)

	if rows := s.transformListings(uuid.New(), model.ListingSet{}); len(rows) != 0 {
		t.Errorf("listing rows = %d, want 0", len(rows))
	}
	if rows := s.transformAnalysis(uuid.New(), model.Summary{}); len(rows) != 0 {
		t.Errorf("analysis rows = %d, want 0", len(rows))
	}
}
