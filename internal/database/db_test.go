package database

import (
	"path/filepath"
	"testing"

	"ping-tool/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return db
}

func TestSaveAndGetRecent(t *testing.T) {
	db := openTestDB(t)

	analysis := &models.Analysis{
		Filename:          "ping-gw-main.log",
		Target:            "192.168.1.1",
		HasTimestamps:     true,
		MissingSeq:        []int{3},
		AbnormalIntervals: []models.AbnormalInterval{{AfterSeq: 5, Gap: 4.0, Expected: 1.0}},
		Latency:           models.LatencyStats{Min: 0.4, Max: 2.1, Avg: 0.9},
		Transmitted:       10,
		Received:          9,
		PacketLoss:        10.0,
	}

	if err := db.SaveAnalysis(analysis); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}

	records, err := db.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if r.Filename != "ping-gw-main.log" || r.Target != "192.168.1.1" {
		t.Errorf("record = %+v, wrong identity fields", r)
	}
	if r.TotalPings != 9 || r.Transmitted != 10 || r.PacketLoss != 10.0 {
		t.Errorf("record = %+v, wrong counters", r)
	}
	if r.MissingCount != 1 || r.AbnormalCount != 1 {
		t.Errorf("record = %+v, wrong issue counts", r)
	}
	if !r.HasTimestamps {
		t.Error("HasTimestamps not round-tripped")
	}
}

func TestGetRecentLimit(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 5; i++ {
		a := &models.Analysis{Filename: "f.log", Target: "10.0.0.1", Received: i + 1, Transmitted: i + 1}
		if err := db.SaveAnalysis(a); err != nil {
			t.Fatalf("SaveAnalysis() error = %v", err)
		}
	}

	records, err := db.GetRecent(3)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Most recent insert first.
	if records[0].TotalPings != 5 {
		t.Errorf("first record TotalPings = %d, want 5", records[0].TotalPings)
	}
}

func TestGetRecentEmpty(t *testing.T) {
	db := openTestDB(t)

	records, err := db.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want none", len(records))
	}
}
