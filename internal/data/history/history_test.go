package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), time.Second)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_OpenInitializesSchemaAndSaveLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	first := Snapshot{
		Timestamp:    base,
		Check:        CheckKeys,
		KeysVerified: 120,
		MissingCount: 2,
		Passed:       false,
		Duration:     40 * time.Millisecond,
	}
	second := Snapshot{
		Timestamp:       base.Add(2 * time.Hour),
		Check:           CheckText,
		CommitHash:      "abc123def456",
		CommitTimestamp: base.Add(time.Hour),
		FilesScanned:    31,
		Passed:          true,
	}

	saved, err := store.SaveSnapshot(ctx, first)
	if err != nil {
		t.Fatalf("save first snapshot: %v", err)
	}
	if saved.RunID == "" || saved.ProjectKey != defaultProjectKey || saved.SchemaVersion != SchemaVersion {
		t.Fatalf("expected defaults on saved snapshot, got %+v", saved)
	}
	if _, err := store.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("save second snapshot: %v", err)
	}

	all, err := store.LoadSnapshots(ctx, "", time.Time{})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(all))
	}
	if all[0].RunID != saved.RunID || all[0].MissingCount != 2 || all[0].Passed {
		t.Fatalf("unexpected first snapshot: %+v", all[0])
	}
	if all[0].Duration != 40*time.Millisecond {
		t.Fatalf("expected duration round-trip, got %v", all[0].Duration)
	}

	got, err := store.LoadSnapshots(ctx, "default", base.Add(time.Hour))
	if err != nil {
		t.Fatalf("load snapshots since: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 snapshot after since filter, got %d", len(got))
	}
	if got[0].Check != CheckText || !got[0].Passed || got[0].FilesScanned != 31 {
		t.Fatalf("unexpected snapshot: %+v", got[0])
	}
	if got[0].CommitHash != "abc123def456" || !got[0].CommitTimestamp.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected commit metadata round-trip, got %+v", got[0])
	}
}

func TestStore_OrdersSubSecondTimestamps(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{base.Add(500 * time.Millisecond), base, base.Add(time.Second)} {
		if _, err := store.SaveSnapshot(ctx, Snapshot{Timestamp: ts, Check: CheckKeys, Passed: true}); err != nil {
			t.Fatalf("save snapshot: %v", err)
		}
	}

	got, err := store.LoadSnapshots(ctx, "", time.Time{})
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Fatalf("snapshots out of order: %v before %v", got[i-1].Timestamp, got[i].Timestamp)
		}
	}
}

func TestStore_SaveRejectsUnknownCheck(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSnapshot(context.Background(), Snapshot{Check: "lint"}); err == nil {
		t.Fatal("expected error for unknown check")
	}
	if _, err := store.SaveSnapshot(context.Background(), Snapshot{Check: CheckKeys, SchemaVersion: 9}); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
}

func TestStore_SaveLoadSnapshots_ProjectIsolation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	if _, err := store.SaveSnapshot(ctx, Snapshot{ProjectKey: "academy", Timestamp: ts, Check: CheckKeys, Passed: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveSnapshot(ctx, Snapshot{ProjectKey: "docs", Timestamp: ts, Check: CheckText, FindingCount: 4}); err != nil {
		t.Fatal(err)
	}

	academy, err := store.LoadSnapshots(ctx, " academy ", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(academy) != 1 || academy[0].ProjectKey != "academy" {
		t.Fatalf("expected one academy snapshot, got %+v", academy)
	}
	docs, err := store.LoadSnapshots(ctx, "docs", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].FindingCount != 4 {
		t.Fatalf("expected one docs snapshot, got %+v", docs)
	}
}

func TestStore_OpenRejectsDirectoryPath(t *testing.T) {
	_, err := Open(t.TempDir(), 0)
	if err == nil {
		t.Fatal("expected open error for directory path")
	}
	if !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_OpenCorruptDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	if err := os.WriteFile(path, []byte("this is not sqlite"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path, 0)
	if err == nil {
		t.Fatal("expected sqlite open error")
	}
	lower := strings.ToLower(err.Error())
	if !strings.Contains(lower, "not a database") && !strings.Contains(lower, "schema") {
		t.Fatalf("expected schema/open error, got: %v", err)
	}
}

func TestEnsureSchema_DetectsNewerVersionDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.db.Exec(`INSERT OR REPLACE INTO schema_migrations(version) VALUES (?)`, SchemaVersion+1); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open(driverName, "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	err = EnsureSchema(db)
	if err == nil {
		t.Fatal("expected drift error")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildTrendReport(t *testing.T) {
	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	report := BuildTrendReport([]Snapshot{
		{Timestamp: base, Check: CheckKeys, MissingCount: 3, Passed: false},
		{Timestamp: base.Add(time.Minute), Check: CheckText, FindingCount: 5, Passed: false},
		{Timestamp: base.Add(2 * time.Minute), Check: CheckKeys, MissingCount: 1, ExtraCount: 1, Passed: false},
		{Timestamp: base.Add(3 * time.Minute), Check: CheckText, Passed: true},
	})

	if report.RunCount != 4 || report.PassCount != 1 || report.FailCount != 3 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.LastFailed == nil || !report.LastFailed.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("unexpected last failure: %v", report.LastFailed)
	}
	if report.Points[0].DeltaProblems != 0 {
		t.Fatalf("first run has no previous, got delta %d", report.Points[0].DeltaProblems)
	}
	if report.Points[2].DeltaProblems != -1 {
		t.Fatalf("expected keys delta -1, got %d", report.Points[2].DeltaProblems)
	}
	if report.Points[3].DeltaProblems != -5 {
		t.Fatalf("expected text delta -5, got %d", report.Points[3].DeltaProblems)
	}
	if !report.Since.Equal(base) || !report.Until.Equal(base.Add(3*time.Minute)) {
		t.Fatalf("unexpected window %v..%v", report.Since, report.Until)
	}

	if empty := BuildTrendReport(nil); empty.RunCount != 0 || empty.Points == nil {
		t.Fatalf("unexpected empty report: %+v", empty)
	}
}

func TestIsCorruptError(t *testing.T) {
	if !IsCorruptError(errors.New("database disk image is malformed")) {
		t.Fatal("expected malformed error to be corrupt")
	}
	if IsCorruptError(errors.New("database is locked")) {
		t.Fatal("lock errors are not corruption")
	}
	if IsCorruptError(nil) {
		t.Fatal("nil is not corruption")
	}
}

func TestResolveGitMetadata_OutsideRepository(t *testing.T) {
	hash, ts := ResolveGitMetadata(context.Background(), t.TempDir())
	if hash != "" || !ts.IsZero() {
		t.Fatalf("expected empty metadata outside a repository, got %q %v", hash, ts)
	}
}
