package storage

import (
	"path/filepath"
	"testing"
	"time"

	"tomatillo/internal/core/model"
	"tomatillo/internal/core/pomodoro"
)

func openTestLog(t *testing.T) *SessionLog {
	t.Helper()
	sessionLog, err := OpenSessionLog(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open session log: %v", err)
	}
	t.Cleanup(func() { _ = sessionLog.Close() })
	return sessionLog
}

func TestCompletedSessionsDefaultsToZero(t *testing.T) {
	sessionLog := openTestLog(t)

	count, err := sessionLog.CompletedSessions()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for fresh database", count)
	}
}

func TestSaveCompletedSessionsUpserts(t *testing.T) {
	sessionLog := openTestLog(t)

	for _, count := range []int{3, 1, 0} {
		if err := sessionLog.SaveCompletedSessions(count); err != nil {
			t.Fatalf("save %d: %v", count, err)
		}
		got, err := sessionLog.CompletedSessions()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != count {
			t.Errorf("count = %d, want %d", got, count)
		}
	}
}

func TestSummaryAggregatesHistory(t *testing.T) {
	sessionLog := openTestLog(t)
	now := time.Now()

	records := []struct {
		task    model.TaskType
		kind    pomodoro.SessionKind
		minutes int
		at      time.Time
	}{
		{model.TaskStudy, pomodoro.SessionWork, 25, now.Add(-time.Hour)},
		{model.TaskStudy, pomodoro.SessionWork, 25, now.Add(-30 * time.Minute)},
		{model.TaskStudy, pomodoro.SessionShortBreak, 5, now.Add(-25 * time.Minute)},
		{model.TaskDeep, pomodoro.SessionWork, 45, now.Add(-10 * time.Minute)},
		{model.TaskStudy, pomodoro.SessionWork, 25, now.Add(-48 * time.Hour)}, // outside window
	}
	for _, record := range records {
		if err := sessionLog.RecordCompletion(record.task, record.kind, record.minutes, record.at); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	summary, err := sessionLog.Summary(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	want := map[string]StatsRow{
		"deep/work":         {Task: model.TaskDeep, Kind: pomodoro.SessionWork, Count: 1, Minutes: 45},
		"study/short-break": {Task: model.TaskStudy, Kind: pomodoro.SessionShortBreak, Count: 1, Minutes: 5},
		"study/work":        {Task: model.TaskStudy, Kind: pomodoro.SessionWork, Count: 2, Minutes: 50},
	}
	if len(summary) != len(want) {
		t.Fatalf("summary rows = %d, want %d: %+v", len(summary), len(want), summary)
	}
	for _, row := range summary {
		key := string(row.Task) + "/" + string(row.Kind)
		expected, ok := want[key]
		if !ok {
			t.Errorf("unexpected row %+v", row)
			continue
		}
		if row != expected {
			t.Errorf("row %s = %+v, want %+v", key, row, expected)
		}
	}
}
