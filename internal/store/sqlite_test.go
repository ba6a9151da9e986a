package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleLectures() []domain.Lecture {
	settings := domain.DefaultReminderSettings()
	settings.BeforeLecture.LeadMinutes = 10
	return []domain.Lecture{
		{
			ID:               "a1",
			Title:            "Data Structures",
			Instructor:       "Dr. Smith",
			Location:         "Room 101",
			Day:              "Monday",
			StartTime:        "9:00 AM",
			EndTime:          "10:30 AM",
			Description:      "Trees and graphs",
			Color:            "#FF6B6B",
			CreatedAt:        "2025-05-01T10:00:00Z",
			ReminderSettings: &settings,
		},
		{
			ID:        "b2",
			Title:     "Physics Lab",
			Location:  "Lab 3",
			Day:       "Thursday",
			Type:      "Lab",
			StartTime: "2:00 PM",
			EndTime:   "4:00 PM",
			CreatedAt: "2025-05-02T11:00:00Z",
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := sampleLectures()
	if err := repo.SaveLectures(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := repo.LoadLectures(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSave_Idempotent(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := sampleLectures()
	for i := 0; i < 2; i++ {
		if err := repo.SaveLectures(ctx, want); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if got := repo.LoadLectures(ctx); !reflect.DeepEqual(got, want) {
			t.Fatalf("load after save %d changed the list", i)
		}
	}
}

func TestLoad_EmptyWhenAbsent(t *testing.T) {
	repo := openTestRepo(t)
	if got := repo.LoadLectures(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list, got %d lectures", len(got))
	}
}

func TestLoad_LegacyRawArray(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	raw := []byte(`[{"id":"x1","title":"History","location":"Hall A","day":"Tuesday","startTime":"1:00 PM","endTime":"2:00 PM","createdAt":"2025-01-01T00:00:00Z"}]`)
	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, saved_at) VALUES (?, ?, 0)`, lecturesKey, raw,
	); err != nil {
		t.Fatalf("plant legacy blob: %v", err)
	}

	got := repo.LoadLectures(ctx)
	if len(got) != 1 || got[0].Title != "History" {
		t.Fatalf("legacy array not migrated on load: %+v", got)
	}
}

func TestLoad_LegacyVersionlessEnvelope(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	raw := []byte(`{"data":[{"id":"x2","title":"Chemistry","location":"Lab 1","day":"Friday","startTime":"10:00","endTime":"11:00","createdAt":"2025-01-01T00:00:00Z"}],"savedAt":1714000000000}`)
	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, saved_at) VALUES (?, ?, 0)`, lecturesKey, raw,
	); err != nil {
		t.Fatalf("plant legacy blob: %v", err)
	}

	got := repo.LoadLectures(ctx)
	if len(got) != 1 || got[0].Title != "Chemistry" {
		t.Fatalf("legacy envelope not readable: %+v", got)
	}
}

func TestLoad_MalformedFailsOpen(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, raw := range []string{`{not json`, `{"version":99,"data":[]}`, `42`} {
		if _, err := repo.db.ExecContext(ctx, `
			INSERT INTO blobs (key, value, saved_at) VALUES (?, ?, 0)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			lecturesKey, []byte(raw),
		); err != nil {
			t.Fatalf("plant blob: %v", err)
		}
		if got := repo.LoadLectures(ctx); len(got) != 0 {
			t.Fatalf("blob %q: expected empty list, got %d", raw, len(got))
		}
	}
}

func TestClearLectures(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveLectures(ctx, sampleLectures()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.ClearLectures(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := repo.LoadLectures(ctx); len(got) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(got))
	}
}

func TestReminderRegistry(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	rems := []Reminder{
		{ID: "r1", LectureID: "a1", FireAt: now.Add(-time.Minute), Kind: KindBefore, Title: "t1", Body: "b1"},
		{ID: "r2", LectureID: "a1", FireAt: now.Add(time.Hour), Kind: KindReview, Title: "t2", Body: "b2"},
		{ID: "r3", LectureID: "b2", FireAt: now.Add(-time.Hour), Kind: KindBefore, Title: "t3", Body: "b3"},
	}
	for _, rem := range rems {
		if err := repo.PutReminder(ctx, rem); err != nil {
			t.Fatalf("put %s: %v", rem.ID, err)
		}
	}

	due, err := repo.ListDueReminders(ctx, now, 10)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 2 || due[0].ID != "r3" || due[1].ID != "r1" {
		t.Fatalf("due order wrong: %+v", due)
	}

	next, err := repo.NextReminder(ctx)
	if err != nil || next == nil || next.ID != "r3" {
		t.Fatalf("next reminder = %+v, err %v", next, err)
	}

	if err := repo.DeleteRemindersForLecture(ctx, "a1"); err != nil {
		t.Fatalf("delete for lecture: %v", err)
	}
	n, err := repo.CountReminders(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count = %d, err %v, want 1", n, err)
	}

	if err := repo.DeleteReminder(ctx, "r3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if next, _ = repo.NextReminder(ctx); next != nil {
		t.Fatalf("registry should be empty, next = %+v", next)
	}
}
