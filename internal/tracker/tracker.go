package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/domain"
	"github.com/Smartnaka/SkulBell/internal/notify"
	"github.com/Smartnaka/SkulBell/internal/store"
)

var ErrNotFound = errors.New("lecture not found")

// Tracker owns the in-memory lecture snapshot and serializes every
// mutation, so concurrent callers cannot interleave load-modify-save
// cycles and lose updates. Views read the snapshot, never the store.
type Tracker struct {
	repo     store.Repo
	notifier notify.Notifier
	log      *zap.Logger

	mu         sync.Mutex
	lectures   []domain.Lecture
	subs       []func([]domain.Lecture)
	paused     bool
	permWarned bool
}

func New(repo store.Repo, notifier notify.Notifier, log *zap.Logger) *Tracker {
	return &Tracker{repo: repo, notifier: notifier, log: log}
}

// LoadSnapshot primes the in-memory list from the store. Call once at
// startup before any reads.
func (t *Tracker) LoadSnapshot(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lectures = t.repo.LoadLectures(ctx)
	// Older stores may hold non-canonical day names.
	for i := range t.lectures {
		t.lectures[i].Normalize()
	}
	t.log.Info("lectures loaded", zap.Int("count", len(t.lectures)))
}

// Lectures returns a copy of the current snapshot.
func (t *Tracker) Lectures() []domain.Lecture {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Lecture, len(t.lectures))
	copy(out, t.lectures)
	return out
}

// Get returns the lecture with the given id.
func (t *Tracker) Get(id string) (domain.Lecture, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range t.lectures {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Lecture{}, false
}

// Subscribe registers an observer invoked with the new snapshot after
// every successful mutation.
func (t *Tracker) Subscribe(fn func([]domain.Lecture)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

// Add validates the lecture, assigns its identity, persists the grown
// collection and registers its reminders. The write is awaited before
// any scheduling starts.
func (t *Tracker) Add(ctx context.Context, l domain.Lecture) (domain.Lecture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt == "" {
		l.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	l.Normalize()
	if err := l.Validate(); err != nil {
		return domain.Lecture{}, err
	}

	next := append(append([]domain.Lecture{}, t.lectures...), l)
	if err := t.repo.SaveLectures(ctx, next); err != nil {
		return domain.Lecture{}, fmt.Errorf("persist lecture: %w", err)
	}
	t.lectures = next

	t.scheduleLocked(ctx, &l)
	t.notifyLocked()
	return l, nil
}

// Update replaces the lecture matching l.ID, persists the collection,
// cancels the lecture's stale reminders and registers fresh ones.
func (t *Tracker) Update(ctx context.Context, l domain.Lecture) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	l.Normalize()
	if err := l.Validate(); err != nil {
		return err
	}

	idx := -1
	for i := range t.lectures {
		if t.lectures[i].ID == l.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, l.ID)
	}

	next := make([]domain.Lecture, len(t.lectures))
	copy(next, t.lectures)
	next[idx] = l
	if err := t.repo.SaveLectures(ctx, next); err != nil {
		return fmt.Errorf("persist lecture: %w", err)
	}
	t.lectures = next

	// One active set of reminders per lecture: cancel before re-schedule.
	if err := t.repo.DeleteRemindersForLecture(ctx, l.ID); err != nil {
		t.log.Warn("cancel stale reminders failed", zap.String("lecture", l.ID), zap.Error(err))
	}
	t.scheduleLocked(ctx, &l)
	t.notifyLocked()
	return nil
}

// Remove rewrites the collection without the lecture and cancels its
// pending reminders.
func (t *Tracker) Remove(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]domain.Lecture, 0, len(t.lectures))
	found := false
	for _, l := range t.lectures {
		if l.ID == id {
			found = true
			continue
		}
		next = append(next, l)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := t.repo.SaveLectures(ctx, next); err != nil {
		return fmt.Errorf("persist lectures: %w", err)
	}
	t.lectures = next

	if err := t.repo.DeleteRemindersForLecture(ctx, id); err != nil {
		t.log.Warn("cancel reminders failed", zap.String("lecture", id), zap.Error(err))
	}
	t.notifyLocked()
	return nil
}

// Clear drops the whole collection and every pending reminder.
func (t *Tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, l := range t.lectures {
		if err := t.repo.DeleteRemindersForLecture(ctx, l.ID); err != nil {
			t.log.Warn("cancel reminders failed", zap.String("lecture", l.ID), zap.Error(err))
		}
	}
	if err := t.repo.ClearLectures(ctx); err != nil {
		return err
	}
	t.lectures = nil
	t.notifyLocked()
	return nil
}

// SetPaused flips the master reminder switch consulted by the dispatcher.
func (t *Tracker) SetPaused(paused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = paused
}

func (t *Tracker) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// scheduleLocked registers the lecture's reminders. A denied permission
// makes it a no-op with a single warning per process run, not one per
// lecture. Caller holds the mutex.
func (t *Tracker) scheduleLocked(ctx context.Context, l *domain.Lecture) {
	settings := l.Settings()
	if !settings.Enabled {
		return
	}
	if t.notifier.Permission(ctx) == notify.PermissionDenied {
		if !t.permWarned {
			t.log.Warn("notifications unavailable, reminders will not be delivered")
			t.permWarned = true
		}
		return
	}

	day, err := l.Weekday()
	if err != nil {
		t.log.Warn("unschedulable lecture day", zap.String("lecture", l.ID), zap.Error(err))
		return
	}
	now := time.Now()

	if settings.BeforeLecture.Enabled {
		start, err := l.Start()
		if err != nil {
			t.log.Warn("unschedulable start time", zap.String("lecture", l.ID), zap.Error(err))
		} else {
			t.putReminder(ctx, store.Reminder{
				ID:        uuid.NewString(),
				LectureID: l.ID,
				FireAt:    domain.NextTrigger(now, day, start, settings.BeforeLecture.LeadMinutes).UTC(),
				Kind:      store.KindBefore,
				Title:     fmt.Sprintf("Upcoming Lecture: %s", l.Title),
				Body:      fmt.Sprintf("Location: %s", l.Location),
			})
		}
	}

	end, err := l.End()
	if err != nil {
		return
	}
	after := []struct {
		rule  domain.AfterReminder
		kind  string
		title string
	}{
		{settings.AfterLecture.ReviewReminder, store.KindReview, "Review time: %s"},
		{settings.AfterLecture.HomeworkReminder, store.KindHomework, "Homework check: %s"},
		{settings.AfterLecture.StudyReminder, store.KindStudy, "Study session: %s"},
	}
	for _, a := range after {
		if !a.rule.Enabled {
			continue
		}
		t.putReminder(ctx, store.Reminder{
			ID:        uuid.NewString(),
			LectureID: l.ID,
			FireAt:    domain.NextAfterTrigger(now, day, end, a.rule.Duration()).UTC(),
			Kind:      a.kind,
			Title:     fmt.Sprintf(a.title, l.Title),
			Body:      l.Description,
		})
	}
}

func (t *Tracker) putReminder(ctx context.Context, rem store.Reminder) {
	if err := t.repo.PutReminder(ctx, rem); err != nil {
		// A missing reminder is the documented worst case; the add/edit
		// flow that got us here still succeeds.
		t.log.Error("register reminder failed",
			zap.String("lecture", rem.LectureID),
			zap.String("kind", rem.Kind),
			zap.Error(err))
	}
}

// notifyLocked calls subscribers with a fresh copy. Caller holds the mutex.
func (t *Tracker) notifyLocked() {
	if len(t.subs) == 0 {
		return
	}
	snapshot := make([]domain.Lecture, len(t.lectures))
	copy(snapshot, t.lectures)
	for _, fn := range t.subs {
		fn(snapshot)
	}
}
