package store

import (
	"context"
	"time"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

// Repo defines storage operations for the lecture collection and the
// pending-reminder registry.
type Repo interface {
	// SaveLectures replaces the whole persisted collection. Either the
	// new list is durable afterwards or the old value remains.
	SaveLectures(ctx context.Context, lectures []domain.Lecture) error
	// LoadLectures reads the collection. It fails open: a missing,
	// malformed or unrecognized stored value yields an empty list.
	LoadLectures(ctx context.Context) []domain.Lecture
	// ClearLectures removes the persisted collection.
	ClearLectures(ctx context.Context) error

	PutReminder(ctx context.Context, r Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	DeleteRemindersForLecture(ctx context.Context, lectureID string) error
	// ListDueReminders returns up to limit reminders with fire_at <= now,
	// fire_at ascending.
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
	// NextReminder returns the earliest pending reminder, or nil.
	NextReminder(ctx context.Context) (*Reminder, error)
	CountReminders(ctx context.Context) (int, error)

	Close() error
}
