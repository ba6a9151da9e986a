package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/domain"
	"github.com/Smartnaka/SkulBell/internal/notify"
	"github.com/Smartnaka/SkulBell/internal/store"
	"github.com/Smartnaka/SkulBell/internal/tracker"
)

// Dispatcher polls the reminder registry and delivers due notifications.
// Fired reminders roll forward one week, so a weekly lecture keeps its
// reminder without the add/edit flow being involved again. A cron entry
// sends the morning digest of today's lectures.
type Dispatcher struct {
	repo       store.Repo
	notifier   notify.Notifier
	trk        *tracker.Tracker
	log        *zap.Logger
	interval   time.Duration
	digestSpec string
}

func New(repo store.Repo, notifier notify.Notifier, trk *tracker.Tracker, log *zap.Logger, interval time.Duration, digestSpec string) *Dispatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Dispatcher{
		repo:       repo,
		notifier:   notifier,
		trk:        trk,
		log:        log,
		interval:   interval,
		digestSpec: digestSpec,
	}
}

// Run starts the cron digest and the dispatch loop until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) {
	c := cron.New()
	if d.digestSpec != "" {
		if _, err := c.AddFunc(d.digestSpec, func() { d.sendDigest(ctx) }); err != nil {
			d.log.Error("invalid digest schedule", zap.String("spec", d.digestSpec), zap.Error(err))
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("dispatcher stopping")
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick performs one dispatch cycle: find due reminders, send, roll forward.
func (d *Dispatcher) tick(ctx context.Context) {
	if d.trk.Paused() {
		return
	}
	now := time.Now().UTC()

	due, err := d.repo.ListDueReminders(ctx, now, 100)
	if err != nil {
		d.log.Error("ListDueReminders failed", zap.Error(err))
		return
	}
	for _, rem := range due {
		if err := d.notifier.Send(ctx, rem.Title, rem.Body); err != nil {
			// Leave the row in place; the next tick retries.
			d.log.Error("send failed", zap.String("reminder", rem.ID), zap.Error(err))
			continue
		}
		if err := d.repo.DeleteReminder(ctx, rem.ID); err != nil {
			d.log.Error("delete fired reminder failed", zap.String("reminder", rem.ID), zap.Error(err))
			continue
		}
		d.rollForward(ctx, rem)
	}
}

// rollForward re-registers a fired reminder for the following week while
// its lecture still exists with reminders enabled.
func (d *Dispatcher) rollForward(ctx context.Context, rem store.Reminder) {
	l, ok := d.trk.Get(rem.LectureID)
	if !ok || !l.Settings().Enabled {
		return
	}
	next := rem
	next.ID = uuid.NewString()
	next.FireAt = rem.FireAt.AddDate(0, 0, 7)
	if err := d.repo.PutReminder(ctx, next); err != nil {
		d.log.Error("roll reminder forward failed", zap.String("lecture", rem.LectureID), zap.Error(err))
	}
}

// sendDigest delivers the morning summary of today's lectures.
func (d *Dispatcher) sendDigest(ctx context.Context) {
	if d.trk.Paused() {
		return
	}
	today := domain.TodaysLectures(d.trk.Lectures(), time.Now())
	if len(today) == 0 {
		return
	}

	var b strings.Builder
	for _, l := range today {
		fmt.Fprintf(&b, "• %s — %s, %s\n", timeRange(&l), l.Title, l.Location)
	}
	title := fmt.Sprintf("Today's Lectures (%d)", len(today))
	if err := d.notifier.Send(ctx, title, strings.TrimRight(b.String(), "\n")); err != nil {
		d.log.Error("digest send failed", zap.Error(err))
	}
}

func timeRange(l *domain.Lecture) string {
	start, err1 := l.Start()
	end, err2 := l.End()
	if err1 != nil || err2 != nil {
		return "N/A"
	}
	return start.Format12h() + " - " + end.Format12h()
}
