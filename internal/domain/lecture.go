package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidLecture = errors.New("invalid lecture")

// OffsetUnit qualifies an after-lecture reminder offset.
type OffsetUnit string

const (
	UnitMinutes OffsetUnit = "minutes"
	UnitHours   OffsetUnit = "hours"
)

// BeforeReminder is the pre-lecture notification rule.
type BeforeReminder struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	LeadMinutes int  `json:"leadMinutes" yaml:"leadMinutes"`
}

// AfterReminder is one post-lecture notification rule.
type AfterReminder struct {
	Enabled    bool       `json:"enabled" yaml:"enabled"`
	Offset     int        `json:"offset" yaml:"offset"`
	OffsetUnit OffsetUnit `json:"offsetUnit" yaml:"offsetUnit"`
}

// Duration converts the offset to a time.Duration. Unknown units fall
// back to minutes.
func (r AfterReminder) Duration() time.Duration {
	if r.OffsetUnit == UnitHours {
		return time.Duration(r.Offset) * time.Hour
	}
	return time.Duration(r.Offset) * time.Minute
}

// AfterReminders groups the named post-lecture reminders.
type AfterReminders struct {
	ReviewReminder   AfterReminder `json:"reviewReminder" yaml:"reviewReminder"`
	HomeworkReminder AfterReminder `json:"homeworkReminder" yaml:"homeworkReminder"`
	StudyReminder    AfterReminder `json:"studyReminder" yaml:"studyReminder"`
}

// NotificationPrefs are device-level presentation flags. They are
// persisted and reported but have no effect on trigger computation.
type NotificationPrefs struct {
	Sound            bool `json:"sound" yaml:"sound"`
	Vibration        bool `json:"vibration" yaml:"vibration"`
	ShowOnLockScreen bool `json:"showOnLockScreen" yaml:"showOnLockScreen"`
}

// ReminderSettings is the per-lecture reminder configuration.
type ReminderSettings struct {
	Enabled       bool              `json:"enabled" yaml:"enabled"`
	BeforeLecture BeforeReminder    `json:"beforeLecture" yaml:"beforeLecture"`
	AfterLecture  AfterReminders    `json:"afterLecture" yaml:"afterLecture"`
	Notifications NotificationPrefs `json:"notifications" yaml:"notifications"`
}

// DefaultReminderSettings returns the settings applied to a lecture
// that carries none: everything on, 15 minutes lead, review after 30
// minutes, homework after 2 hours, study after a day.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Enabled:       true,
		BeforeLecture: BeforeReminder{Enabled: true, LeadMinutes: 15},
		AfterLecture: AfterReminders{
			ReviewReminder:   AfterReminder{Enabled: true, Offset: 30, OffsetUnit: UnitMinutes},
			HomeworkReminder: AfterReminder{Enabled: true, Offset: 2, OffsetUnit: UnitHours},
			StudyReminder:    AfterReminder{Enabled: true, Offset: 24, OffsetUnit: UnitHours},
		},
		Notifications: NotificationPrefs{Sound: true, Vibration: true, ShowOnLockScreen: true},
	}
}

// Lecture is a recurring weekly class occurrence.
type Lecture struct {
	ID               string            `json:"id" yaml:"id"`
	Title            string            `json:"title" yaml:"title"`
	Instructor       string            `json:"instructor,omitempty" yaml:"instructor"`
	Location         string            `json:"location" yaml:"location"`
	Day              string            `json:"day" yaml:"day"`
	StartTime        string            `json:"startTime" yaml:"startTime"`
	EndTime          string            `json:"endTime" yaml:"endTime"`
	Description      string            `json:"description,omitempty" yaml:"description"`
	Color            string            `json:"color,omitempty" yaml:"color"`
	Type             string            `json:"type,omitempty" yaml:"type"`
	CreatedAt        string            `json:"createdAt" yaml:"createdAt"`
	ReminderSettings *ReminderSettings `json:"reminderSettings,omitempty" yaml:"reminderSettings"`
}

// Settings returns the lecture's reminder settings, or the defaults
// when none are attached.
func (l *Lecture) Settings() ReminderSettings {
	if l.ReminderSettings != nil {
		return *l.ReminderSettings
	}
	return DefaultReminderSettings()
}

// Start parses the lecture's start time.
func (l *Lecture) Start() (TimeOfDay, error) {
	return ParseTimeOfDay(l.StartTime)
}

// End parses the lecture's end time.
func (l *Lecture) End() (TimeOfDay, error) {
	return ParseTimeOfDay(l.EndTime)
}

// Weekday parses the lecture's day name.
func (l *Lecture) Weekday() (time.Weekday, error) {
	return ParseWeekday(l.Day)
}

// Normalize rewrites Day to its canonical name. ParseWeekday accepts any
// casing, but the day views match Day by exact string, so "monday" must
// become "Monday" before the lecture is stored.
func (l *Lecture) Normalize() {
	if d, err := ParseWeekday(l.Day); err == nil {
		l.Day = WeekdayName(d)
	}
}

// Validate checks required fields, the day name, both times and the
// start/end ordering. The first violation wins, mirroring the order the
// add form checked them in.
func (l *Lecture) Validate() error {
	if l.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidLecture)
	}
	if l.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidLecture)
	}
	if _, err := ParseWeekday(l.Day); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLecture, err)
	}
	start, err := l.Start()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidLecture, err)
	}
	end, err := l.End()
	if err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidLecture, err)
	}
	if Compare(end, start) <= 0 {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidLecture)
	}
	return nil
}
