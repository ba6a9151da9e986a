package domain

import (
	"errors"
	"testing"
)

func validLecture() Lecture {
	return Lecture{
		Title:     "Data Structures",
		Location:  "Room 101",
		Day:       "Monday",
		StartTime: "9:00 AM",
		EndTime:   "10:30 AM",
	}
}

func TestValidate(t *testing.T) {
	l := validLecture()
	if err := l.Validate(); err != nil {
		t.Fatalf("valid lecture rejected: %v", err)
	}

	breakIt := []struct {
		name   string
		mutate func(*Lecture)
	}{
		{"missing title", func(l *Lecture) { l.Title = "" }},
		{"missing location", func(l *Lecture) { l.Location = "" }},
		{"bad day", func(l *Lecture) { l.Day = "Someday" }},
		{"bad start", func(l *Lecture) { l.StartTime = "25:00" }},
		{"bad end", func(l *Lecture) { l.EndTime = "" }},
		{"end before start", func(l *Lecture) { l.EndTime = "8:00 AM" }},
		{"end equals start", func(l *Lecture) { l.EndTime = l.StartTime }},
	}
	for _, c := range breakIt {
		l := validLecture()
		c.mutate(&l)
		err := l.Validate()
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !errors.Is(err, ErrInvalidLecture) {
			t.Errorf("%s: error %v is not ErrInvalidLecture", c.name, err)
		}
	}
}

func TestSettings_DefaultsWhenAbsent(t *testing.T) {
	l := validLecture()
	s := l.Settings()
	if !s.Enabled || !s.BeforeLecture.Enabled {
		t.Fatal("defaults should enable reminders")
	}
	if s.BeforeLecture.LeadMinutes != 15 {
		t.Fatalf("default lead = %d, want 15", s.BeforeLecture.LeadMinutes)
	}
	if s.AfterLecture.HomeworkReminder.Duration().Hours() != 2 {
		t.Fatalf("homework offset = %v, want 2h", s.AfterLecture.HomeworkReminder.Duration())
	}

	custom := DefaultReminderSettings()
	custom.Enabled = false
	l.ReminderSettings = &custom
	if l.Settings().Enabled {
		t.Fatal("attached settings should win over defaults")
	}
}
