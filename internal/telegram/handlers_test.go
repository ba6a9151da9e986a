package telegram

import (
	"testing"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

func TestParseAddLine(t *testing.T) {
	l, err := parseAddLine("Data Structures; Room 101; monday; 9:00 AM; 10:30 AM; Dr. Smith")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if l.Title != "Data Structures" || l.Location != "Room 101" || l.Instructor != "Dr. Smith" {
		t.Fatalf("fields not parsed: %+v", l)
	}
	if l.Day != "Monday" {
		t.Fatalf("day %q, want canonical Monday", l.Day)
	}

	if _, err := parseAddLine("too; few; fields"); err == nil {
		t.Fatal("expected an error for a short line")
	}
}

func TestMergeEditLine_CarriesIdentityAndSettings(t *testing.T) {
	settings := domain.DefaultReminderSettings()
	settings.BeforeLecture.LeadMinutes = 45
	current := domain.Lecture{
		ID:               "lec-1",
		CreatedAt:        "2025-01-01T00:00:00Z",
		Title:            "Algorithms",
		Location:         "Room 7",
		Day:              "Wednesday",
		StartTime:        "9:00 AM",
		EndTime:          "10:30 AM",
		Description:      "bring laptop",
		Color:            "#ff0000",
		Type:             "lab",
		ReminderSettings: &settings,
	}

	l, err := mergeEditLine(current, "Algorithms II; Room 9; friday; 11:00 AM; 12:30 PM")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if l.ID != "lec-1" || l.CreatedAt != "2025-01-01T00:00:00Z" {
		t.Fatalf("identity not carried over: %+v", l)
	}
	if l.ReminderSettings == nil || l.ReminderSettings.BeforeLecture.LeadMinutes != 45 {
		t.Fatal("reminder settings not carried over")
	}
	if l.Description != "bring laptop" || l.Color != "#ff0000" || l.Type != "lab" {
		t.Fatal("cosmetic fields not carried over")
	}
	if l.Title != "Algorithms II" || l.Day != "Friday" || l.StartTime != "11:00 AM" {
		t.Fatalf("replacement fields not applied: %+v", l)
	}
	if l.Instructor != "" {
		t.Fatalf("instructor %q, want empty when the line omits it", l.Instructor)
	}

	if _, err := mergeEditLine(current, "not a lecture line"); err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestEditLine_RoundTripsThroughAddGrammar(t *testing.T) {
	l := domain.Lecture{
		Title:      "Algorithms",
		Location:   "Room 7",
		Day:        "Wednesday",
		StartTime:  "9:00 AM",
		EndTime:    "10:30 AM",
		Instructor: "Dr. Smith",
	}
	parsed, err := parseAddLine(editLine(&l))
	if err != nil {
		t.Fatalf("parse rendered line: %v", err)
	}
	if parsed.Title != l.Title || parsed.Day != l.Day || parsed.Instructor != l.Instructor {
		t.Fatalf("rendered line does not round-trip: %+v", parsed)
	}
}
