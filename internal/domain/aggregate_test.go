package domain

import (
	"testing"
	"time"
)

func lec(title, day, start string) Lecture {
	return Lecture{ID: title, Title: title, Location: "Room 1", Day: day, StartTime: start, EndTime: "11:59 PM"}
}

func TestGroupByDay_SortsWithinDay(t *testing.T) {
	groups := GroupByDay([]Lecture{
		lec("Algorithms", "Monday", "2:00 PM"),
		lec("Calculus", "Monday", "9:00 AM"),
		lec("Physics", "Monday", "11:00 AM"),
	})
	monday := groups["Monday"]
	if len(monday) != 3 {
		t.Fatalf("Monday group has %d lectures, want 3", len(monday))
	}
	want := []string{"9:00 AM", "11:00 AM", "2:00 PM"}
	for i, w := range want {
		if monday[i].StartTime != w {
			t.Errorf("position %d: got %q, want %q", i, monday[i].StartTime, w)
		}
	}
}

func TestGroupByDay_UnparsableStartsSortLast(t *testing.T) {
	groups := GroupByDay([]Lecture{
		lec("Broken A", "Tuesday", "TBA"),
		lec("Seminar", "Tuesday", "4:00 PM"),
		lec("Broken B", "Tuesday", ""),
		lec("Lab", "Tuesday", "10:00 AM"),
	})
	tue := groups["Tuesday"]
	want := []string{"Lab", "Seminar", "Broken A", "Broken B"}
	for i, w := range want {
		if tue[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, tue[i].Title, w)
		}
	}
}

func TestFilterByDayAndQuery(t *testing.T) {
	csc := lec("CSC 101", "Monday", "9:00 AM")
	csc.Instructor = "Dr. Ada"
	hall := lec("History", "Tuesday", "1:00 PM")
	hall.Location = "CSC Building"
	phys := lec("Physics", "Friday", "3:00 PM")

	all := []Lecture{csc, hall, phys}

	got := FilterByDayAndQuery(all, DayAll, "csc")
	if len(got) != 2 {
		t.Fatalf("query %q matched %d lectures, want 2", "csc", len(got))
	}

	got = FilterByDayAndQuery(all, "Monday", "csc")
	if len(got) != 1 || got[0].Title != "CSC 101" {
		t.Fatalf("day+query filter: got %v", got)
	}

	got = FilterByDayAndQuery(all, "Friday", "")
	if len(got) != 1 || got[0].Title != "Physics" {
		t.Fatalf("day-only filter: got %v", got)
	}

	if got = FilterByDayAndQuery(all, DayAll, "ada"); len(got) != 1 {
		t.Fatalf("instructor match: got %d, want 1", len(got))
	}

	if got = FilterByDayAndQuery(all, DayAll, ""); len(got) != 3 {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
}

func TestTodaysLectures(t *testing.T) {
	now := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.Local) // a Monday
	got := TodaysLectures([]Lecture{
		lec("Calculus", "Monday", "9:00 AM"),
		lec("History", "Tuesday", "1:00 PM"),
		lec("Algorithms", "Monday", "8:00 AM"),
	}, now)
	if len(got) != 2 {
		t.Fatalf("got %d lectures, want 2", len(got))
	}
	if got[0].Title != "Algorithms" || got[1].Title != "Calculus" {
		t.Fatalf("wrong order: %q, %q", got[0].Title, got[1].Title)
	}
}
