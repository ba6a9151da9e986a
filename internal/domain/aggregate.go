package domain

import (
	"sort"
	"strings"
	"time"
)

// FilterByDayAndQuery narrows a lecture list by weekday and search text.
// day == DayAll matches every day; query matches case-insensitively
// against title, location, instructor and type, empty query matches all.
// Both predicates must hold.
func FilterByDayAndQuery(lectures []Lecture, day, query string) []Lecture {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Lecture, 0, len(lectures))
	for _, l := range lectures {
		if day != DayAll && l.Day != day {
			continue
		}
		if q != "" && !matchesQuery(&l, q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesQuery(l *Lecture, q string) bool {
	for _, field := range []string{l.Title, l.Location, l.Instructor, l.Type} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// GroupByDay partitions lectures by weekday name. Each group is sorted
// ascending by parsed start time; lectures whose start time does not
// parse sort after all parsable ones, keeping their relative order.
func GroupByDay(lectures []Lecture) map[string][]Lecture {
	groups := make(map[string][]Lecture)
	for _, l := range lectures {
		groups[l.Day] = append(groups[l.Day], l)
	}
	for day := range groups {
		SortByStart(groups[day])
	}
	return groups
}

// TodaysLectures returns the lectures whose day matches now's weekday,
// in start-time order.
func TodaysLectures(lectures []Lecture, now time.Time) []Lecture {
	today := WeekdayName(now.Weekday())
	out := FilterByDayAndQuery(lectures, today, "")
	SortByStart(out)
	return out
}

// SortByStart stable-sorts lectures in place by parsed start time,
// unparsable starts last.
func SortByStart(lectures []Lecture) {
	sort.SliceStable(lectures, func(i, j int) bool {
		return startKey(&lectures[i]) < startKey(&lectures[j])
	})
}

func startKey(l *Lecture) int {
	tod, err := l.Start()
	if err != nil {
		return 24 * 60 // past any real time of day
	}
	return tod.Minutes()
}
