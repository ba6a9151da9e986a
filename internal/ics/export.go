// Package ics renders the weekly lecture schedule as an iCalendar feed
// of weekly-recurring events.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

var byDay = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Build serializes the lectures as a VCALENDAR. Each lecture becomes one
// VEVENT anchored at its next occurrence after now, recurring weekly on
// its day. Lectures whose day or times do not parse are skipped.
func Build(lectures []domain.Lecture, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//SkulBell//Lecture Schedule//EN")

	for _, l := range lectures {
		day, err := l.Weekday()
		if err != nil {
			continue
		}
		start, err := l.Start()
		if err != nil {
			continue
		}
		end, err := l.End()
		if err != nil {
			continue
		}

		dtStart := domain.NextTrigger(now, day, start, 0)
		dtEnd := time.Date(dtStart.Year(), dtStart.Month(), dtStart.Day(),
			end.Hour, end.Minute, 0, 0, dtStart.Location())

		ev := cal.AddEvent(l.ID)
		ev.SetDtStampTime(now)
		ev.SetStartAt(dtStart)
		ev.SetEndAt(dtEnd)
		ev.SetSummary(l.Title)
		ev.SetLocation(l.Location)
		if l.Description != "" {
			ev.SetDescription(l.Description)
		}
		ev.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay[day])
	}

	return cal.Serialize()
}
