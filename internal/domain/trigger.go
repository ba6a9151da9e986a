package domain

import "time"

// TriggerOn computes the first occurrence of "leadMinutes before tod on
// day" starting from now's calendar date. The lead subtraction goes
// through time.Date so a lead that crosses midnight borrows into the
// previous day instead of clamping; the date then advances one day at a
// time (at most seven) until the weekday matches.
//
// When today already is the target weekday the result may lie in the
// past. That is the behavior the legacy scheduler had; use NextTrigger
// when a strictly future instant is required.
func TriggerOn(now time.Time, day time.Weekday, tod TimeOfDay, leadMinutes int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(),
		tod.Hour, tod.Minute-leadMinutes, 0, 0, now.Location())
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// NextTrigger is TriggerOn with the elapsed-today case resolved: a
// result at or before now is pushed out a full week, so the returned
// instant is always strictly in the future.
func NextTrigger(now time.Time, day time.Weekday, tod TimeOfDay, leadMinutes int) time.Time {
	t := TriggerOn(now, day, tod, leadMinutes)
	if !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t
}

// NextAfterTrigger computes the next future instant at offset past the
// lecture end (tod) on its weekday.
func NextAfterTrigger(now time.Time, day time.Weekday, tod TimeOfDay, offset time.Duration) time.Time {
	t := TriggerOn(now, day, tod, 0).Add(offset)
	if !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t
}
