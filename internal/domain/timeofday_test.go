package domain

import "testing"

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

func TestParseTimeOfDay_Accepts(t *testing.T) {
	cases := []struct {
		in     string
		h, min int
	}{
		{"9:00 AM", 9, 0},
		{"09:00", 9, 0},
		{"11:45 PM", 23, 45},
		{"12:00 AM", 0, 0},
		{"12:30 PM", 12, 30},
		{"00:00", 0, 0},
		{"23:59", 23, 59},
		{"7:05", 7, 5},
		{"  1:00 pm ", 13, 0},
	}
	for _, c := range cases {
		tod := mustParse(t, c.in)
		if tod.Hour != c.h || tod.Minute != c.min {
			t.Errorf("ParseTimeOfDay(%q) = %d:%d, want %d:%d", c.in, tod.Hour, tod.Minute, c.h, c.min)
		}
	}
}

func TestParseTimeOfDay_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "25:00", "9:60 AM", "900", "9.00", "13:00 PM", "0:30 AM",
		"9:5", "nine o'clock", "9:00 XM", "9:00 AM PM",
	} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q): expected error", in)
		}
	}
}

func TestCompare(t *testing.T) {
	if got := Compare(mustParse(t, "9:00 AM"), mustParse(t, "1:00 PM")); got != -1 {
		t.Errorf("9:00 AM vs 1:00 PM = %d, want -1", got)
	}
	if got := Compare(mustParse(t, "11:59 PM"), mustParse(t, "12:00 AM")); got != 1 {
		t.Errorf("11:59 PM vs 12:00 AM = %d, want 1", got)
	}
	if got := Compare(mustParse(t, "14:30"), mustParse(t, "2:30 PM")); got != 0 {
		t.Errorf("14:30 vs 2:30 PM = %d, want 0", got)
	}
}

func TestFormat12h(t *testing.T) {
	cases := []struct {
		tod  TimeOfDay
		want string
	}{
		{TimeOfDay{Hour: 9, Minute: 0}, "9:00 AM"},
		{TimeOfDay{Hour: 0, Minute: 5}, "12:05 AM"},
		{TimeOfDay{Hour: 12, Minute: 0}, "12:00 PM"},
		{TimeOfDay{Hour: 23, Minute: 45}, "11:45 PM"},
		{TimeOfDay{Hour: 14, Minute: 7}, "2:07 PM"},
	}
	for _, c := range cases {
		if got := c.tod.Format12h(); got != c.want {
			t.Errorf("Format12h(%v) = %q, want %q", c.tod, got, c.want)
		}
	}
}

func TestFormat12h_RoundTrips(t *testing.T) {
	for _, in := range []string{"12:00 AM", "9:30 AM", "12:15 PM", "11:59 PM"} {
		tod := mustParse(t, in)
		back := mustParse(t, tod.Format12h())
		if Compare(tod, back) != 0 {
			t.Errorf("round trip %q via %q changed the time", in, tod.Format12h())
		}
	}
}
