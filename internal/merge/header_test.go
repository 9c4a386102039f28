package merge

import (
	"testing"
	"time"
)

func TestHeaderTime(t *testing.T) {
	utc := func(year int, month time.Month, day, hour, min, sec int) int64 {
		return time.Date(year, month, day, hour, min, sec, 0, time.UTC).Unix()
	}
	cases := []struct {
		in   string
		want int64
	}{
		// Positive offsets are east of UTC: local wall time minus offset.
		{"2013-12-11 11:30+0100", utc(2013, time.December, 11, 10, 30, 0)},
		{"2013-12-11 11:30-0130", utc(2013, time.December, 11, 13, 0, 0)},
		{"2013-12-11 11:30:45+0000", utc(2013, time.December, 11, 11, 30, 45)},
		// Half-hour offsets must count their minutes.
		{"2020-6-1 9:5+0530", utc(2020, time.June, 1, 3, 35, 0)},
		// Placeholders and garbage parse as the epoch.
		{"YEAR-MO-DA HO:MI+ZONE", 0},
		{"", 0},
		{"not a date", 0},
	}
	for _, tc := range cases {
		if got := headerTime(tc.in); got != tc.want {
			t.Errorf("headerTime(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHeaderTimeOrdering(t *testing.T) {
	real1 := headerTime("2013-12-11 11:40+0100")
	real2 := headerTime("2013-12-11 11:50+0100")
	placeholder := headerTime("YEAR-MO-DA HO:MI+ZONE")

	if !(real2 > real1) {
		t.Error("later timestamp must compare greater")
	}
	if !(real1 > placeholder) {
		t.Error("a real timestamp must beat the placeholder")
	}
	// Identical wall times in different zones are different instants.
	if headerTime("2013-12-11 11:30+0100") >= headerTime("2013-12-11 11:30+0000") {
		t.Error("offset must shift the instant toward UTC")
	}
}
