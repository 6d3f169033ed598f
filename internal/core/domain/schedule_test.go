package domain

import (
	"encoding/json"
	"testing"
	"time"
)

// TestISOWeekday pins the ISO mapping, in particular Sunday = 7.
func TestISOWeekday(t *testing.T) {
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	if got := ISOWeekday(monday); got != Monday {
		t.Fatalf("ISOWeekday(monday) = %d, want %d", got, Monday)
	}
	if got := ISOWeekday(sunday); got != Sunday {
		t.Fatalf("ISOWeekday(sunday) = %d, want %d", got, Sunday)
	}
}

// TestParseTimeOfDay accepts both HH:MM and HH:MM:SS.
func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:00")
	if err != nil {
		t.Fatalf("parse 09:00: %v", err)
	}
	if got != 9*3600 {
		t.Fatalf("09:00 = %d seconds, want %d", got, 9*3600)
	}

	got, err = ParseTimeOfDay("17:30:15")
	if err != nil {
		t.Fatalf("parse 17:30:15: %v", err)
	}
	if got != 17*3600+30*60+15 {
		t.Fatalf("17:30:15 = %d seconds, want %d", got, 17*3600+30*60+15)
	}
	if got.String() != "17:30:15" {
		t.Fatalf("String = %q, want 17:30:15", got.String())
	}

	for _, bad := range []string{"25:00", "9am", ""} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("parse %q: expected error", bad)
		}
	}
}

// TestScheduleContainsHalfOpen checks the window boundaries: the start
// instant is inside, the end instant is not.
func TestScheduleContainsHalfOpen(t *testing.T) {
	s := DaypartingSchedule{Day: Monday, Start: 9 * 3600, End: 17 * 3600, Active: true}
	monday := func(h, m, sec int) time.Time {
		return time.Date(2025, time.June, 2, h, m, sec, 0, time.UTC)
	}

	if !s.Contains(monday(9, 0, 0)) {
		t.Fatal("start instant should be inside the window")
	}
	if !s.Contains(monday(16, 59, 59)) {
		t.Fatal("last second should be inside the window")
	}
	if s.Contains(monday(17, 0, 0)) {
		t.Fatal("end instant should be outside the window")
	}
	if s.Contains(monday(8, 59, 59)) {
		t.Fatal("instant before start should be outside the window")
	}
}

// TestScheduleContainsWrongDay ensures the weekday must match.
func TestScheduleContainsWrongDay(t *testing.T) {
	s := DaypartingSchedule{Day: Tuesday, Start: 0, End: 86399, Active: true}
	monday := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	if s.Contains(monday) {
		t.Fatal("Tuesday window should not contain a Monday instant")
	}
}

// TestScheduleInactive ensures disabled windows contain nothing.
func TestScheduleInactive(t *testing.T) {
	s := DaypartingSchedule{Day: Monday, Start: 0, End: 86399, Active: false}
	monday := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	if s.Contains(monday) {
		t.Fatal("inactive window should contain nothing")
	}
}

// TestScheduleSetWithin covers the union semantics and the unrestricted case.
func TestScheduleSetWithin(t *testing.T) {
	monday := func(h int) time.Time {
		return time.Date(2025, time.June, 2, h, 0, 0, 0, time.UTC)
	}

	// No windows at all: unrestricted.
	if !(ScheduleSet{}).Within(monday(3)) {
		t.Fatal("empty set should be unrestricted")
	}

	// Only inactive windows: still unrestricted.
	inactive := ScheduleSet{{Day: Monday, Start: 9 * 3600, End: 17 * 3600, Active: false}}
	if !inactive.Within(monday(3)) {
		t.Fatal("set with only inactive windows should be unrestricted")
	}
	if inactive.HasActive() {
		t.Fatal("HasActive should be false")
	}

	// Morning and evening windows: eligibility is their union.
	set := ScheduleSet{
		{Day: Monday, Start: 9 * 3600, End: 12 * 3600, Active: true},
		{Day: Monday, Start: 14 * 3600, End: 18 * 3600, Active: true},
	}
	if !set.Within(monday(10)) {
		t.Fatal("10:00 should be inside the morning window")
	}
	if set.Within(monday(13)) {
		t.Fatal("13:00 falls between the windows")
	}
	if !set.Within(monday(15)) {
		t.Fatal("15:00 should be inside the evening window")
	}
	if set.Within(monday(20)) {
		t.Fatal("20:00 is after both windows")
	}
}

// TestTimeOfDayJSON round-trips the wire form.
func TestTimeOfDayJSON(t *testing.T) {
	out, err := json.Marshal(TimeOfDay(9*3600 + 30*60))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"09:30:00"` {
		t.Fatalf("marshal = %s, want \"09:30:00\"", out)
	}

	var tod TimeOfDay
	if err := json.Unmarshal([]byte(`"17:00"`), &tod); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tod != 17*3600 {
		t.Fatalf("unmarshal = %d, want %d", tod, 17*3600)
	}
	if err := json.Unmarshal([]byte(`1700`), &tod); err == nil {
		t.Fatal("bare number should be rejected")
	}
}
