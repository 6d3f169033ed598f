package domain

import (
	"fmt"
	"time"
)

// Weekday is an ISO-8601 day of week: Monday is 1, Sunday is 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ISOWeekday converts a time.Time to its ISO weekday.
func ISOWeekday(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Weekday(wd)
}

// Valid reports whether w is within Monday..Sunday.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return time.Weekday(int(w) % 7).String()
}

// TimeOfDay is a wall-clock time expressed as seconds since midnight,
// 0 through 86399.
type TimeOfDay int

// TimeOfDayOf extracts the time of day from t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("parse time of day %q: want HH:MM or HH:MM:SS", s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// MarshalJSON encodes the time as an "HH:MM:SS" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS" strings.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("time of day must be a string, got %s", data)
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DaypartingSchedule is one allowed run window for a campaign: a weekday plus
// a same-day time range. The range is half-open, [Start, End): a window ending
// at 18:00 does not include 18:00:00, so adjacent windows never double-cover
// a boundary instant. Overnight wraparound is not representable; Start must be
// before End.
type DaypartingSchedule struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	Day        Weekday   `json:"day_of_week"`
	Start      TimeOfDay `json:"start_time"`
	End        TimeOfDay `json:"end_time"`
	Active     bool      `json:"is_active"`
}

// Contains reports whether now falls inside this window. Inactive windows
// contain nothing.
func (s DaypartingSchedule) Contains(now time.Time) bool {
	if !s.Active {
		return false
	}
	if ISOWeekday(now) != s.Day {
		return false
	}
	t := TimeOfDayOf(now)
	return t >= s.Start && t < s.End
}

// ScheduleSet is the full list of a campaign's dayparting windows. Multiple
// windows on the same weekday are allowed; eligibility is their union.
type ScheduleSet []DaypartingSchedule

// HasActive reports whether any window in the set is active.
func (ss ScheduleSet) HasActive() bool {
	for _, s := range ss {
		if s.Active {
			return true
		}
	}
	return false
}

// Within reports whether the campaign may run at now on the time axis alone.
// A set with no active windows imposes no restriction and is always within.
func (ss ScheduleSet) Within(now time.Time) bool {
	restricted := false
	for _, s := range ss {
		if !s.Active {
			continue
		}
		restricted = true
		if s.Contains(now) {
			return true
		}
	}
	return !restricted
}
