package common

import (
	"crb/src/config"
	"crb/src/types"
	"time"
)

// UnavailableDates expands each blocking booking into the calendar days it
// occupies under the half-open convention: every day from check-in up to but
// not including check-out. Days before the from floor are skipped; a client
// disables past days on its own.
func UnavailableDates(windows []types.RoomBookingWindow, from time.Time) []time.Time {
	floor := Day(from)
	seen := map[time.Time]bool{}
	var days []time.Time
	for _, w := range windows {
		for d := Day(w.CheckIn); d.Before(Day(w.CheckOut)); d = d.AddDate(0, 0, 1) {
			if d.Before(floor) || seen[d] {
				continue
			}
			seen[d] = true
			days = append(days, d)
		}
	}
	// Bookings arrive ordered by check-in but may interleave; keep the output
	// sorted for a stable feed.
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].Before(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

func FormatDates(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(config.DATE_PARSE_FORMAT))
	}
	return out
}

// RangeSelection mirrors the interactive two-click calendar: the first pick
// sets check-in, a later selectable pick sets check-out, and any click after
// a completed pair restarts from the clicked date. It is advisory only; the
// server re-checks every submission.
type RangeSelection struct {
	CheckIn  time.Time
	CheckOut time.Time

	unavailable map[time.Time]bool
	today       time.Time
}

func NewRangeSelection(unavailable []time.Time, today time.Time) *RangeSelection {
	m := make(map[time.Time]bool, len(unavailable))
	for _, d := range unavailable {
		m[Day(d)] = true
	}
	return &RangeSelection{unavailable: m, today: Day(today)}
}

// Selectable reports whether a stay can start on a day: not in the past and
// not covered by a blocking booking. A booking's checkout day stays
// selectable, matching the server's half-open overlap rule.
func (s *RangeSelection) Selectable(d time.Time) bool {
	d = Day(d)
	return !d.Before(s.today) && !s.unavailable[d]
}

// spanFree reports whether every night in [in, out) is open.
func (s *RangeSelection) spanFree(in, out time.Time) bool {
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		if s.unavailable[d] {
			return false
		}
	}
	return true
}

// Click feeds one calendar click into the selection. It returns true when the
// click produced or advanced a selection, false when it was ignored.
func (s *RangeSelection) Click(d time.Time) bool {
	d = Day(d)
	if d.Before(s.today) {
		return false
	}
	picking := !s.CheckIn.IsZero() && s.CheckOut.IsZero()
	if picking && d.After(s.CheckIn) && s.spanFree(s.CheckIn, d) {
		// A checkout click only needs the nights before it free, so it may
		// land on another booking's check-in day.
		s.CheckOut = d
		return true
	}
	if s.unavailable[d] {
		return false
	}
	// Fresh start, restart after a completed pair, or a second click that
	// cannot close the range restarts from the clicked date.
	s.CheckIn = d
	s.CheckOut = time.Time{}
	return true
}

// Complete reports whether both ends of the range have been picked.
func (s *RangeSelection) Complete() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}
