package common

import (
	"crb/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window(in, out time.Time) types.RoomBookingWindow {
	return types.RoomBookingWindow{CheckIn: in, CheckOut: out, Status: types.BOOKING_CONFIRMED}
}

func TestUnavailableDates(t *testing.T) {
	from := date(2026, 3, 1)

	t.Run("expands a range excluding the checkout day", func(t *testing.T) {
		days := UnavailableDates([]types.RoomBookingWindow{
			window(date(2026, 3, 10), date(2026, 3, 13)),
		}, from)
		assert.Equal(t, []time.Time{
			date(2026, 3, 10),
			date(2026, 3, 11),
			date(2026, 3, 12),
		}, days)
	})

	t.Run("merges overlapping windows without duplicates", func(t *testing.T) {
		days := UnavailableDates([]types.RoomBookingWindow{
			window(date(2026, 3, 10), date(2026, 3, 13)),
			window(date(2026, 3, 12), date(2026, 3, 15)),
		}, from)
		assert.Equal(t, []time.Time{
			date(2026, 3, 10),
			date(2026, 3, 11),
			date(2026, 3, 12),
			date(2026, 3, 13),
			date(2026, 3, 14),
		}, days)
	})

	t.Run("sorts days from interleaved windows", func(t *testing.T) {
		days := UnavailableDates([]types.RoomBookingWindow{
			window(date(2026, 3, 20), date(2026, 3, 22)),
			window(date(2026, 3, 10), date(2026, 3, 12)),
		}, from)
		assert.Equal(t, []time.Time{
			date(2026, 3, 10),
			date(2026, 3, 11),
			date(2026, 3, 20),
			date(2026, 3, 21),
		}, days)
	})

	t.Run("skips days before the floor", func(t *testing.T) {
		days := UnavailableDates([]types.RoomBookingWindow{
			window(date(2026, 2, 27), date(2026, 3, 3)),
		}, from)
		assert.Equal(t, []time.Time{
			date(2026, 3, 1),
			date(2026, 3, 2),
		}, days)
	})

	t.Run("no windows yields no days", func(t *testing.T) {
		days := UnavailableDates(nil, from)
		assert.Empty(t, days)
	})
}

func TestFormatDates(t *testing.T) {
	out := FormatDates([]time.Time{date(2026, 3, 10), date(2026, 3, 11)})
	assert.Equal(t, []string{"2026-03-10", "2026-03-11"}, out)
}

func TestRangeSelection(t *testing.T) {
	today := date(2026, 3, 1)
	booked := []time.Time{
		date(2026, 3, 10),
		date(2026, 3, 11),
		date(2026, 3, 12),
	}

	t.Run("past and booked days are not selectable", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.False(t, s.Selectable(date(2026, 2, 28)))
		assert.False(t, s.Selectable(date(2026, 3, 11)))
		assert.True(t, s.Selectable(date(2026, 3, 5)))
	})

	t.Run("checkout day of a booking stays selectable", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Selectable(date(2026, 3, 13)))
	})

	t.Run("two clicks produce a range", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Click(date(2026, 3, 5)))
		assert.True(t, s.Click(date(2026, 3, 8)))
		assert.True(t, s.Complete())
		assert.Equal(t, date(2026, 3, 5), s.CheckIn)
		assert.Equal(t, date(2026, 3, 8), s.CheckOut)
	})

	t.Run("clicking a booked day is ignored", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.False(t, s.Click(date(2026, 3, 11)))
		assert.False(t, s.Complete())
	})

	t.Run("second click across a booked span restarts", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Click(date(2026, 3, 8)))
		assert.True(t, s.Click(date(2026, 3, 14)))
		assert.False(t, s.Complete())
		assert.Equal(t, date(2026, 3, 14), s.CheckIn)
	})

	t.Run("second click before check-in restarts", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Click(date(2026, 3, 8)))
		assert.True(t, s.Click(date(2026, 3, 5)))
		assert.False(t, s.Complete())
		assert.Equal(t, date(2026, 3, 5), s.CheckIn)
	})

	t.Run("click after a completed pair starts over", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Click(date(2026, 3, 5)))
		assert.True(t, s.Click(date(2026, 3, 8)))
		assert.True(t, s.Click(date(2026, 3, 20)))
		assert.False(t, s.Complete())
		assert.Equal(t, date(2026, 3, 20), s.CheckIn)
		assert.True(t, s.CheckOut.IsZero())
	})

	t.Run("range ending on a booked check-in is allowed", func(t *testing.T) {
		s := NewRangeSelection(booked, today)
		assert.True(t, s.Click(date(2026, 3, 8)))
		assert.True(t, s.Click(date(2026, 3, 10)))
		assert.True(t, s.Complete())
		assert.Equal(t, date(2026, 3, 10), s.CheckOut)
	})
}
