package common

import (
	"crb/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"single night", date(2026, 3, 10), date(2026, 3, 11), 1},
		{"three nights", date(2026, 3, 10), date(2026, 3, 13), 3},
		{"across month boundary", date(2026, 3, 30), date(2026, 4, 2), 3},
		{"across year boundary", date(2026, 12, 30), date(2027, 1, 2), 3},
		{"time of day is ignored", time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC), time.Date(2026, 3, 13, 0, 5, 0, 0, time.UTC), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestComputeTotalPrice(t *testing.T) {
	t.Run("three nights at 100000 per night", func(t *testing.T) {
		total, err := ComputeTotalPrice(100_000, date(2026, 3, 10), date(2026, 3, 13))
		assert.Nil(t, err)
		assert.Equal(t, int64(300_000), total)
	})

	t.Run("single night", func(t *testing.T) {
		total, err := ComputeTotalPrice(250_000, date(2026, 3, 10), date(2026, 3, 11))
		assert.Nil(t, err)
		assert.Equal(t, int64(250_000), total)
	})

	t.Run("zero-length stay is rejected", func(t *testing.T) {
		_, err := ComputeTotalPrice(100_000, date(2026, 3, 10), date(2026, 3, 10))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := ComputeTotalPrice(100_000, date(2026, 3, 13), date(2026, 3, 10))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := ComputeTotalPrice(-1, date(2026, 3, 10), date(2026, 3, 13))
		assert.ErrorIs(t, err, ErrNegativeRate)
	})

	t.Run("free room prices at zero", func(t *testing.T) {
		total, err := ComputeTotalPrice(0, date(2026, 3, 10), date(2026, 3, 13))
		assert.Nil(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a1   time.Time
		a2   time.Time
		b1   time.Time
		b2   time.Time
		want bool
	}{
		{
			"back-to-back stays do not overlap",
			date(2026, 3, 10), date(2026, 3, 13),
			date(2026, 3, 13), date(2026, 3, 16),
			false,
		},
		{
			"new stay ending on an existing check-in does not overlap",
			date(2026, 3, 7), date(2026, 3, 10),
			date(2026, 3, 10), date(2026, 3, 13),
			false,
		},
		{
			"single shared night overlaps",
			date(2026, 3, 10), date(2026, 3, 13),
			date(2026, 3, 12), date(2026, 3, 16),
			true,
		},
		{
			"containment overlaps",
			date(2026, 3, 10), date(2026, 3, 20),
			date(2026, 3, 12), date(2026, 3, 14),
			true,
		},
		{
			"identical ranges overlap",
			date(2026, 3, 10), date(2026, 3, 13),
			date(2026, 3, 10), date(2026, 3, 13),
			true,
		},
		{
			"disjoint ranges do not overlap",
			date(2026, 3, 10), date(2026, 3, 13),
			date(2026, 3, 20), date(2026, 3, 23),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.a1, tt.a2, tt.b1, tt.b2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, RangesOverlap(tt.b1, tt.b2, tt.a1, tt.a2))
		})
	}
}

func TestValidateStayDates(t *testing.T) {
	today := Today()

	t.Run("check-in today is allowed", func(t *testing.T) {
		assert.Nil(t, ValidateStayDates(today, today.AddDate(0, 0, 2)))
	})

	t.Run("future stay is allowed", func(t *testing.T) {
		assert.Nil(t, ValidateStayDates(today.AddDate(0, 0, 10), today.AddDate(0, 0, 14)))
	})

	t.Run("check-in yesterday is rejected", func(t *testing.T) {
		err := ValidateStayDates(today.AddDate(0, 0, -1), today.AddDate(0, 0, 2))
		assert.ErrorIs(t, err, ErrCheckInPast)
	})

	t.Run("check-out on check-in day is rejected", func(t *testing.T) {
		err := ValidateStayDates(today.AddDate(0, 0, 3), today.AddDate(0, 0, 3))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from types.BookingStatus
		to   types.BookingStatus
		want bool
	}{
		{types.BOOKING_PENDING, types.BOOKING_CONFIRMED, true},
		{types.BOOKING_PENDING, types.BOOKING_CANCELLED, true},
		{types.BOOKING_PENDING, types.BOOKING_COMPLETED, false},
		{types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED, true},
		{types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED, true},
		{types.BOOKING_CONFIRMED, types.BOOKING_PENDING, false},
		{types.BOOKING_CANCELLED, types.BOOKING_PENDING, false},
		{types.BOOKING_CANCELLED, types.BOOKING_CONFIRMED, false},
		{types.BOOKING_COMPLETED, types.BOOKING_CANCELLED, false},
		{types.BOOKING_PENDING, types.BOOKING_PENDING, false},
		{types.BOOKING_PENDING, types.BookingStatus("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
