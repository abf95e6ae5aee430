package common

import (
	"crb/src/config"
	"crb/src/db"
	"crb/src/models"
	"crb/src/types"
	"database/sql"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// Day normalizes t to midnight UTC. All range arithmetic runs on normalized
// dates so that time-of-day on inbound values can never skew a comparison.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return Day(time.Now())
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(config.DATE_PARSE_FORMAT, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Nights is the number of nights between two dates, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	diff := Day(checkOut).Sub(Day(checkIn))
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// ComputeTotalPrice is the whole pricing model: nightly rate times night
// count. Rates are whole currency units so plain integer multiplication is
// exact.
func ComputeTotalPrice(nightlyRate int64, checkIn, checkOut time.Time) (int64, error) {
	if nightlyRate < 0 {
		return 0, ErrNegativeRate
	}
	if !Day(checkOut).After(Day(checkIn)) {
		return 0, ErrInvalidRange
	}
	return nightlyRate * int64(Nights(checkIn, checkOut)), nil
}

// RangesOverlap applies the half-open [checkIn, checkOut) convention: the
// checkout day is free for a new check-in. Used identically by the server
// check and the calendar feed.
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// ValidateStayDates enforces the creation-time invariants on a candidate
// range: checkOut strictly after checkIn, checkIn not before today.
func ValidateStayDates(checkIn, checkOut time.Time) error {
	in, out := Day(checkIn), Day(checkOut)
	if !out.After(in) {
		return ErrInvalidRange
	}
	if in.Before(Today()) {
		return ErrCheckInPast
	}
	return nil
}

// CheckRoomConflict reports ErrDatesConflict when any pending or confirmed
// booking on the room overlaps [checkIn, checkOut). Pass excludeBookingID=0
// on the create path; on updates it keeps a booking from colliding with
// itself. Callers run this inside the same transaction as the write.
func CheckRoomConflict(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) error {
	var count int64
	q := tx.
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", types.BlockingStatuses).
		Where("check_in < ? AND check_out > ?", Day(checkOut), Day(checkIn))
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDatesConflict
	}
	return nil
}

// SerializableTxOpts: the conflict check and the write must observe each
// other across concurrent requests, otherwise two overlapping bookings can
// both pass the check and both insert.
var SerializableTxOpts = &sql.TxOptions{Isolation: sql.LevelSerializable}

type BookingInput struct {
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          uint
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests string
}

// CreateBooking validates dates, prices the stay, re-runs the conflict check
// and inserts, all under one serializable transaction. Returns the stored
// booking with room details joined.
func CreateBooking(userID uint, in *BookingInput) (*models.Booking, error) {
	if err := ValidateStayDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	var booking models.Booking
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: in.RoomID}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		total, err := ComputeTotalPrice(room.Price, in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}
		if err := CheckRoomConflict(tx, room.ID, in.CheckIn, in.CheckOut, 0); err != nil {
			return err
		}
		booking = models.Booking{
			UserID:          userID,
			RoomID:          room.ID,
			CheckIn:         Day(in.CheckIn),
			CheckOut:        Day(in.CheckOut),
			Guests:          in.Guests,
			GuestName:       in.GuestName,
			GuestEmail:      in.GuestEmail,
			GuestPhone:      in.GuestPhone,
			SpecialRequests: in.SpecialRequests,
			Status:          types.BOOKING_PENDING,
			TotalPrice:      total,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Room = &room
		return nil
	}, SerializableTxOpts)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking rewrites the mutable fields of a booking the user owns. The
// room is fixed; price is recomputed against it and the conflict check runs
// again with the booking itself excluded.
func UpdateBooking(userID, bookingID uint, in *BookingInput) (*models.Booking, error) {
	if err := ValidateStayDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	var booking models.Booking
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID, UserID: userID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		var room models.Room
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: booking.RoomID}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		total, err := ComputeTotalPrice(room.Price, in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}
		if err := CheckRoomConflict(tx, room.ID, in.CheckIn, in.CheckOut, booking.ID); err != nil {
			return err
		}
		booking.CheckIn = Day(in.CheckIn)
		booking.CheckOut = Day(in.CheckOut)
		booking.Guests = in.Guests
		booking.GuestName = in.GuestName
		booking.GuestEmail = in.GuestEmail
		booking.GuestPhone = in.GuestPhone
		booking.SpecialRequests = in.SpecialRequests
		booking.TotalPrice = total
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		booking.Room = &room
		return nil
	}, SerializableTxOpts)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelOwnBooking flips an owned pending booking to cancelled. Confirmed
// stays require an administrator. Returns the room the booking was held
// against so callers can invalidate its cached calendar.
func CancelOwnBooking(userID, bookingID uint) (uint, error) {
	var roomID uint
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID, UserID: userID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status != types.BOOKING_PENDING {
			return ErrNotCancellable
		}
		roomID = booking.RoomID
		return tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", types.BOOKING_CANCELLED).
			Error
	})
	return roomID, err
}

// DeleteOwnBooking hard-deletes a booking the user owns. No audit trail is
// kept.
func DeleteOwnBooking(userID, bookingID uint) (uint, error) {
	var roomID uint
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID, UserID: userID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		roomID = booking.RoomID
		return tx.Delete(&models.Booking{}, booking.ID).Error
	})
	return roomID, err
}

// TransitionBookingStatus applies an administrator status change, rejecting
// transitions out of terminal states.
func TransitionBookingStatus(tx *gorm.DB, booking *models.Booking, next types.BookingStatus) error {
	if !booking.Status.CanTransitionTo(next) {
		return ErrBadTransition
	}
	return tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: booking.ID}).
		Update("status", next).
		Error
}

// CompleteElapsedBookings marks confirmed stays whose checkout has passed as
// completed. Run periodically by the scheduler.
func CompleteElapsedBookings() {
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("status = ?", types.BOOKING_CONFIRMED).
			Where("check_out <= ?", Today()).
			Update("status", types.BOOKING_COMPLETED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("Marked %d elapsed bookings as completed\n", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error while completing elapsed bookings: %s\n", err.Error())
	}
}

// BlockingWindows returns the public calendar feed for a room: check-in,
// check-out and status of every blocking booking, nothing else.
func BlockingWindows(roomID uint) ([]types.RoomBookingWindow, error) {
	d := db.GetDb()
	var room models.Room
	if err := d.
		Model(&models.Room{}).
		Select("id").
		Where(&models.Room{ID: roomID}).
		First(&room).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	var bookings []models.Booking
	if err := d.
		Model(&models.Booking{}).
		Select("check_in", "check_out", "status").
		Where("room_id = ?", roomID).
		Where("status IN ?", types.BlockingStatuses).
		Order("check_in asc").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	windows := make([]types.RoomBookingWindow, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, types.RoomBookingWindow{
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Status:   b.Status,
		})
	}
	return windows, nil
}
