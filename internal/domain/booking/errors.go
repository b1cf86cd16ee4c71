package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate             = errors.New("check-in and check-out must be valid dates (YYYY-MM-DD)")
	ErrCheckOutNotAfterCheckIn = errors.New("check-out date must be after check-in date")
	ErrNoRooms                 = errors.New("at least one room must be selected")
	ErrInvalidRoomID           = errors.New("room ids must be positive integers")
	ErrDuplicateRoom           = errors.New("room ids must be unique")
	ErrInvalidStatus           = errors.New("invalid booking status")
	ErrInvalidTransition       = errors.New("booking status transition not allowed")
	ErrStayTooLong             = errors.New("stay cannot exceed 365 nights")
	ErrTotalTooLarge           = errors.New("booking total exceeds the maximum of 9999999999.99")

	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrRoomAlreadyBooked = errors.New("room is already booked for the requested dates")
)

// RoomError identifies the room that made a booking request impossible.
type RoomError struct {
	RoomID int64
	Err    error
}

func (e *RoomError) Error() string {
	return fmt.Sprintf("room %d: %s", e.RoomID, e.Err)
}

func (e *RoomError) Unwrap() error {
	return e.Err
}

func NewRoomError(roomID int64, err error) *RoomError {
	return &RoomError{RoomID: roomID, Err: err}
}
