package queries

import "hotel-booking/internal/pkg/errs"

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrRoomNotFound    = errs.New("room not found")
	ErrPaymentNotFound = errs.New("payment not found")
	ErrUserNotFound    = errs.New("user not found")
	ErrUserInactive    = errs.New("user inactive")
	ErrAccessDenied    = errs.New("access denied")
	ErrInvalidFilter   = errs.New("invalid filter")
)
