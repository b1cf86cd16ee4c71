package api

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated = httperr.Sentinel("no authenticated principal")
	errInvalidID       = httperr.Sentinel("invalid id")
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: a conflict on a missing room or booking carries both the
// conflict mark and a not-found cause.
var useCaseErrors = []errorMapping{
	{commands.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{queries.ErrInvalidFilter, http.StatusBadRequest, "Invalid filter"},
	{commands.ErrRoomConflict, http.StatusConflict, "Room is not available for the requested booking"},
	{commands.ErrBookingReference, http.StatusConflict, "Referenced booking does not exist"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{commands.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{commands.ErrAccessDenied, http.StatusForbidden, "Access denied"},
	{commands.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrPaymentNotFound, http.StatusNotFound, "Payment not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{commands.ErrBookingNotCancellable, http.StatusConflict, "Booking cannot be cancelled in its current status"},
	{commands.ErrBookingNotPayable, http.StatusConflict, "Booking no longer accepts payments"},
	{commands.ErrRefundRejected, http.StatusConflict, "Refund exceeds the net amount paid"},
	{commands.ErrIdempotencyInProgress, http.StatusConflict, "Request with this idempotency key is being processed"},
	{commands.ErrIdempotencyKeyReused, http.StatusConflict, "Idempotency key was used with a different request"},
	{commands.ErrEmailTaken, http.StatusConflict, "Email already registered"},
}

// abortWithUseCaseError maps a usecase error to its HTTP status. Unknown
// errors become 500 without leaking internals.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range useCaseErrors {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, errorDetail(err, m.status))
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func errorDetail(err error, status int) any {
	var roomErr *booking.RoomError
	if errors.As(err, &roomErr) {
		return gin.H{"room_id": roomErr.RoomID, "reason": roomErr.Err.Error()}
	}
	var refErr *commands.BookingRefError
	if errors.As(err, &refErr) {
		return gin.H{"booking_id": refErr.BookingID}
	}
	if status == http.StatusBadRequest {
		return gin.H{"reason": err.Error()}
	}
	return nil
}

func bindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", gin.H{"reason": err.Error()})
}

func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Authentication required", nil)
	}
	return principal, ok
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}
