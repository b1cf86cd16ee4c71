package shared

// BookingConflict names a room already held by another live booking.
type BookingConflict struct {
	RoomID    int64
	BookingID int64
}
