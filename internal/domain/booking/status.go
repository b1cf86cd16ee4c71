package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPartial   Status = "partial"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPartial, StatusPaid, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanCancel() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPartial, StatusPaid:
		return true
	default:
		return false
	}
}

// HoldsRooms reports whether a booking in this status still occupies its rooms
// for the stay dates.
func (s Status) HoldsRooms() bool {
	return s != StatusCancelled
}
