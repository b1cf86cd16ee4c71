package room

import (
	"errors"
	"strings"
	"time"

	"hotel-booking/internal/domain/money"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 100 characters)")
	ErrNegativePrice   = errors.New("price per night cannot be negative")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrRoomTypeTooLong = errors.New("room type is too long (max 50 characters)")
	ErrPriceTooLarge   = errors.New("price per night exceeds the maximum of 99999999.99")
)

// MaxPricePerNight is the largest value rooms.price_per_night (NUMERIC(10,2))
// can hold.
var MaxPricePerNight = money.FromCents(9_999_999_999)

const (
	MaxRoomNameLength = 100
	MaxRoomTypeLength = 50
)

// Room is owned by the catalog. The booking workflow only reads price and
// availability from it.
type Room struct {
	id            int64
	name          string
	roomType      string
	pricePerNight money.Money
	capacity      int
	available     bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewRoom(name, roomType string, pricePerNight money.Money, capacity int, now time.Time) (*Room, error) {
	name = strings.TrimSpace(name)
	roomType = strings.TrimSpace(roomType)
	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}
	if len(roomType) > MaxRoomTypeLength {
		return nil, ErrRoomTypeTooLong
	}
	if pricePerNight.IsNegative() {
		return nil, ErrNegativePrice
	}
	if pricePerNight.GreaterThan(MaxPricePerNight) {
		return nil, ErrPriceTooLarge
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		name:          name,
		roomType:      roomType,
		pricePerNight: pricePerNight,
		capacity:      capacity,
		available:     true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructRoom(
	id int64,
	name, roomType string,
	pricePerNight money.Money,
	capacity int,
	available bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:            id,
		name:          name,
		roomType:      roomType,
		pricePerNight: pricePerNight,
		capacity:      capacity,
		available:     available,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Room) ID() int64                  { return r.id }
func (r *Room) Name() string               { return r.name }
func (r *Room) RoomType() string           { return r.roomType }
func (r *Room) PricePerNight() money.Money { return r.pricePerNight }
func (r *Room) Capacity() int              { return r.capacity }
func (r *Room) IsAvailable() bool          { return r.available }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }
