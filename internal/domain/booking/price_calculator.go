package booking

import (
	"hotel-booking/internal/domain/money"
)

type RoomRate struct {
	RoomID        int64
	PricePerNight money.Money
}

type PriceCalculator interface {
	Total(stay Stay, rates []RoomRate) money.Money
}

// NightlyPriceCalculator charges every room its nightly price for each night.
// Amounts are integral cents, so the total is already at currency precision.
type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (NightlyPriceCalculator) Total(stay Stay, rates []RoomRate) money.Money {
	nights := stay.Nights()
	var total money.Money
	for _, r := range rates {
		total = total.Add(r.PricePerNight.Times(nights))
	}
	return total
}
