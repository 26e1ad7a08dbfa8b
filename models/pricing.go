package models

import "time"

// PriceTriple is the nightly price of one room: the base price plus the
// surcharge per extra adult and per child. Amounts are whole currency units.
type PriceTriple struct {
	Base       int64 `json:"base"`
	ExtraAdult int64 `json:"extra_adult"`
	Child      int64 `json:"child"`
}

// LineTotal prices one night of a cart line.
func (p PriceTriple) LineTotal(quantity, extraAdults, children int) int64 {
	q := int64(quantity)
	return p.Base*q + int64(extraAdults)*p.ExtraAdult*q + int64(children)*p.Child*q
}

// DailyPrice is the public rate of a room type with a board type on one day.
// A missing row means the combination is not sellable that day.
type DailyPrice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomTypeID  uint      `gorm:"column:room_type_id;uniqueIndex:idx_price_room_board_date" json:"room_type_id"`
	BoardTypeID uint      `gorm:"column:board_type_id;uniqueIndex:idx_price_room_board_date" json:"board_type_id"`
	Date        time.Time `gorm:"column:date;type:date;uniqueIndex:idx_price_room_board_date" json:"date"`

	BasePrice       int64 `gorm:"column:base_price" json:"base_price"`
	ExtraAdultPrice int64 `gorm:"column:extra_adult_price" json:"extra_adult_price"`
	ChildPrice      int64 `gorm:"column:child_price" json:"child_price"`
}

func (p DailyPrice) Triple() PriceTriple {
	return PriceTriple{Base: p.BasePrice, ExtraAdult: p.ExtraAdultPrice, Child: p.ChildPrice}
}

// DailyAvailability counts the rooms of a type still sellable on a day.
type DailyAvailability struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	RoomTypeID        uint      `gorm:"column:room_type_id;uniqueIndex:idx_avail_room_date" json:"room_type_id"`
	Date              time.Time `gorm:"column:date;type:date;uniqueIndex:idx_avail_room_date" json:"date"`
	RemainingQuantity int       `gorm:"column:remaining_quantity;check:remaining_quantity >= 0" json:"remaining_quantity"`
}

func (DailyAvailability) TableName() string { return "daily_availabilities" }
