package models

// BookingRoom is a priced cart line frozen at booking time.
type BookingRoom struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	BookingID   uint  `gorm:"index;column:booking_id" json:"booking_id"`
	RoomTypeID  uint  `gorm:"index;column:room_type_id" json:"room_type_id"`
	BoardTypeID uint  `gorm:"column:board_type_id" json:"board_type_id"`
	Quantity    int   `gorm:"column:quantity;default:1" json:"quantity"`
	ExtraAdults int   `gorm:"column:extra_adults;default:0" json:"extra_adults"`
	Children    int   `gorm:"column:children;default:0" json:"children"`
	TotalPrice  int64 `gorm:"column:total_price" json:"total_price"`
}
