package models

import (
	"strings"
	"time"
)

// RoomType is one sellable room category of a hotel. Inventory and prices are
// kept per room type, never per physical room.
type RoomType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	HotelID     uint   `gorm:"index;column:hotel_id" json:"hotel_id"`
	Name        string `gorm:"size:120" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	BaseCapacity  int `gorm:"column:base_capacity;default:1" json:"base_capacity"`
	ExtraCapacity int `gorm:"column:extra_capacity;default:0" json:"extra_capacity"`
	ChildCapacity int `gorm:"column:child_capacity;default:0" json:"child_capacity"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}

// MaxOccupancy is the number of people a single room can hold.
func (rt RoomType) MaxOccupancy() int {
	return rt.BaseCapacity + rt.ExtraCapacity + rt.ChildCapacity
}

// BoardType is a meal plan (room only, bed & breakfast, half board...).
type BoardType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex" json:"name"`
	Code        string `gorm:"size:10;uniqueIndex" json:"code"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
