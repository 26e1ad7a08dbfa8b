package repository

import (
	"context"

	"gorm.io/gorm"

	"hotel-reservation/models"
)

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translate(s.conn(ctx).Create(booking).Error, "create booking")
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.conn(ctx).
		Preload("Rooms").
		Preload("Guests", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&b, id).Error
	if err != nil {
		return nil, translate(err, "get booking")
	}
	return &b, nil
}

func (s *GormStore) LockBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.forUpdate(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, "lock booking")
	}
	if err := s.conn(ctx).Where("booking_id = ?", id).Order("id").Find(&b.Rooms).Error; err != nil {
		return nil, translate(err, "load booking rooms")
	}
	if err := s.conn(ctx).Where("booking_id = ?", id).Order("position").Find(&b.Guests).Error; err != nil {
		return nil, translate(err, "load booking guests")
	}
	return &b, nil
}

func (s *GormStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	err := s.conn(ctx).Model(booking).
		Select("status", "paid_amount", "cancellation_fee", "refund_amount", "notification_sent", "checked_out_at", "updated_at").
		Updates(booking).Error
	return translate(err, "save booking")
}
