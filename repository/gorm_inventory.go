package repository

import (
	"context"
	"time"

	"hotel-reservation/models"
)

func (s *GormStore) LockDailyAvailability(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error) {
	var rows []models.DailyAvailability
	if len(roomTypeIDs) == 0 {
		return rows, nil
	}
	// one statement with a fixed order so concurrent bookings lock in the same sequence
	err := s.forUpdate(ctx).
		Where("room_type_id IN ? AND date >= ? AND date < ?", roomTypeIDs, from, to).
		Order("room_type_id, date").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "lock availability")
	}
	return rows, nil
}

func (s *GormStore) SaveDailyAvailability(ctx context.Context, rows []models.DailyAvailability) error {
	for _, row := range rows {
		err := s.conn(ctx).Model(&models.DailyAvailability{}).
			Where("id = ?", row.ID).
			Update("remaining_quantity", row.RemainingQuantity).Error
		if err != nil {
			return translate(err, "save availability")
		}
	}
	return nil
}

func (s *GormStore) LockAgency(ctx context.Context, id uint) (*models.Agency, error) {
	var a models.Agency
	if err := s.forUpdate(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "lock agency")
	}
	return &a, nil
}

func (s *GormStore) SaveAgency(ctx context.Context, agency *models.Agency) error {
	err := s.conn(ctx).Model(agency).
		Select("current_balance", "updated_at").
		Updates(agency).Error
	return translate(err, "save agency")
}

func (s *GormStore) CreateAgencyTransaction(ctx context.Context, entry *models.AgencyTransaction) error {
	return translate(s.conn(ctx).Create(entry).Error, "create agency transaction")
}
