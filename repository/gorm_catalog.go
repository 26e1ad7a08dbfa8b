package repository

import (
	"context"
	"time"

	"hotel-reservation/models"
)

func (s *GormStore) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	var h models.Hotel
	if err := s.conn(ctx).First(&h, id).Error; err != nil {
		return nil, translate(err, "get hotel")
	}
	return &h, nil
}

func (s *GormStore) ListHotelsByCity(ctx context.Context, cityID uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.conn(ctx).Where("city_id = ?", cityID).Order("id").Find(&hotels).Error; err != nil {
		return nil, translate(err, "list hotels")
	}
	return hotels, nil
}

func (s *GormStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.conn(ctx).First(&rt, id).Error; err != nil {
		return nil, translate(err, "get room type")
	}
	return &rt, nil
}

func (s *GormStore) ListRoomTypesByHotels(ctx context.Context, hotelIDs []uint) ([]models.RoomType, error) {
	var rts []models.RoomType
	if len(hotelIDs) == 0 {
		return rts, nil
	}
	if err := s.conn(ctx).Where("hotel_id IN ?", hotelIDs).Order("id").Find(&rts).Error; err != nil {
		return nil, translate(err, "list room types")
	}
	return rts, nil
}

func (s *GormStore) GetBoardType(ctx context.Context, id uint) (*models.BoardType, error) {
	var bt models.BoardType
	if err := s.conn(ctx).First(&bt, id).Error; err != nil {
		return nil, translate(err, "get board type")
	}
	return &bt, nil
}

func (s *GormStore) GetAgency(ctx context.Context, id uint) (*models.Agency, error) {
	var a models.Agency
	if err := s.conn(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "get agency")
	}
	return &a, nil
}

func (s *GormStore) ListContracts(ctx context.Context, agencyID, hotelID uint, from, to time.Time) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.conn(ctx).
		Where("agency_id = ? AND hotel_id = ? AND start_date <= ? AND end_date >= ?", agencyID, hotelID, to, from).
		Order("priority DESC, id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, translate(err, "list contracts")
	}
	return contracts, nil
}

func (s *GormStore) ListStaticRates(ctx context.Context, contractIDs []uint) ([]models.StaticRate, error) {
	var rates []models.StaticRate
	if len(contractIDs) == 0 {
		return rates, nil
	}
	if err := s.conn(ctx).Where("contract_id IN ?", contractIDs).Find(&rates).Error; err != nil {
		return nil, translate(err, "list static rates")
	}
	return rates, nil
}

func (s *GormStore) GetDailyPrice(ctx context.Context, roomTypeID, boardTypeID uint, day time.Time) (*models.DailyPrice, error) {
	var p models.DailyPrice
	err := s.conn(ctx).
		Where("room_type_id = ? AND board_type_id = ? AND date = ?", roomTypeID, boardTypeID, day).
		First(&p).Error
	if err != nil {
		return nil, translate(err, "get daily price")
	}
	return &p, nil
}

func (s *GormStore) ListDailyPrices(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyPrice, error) {
	var prices []models.DailyPrice
	if len(roomTypeIDs) == 0 {
		return prices, nil
	}
	err := s.conn(ctx).
		Where("room_type_id IN ? AND date >= ? AND date < ?", roomTypeIDs, from, to).
		Order("room_type_id, board_type_id, date").
		Find(&prices).Error
	if err != nil {
		return nil, translate(err, "list daily prices")
	}
	return prices, nil
}

func (s *GormStore) ListDailyAvailability(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error) {
	var rows []models.DailyAvailability
	if len(roomTypeIDs) == 0 {
		return rows, nil
	}
	err := s.conn(ctx).
		Where("room_type_id IN ? AND date >= ? AND date < ?", roomTypeIDs, from, to).
		Order("room_type_id, date").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list availability")
	}
	return rows, nil
}

func (s *GormStore) GetCancellationPolicy(ctx context.Context, id uint) (*models.CancellationPolicy, error) {
	var p models.CancellationPolicy
	if err := s.conn(ctx).Preload("Rules").First(&p, id).Error; err != nil {
		return nil, translate(err, "get cancellation policy")
	}
	return &p, nil
}

func (s *GormStore) IsPeakDay(ctx context.Context, day time.Time) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.SpecialPeriod{}).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "check special period")
	}
	return n > 0, nil
}
