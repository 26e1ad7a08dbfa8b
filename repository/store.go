// Package repository is the persistence boundary of the booking engine. The
// services package only talks to the Store interface; GormStore backs it with
// MySQL and the memory subpackage keeps everything in process.
package repository

import (
	"context"
	"time"

	"hotel-reservation/models"
)

// Catalog is read-only reference data: hotels, rooms, meal plans, agencies
// and their contracts, public prices and inventory counters.
type Catalog interface {
	GetHotel(ctx context.Context, id uint) (*models.Hotel, error)
	ListHotelsByCity(ctx context.Context, cityID uint) ([]models.Hotel, error)
	GetRoomType(ctx context.Context, id uint) (*models.RoomType, error)
	ListRoomTypesByHotels(ctx context.Context, hotelIDs []uint) ([]models.RoomType, error)
	GetBoardType(ctx context.Context, id uint) (*models.BoardType, error)
	GetAgency(ctx context.Context, id uint) (*models.Agency, error)

	// ListContracts returns the contracts of an agency at a hotel whose
	// validity window overlaps [from, to].
	ListContracts(ctx context.Context, agencyID, hotelID uint, from, to time.Time) ([]models.Contract, error)
	ListStaticRates(ctx context.Context, contractIDs []uint) ([]models.StaticRate, error)

	GetDailyPrice(ctx context.Context, roomTypeID, boardTypeID uint, day time.Time) (*models.DailyPrice, error)
	// ListDailyPrices returns every price row of the room types with a date in [from, to).
	ListDailyPrices(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyPrice, error)
	// ListDailyAvailability returns the inventory rows of the room types with a date in [from, to).
	ListDailyAvailability(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error)

	GetCancellationPolicy(ctx context.Context, id uint) (*models.CancellationPolicy, error)
	IsPeakDay(ctx context.Context, day time.Time) (bool, error)
}

// Inventory holds the write side of the availability ledger and agency credit.
// Lock methods must run inside WithinTransaction.
type Inventory interface {
	// LockDailyAvailability locks the rows of the room types with a date in
	// [from, to), ordered by room type then date.
	LockDailyAvailability(ctx context.Context, roomTypeIDs []uint, from, to time.Time) ([]models.DailyAvailability, error)
	SaveDailyAvailability(ctx context.Context, rows []models.DailyAvailability) error

	LockAgency(ctx context.Context, id uint) (*models.Agency, error)
	SaveAgency(ctx context.Context, agency *models.Agency) error
	CreateAgencyTransaction(ctx context.Context, entry *models.AgencyTransaction) error
}

type Bookings interface {
	// CreateBooking inserts the booking together with its rooms and guests.
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	LockBooking(ctx context.Context, id uint) (*models.Booking, error)
	// SaveBooking writes back the mutable state of a booking. Rooms and guests
	// are immutable after creation and are not touched.
	SaveBooking(ctx context.Context, booking *models.Booking) error
}

type Payments interface {
	CreatePaymentConfirmation(ctx context.Context, pc *models.PaymentConfirmation) error
	GetPaymentConfirmation(ctx context.Context, id uint) (*models.PaymentConfirmation, error)
	LockPaymentConfirmation(ctx context.Context, id uint) (*models.PaymentConfirmation, error)
	SavePaymentConfirmation(ctx context.Context, pc *models.PaymentConfirmation) error
	FindPaymentConfirmation(ctx context.Context, target models.PaymentTarget, reference string) (*models.PaymentConfirmation, error)
	ListPaymentConfirmations(ctx context.Context, target models.PaymentTarget) ([]models.PaymentConfirmation, error)
}

type Wallets interface {
	GetWalletByUser(ctx context.Context, userID uint) (*models.Wallet, error)
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	LockWallet(ctx context.Context, id uint) (*models.Wallet, error)
	SaveWallet(ctx context.Context, wallet *models.Wallet) error

	CreateWalletTransaction(ctx context.Context, wt *models.WalletTransaction) error
	GetWalletTransaction(ctx context.Context, id uint) (*models.WalletTransaction, error)
	LockWalletTransaction(ctx context.Context, id uint) (*models.WalletTransaction, error)
	SaveWalletTransaction(ctx context.Context, wt *models.WalletTransaction) error
	ListWalletTransactions(ctx context.Context, walletID uint) ([]models.WalletTransaction, error)
}

type Store interface {
	Catalog
	Inventory
	Bookings
	Payments
	Wallets

	// WithinTransaction runs fn against a transactional view of the store.
	// Returning an error rolls back every write made through tx. Nested calls
	// on tx join the outer transaction.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
