package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"hotel-reservation/models"
	"hotel-reservation/repository/memory"
)

const (
	cityID      = 1
	hotelID     = 1
	otherHotel  = 2
	doubleRoom  = 10
	suiteRoom   = 11
	twinRoom    = 20
	breakfast   = 1
	halfBoard   = 2
	agencyID    = 7
	policyID    = 3
	guestUserID = 100
	agentUserID = 200
	operatorID  = 900
)

// day0 is the first night every fixture stay starts on.
var day0 = time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func stay(from, nights int) DateRange {
	return DateRange{CheckIn: day(from), CheckOut: day(from + nights)}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	store    *memory.Store
	log      *logrus.Logger
	notifier *recordingNotifier
	dispatch *Dispatcher
	search   *SearchService
	bookings *BookingService
	payments *PaymentService
	wallets  *WalletService
	cancels  *CancellationService
}

// newFixture seeds one city with two hotels:
//
//	hotel 1 (instant): Double (10) with BB every day and HB missing on day 1,
//	                   Suite (11) with BB every day
//	hotel 2 (manual):  Twin (20) with BB every day and a single room per night
//
// Prices cover days 0..9 and every room type has stock on each of them.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	normal := uint(policyID)

	records := []any{
		&models.City{ID: cityID, Name: "Isfahan", Slug: "isfahan"},
		&models.CancellationPolicy{ID: policyID, Name: "standard", Rules: []models.CancellationRule{
			{DaysBeforeMin: 0, DaysBeforeMax: 1, PenaltyType: models.PenaltyPercentFirstNight, PenaltyValue: 100},
			{DaysBeforeMin: 2, DaysBeforeMax: 7, PenaltyType: models.PenaltyPercentTotal, PenaltyValue: 20},
		}},
		&models.Hotel{ID: hotelID, CityID: cityID, Name: "Abbasi", Stars: 5,
			Amenities: datatypes.JSONSlice[string]{"Pool", "wifi"}, BookingWorkflow: models.WorkflowInstant,
			CancellationPolicyNormalID: &normal},
		&models.Hotel{ID: otherHotel, CityID: cityID, Name: "Kowsar", Stars: 3,
			Amenities: datatypes.JSONSlice[string]{"wifi"}, BookingWorkflow: models.WorkflowManualReview},
		&models.BoardType{ID: breakfast, Name: "Bed and breakfast", Code: "BB"},
		&models.BoardType{ID: halfBoard, Name: "Half board", Code: "HB"},
		&models.RoomType{ID: doubleRoom, HotelID: hotelID, Name: "Double", BaseCapacity: 2, ExtraCapacity: 1, ChildCapacity: 1},
		&models.RoomType{ID: suiteRoom, HotelID: hotelID, Name: "Suite", BaseCapacity: 2, ExtraCapacity: 2, ChildCapacity: 2},
		&models.RoomType{ID: twinRoom, HotelID: otherHotel, Name: "Twin", BaseCapacity: 2, ExtraCapacity: 0, ChildCapacity: 0},
		&models.Agency{ID: agencyID, Name: "Zagros Travel", CreditLimit: 10_000_000},
	}
	for i := 0; i < 10; i++ {
		records = append(records,
			&models.DailyPrice{RoomTypeID: doubleRoom, BoardTypeID: breakfast, Date: day(i), BasePrice: 1_000_000, ExtraAdultPrice: 200_000, ChildPrice: 100_000},
			&models.DailyPrice{RoomTypeID: suiteRoom, BoardTypeID: breakfast, Date: day(i), BasePrice: 2_000_000, ExtraAdultPrice: 300_000, ChildPrice: 150_000},
			&models.DailyPrice{RoomTypeID: twinRoom, BoardTypeID: breakfast, Date: day(i), BasePrice: 800_000},
			&models.DailyAvailability{RoomTypeID: doubleRoom, Date: day(i), RemainingQuantity: 5},
			&models.DailyAvailability{RoomTypeID: suiteRoom, Date: day(i), RemainingQuantity: 2},
			&models.DailyAvailability{RoomTypeID: twinRoom, Date: day(i), RemainingQuantity: 1},
		)
		if i != 1 {
			records = append(records, &models.DailyPrice{RoomTypeID: doubleRoom, BoardTypeID: halfBoard, Date: day(i), BasePrice: 600_000})
		}
	}
	if err := store.Insert(records...); err != nil {
		t.Fatalf("seed: %v", err)
	}

	log := quietLogger()
	notifier := &recordingNotifier{}
	dispatch := NewDispatcher(notifier, log)
	return &fixture{
		store:    store,
		log:      log,
		notifier: notifier,
		dispatch: dispatch,
		search:   NewSearchService(store, nil, 0, log),
		bookings: NewBookingService(store, &sequenceCodes{}, dispatch, log),
		payments: NewPaymentService(store, dispatch, log),
		wallets:  NewWalletService(store, dispatch, log),
		cancels:  NewCancellationService(store, log),
	}
}

func (f *fixture) insert(t *testing.T, records ...any) {
	t.Helper()
	if err := f.store.Insert(records...); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func (f *fixture) remaining(t *testing.T, roomTypeID uint, d time.Time) int {
	t.Helper()
	rows, err := f.store.ListDailyAvailability(context.Background(), []uint{roomTypeID}, d, d.AddDate(0, 0, 1))
	if err != nil || len(rows) != 1 {
		t.Fatalf("availability of %d on %s: rows=%d err=%v", roomTypeID, d.Format(dayLayout), len(rows), err)
	}
	return rows[0].RemainingQuantity
}

func (f *fixture) booking(t *testing.T, id uint) *models.Booking {
	t.Helper()
	b, err := f.store.GetBooking(context.Background(), id)
	if err != nil {
		t.Fatalf("get booking %d: %v", id, err)
	}
	return b
}

// book creates a public booking of one Double with breakfast.
func (f *fixture) book(t *testing.T, customer models.Customer, s DateRange) *models.Booking {
	t.Helper()
	b, err := f.bookings.CreateBooking(context.Background(), BookingInput{
		Items:    []CartItem{{RoomTypeID: doubleRoom, BoardTypeID: breakfast, Quantity: 1}},
		Stay:     s,
		Guests:   []models.Guest{principal()},
		Customer: customer,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func guest() models.Customer { return models.Customer{UserID: guestUserID} }

func agent() models.Customer {
	id := uint(agencyID)
	return models.Customer{UserID: agentUserID, AgencyID: &id}
}

func operator() models.Customer { return models.Customer{UserID: operatorID, Role: models.RoleOperator} }

func principal() models.Guest {
	return models.Guest{FirstName: "Sara", LastName: "Ahmadi", PhoneNumber: "09121234567", NationalID: "0012345678"}
}

func companion(name string) models.Guest {
	return models.Guest{FirstName: name, LastName: "Ahmadi"}
}

type sequenceCodes struct {
	mu sync.Mutex
	n  int
}

func (c *sequenceCodes) NextCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("BK%04d", c.n)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Booking
}

func (n *recordingNotifier) NotifyBookingConfirmed(_ context.Context, b models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, b)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
