package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"hotel-reservation/models"
)

type failingNotifier struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (n *failingNotifier) NotifyBookingConfirmed(context.Context, models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.failures < 0 || n.calls <= n.failures {
		return errors.New("broker down")
	}
	return nil
}

func TestDispatcherRetriesFailedDelivery(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := &failingNotifier{failures: 2}
	d := NewDispatcher(n, log)
	d.backoff = time.Millisecond
	d.BookingConfirmed(models.Booking{ID: 5, BookingCode: "BK0005"})
	d.Wait()

	if n.calls != 3 {
		t.Fatalf("expected delivery on the third attempt, got %d calls", n.calls)
	}
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			t.Fatalf("delivered confirmation logged as dropped: %+v", e)
		}
	}
}

func TestDispatcherLogsDroppedDelivery(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := &failingNotifier{failures: -1}
	d := NewDispatcher(n, log)
	d.backoff = time.Millisecond
	d.BookingConfirmed(models.Booking{ID: 5, BookingCode: "BK0005"})
	d.Wait()

	if n.calls != d.attempts {
		t.Fatalf("expected %d attempts, got %d", d.attempts, n.calls)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel || entry.Data["booking_id"] != uint(5) || entry.Data["booking_code"] != "BK0005" {
		t.Fatalf("expected a dropped delivery error, got %+v", entry)
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.BookingConfirmed(models.Booking{ID: 1})
	d.Wait()
}

func TestLogNotifier(t *testing.T) {
	log, hook := test.NewNullLogger()
	err := LogNotifier{Log: log}.NotifyBookingConfirmed(context.Background(), models.Booking{
		ID:     3,
		Guests: []models.Guest{{FirstName: "Ali", LastName: "Rezaei", PhoneNumber: "09120000000"}},
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Data["guest"] != "Ali Rezaei" || entry.Data["phone"] != "09120000000" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}
