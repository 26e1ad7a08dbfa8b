package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-reservation/models"
)

// Notifier delivers the booking confirmation to whoever sends the guest
// their voucher, SMS or email.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
}

// LogNotifier only writes the confirmation to the log. Used when no broker is
// configured.
type LogNotifier struct {
	Log *logrus.Logger
}

func (n LogNotifier) NotifyBookingConfirmed(_ context.Context, b models.Booking) error {
	log := n.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	fields := logrus.Fields{
		"booking_id":   b.ID,
		"booking_code": b.BookingCode,
		"hotel_id":     b.HotelID,
		"total_price":  b.TotalPrice,
	}
	if len(b.Guests) > 0 {
		fields["guest"] = b.Guests[0].FullName()
		fields["phone"] = b.Guests[0].PhoneNumber
	}
	log.WithFields(fields).Info("booking confirmed")
	return nil
}

// Dispatcher sends notifications after the transaction that produced them
// has committed. Sends run in the background and are retried a few times;
// Wait blocks until the ones in flight are done. A booking is marked notified
// before the send, so a confirmation that exhausts its attempts is only
// logged with its booking code and is not sent again.
type Dispatcher struct {
	notifier Notifier
	log      *logrus.Logger
	timeout  time.Duration
	attempts int
	backoff  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(n Notifier, log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{notifier: n, log: log, timeout: 15 * time.Second, attempts: 3, backoff: 500 * time.Millisecond}
}

func (d *Dispatcher) BookingConfirmed(b models.Booking) {
	if d == nil || d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		wait := d.backoff
		var err error
		for attempt := 1; attempt <= d.attempts; attempt++ {
			if err = d.send(b); err == nil {
				return
			}
			d.log.WithFields(logrus.Fields{
				"booking_id": b.ID,
				"attempt":    attempt,
				"error":      err.Error(),
			}).Warn("booking confirmation not delivered")
			if attempt < d.attempts {
				time.Sleep(wait)
				wait *= 2
			}
		}
		d.log.WithFields(logrus.Fields{
			"booking_id":   b.ID,
			"booking_code": b.BookingCode,
			"error":        err.Error(),
		}).Error("booking confirmation dropped")
	}()
}

func (d *Dispatcher) send(b models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.notifier.NotifyBookingConfirmed(ctx, b)
}

func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}
