package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotPriceable              = errors.New("no rate available")
	ErrInsufficientInventory     = errors.New("insufficient inventory")
	ErrCapacityExceeded          = errors.New("room capacity exceeded")
	ErrIncompletePrincipalGuest  = errors.New("principal guest is incomplete")
	ErrIncompleteGuestList       = errors.New("guest list is incomplete")
	ErrCreditLimitExceeded       = errors.New("agency credit limit exceeded")
	ErrHotelBlacklistedForCredit = errors.New("hotel is blacklisted for agency credit")
	ErrAlreadyProcessed          = errors.New("already processed")

	ErrInvalidDateRange          = errors.New("invalid date range")
	ErrInvalidCart               = errors.New("invalid cart")
	ErrInvalidPayment            = errors.New("invalid payment")
	ErrInsufficientWalletBalance = errors.New("insufficient wallet balance")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidTransition         = errors.New("invalid status transition")
)

// NotPriceableError names the night that has no public price.
type NotPriceableError struct {
	RoomTypeID  uint
	BoardTypeID uint
	Date        time.Time
}

func (e *NotPriceableError) Error() string {
	return fmt.Sprintf("no rate for room type %d with board type %d on %s",
		e.RoomTypeID, e.BoardTypeID, e.Date.Format(dayLayout))
}

func (e *NotPriceableError) Unwrap() error { return ErrNotPriceable }

// InventoryError is the first shortfall found while reserving rooms.
type InventoryError struct {
	RoomTypeID uint
	Date       time.Time
	Remaining  int
	Requested  int
}

func (e *InventoryError) Error() string {
	return fmt.Sprintf("room type %d on %s: %d requested, %d remaining",
		e.RoomTypeID, e.Date.Format(dayLayout), e.Requested, e.Remaining)
}

func (e *InventoryError) Unwrap() error { return ErrInsufficientInventory }

// ValidationError collects field messages for one kind of rejection.
type ValidationError struct {
	kind   error
	fields map[string][]string
}

func newValidationError(kind error) *ValidationError {
	return &ValidationError{kind: kind, fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.fields[k], ", "))
	}
	return fmt.Sprintf("%v: %s", e.kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.kind }

// err returns nil when nothing was collected.
func (e *ValidationError) err() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

func invalid(kind error, field, msg string) error {
	ve := newValidationError(kind)
	ve.add(field, msg)
	return ve
}

// AsValidationError returns the ValidationError in err's chain, if any.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
