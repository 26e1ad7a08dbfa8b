package services

import (
	"fmt"
	"regexp"
	"strings"

	"hotel-reservation/models"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{10}$`)
	mobilePattern     = regexp.MustCompile(`^09\d{9}$`)
)

// validateGuests checks the guest list of a booking. The principal guest
// (the first one) needs a name, a mobile number and an identity document:
// a national id for residents, a passport and nationality for foreigners.
// Companions only need a name.
func validateGuests(guests []models.Guest) error {
	if len(guests) == 0 {
		return invalid(ErrIncompleteGuestList, "guests", "at least the principal guest is required")
	}

	p := guests[0]
	principal := newValidationError(ErrIncompletePrincipalGuest)
	if strings.TrimSpace(p.FirstName) == "" {
		principal.add("guests[0].first_name", "is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		principal.add("guests[0].last_name", "is required")
	}
	if phone := strings.TrimSpace(p.PhoneNumber); phone == "" {
		principal.add("guests[0].phone_number", "is required")
	} else if !mobilePattern.MatchString(phone) {
		principal.add("guests[0].phone_number", "must be an 11 digit mobile number starting with 09")
	}
	if p.IsForeign {
		if strings.TrimSpace(p.PassportNumber) == "" {
			principal.add("guests[0].passport_number", "is required for foreign guests")
		}
		if strings.TrimSpace(p.Nationality) == "" {
			principal.add("guests[0].nationality", "is required for foreign guests")
		}
	} else if id := strings.TrimSpace(p.NationalID); id == "" {
		principal.add("guests[0].national_id", "is required")
	} else if !nationalIDPattern.MatchString(id) {
		principal.add("guests[0].national_id", "must be 10 digits")
	}
	if err := principal.err(); err != nil {
		return err
	}

	companions := newValidationError(ErrIncompleteGuestList)
	for i, g := range guests[1:] {
		if strings.TrimSpace(g.FirstName) == "" || strings.TrimSpace(g.LastName) == "" {
			companions.add(fmt.Sprintf("guests[%d]", i+1), "first_name and last_name are required")
		}
	}
	return companions.err()
}

// validateCapacity checks every line against its room type and the guest
// count against what the booked rooms can hold.
func validateCapacity(items []CartItem, roomTypes map[uint]models.RoomType, guestCount int) error {
	ve := newValidationError(ErrCapacityExceeded)
	capacity := 0
	for i, it := range items {
		rt := roomTypes[it.RoomTypeID]
		if it.ExtraAdults > rt.ExtraCapacity {
			ve.add(fmt.Sprintf("items[%d].extra_adults", i), fmt.Sprintf("room type %d allows %d extra adults", rt.ID, rt.ExtraCapacity))
		}
		if it.Children > rt.ChildCapacity {
			ve.add(fmt.Sprintf("items[%d].children", i), fmt.Sprintf("room type %d allows %d children", rt.ID, rt.ChildCapacity))
		}
		capacity += (rt.BaseCapacity + it.ExtraAdults + it.Children) * it.Quantity
	}
	if guestCount > capacity {
		ve.add("guests", fmt.Sprintf("%d guests exceed the %d places booked", guestCount, capacity))
	}
	return ve.err()
}

func normalizeGuests(guests []models.Guest) []models.Guest {
	out := make([]models.Guest, len(guests))
	for i, g := range guests {
		g.ID = 0
		g.BookingID = 0
		g.Position = i
		g.FirstName = strings.TrimSpace(g.FirstName)
		g.LastName = strings.TrimSpace(g.LastName)
		g.NationalID = strings.TrimSpace(g.NationalID)
		g.PassportNumber = strings.TrimSpace(g.PassportNumber)
		g.Nationality = strings.TrimSpace(g.Nationality)
		g.PhoneNumber = strings.TrimSpace(g.PhoneNumber)
		g.Email = strings.TrimSpace(g.Email)
		out[i] = g
	}
	return out
}
