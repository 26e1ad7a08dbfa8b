// controllers/booking_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type CreateBookingRequest struct {
	CartRequest
	Guests        []models.Guest `json:"guests"`
	PaymentMethod string         `json:"payment_method"`
}

type ChangeRequest struct {
	Type string `json:"type" binding:"required"`
}

type WalletPaymentRequest struct {
	// zero pays the outstanding balance
	Amount int64 `json:"amount"`
}

type BookingController struct {
	BookingSvc      *services.BookingService
	CancellationSvc *services.CancellationService
	WalletSvc       *services.WalletService
	MaxNights       int
}

func NewBookingController(bookings *services.BookingService, cancellations *services.CancellationService, wallets *services.WalletService, maxNights int) *BookingController {
	return &BookingController{
		BookingSvc:      bookings,
		CancellationSvc: cancellations,
		WalletSvc:       wallets,
		MaxNights:       maxNights,
	}
}

// POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	stay, err := services.ParseDateRange(req.CheckIn, req.CheckOut, bc.MaxNights)
	if err != nil {
		respondError(c, err)
		return
	}

	booking, err := bc.BookingSvc.CreateBooking(c.Request.Context(), services.BookingInput{
		Items:         req.Items,
		Stay:          stay,
		Guests:        req.Guests,
		PaymentMethod: req.PaymentMethod,
		Customer:      middleware.CurrentCustomer(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GET /api/bookings/:id
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.GetBooking(c.Request.Context(), id, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.CancellationSvc.CancelBooking(c.Request.Context(), id, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/requests
func (bc *BookingController) RequestChange(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	booking, err := bc.CancellationSvc.RequestChange(c.Request.Context(), id, middleware.CurrentCustomer(c), req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/wallet-payment
func (bc *BookingController) PayFromWallet(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req WalletPaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	booking, err := bc.WalletSvc.PayFromWallet(c.Request.Context(), id, middleware.CurrentCustomer(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/checkout
func (bc *BookingController) CheckoutBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.CheckOut(c.Request.Context(), id, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
