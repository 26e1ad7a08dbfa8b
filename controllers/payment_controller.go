package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type PaymentRequest struct {
	TargetKind string `json:"target_kind" binding:"required"`
	TargetID   uint   `json:"target_id" binding:"required"`
	Method     string `json:"method"`
	Amount     int64  `json:"amount" binding:"required"`
	Reference  string `json:"reference"`
	// honoured for operators only
	Verified bool `json:"verified"`
}

type VerifyRequest struct {
	// false rejects the receipt
	Verified *bool `json:"verified" binding:"required"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// POST /api/payments
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	method := req.Method
	if method == "" {
		method = models.PaymentOffline
	}
	payment, err := pc.PaymentSvc.RecordPaymentConfirmation(c.Request.Context(), services.PaymentInput{
		Target:    models.PaymentTarget{Kind: req.TargetKind, ID: req.TargetID},
		Method:    method,
		Amount:    req.Amount,
		Reference: req.Reference,
		Verified:  req.Verified,
		Customer:  middleware.CurrentCustomer(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// POST /api/payments/:id/verify
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	payment, err := pc.PaymentSvc.VerifyPaymentConfirmation(c.Request.Context(), id, *req.Verified, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
