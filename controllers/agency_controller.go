package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation/middleware"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type LedgerRequest struct {
	Type        string `json:"type" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

type AgencyController struct {
	AgencySvc *services.AgencyService
}

func NewAgencyController(svc *services.AgencyService) *AgencyController {
	return &AgencyController{AgencySvc: svc}
}

// POST /api/agencies/:id/ledger
func (ac *AgencyController) RecordLedgerEntry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	entry, err := ac.AgencySvc.RecordLedgerEntry(c.Request.Context(), services.LedgerInput{
		AgencyID:    id,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Customer:    middleware.CurrentCustomer(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, entry)
}
