package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation/middleware"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type DepositRequest struct {
	Amount    int64  `json:"amount" binding:"required"`
	Reference string `json:"reference"`
}

type WalletController struct {
	WalletSvc *services.WalletService
}

func NewWalletController(svc *services.WalletService) *WalletController {
	return &WalletController{WalletSvc: svc}
}

// GET /api/wallet
func (wc *WalletController) GetWallet(c *gin.Context) {
	wallet, err := wc.WalletSvc.GetWallet(c.Request.Context(), middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, wallet)
}

// POST /api/wallet/deposits
func (wc *WalletController) RequestDeposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	wt, err := wc.WalletSvc.RequestDeposit(c.Request.Context(), middleware.CurrentCustomer(c), req.Amount, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, wt)
}
