package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-reservation/repository"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// first match wins
var errorMappings = []errorMapping{
	{services.ErrNotPriceable, http.StatusUnprocessableEntity, "error.notPriceable"},
	{services.ErrInsufficientInventory, http.StatusConflict, "error.insufficientInventory"},
	{services.ErrCapacityExceeded, http.StatusBadRequest, "error.capacityExceeded"},
	{services.ErrIncompletePrincipalGuest, http.StatusBadRequest, "error.incompletePrincipalGuest"},
	{services.ErrIncompleteGuestList, http.StatusBadRequest, "error.incompleteGuestList"},
	{services.ErrCreditLimitExceeded, http.StatusPaymentRequired, "error.creditLimitExceeded"},
	{services.ErrHotelBlacklistedForCredit, http.StatusPaymentRequired, "error.hotelBlacklistedForCredit"},
	{services.ErrInsufficientWalletBalance, http.StatusPaymentRequired, "error.insufficientWalletBalance"},
	{services.ErrAlreadyProcessed, http.StatusConflict, "error.alreadyProcessed"},
	{services.ErrInvalidTransition, http.StatusConflict, "error.invalidTransition"},
	{services.ErrInvalidDateRange, http.StatusBadRequest, "error.invalidDateRange"},
	{services.ErrInvalidCart, http.StatusBadRequest, "error.invalidCart"},
	{services.ErrInvalidPayment, http.StatusBadRequest, "error.invalidPayment"},
	{services.ErrForbidden, http.StatusForbidden, "error.forbidden"},
	{repository.ErrNotFound, http.StatusNotFound, "error.notFound"},
	{repository.ErrDuplicate, http.StatusConflict, "error.duplicate"},
}

// respondError maps a service error onto the JSON error body.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if ve := services.AsValidationError(err); ve != nil {
			utils.JSONFieldErrors(c, m.status, m.code, err.Error(), ve.Fields())
			return
		}
		utils.JSONError(c, m.status, m.code, err.Error())
		return
	}
	_ = c.Error(err)
	utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "error.badRequest", message)
}

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// queryUint reads an optional numeric query parameter; missing is zero.
func queryUint(c *gin.Context, name string) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
