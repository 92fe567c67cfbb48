package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/middleware"
	"github.com/shercoin/shercoin/utils"
)

// getUserID extracts the authenticated account id set by AuthRequired.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// economyError maps an engine sentinel to the uniform error envelope. Every
// sentinel has exactly one status/code pair; unknown errors are treated as
// storage failures and logged.
func economyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, economy.ErrRateLimited):
		utils.Error(ctx, http.StatusTooManyRequests, 42902, "too many taps, slow down")
	case errors.Is(err, economy.ErrInsufficientEnergy):
		utils.Error(ctx, http.StatusBadRequest, 40031, "not enough energy")
	case errors.Is(err, economy.ErrInsufficientFunds):
		utils.Error(ctx, http.StatusBadRequest, 40032, "insufficient balance")
	case errors.Is(err, economy.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40430, "not found")
	case errors.Is(err, economy.ErrAlreadyCompleted):
		utils.Error(ctx, http.StatusBadRequest, 40033, "already completed")
	case errors.Is(err, economy.ErrAlreadyUsed):
		utils.Error(ctx, http.StatusBadRequest, 40034, "promo code already used")
	case errors.Is(err, economy.ErrAlreadyClaimed):
		utils.Error(ctx, http.StatusBadRequest, 40035, "already claimed today")
	case errors.Is(err, economy.ErrLimitReached):
		utils.Error(ctx, http.StatusBadRequest, 40036, "promo code limit reached")
	case errors.Is(err, economy.ErrExpired):
		utils.Error(ctx, http.StatusBadRequest, 40037, "promo code expired")
	case errors.Is(err, economy.ErrInvalidState):
		utils.Error(ctx, http.StatusBadRequest, 40038, "operation not allowed in current state")
	default:
		utils.Sugar.Errorf("economy operation failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "operation failed, try again")
	}
}
