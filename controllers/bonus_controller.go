package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// BonusController groups the remaining reward flows: promo codes, daily
// logins, and the referral summary.
type BonusController struct {
	engine *economy.Engine
}

// NewBonusController creates a new controller instance.
func NewBonusController(engine *economy.Engine) *BonusController {
	return &BonusController{engine: engine}
}

// ClaimPromo redeems a promo code for the account.
func (b *BonusController) ClaimPromo(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40005, "invalid request payload")
		return
	}

	reward, err := b.engine.RedeemPromo(ctx.Request.Context(), userID, strings.TrimSpace(req.Code))
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"reward": reward})
}

// DailyLoginStatus previews the claimable streak.
func (b *BonusController) DailyLoginStatus(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	state, err := b.engine.DailyLoginStatus(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, state)
}

// ClaimDailyLogin grants the daily streak reward.
func (b *BonusController) ClaimDailyLogin(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	claim, err := b.engine.ClaimDailyLogin(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, claim)
}

// Referrals returns the account's invitation summary.
func (b *BonusController) Referrals(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	summary, err := b.engine.ReferralsFor(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, summary)
}
