package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// BoostController serves the boost catalog and purchases.
type BoostController struct {
	engine *economy.Engine
}

// NewBoostController creates a new controller instance.
func NewBoostController(engine *economy.Engine) *BoostController {
	return &BoostController{engine: engine}
}

// List returns the catalog with the account's activation overlay.
func (b *BoostController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	boosts, err := b.engine.BoostCatalog(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"boosts": boosts})
}

// Activate purchases a boost for the account.
func (b *BoostController) Activate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	var req struct {
		BoostID uint `json:"boost_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	grant, err := b.engine.ActivateBoost(ctx.Request.Context(), userID, req.BoostID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"grant": grant})
}
