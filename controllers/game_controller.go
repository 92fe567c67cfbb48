package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// GameController serves the core tap loop: profile, tap, ledger history.
type GameController struct {
	engine *economy.Engine
}

// NewGameController creates a new controller instance.
func NewGameController(engine *economy.Engine) *GameController {
	return &GameController{engine: engine}
}

// Profile returns the account with its energy-reconciled balance.
func (g *GameController) Profile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	user, balance, err := g.engine.Profile(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"user": user, "balance": balance})
}

// Tap processes one tap and returns the coin delta and remaining energy.
func (g *GameController) Tap(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	result, err := g.engine.Tap(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, result)
}

// History returns the most recent ledger entries for the account.
func (g *GameController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	txns, err := g.engine.History(ctx.Request.Context(), userID, limit)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"transactions": txns})
}
