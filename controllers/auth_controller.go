package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/config"
	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// AuthController verifies Telegram identities and issues session tokens.
type AuthController struct {
	engine *economy.Engine
}

// NewAuthController creates a new controller instance.
func NewAuthController(engine *economy.Engine) *AuthController {
	return &AuthController{engine: engine}
}

type telegramAuthRequest struct {
	utils.TelegramLogin
	ReferrerID *uint  `json:"referrer_id"`
	Language   string `json:"language"`
}

// TelegramLogin authenticates via the Telegram login widget, creating the
// account (and granting the referral bonus) on first contact.
func (a *AuthController) TelegramLogin(ctx *gin.Context) {
	var req telegramAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	cfg := config.Get()
	if !utils.VerifyTelegramLogin(cfg.TelegramBotToken, req.TelegramLogin) {
		if !cfg.AllowDevAuth {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid telegram signature")
			return
		}
		utils.Sugar.Warnw("accepting unverified telegram payload, dev auth enabled", "telegram_id", req.ID)
	}

	authTime := time.Unix(req.AuthDate, 0)
	if !cfg.AllowDevAuth && time.Since(authTime) > 5*time.Minute {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "telegram login expired")
		return
	}

	user, created, err := a.engine.Login(ctx.Request.Context(), economy.NewAccount{
		TelegramID: req.ID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		Language:   req.Language,
		ReferrerID: req.ReferrerID,
	})
	if err != nil {
		economyError(ctx, err)
		return
	}
	if created {
		utils.Sugar.Infow("account created", "user_id", user.ID, "telegram_id", user.TelegramID)
	}

	token, err := utils.GenerateToken(user.ID, user.TelegramID, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}
