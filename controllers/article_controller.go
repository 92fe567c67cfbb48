package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// ArticleController serves learning articles and their read rewards.
type ArticleController struct {
	engine *economy.Engine
}

// NewArticleController creates a new controller instance.
func NewArticleController(engine *economy.Engine) *ArticleController {
	return &ArticleController{engine: engine}
}

// List returns active articles flagged with completion.
func (a *ArticleController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	articles, err := a.engine.ArticleCatalog(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"articles": articles})
}

// Complete records a one-time read completion and pays the reward.
func (a *ArticleController) Complete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	var req struct {
		ArticleID uint `json:"article_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	reward, err := a.engine.CompleteArticle(ctx.Request.Context(), userID, req.ArticleID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"reward": reward})
}
