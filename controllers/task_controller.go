package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/utils"
)

// TaskController serves the task catalog and the start/verify/claim flow.
type TaskController struct {
	engine *economy.Engine
}

// NewTaskController creates a new controller instance.
func NewTaskController(engine *economy.Engine) *TaskController {
	return &TaskController{engine: engine}
}

type taskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
}

// List returns active tasks with the account's progress overlay.
func (t *TaskController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	tasks, err := t.engine.TaskCatalog(ctx.Request.Context(), userID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"tasks": tasks})
}

// Start moves a task to in_progress.
func (t *TaskController) Start(ctx *gin.Context) {
	t.transition(ctx, t.engine.StartTask)
}

// Verify moves a started task to checking.
func (t *TaskController) Verify(ctx *gin.Context) {
	t.transition(ctx, t.engine.VerifyTask)
}

func (t *TaskController) transition(ctx *gin.Context, op func(context.Context, uint, uint) error) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	var req taskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	if err := op(ctx.Request.Context(), userID, req.TaskID); err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, nil)
}

// Claim pays out a verified task.
func (t *TaskController) Claim(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "unauthorized")
		return
	}

	var req taskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	reward, err := t.engine.ClaimTask(ctx.Request.Context(), userID, req.TaskID)
	if err != nil {
		economyError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"reward": reward})
}
