package economy

import (
	"context"

	"github.com/shercoin/shercoin/models"
)

// TaskStatus is a catalog task with the account's progress overlay.
type TaskStatus struct {
	models.Task
	Status string `json:"status"`
}

// TaskCatalog lists active tasks with the account's status per task; tasks
// never interacted with report "new".
func (e *Engine) TaskCatalog(ctx context.Context, userID uint) ([]TaskStatus, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, storageErr("load tasks", err)
	}
	progress, err := e.store.TaskProgressList(ctx, userID)
	if err != nil {
		return nil, storageErr("load task progress", err)
	}

	byTask := make(map[uint]string, len(progress))
	for _, p := range progress {
		byTask[p.TaskID] = p.Status
	}

	out := make([]TaskStatus, 0, len(tasks))
	for _, t := range tasks {
		status := byTask[t.ID]
		if status == "" {
			status = models.TaskStatusNew
		}
		out = append(out, TaskStatus{Task: t, Status: status})
	}
	return out, nil
}

// StartTask moves a task to in_progress, creating the progress row on first
// interaction. Restarting from in_progress or checking is allowed; a done
// task is terminal.
func (e *Engine) StartTask(ctx context.Context, userID, taskID uint) error {
	unlock := e.locks.lock(userID)
	defer unlock()

	task, err := e.store.Task(ctx, taskID)
	if err != nil {
		return storageErr("load task", err)
	}
	if task == nil {
		return ErrNotFound
	}

	p, err := e.store.TaskProgress(ctx, userID, taskID)
	if err != nil {
		return storageErr("load task progress", err)
	}
	if p == nil {
		p = &models.TaskProgress{UserID: userID, TaskID: taskID}
	}
	if p.Status == models.TaskStatusDone {
		return ErrAlreadyCompleted
	}

	p.Status = models.TaskStatusInProgress
	p.UpdatedAt = e.now()
	if err := e.store.UpsertTaskProgress(ctx, p); err != nil {
		return storageErr("save task progress", err)
	}
	return nil
}

// VerifyTask moves a started task into checking. The task must have been
// started first; verifying a done task reports the completion instead.
func (e *Engine) VerifyTask(ctx context.Context, userID, taskID uint) error {
	unlock := e.locks.lock(userID)
	defer unlock()

	task, err := e.store.Task(ctx, taskID)
	if err != nil {
		return storageErr("load task", err)
	}
	if task == nil {
		return ErrNotFound
	}

	p, err := e.store.TaskProgress(ctx, userID, taskID)
	if err != nil {
		return storageErr("load task progress", err)
	}
	switch {
	case p == nil:
		return ErrInvalidState
	case p.Status == models.TaskStatusDone:
		return ErrAlreadyCompleted
	case p.Status != models.TaskStatusInProgress && p.Status != models.TaskStatusChecking:
		return ErrInvalidState
	}

	p.Status = models.TaskStatusChecking
	p.UpdatedAt = e.now()
	if err := e.store.UpsertTaskProgress(ctx, p); err != nil {
		return storageErr("save task progress", err)
	}
	return nil
}

// ClaimTask pays out a verified task: status becomes done (terminal) and the
// reward plus reward/10 XP are credited in one atomic mutation with the
// ledger append. Claiming requires the checking state, so a claim can never
// re-grant a reward.
func (e *Engine) ClaimTask(ctx context.Context, userID, taskID uint) (int64, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	task, err := e.store.Task(ctx, taskID)
	if err != nil {
		return 0, storageErr("load task", err)
	}
	if task == nil {
		return 0, ErrNotFound
	}

	p, err := e.store.TaskProgress(ctx, userID, taskID)
	if err != nil {
		return 0, storageErr("load task progress", err)
	}
	switch {
	case p == nil:
		return 0, ErrInvalidState
	case p.Status == models.TaskStatusDone:
		return 0, ErrAlreadyCompleted
	case p.Status != models.TaskStatusChecking:
		return 0, ErrInvalidState
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return 0, storageErr("load balance", err)
	}
	if bal == nil {
		return 0, ErrNotFound
	}

	p.Status = models.TaskStatusDone
	p.UpdatedAt = e.now()
	bal.Balance += task.Reward
	bal.XP += task.Reward / 10
	bal.Level = levelForXP(bal.XP)

	txn := &models.Transaction{
		UserID: userID,
		Type:   models.TxTask,
		Amount: task.Reward,
		Meta:   metaJSON(map[string]any{"task_id": task.ID}),
	}
	if err := e.store.ClaimTask(ctx, p, bal, txn); err != nil {
		return 0, storageErr("claim task", err)
	}
	return task.Reward, nil
}
