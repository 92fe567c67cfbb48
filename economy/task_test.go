package economy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shercoin/shercoin/models"
)

func TestTaskLifecycle(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	taskID := store.addTask(3000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if err := eng.StartTask(ctx, userID, taskID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.VerifyTask(ctx, userID, taskID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	reward, err := eng.ClaimTask(ctx, userID, taskID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if reward != 3000 {
		t.Errorf("reward = %d, want 3000", reward)
	}

	bal := store.balanceOf(userID)
	if bal.Balance != 3000 {
		t.Errorf("balance = %d, want 3000", bal.Balance)
	}
	if bal.XP != 300 {
		t.Errorf("xp = %d, want 300", bal.XP)
	}
	if bal.Level != 1 {
		t.Errorf("level = %d, want 1", bal.Level)
	}
	if txn := store.lastTxn(); txn.Type != models.TxTask || txn.Amount != 3000 {
		t.Errorf("ledger row = %+v", txn)
	}
}

func TestTaskClaimRequiresVerification(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	taskID := store.addTask(3000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	// Never started.
	if _, err := eng.ClaimTask(ctx, userID, taskID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("claim without start err = %v, want ErrInvalidState", err)
	}

	// Started but not verified.
	if err := eng.StartTask(ctx, userID, taskID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := eng.ClaimTask(ctx, userID, taskID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("claim from in_progress err = %v, want ErrInvalidState", err)
	}
	if bal := store.balanceOf(userID); bal.Balance != 0 {
		t.Errorf("rejected claim paid out: %d", bal.Balance)
	}
}

func TestTaskDoneIsTerminal(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	taskID := store.addTask(3000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if err := eng.StartTask(ctx, userID, taskID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.VerifyTask(ctx, userID, taskID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := eng.ClaimTask(ctx, userID, taskID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if err := eng.StartTask(ctx, userID, taskID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("restart err = %v, want ErrAlreadyCompleted", err)
	}
	if err := eng.VerifyTask(ctx, userID, taskID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("re-verify err = %v, want ErrAlreadyCompleted", err)
	}
	if _, err := eng.ClaimTask(ctx, userID, taskID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("re-claim err = %v, want ErrAlreadyCompleted", err)
	}
	if bal := store.balanceOf(userID); bal.Balance != 3000 {
		t.Errorf("double payout: balance = %d", bal.Balance)
	}
}

func TestTaskRestartBeforeDone(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	taskID := store.addTask(3000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if err := eng.StartTask(ctx, userID, taskID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.VerifyTask(ctx, userID, taskID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	// Restarting from checking is allowed and rewinds the state.
	if err := eng.StartTask(ctx, userID, taskID); err != nil {
		t.Fatalf("restart: %v", err)
	}
	p, err := store.TaskProgress(ctx, userID, taskID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Status != models.TaskStatusInProgress {
		t.Errorf("status after restart = %q, want %q", p.Status, models.TaskStatusInProgress)
	}
}

func TestVerifyTaskNotStarted(t *testing.T) {
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(time.Now()))
	taskID := store.addTask(3000)
	eng, _ := newTestEngine(store, time.Now())

	if err := eng.VerifyTask(context.Background(), userID, taskID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestTaskCatalogOverlay(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	started := store.addTask(1000)
	untouched := store.addTask(2000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if err := eng.StartTask(ctx, userID, started); err != nil {
		t.Fatalf("start: %v", err)
	}

	list, err := eng.TaskCatalog(ctx, userID)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	byID := make(map[uint]string, len(list))
	for _, ts := range list {
		byID[ts.ID] = ts.Status
	}
	if byID[started] != models.TaskStatusInProgress {
		t.Errorf("started task status = %q", byID[started])
	}
	if byID[untouched] != models.TaskStatusNew {
		t.Errorf("untouched task status = %q", byID[untouched])
	}
}

func TestTaskUnknown(t *testing.T) {
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(time.Now()))
	eng, _ := newTestEngine(store, time.Now())

	if err := eng.StartTask(context.Background(), userID, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
