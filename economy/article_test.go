package economy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shercoin/shercoin/models"
)

func TestCompleteArticle(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	articleID := store.addArticle(1500)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	reward, err := eng.CompleteArticle(ctx, userID, articleID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reward != 1500 {
		t.Errorf("reward = %d, want 1500", reward)
	}

	bal := store.balanceOf(userID)
	if bal.Balance != 1500 || bal.XP != 150 {
		t.Errorf("balance = %+v", bal)
	}
	if txn := store.lastTxn(); txn.Type != models.TxArticle || txn.Amount != 1500 {
		t.Errorf("ledger row = %+v", txn)
	}

	// Only once per account.
	if _, err := eng.CompleteArticle(ctx, userID, articleID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion err = %v, want ErrAlreadyCompleted", err)
	}
	if bal := store.balanceOf(userID); bal.Balance != 1500 {
		t.Errorf("double payout: balance = %d", bal.Balance)
	}
}

func TestCompleteArticleUnknown(t *testing.T) {
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(time.Now()))
	eng, _ := newTestEngine(store, time.Now())

	if _, err := eng.CompleteArticle(context.Background(), userID, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestArticleCatalogOverlay(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	read := store.addArticle(1000)
	unread := store.addArticle(2000)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if _, err := eng.CompleteArticle(ctx, userID, read); err != nil {
		t.Fatalf("complete: %v", err)
	}

	list, err := eng.ArticleCatalog(ctx, userID)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	byID := make(map[uint]bool, len(list))
	for _, a := range list {
		byID[a.ID] = a.IsCompleted
	}
	if !byID[read] {
		t.Error("read article not flagged completed")
	}
	if byID[unread] {
		t.Error("unread article flagged completed")
	}
}
