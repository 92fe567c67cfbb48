package economy

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRedeemPromo(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	store.addPromo("BONUS", 2500, 10, nil)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	reward, err := eng.RedeemPromo(ctx, userID, "BONUS")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if reward != 2500 {
		t.Errorf("reward = %d, want 2500", reward)
	}
	if bal := store.balanceOf(userID); bal.Balance != 2500 {
		t.Errorf("balance = %d, want 2500", bal.Balance)
	}

	// One redemption per account.
	if _, err := eng.RedeemPromo(ctx, userID, "BONUS"); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("second redeem err = %v, want ErrAlreadyUsed", err)
	}
	if bal := store.balanceOf(userID); bal.Balance != 2500 {
		t.Errorf("balance after rejected redeem = %d", bal.Balance)
	}
}

func TestRedeemPromoUnknownCode(t *testing.T) {
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(time.Now()))
	eng, _ := newTestEngine(store, time.Now())

	if _, err := eng.RedeemPromo(context.Background(), userID, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRedeemPromoExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	userID := store.addAccount(111, baseBalance(start))
	expiry := start.Add(-time.Minute)
	store.addPromo("OLD", 1000, 10, &expiry)
	eng, _ := newTestEngine(store, start)

	if _, err := eng.RedeemPromo(context.Background(), userID, "OLD"); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

func TestRedeemPromoCapacity(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	first := store.addAccount(111, baseBalance(start))
	second := store.addAccount(222, baseBalance(start))
	store.addPromo("LAST", 1000, 1, nil)
	eng, _ := newTestEngine(store, start)
	ctx := context.Background()

	if _, err := eng.RedeemPromo(ctx, first, "LAST"); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if _, err := eng.RedeemPromo(ctx, second, "LAST"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("over-capacity redeem err = %v, want ErrLimitReached", err)
	}
	if bal := store.balanceOf(second); bal.Balance != 0 {
		t.Errorf("loser balance = %d, want 0", bal.Balance)
	}
}
