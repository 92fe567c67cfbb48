package economy

import (
	"context"
	"time"

	"github.com/shercoin/shercoin/models"
)

// Store is the ledger store the engine mutates through. Every write method
// is all-or-nothing: the implementation commits the balance update, the
// flow-specific rows, and the ledger appends in one storage transaction, or
// none of them.
//
// Read methods that look up a single row return (nil, nil) when the row does
// not exist; only infrastructure failures surface as errors.
type Store interface {
	// Accounts.
	User(ctx context.Context, id uint) (*models.User, error)
	UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	CreateAccount(ctx context.Context, user *models.User, balance *models.Balance) error
	TouchLogin(ctx context.Context, userID uint, at time.Time) error
	Balance(ctx context.Context, userID uint) (*models.Balance, error)

	// SaveBalance persists the full balance row and appends the given ledger
	// entries atomically. Used for taps and energy reconciliation.
	SaveBalance(ctx context.Context, balance *models.Balance, txns ...*models.Transaction) error

	// Boosts.
	Boosts(ctx context.Context) ([]models.Boost, error)
	Boost(ctx context.Context, id uint) (*models.Boost, error)
	ActiveBoostGrants(ctx context.Context, userID uint, now time.Time) ([]models.BoostGrant, error)
	ActivateBoost(ctx context.Context, grant *models.BoostGrant, balance *models.Balance, txn *models.Transaction) error

	// Tasks.
	Tasks(ctx context.Context) ([]models.Task, error)
	Task(ctx context.Context, id uint) (*models.Task, error)
	TaskProgress(ctx context.Context, userID, taskID uint) (*models.TaskProgress, error)
	TaskProgressList(ctx context.Context, userID uint) ([]models.TaskProgress, error)
	UpsertTaskProgress(ctx context.Context, progress *models.TaskProgress) error
	ClaimTask(ctx context.Context, progress *models.TaskProgress, balance *models.Balance, txn *models.Transaction) error

	// Articles.
	Articles(ctx context.Context) ([]models.Article, error)
	Article(ctx context.Context, id uint) (*models.Article, error)
	CompletedArticleIDs(ctx context.Context, userID uint) ([]uint, error)
	CompleteArticle(ctx context.Context, completion *models.ArticleCompletion, balance *models.Balance, txn *models.Transaction) error

	// Referrals.
	Referrals(ctx context.Context, referrerID uint) ([]models.Referral, error)
	CreateReferral(ctx context.Context, referral *models.Referral, referrerBalance *models.Balance, txn *models.Transaction) error

	// Promo codes.
	PromoByCode(ctx context.Context, code string) (*models.PromoCode, error)
	HasRedeemedPromo(ctx context.Context, userID, promoID uint) (bool, error)
	// RedeemPromo inserts the redemption row, advances used_count with a
	// guarded increment, applies the balance credit, and appends the ledger
	// row. Returns ErrLimitReached when the guarded increment affects no row
	// and ErrAlreadyUsed when the redemption uniqueness is violated.
	RedeemPromo(ctx context.Context, promoID uint, redemption *models.PromoRedemption, balance *models.Balance, txn *models.Transaction) error

	// Daily logins.
	LastDailyLogin(ctx context.Context, userID uint) (*models.DailyLogin, error)
	RecordDailyLogin(ctx context.Context, login *models.DailyLogin, balance *models.Balance, txn *models.Transaction) error

	// Ledger reads.
	TransactionsFor(ctx context.Context, userID uint, limit int) ([]models.Transaction, error)
}
