package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/models"
	"github.com/shercoin/shercoin/utils"
)

// GormStore implements economy.Store on a gorm database (MySQL or SQLite).
// Every mutating method runs in one transaction; balance updates take a row
// lock first so concurrent engine instances cannot lose updates.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an initialized gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ economy.Store = (*GormStore)(nil)

// firstOrNil maps gorm's not-found error to the (nil, nil) contract.
func firstOrNil[T any](tx *gorm.DB, out *T) (*T, error) {
	if err := tx.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *GormStore) User(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	return firstOrNil(s.db.WithContext(ctx).First(&user, id), &user)
}

func (s *GormStore) UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	return firstOrNil(s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user), &user)
}

func (s *GormStore) CreateAccount(ctx context.Context, user *models.User, balance *models.Balance) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		balance.UserID = user.ID
		return tx.Create(balance).Error
	})
}

func (s *GormStore) TouchLogin(ctx context.Context, userID uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (s *GormStore) Balance(ctx context.Context, userID uint) (*models.Balance, error) {
	var balance models.Balance
	return firstOrNil(s.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance), &balance)
}

// balanceColumns is the full mutable field set of a balance row. Writing all
// of them in one statement keeps the four-field tap mutation atomic.
func balanceColumns(b *models.Balance) map[string]interface{} {
	return map[string]interface{}{
		"balance":           b.Balance,
		"hourly_income":     b.HourlyIncome,
		"total_taps":        b.TotalTaps,
		"energy":            b.Energy,
		"max_energy":        b.MaxEnergy,
		"energy_updated_at": b.EnergyUpdatedAt,
		"level":             b.Level,
		"xp":                b.XP,
	}
}

// saveBalanceTx locks the balance row, writes it, and appends ledger rows
// inside the caller's transaction.
func saveBalanceTx(tx *gorm.DB, balance *models.Balance, txns ...*models.Transaction) error {
	var locked models.Balance
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", balance.UserID).First(&locked).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Balance{}).
		Where("user_id = ?", balance.UserID).
		Updates(balanceColumns(balance)).Error; err != nil {
		return err
	}
	for _, txn := range txns {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) SaveBalance(ctx context.Context, balance *models.Balance, txns ...*models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveBalanceTx(tx, balance, txns...)
	})
}

// Catalog tables are read on every listing and only change when reseeded,
// so they are served through the Redis cache.
const (
	catalogBoostsKey   = "catalog:boosts"
	catalogTasksKey    = "catalog:tasks"
	catalogArticlesKey = "catalog:articles"
	catalogTTL         = 5 * time.Minute
)

func (s *GormStore) Boosts(ctx context.Context) ([]models.Boost, error) {
	var boosts []models.Boost
	if utils.CacheGetJSON(catalogBoostsKey, &boosts) {
		return boosts, nil
	}
	if err := s.db.WithContext(ctx).Order("id").Find(&boosts).Error; err != nil {
		return nil, err
	}
	utils.CacheSetJSON(catalogBoostsKey, boosts, catalogTTL)
	return boosts, nil
}

func (s *GormStore) Boost(ctx context.Context, id uint) (*models.Boost, error) {
	var boost models.Boost
	return firstOrNil(s.db.WithContext(ctx).First(&boost, id), &boost)
}

func (s *GormStore) ActiveBoostGrants(ctx context.Context, userID uint, now time.Time) ([]models.BoostGrant, error) {
	var grants []models.BoostGrant
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (s *GormStore) ActivateBoost(ctx context.Context, grant *models.BoostGrant, balance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grant).Error; err != nil {
			return err
		}
		return saveBalanceTx(tx, balance, txn)
	})
}

func (s *GormStore) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if utils.CacheGetJSON(catalogTasksKey, &tasks) {
		return tasks, nil
	}
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	utils.CacheSetJSON(catalogTasksKey, tasks, catalogTTL)
	return tasks, nil
}

func (s *GormStore) Task(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	return firstOrNil(s.db.WithContext(ctx).Where("is_active = ?", true).First(&task, id), &task)
}

func (s *GormStore) TaskProgress(ctx context.Context, userID, taskID uint) (*models.TaskProgress, error) {
	var progress models.TaskProgress
	return firstOrNil(s.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).First(&progress), &progress)
}

func (s *GormStore) TaskProgressList(ctx context.Context, userID uint) ([]models.TaskProgress, error) {
	var progress []models.TaskProgress
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *GormStore) UpsertTaskProgress(ctx context.Context, progress *models.TaskProgress) error {
	if progress.ID == 0 {
		return s.db.WithContext(ctx).Create(progress).Error
	}
	return s.db.WithContext(ctx).Model(&models.TaskProgress{}).
		Where("id = ?", progress.ID).
		Updates(map[string]interface{}{"status": progress.Status, "updated_at": progress.UpdatedAt}).Error
}

func (s *GormStore) ClaimTask(ctx context.Context, progress *models.TaskProgress, balance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TaskProgress{}).
			Where("id = ?", progress.ID).
			Updates(map[string]interface{}{"status": progress.Status, "updated_at": progress.UpdatedAt}).Error; err != nil {
			return err
		}
		return saveBalanceTx(tx, balance, txn)
	})
}

func (s *GormStore) Articles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if utils.CacheGetJSON(catalogArticlesKey, &articles) {
		return articles, nil
	}
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&articles).Error; err != nil {
		return nil, err
	}
	utils.CacheSetJSON(catalogArticlesKey, articles, catalogTTL)
	return articles, nil
}

func (s *GormStore) Article(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	return firstOrNil(s.db.WithContext(ctx).Where("is_active = ?", true).First(&article, id), &article)
}

func (s *GormStore) CompletedArticleIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.ArticleCompletion{}).
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *GormStore) CompleteArticle(ctx context.Context, completion *models.ArticleCompletion, balance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(completion).Error; err != nil {
			if isUniqueViolation(err) {
				return economy.ErrAlreadyCompleted
			}
			return err
		}
		return saveBalanceTx(tx, balance, txn)
	})
}

func (s *GormStore) Referrals(ctx context.Context, referrerID uint) ([]models.Referral, error) {
	var refs []models.Referral
	if err := s.db.WithContext(ctx).Where("referrer_id = ?", referrerID).Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *GormStore) CreateReferral(ctx context.Context, referral *models.Referral, referrerBalance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(referral).Error; err != nil {
			return err
		}
		return saveBalanceTx(tx, referrerBalance, txn)
	})
}

func (s *GormStore) PromoByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	return firstOrNil(s.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).First(&promo), &promo)
}

func (s *GormStore) HasRedeemedPromo(ctx context.Context, userID, promoID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.PromoRedemption{}).
		Where("user_id = ? AND promo_id = ?", userID, promoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) RedeemPromo(ctx context.Context, promoID uint, redemption *models.PromoRedemption, balance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded increment: a no-op update means the cap was hit by a
		// concurrent redemption after the engine's pre-check.
		res := tx.Model(&models.PromoCode{}).
			Where("id = ? AND used_count < max_usage", promoID).
			UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return economy.ErrLimitReached
		}
		if err := tx.Create(redemption).Error; err != nil {
			if isUniqueViolation(err) {
				return economy.ErrAlreadyUsed
			}
			return err
		}
		return saveBalanceTx(tx, balance, txn)
	})
}

func (s *GormStore) LastDailyLogin(ctx context.Context, userID uint) (*models.DailyLogin, error) {
	var login models.DailyLogin
	return firstOrNil(s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("login_date DESC").First(&login), &login)
}

func (s *GormStore) RecordDailyLogin(ctx context.Context, login *models.DailyLogin, balance *models.Balance, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(login).Error; err != nil {
			return err
		}
		return saveBalanceTx(tx, balance, txn)
	})
}

func (s *GormStore) TransactionsFor(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txns []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// isUniqueViolation matches duplicate-key errors from both backends without
// importing driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
