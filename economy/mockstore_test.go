package economy

import (
	"context"
	"sync"
	"time"

	"github.com/shercoin/shercoin/models"
)

// ---------------------------------------------------------------------------
// In-memory mock of the Store interface. It mirrors the atomicity contract:
// each write method either applies everything or, on a guard failure,
// nothing. Lets the engine logic be tested without a database.
// ---------------------------------------------------------------------------

type mockStore struct {
	mu sync.Mutex

	users       map[uint]*models.User
	balances    map[uint]*models.Balance
	boosts      map[uint]*models.Boost
	grants      []models.BoostGrant
	tasks       map[uint]*models.Task
	progress    map[[2]uint]*models.TaskProgress
	articles    map[uint]*models.Article
	completions map[[2]uint]bool
	referrals   []models.Referral
	promos      map[uint]*models.PromoCode
	redemptions map[[2]uint]bool
	logins      []models.DailyLogin
	txns        []models.Transaction

	nextID uint

	// failNextWrite, when set, makes the next write method fail so tests
	// can assert that failures leave no partial state.
	failNextWrite error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[uint]*models.User),
		balances:    make(map[uint]*models.Balance),
		boosts:      make(map[uint]*models.Boost),
		tasks:       make(map[uint]*models.Task),
		progress:    make(map[[2]uint]*models.TaskProgress),
		articles:    make(map[uint]*models.Article),
		completions: make(map[[2]uint]bool),
		promos:      make(map[uint]*models.PromoCode),
		redemptions: make(map[[2]uint]bool),
	}
}

func (m *mockStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockStore) takeWriteErr() error {
	err := m.failNextWrite
	m.failNextWrite = nil
	return err
}

// --- seeding helpers -------------------------------------------------------

func (m *mockStore) addAccount(telegramID int64, bal models.Balance) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.users[id] = &models.User{ID: id, TelegramID: telegramID, CreatedAt: bal.EnergyUpdatedAt, LastLoginAt: bal.EnergyUpdatedAt}
	b := bal
	b.UserID = id
	m.balances[id] = &b
	return id
}

func (m *mockStore) addBoost(code string, durationSeconds int, price int64) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.boosts[id] = &models.Boost{ID: id, Code: code, Name: code, DurationSeconds: durationSeconds, Price: price}
	return id
}

func (m *mockStore) addTask(reward int64) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.tasks[id] = &models.Task{ID: id, Type: models.TaskTypeOnce, Title: "task", Reward: reward, IsActive: true}
	return id
}

func (m *mockStore) addArticle(reward int64) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.articles[id] = &models.Article{ID: id, Title: "article", Reward: reward, IsActive: true}
	return id
}

func (m *mockStore) addPromo(code string, reward int64, maxUsage int, expiresAt *time.Time) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.promos[id] = &models.PromoCode{ID: id, Code: code, Reward: reward, MaxUsage: maxUsage, ExpiresAt: expiresAt, IsActive: true}
	return id
}

func (m *mockStore) balanceOf(userID uint) models.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.balances[userID]
}

func (m *mockStore) txnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txns)
}

func (m *mockStore) lastTxn() models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txns[len(m.txns)-1]
}

// --- Store implementation --------------------------------------------------

func (m *mockStore) User(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) UserByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CreateAccount(_ context.Context, user *models.User, balance *models.Balance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	user.ID = m.id()
	cp := *user
	m.users[user.ID] = &cp
	balance.UserID = user.ID
	bcp := *balance
	m.balances[user.ID] = &bcp
	return nil
}

func (m *mockStore) TouchLogin(_ context.Context, userID uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.LastLoginAt = at
	}
	return nil
}

func (m *mockStore) Balance(_ context.Context, userID uint) (*models.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.balances[userID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) SaveBalance(_ context.Context, balance *models.Balance, txns ...*models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	m.saveBalanceLocked(balance, txns...)
	return nil
}

func (m *mockStore) saveBalanceLocked(balance *models.Balance, txns ...*models.Transaction) {
	cp := *balance
	m.balances[balance.UserID] = &cp
	for _, txn := range txns {
		txn.ID = m.id()
		txn.CreatedAt = time.Now()
		m.txns = append(m.txns, *txn)
	}
}

func (m *mockStore) Boosts(_ context.Context) ([]models.Boost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Boost, 0, len(m.boosts))
	for _, b := range m.boosts {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockStore) Boost(_ context.Context, id uint) (*models.Boost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.boosts[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) ActiveBoostGrants(_ context.Context, userID uint, now time.Time) ([]models.BoostGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BoostGrant
	for _, g := range m.grants {
		if g.UserID == userID && g.IsActive && g.ExpiresAt.After(now) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockStore) ActivateBoost(_ context.Context, grant *models.BoostGrant, balance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	grant.ID = m.id()
	m.grants = append(m.grants, *grant)
	m.saveBalanceLocked(balance, txn)
	return nil
}

func (m *mockStore) Tasks(_ context.Context) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockStore) Task(_ context.Context, id uint) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok && t.IsActive {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) TaskProgress(_ context.Context, userID, taskID uint) (*models.TaskProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.progress[[2]uint{userID, taskID}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) TaskProgressList(_ context.Context, userID uint) ([]models.TaskProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TaskProgress
	for key, p := range m.progress {
		if key[0] == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) UpsertTaskProgress(_ context.Context, progress *models.TaskProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	if progress.ID == 0 {
		progress.ID = m.id()
	}
	cp := *progress
	m.progress[[2]uint{progress.UserID, progress.TaskID}] = &cp
	return nil
}

func (m *mockStore) ClaimTask(_ context.Context, progress *models.TaskProgress, balance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	cp := *progress
	m.progress[[2]uint{progress.UserID, progress.TaskID}] = &cp
	m.saveBalanceLocked(balance, txn)
	return nil
}

func (m *mockStore) Articles(_ context.Context) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Article, 0, len(m.articles))
	for _, a := range m.articles {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockStore) Article(_ context.Context, id uint) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.articles[id]; ok && a.IsActive {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) CompletedArticleIDs(_ context.Context, userID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint
	for key := range m.completions {
		if key[0] == userID {
			out = append(out, key[1])
		}
	}
	return out, nil
}

func (m *mockStore) CompleteArticle(_ context.Context, completion *models.ArticleCompletion, balance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	key := [2]uint{completion.UserID, completion.ArticleID}
	if m.completions[key] {
		return ErrAlreadyCompleted
	}
	m.completions[key] = true
	m.saveBalanceLocked(balance, txn)
	return nil
}

func (m *mockStore) Referrals(_ context.Context, referrerID uint) ([]models.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Referral
	for _, r := range m.referrals {
		if r.ReferrerID == referrerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) CreateReferral(_ context.Context, referral *models.Referral, referrerBalance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	referral.ID = m.id()
	m.referrals = append(m.referrals, *referral)
	m.saveBalanceLocked(referrerBalance, txn)
	return nil
}

func (m *mockStore) PromoByCode(_ context.Context, code string) (*models.PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.promos {
		if p.Code == code && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) HasRedeemedPromo(_ context.Context, userID, promoID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.redemptions[[2]uint{userID, promoID}], nil
}

func (m *mockStore) RedeemPromo(_ context.Context, promoID uint, redemption *models.PromoRedemption, balance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	promo, ok := m.promos[promoID]
	if !ok {
		return ErrNotFound
	}
	if promo.UsedCount >= promo.MaxUsage {
		return ErrLimitReached
	}
	key := [2]uint{redemption.UserID, promoID}
	if m.redemptions[key] {
		return ErrAlreadyUsed
	}
	promo.UsedCount++
	m.redemptions[key] = true
	m.saveBalanceLocked(balance, txn)
	return nil
}

func (m *mockStore) LastDailyLogin(_ context.Context, userID uint) (*models.DailyLogin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *models.DailyLogin
	for i := range m.logins {
		l := &m.logins[i]
		if l.UserID != userID {
			continue
		}
		if last == nil || l.LoginDate.After(last.LoginDate) {
			last = l
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

func (m *mockStore) RecordDailyLogin(_ context.Context, login *models.DailyLogin, balance *models.Balance, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeWriteErr(); err != nil {
		return err
	}
	login.ID = m.id()
	m.logins = append(m.logins, *login)
	m.saveBalanceLocked(balance, txn)
	return nil
}

func (m *mockStore) TransactionsFor(_ context.Context, userID uint, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for i := len(m.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if m.txns[i].UserID == userID {
			out = append(out, m.txns[i])
		}
	}
	return out, nil
}

var _ Store = (*mockStore)(nil)
