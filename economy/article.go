package economy

import (
	"context"

	"github.com/shercoin/shercoin/models"
)

// ArticleStatus is a catalog article with the account's completion overlay.
type ArticleStatus struct {
	models.Article
	IsCompleted bool `json:"is_completed"`
}

// ArticleCatalog lists active articles flagged with whether the account has
// already read them.
func (e *Engine) ArticleCatalog(ctx context.Context, userID uint) ([]ArticleStatus, error) {
	articles, err := e.store.Articles(ctx)
	if err != nil {
		return nil, storageErr("load articles", err)
	}
	completedIDs, err := e.store.CompletedArticleIDs(ctx, userID)
	if err != nil {
		return nil, storageErr("load article completions", err)
	}

	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	out := make([]ArticleStatus, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleStatus{Article: a, IsCompleted: completed[a.ID]})
	}
	return out, nil
}

// CompleteArticle records a one-time read completion and credits the reward
// plus reward/10 XP. The completion row doubles as the idempotence guard:
// a second completion fails before any mutation.
func (e *Engine) CompleteArticle(ctx context.Context, userID, articleID uint) (int64, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	article, err := e.store.Article(ctx, articleID)
	if err != nil {
		return 0, storageErr("load article", err)
	}
	if article == nil {
		return 0, ErrNotFound
	}

	completedIDs, err := e.store.CompletedArticleIDs(ctx, userID)
	if err != nil {
		return 0, storageErr("load article completions", err)
	}
	for _, id := range completedIDs {
		if id == articleID {
			return 0, ErrAlreadyCompleted
		}
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return 0, storageErr("load balance", err)
	}
	if bal == nil {
		return 0, ErrNotFound
	}

	bal.Balance += article.Reward
	bal.XP += article.Reward / 10
	bal.Level = levelForXP(bal.XP)

	completion := &models.ArticleCompletion{UserID: userID, ArticleID: articleID, CreatedAt: e.now()}
	txn := &models.Transaction{
		UserID: userID,
		Type:   models.TxArticle,
		Amount: article.Reward,
		Meta:   metaJSON(map[string]any{"article_id": article.ID}),
	}
	if err := e.store.CompleteArticle(ctx, completion, bal, txn); err != nil {
		return 0, storageErr("complete article", err)
	}
	return article.Reward, nil
}
