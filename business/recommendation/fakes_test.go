package recommendation

import (
	"context"
	"errors"
	"time"

	"botmart/domain"
)

// In-memory repositories backed by plain slices. Each fake filters the same
// way the SQL queries do so service tests exercise real data flow.

type fakeBotRepo struct {
	bots     []domain.Bot
	trending []domain.Bot
}

func (f *fakeBotRepo) FindByID(ctx context.Context, id uint64) (domain.Bot, error) {
	for _, b := range f.bots {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Bot{}, errors.New("bot not found")
}

func (f *fakeBotRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Bot, error) {
	want := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]domain.Bot, 0, len(ids))
	for _, b := range f.bots {
		if _, ok := want[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBotRepo) FindApproved(ctx context.Context) ([]domain.Bot, error) {
	out := make([]domain.Bot, 0, len(f.bots))
	for _, b := range f.bots {
		if b.Status == domain.BotStatusApproved {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBotRepo) FindApprovedByCategory(ctx context.Context, categoryID uint64, excludeID uint64) ([]domain.Bot, error) {
	out := make([]domain.Bot, 0, len(f.bots))
	for _, b := range f.bots {
		if b.Status == domain.BotStatusApproved && b.CategoryID == categoryID && b.ID != excludeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBotRepo) FindTrending(ctx context.Context, since time.Time, limit int) ([]domain.Bot, error) {
	out := f.trending
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTxRepo struct {
	purchases []domain.Transaction
}

func (f *fakeTxRepo) FindCompletedByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)
	for _, tx := range f.purchases {
		if tx.UserID == userID && tx.Status == domain.TransactionCompleted {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) FindPurchasersOfBots(ctx context.Context, botIDs []uint64) ([]domain.PurchasePair, error) {
	want := make(map[uint64]struct{}, len(botIDs))
	for _, id := range botIDs {
		want[id] = struct{}{}
	}
	out := make([]domain.PurchasePair, 0)
	for _, tx := range f.purchases {
		if tx.Status != domain.TransactionCompleted {
			continue
		}
		if _, ok := want[tx.BotID]; ok {
			out = append(out, domain.PurchasePair{UserID: tx.UserID, BotID: tx.BotID})
		}
	}
	return out, nil
}

func (f *fakeTxRepo) FindCompletedByUsers(ctx context.Context, userIDs []uint) ([]domain.PurchasePair, error) {
	want := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	out := make([]domain.PurchasePair, 0)
	for _, tx := range f.purchases {
		if tx.Status != domain.TransactionCompleted {
			continue
		}
		if _, ok := want[tx.UserID]; ok {
			out = append(out, domain.PurchasePair{UserID: tx.UserID, BotID: tx.BotID})
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews []domain.Review
}

func (f *fakeReviewRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUsers(ctx context.Context, userIDs []uint) ([]domain.Review, error) {
	want := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	out := make([]domain.Review, 0)
	for _, r := range f.reviews {
		if _, ok := want[r.UserID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeInteractionRepo struct {
	interactions []domain.Interaction
}

func (f *fakeInteractionRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error) {
	out := make([]domain.Interaction, 0)
	for _, ev := range f.interactions {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (f *fakeCategoryRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Category, error) {
	want := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]domain.Category, 0, len(ids))
	for _, c := range f.categories {
		if _, ok := want[c.CategoryID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTrendingCache struct {
	store map[int][]domain.Recommendation
	hits  int
	sets  int
}

func newFakeTrendingCache() *fakeTrendingCache {
	return &fakeTrendingCache{store: make(map[int][]domain.Recommendation)}
}

func (f *fakeTrendingCache) Get(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	recs, ok := f.store[limit]
	if !ok {
		return nil, nil
	}
	f.hits++
	return recs, nil
}

func (f *fakeTrendingCache) Set(ctx context.Context, limit int, recs []domain.Recommendation) error {
	f.sets++
	f.store[limit] = recs
	return nil
}

func newTestService(
	bots *fakeBotRepo,
	txs *fakeTxRepo,
	reviews *fakeReviewRepo,
	interactions *fakeInteractionRepo,
	categories *fakeCategoryRepo,
	cache TrendingCache,
) *RecommendationService {
	if bots == nil {
		bots = &fakeBotRepo{}
	}
	if txs == nil {
		txs = &fakeTxRepo{}
	}
	if reviews == nil {
		reviews = &fakeReviewRepo{}
	}
	if interactions == nil {
		interactions = &fakeInteractionRepo{}
	}
	if categories == nil {
		categories = &fakeCategoryRepo{}
	}
	return NewRecommendationService(bots, txs, reviews, interactions, categories, cache)
}
