package recommendation

import (
	"context"
	"time"

	"botmart/domain"
)

// Combination weights for the four ranking signals. Fixed, sum to 1.0.
const (
	weightCollaborative = 0.4
	weightContent       = 0.3
	weightBehavioral    = 0.2
	weightTrending      = 0.1
)

const (
	// Candidates scoring at or below this (0–100 scale) are dropped.
	minScoreThreshold = 30.0

	defaultRecommendCount = 10
	defaultSimilarCount   = 6
	defaultTrendingCount  = 15

	feedPersonalizedCount = 6
	feedTrendingCount     = 4

	trendingWindow = 7 * 24 * time.Hour
)

// ---- Repository interfaces ----

type BotRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Bot, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Bot, error)
	FindApproved(ctx context.Context) ([]domain.Bot, error)
	FindApprovedByCategory(ctx context.Context, categoryID uint64, excludeID uint64) ([]domain.Bot, error)
	FindTrending(ctx context.Context, since time.Time, limit int) ([]domain.Bot, error)
}

type TransactionRepository interface {
	FindCompletedByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
	FindPurchasersOfBots(ctx context.Context, botIDs []uint64) ([]domain.PurchasePair, error)
	FindCompletedByUsers(ctx context.Context, userIDs []uint) ([]domain.PurchasePair, error)
}

type ReviewRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Review, error)
	FindByUsers(ctx context.Context, userIDs []uint) ([]domain.Review, error)
}

type InteractionRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
}

type CategoryRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Category, error)
}

// TrendingCache is an optional short-TTL cache for the user-independent
// trending list. Nil disables caching.
type TrendingCache interface {
	Get(ctx context.Context, limit int) ([]domain.Recommendation, error)
	Set(ctx context.Context, limit int, recs []domain.Recommendation) error
}

// ---- Usecase / Service ----

type RecommendationService struct {
	botRepo         BotRepository
	txRepo          TransactionRepository
	reviewRepo      ReviewRepository
	interactionRepo InteractionRepository
	categoryRepo    CategoryRepository
	trendingCache   TrendingCache
}

func NewRecommendationService(
	botRepo BotRepository,
	txRepo TransactionRepository,
	reviewRepo ReviewRepository,
	interactionRepo InteractionRepository,
	categoryRepo CategoryRepository,
	trendingCache TrendingCache,
) *RecommendationService {
	return &RecommendationService{
		botRepo:         botRepo,
		txRepo:          txRepo,
		reviewRepo:      reviewRepo,
		interactionRepo: interactionRepo,
		categoryRepo:    categoryRepo,
		trendingCache:   trendingCache,
	}
}
