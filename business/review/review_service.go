package review

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// ReviewRepository contract interface
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByBot(ctx context.Context, botID uint64) ([]domain.Review, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Review, error)
	FindByUserAndBot(ctx context.Context, userID uint, botID uint64) (domain.Review, error)
}

// BotRepository contract interface
type BotRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Bot, error)
	UpdateRating(ctx context.Context, id uint64, averageRating float64, ratingCount int) error
}

// TransactionRepository contract interface
type TransactionRepository interface {
	HasPurchased(ctx context.Context, userID uint, botID uint64) (bool, error)
}

type reviewService struct {
	reviewRepo      ReviewRepository
	botRepo         BotRepository
	transactionRepo TransactionRepository
	validate        *validator.Validate
}

func NewReviewService(
	reviewRepo ReviewRepository,
	botRepo BotRepository,
	transactionRepo TransactionRepository,
	validate *validator.Validate,
) *reviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		botRepo:         botRepo,
		transactionRepo: transactionRepo,
		validate:        validate,
	}
}

// CreateReview records a rating and folds it into the bot's stored average.
func (s *reviewService) CreateReview(ctx context.Context, review *domain.Review) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Var(review.Rating, "required,min=1,max=5"); err != nil {
		logger.Error("Invalid review rating", err)
		return domain.Review{}, errors.New("rating must be between 1 and 5")
	}

	bot, err := s.botRepo.FindByID(ctx, review.BotID)
	if err != nil {
		logger.Error("Bot not found for review", err)
		return domain.Review{}, errors.New("bot not found")
	}

	purchased, err := s.transactionRepo.HasPurchased(ctx, review.UserID, review.BotID)
	if err != nil {
		logger.Error("Failed to check purchase history", err)
		return domain.Review{}, err
	}
	if !purchased {
		return domain.Review{}, errors.New("only buyers can review a bot")
	}

	existing, err := s.reviewRepo.FindByUserAndBot(ctx, review.UserID, review.BotID)
	if err != nil && err.Error() != "review not found" {
		logger.Error("Failed to check existing review", err)
		return domain.Review{}, err
	}
	if err == nil && existing.ID > 0 {
		return domain.Review{}, errors.New("bot already reviewed by this user")
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to create review", err)
		return domain.Review{}, err
	}

	// Incremental mean keeps the upsert cheap.
	newCount := bot.RatingCount + 1
	newAverage := (bot.AverageRating*float64(bot.RatingCount) + float64(review.Rating)) / float64(newCount)
	if err := s.botRepo.UpdateRating(ctx, review.BotID, newAverage, newCount); err != nil {
		logger.Error("Failed to update bot rating", err)
		return domain.Review{}, err
	}

	return *review, nil
}

func (s *reviewService) GetReviewsByBot(ctx context.Context, botID uint64) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.FindByBot(ctx, botID)
	if err != nil {
		logger.Error("Failed to get reviews by bot", err)
		return nil, err
	}

	return reviews, nil
}

func (s *reviewService) GetReviewsByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get reviews by user", err)
		return nil, err
	}

	return reviews, nil
}
