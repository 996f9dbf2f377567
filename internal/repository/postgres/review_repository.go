package postgres

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews by user: %w", err)
	}

	return reviews, nil
}

// FindByUsers batch-fetches the reviews of a user id set in one query.
func (r *ReviewRepository) FindByUsers(ctx context.Context, userIDs []uint) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(userIDs) == 0 {
		return []domain.Review{}, nil
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews by users: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByBot(ctx context.Context, botID uint64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("bot_id = ?", botID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews by bot: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByUserAndBot(ctx context.Context, userID uint, botID uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var review domain.Review
	err := r.DB.WithContext(ctx).Where("user_id = ? AND bot_id = ?", userID, botID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, errors.New("review not found")
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}
