package postgres

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uint) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	var tx domain.Transaction
	err := r.DB.WithContext(ctx).First(&tx, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, errors.New("transaction not found")
		}
		return domain.Transaction{}, fmt.Errorf("failed to find transaction: %w", err)
	}

	return tx, nil
}

// FindCompletedByUser returns the user's purchase history.
func (r *TransactionRepository) FindCompletedByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var txs []domain.Transaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.TransactionCompleted).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by user: %w", err)
	}

	return txs, nil
}

// FindPurchasersOfBots returns every (user, bot) completed-purchase pair
// touching the given bot set, one query for the whole set.
func (r *TransactionRepository) FindPurchasersOfBots(ctx context.Context, botIDs []uint64) ([]domain.PurchasePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(botIDs) == 0 {
		return []domain.PurchasePair{}, nil
	}

	var pairs []domain.PurchasePair
	err := r.DB.WithContext(ctx).Model(&domain.Transaction{}).
		Select("user_id", "bot_id").
		Where("bot_id IN ? AND status = ?", botIDs, domain.TransactionCompleted).
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purchasers of bots: %w", err)
	}

	return pairs, nil
}

// FindCompletedByUsers returns the full purchase sets of a user id set.
func (r *TransactionRepository) FindCompletedByUsers(ctx context.Context, userIDs []uint) ([]domain.PurchasePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(userIDs) == 0 {
		return []domain.PurchasePair{}, nil
	}

	var pairs []domain.PurchasePair
	err := r.DB.WithContext(ctx).Model(&domain.Transaction{}).
		Select("user_id", "bot_id").
		Where("user_id IN ? AND status = ?", userIDs, domain.TransactionCompleted).
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by users: %w", err)
	}

	return pairs, nil
}

// HasPurchased reports whether the user owns the bot.
func (r *TransactionRepository) HasPurchased(ctx context.Context, userID uint, botID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Transaction{}).
		Where("user_id = ? AND bot_id = ? AND status = ?", userID, botID, domain.TransactionCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return count > 0, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Transaction{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("transaction not found")
	}

	return nil
}
