package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"botmart/domain"

	"gorm.io/gorm"
)

type BotRepository struct {
	DB *gorm.DB
}

func NewBotRepository(db *gorm.DB) *BotRepository {
	return &BotRepository{
		DB: db,
	}
}

func (r *BotRepository) Create(ctx context.Context, bot *domain.Bot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(bot).Error; err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	return nil
}

func (r *BotRepository) FindByID(ctx context.Context, id uint64) (domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bot{}, fmt.Errorf("context error: %w", err)
	}

	var bot domain.Bot

	err := r.DB.WithContext(ctx).First(&bot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Bot{}, errors.New("bot not found")
		}
		return domain.Bot{}, fmt.Errorf("failed to find bot: %w", err)
	}

	return bot, nil
}

// FindByIDs batch-fetches bots for an id set in one query.
func (r *BotRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Bot{}, nil
	}

	var bots []domain.Bot
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&bots).Error; err != nil {
		return nil, fmt.Errorf("failed to find bots by ids: %w", err)
	}

	return bots, nil
}

func (r *BotRepository) FindAll(ctx context.Context) ([]domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var bots []domain.Bot
	err := r.DB.WithContext(ctx).Find(&bots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bots: %w", err)
	}

	return bots, nil
}

// FindApproved returns every rankable bot. Only approved listings are candidates.
func (r *BotRepository) FindApproved(ctx context.Context) ([]domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var bots []domain.Bot
	err := r.DB.WithContext(ctx).Where("status = ?", domain.BotStatusApproved).Find(&bots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find approved bots: %w", err)
	}

	return bots, nil
}

// FindApprovedByCategory returns approved bots in a category, excluding one id.
func (r *BotRepository) FindApprovedByCategory(ctx context.Context, categoryID uint64, excludeID uint64) ([]domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var bots []domain.Bot
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.BotStatusApproved).
		Where("category_id = ?", categoryID).
		Where("id <> ?", excludeID).
		Find(&bots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bots by category: %w", err)
	}

	return bots, nil
}

// FindTrending orders approved bots by completed purchases since the cutoff,
// then by lifetime view count.
func (r *BotRepository) FindTrending(ctx context.Context, since time.Time, limit int) ([]domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var bots []domain.Bot
	err := r.DB.WithContext(ctx).
		Select("bots.*, COUNT(transactions.id) AS recent_purchases").
		Joins("LEFT JOIN transactions ON transactions.bot_id = bots.id AND transactions.status = ? AND transactions.created_at >= ?",
			domain.TransactionCompleted, since).
		Where("bots.status = ?", domain.BotStatusApproved).
		Group("bots.id").
		Order("recent_purchases DESC, bots.view_count DESC").
		Limit(limit).
		Find(&bots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find trending bots: %w", err)
	}

	return bots, nil
}

func (r *BotRepository) Update(ctx context.Context, bot *domain.Bot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existingBot domain.Bot
	if err := r.DB.WithContext(ctx).First(&existingBot, bot.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("bot not found")
		}
		return fmt.Errorf("failed to find bot: %w", err)
	}

	updateData := map[string]interface{}{
		"category_id": bot.CategoryID,
		"title":       bot.Title,
		"description": bot.Description,
		"price":       bot.Price,
		"features":    bot.Features,
		"complexity":  bot.Complexity,
		"updated_at":  time.Now(),
	}

	result := r.DB.WithContext(ctx).Model(&domain.Bot{}).Where("id = ?", bot.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update bot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("bot not found or already deleted")
	}

	return nil
}

func (r *BotRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Bot{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update bot status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("bot not found")
	}

	return nil
}

func (r *BotRepository) UpdateRating(ctx context.Context, id uint64, averageRating float64, ratingCount int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Bot{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"rating_count":   ratingCount,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update bot rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("bot not found")
	}

	return nil
}

func (r *BotRepository) IncrementViewCount(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Model(&domain.Bot{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *BotRepository) IncrementDownloadCount(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Model(&domain.Bot{}).Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

func (r *BotRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Bot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete bot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("bot not found or already deleted")
	}

	return nil
}
