package bot

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// BotRepository contract interface
type BotRepository interface {
	Create(ctx context.Context, bot *domain.Bot) error
	FindByID(ctx context.Context, id uint64) (domain.Bot, error)
	FindAll(ctx context.Context) ([]domain.Bot, error)
	FindApproved(ctx context.Context) ([]domain.Bot, error)
	Update(ctx context.Context, bot *domain.Bot) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	IncrementViewCount(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

// CategoryRepository contract interface
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
}

type botService struct {
	botRepo      BotRepository
	categoryRepo CategoryRepository
	validate     *validator.Validate
}

func NewBotService(botRepo BotRepository, categoryRepo CategoryRepository, validate *validator.Validate) *botService {
	return &botService{
		botRepo:      botRepo,
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

func (s *botService) CreateBot(ctx context.Context, bot *domain.Bot) (domain.Bot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bot{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Var(bot.Title, "required,min=3"); err != nil {
		logger.Error("Invalid bot title", err)
		return domain.Bot{}, errors.New("title must be at least 3 characters")
	}

	if bot.Price < 0 {
		return domain.Bot{}, errors.New("price cannot be negative")
	}

	if bot.Complexity < domain.ComplexityBeginner || bot.Complexity > domain.ComplexityAdvanced {
		bot.Complexity = domain.ComplexityBeginner
	}

	if _, err := s.categoryRepo.FindByID(ctx, bot.CategoryID); err != nil {
		logger.Error("Category not found for bot", err)
		return domain.Bot{}, errors.New("category not found")
	}

	// Every new listing waits for an admin decision.
	bot.Status = domain.BotStatusPending
	bot.AverageRating = 0
	bot.RatingCount = 0
	bot.DownloadCount = 0
	bot.ViewCount = 0

	if err := s.botRepo.Create(ctx, bot); err != nil {
		logger.Error("Failed to create bot", err)
		return domain.Bot{}, err
	}

	return *bot, nil
}

// GetBotByID also counts the lookup as a view.
func (s *botService) GetBotByID(ctx context.Context, id uint64) (domain.Bot, error) {
	bot, err := s.botRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get bot by ID", err)
		return domain.Bot{}, err
	}

	if err := s.botRepo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn("Failed to increment view count", err)
	}

	return bot, nil
}

// GetApprovedBots lists the bots visible to shoppers.
func (s *botService) GetApprovedBots(ctx context.Context) ([]domain.Bot, error) {
	bots, err := s.botRepo.FindApproved(ctx)
	if err != nil {
		logger.Error("Failed to get approved bots", err)
		return nil, err
	}

	return bots, nil
}

// GetAllBots lists every bot regardless of status. Admin only.
func (s *botService) GetAllBots(ctx context.Context) ([]domain.Bot, error) {
	bots, err := s.botRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all bots", err)
		return nil, err
	}

	return bots, nil
}

func (s *botService) UpdateBot(ctx context.Context, id uint64, developerID uint, updateData *domain.Bot) (domain.Bot, error) {
	existing, err := s.botRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Bot not found for update", err)
		return domain.Bot{}, err
	}

	if existing.DeveloperID != developerID {
		return domain.Bot{}, errors.New("bot does not belong to this developer")
	}

	if updateData.Title != "" {
		existing.Title = updateData.Title
	}
	if updateData.Description != "" {
		existing.Description = updateData.Description
	}
	if updateData.Price > 0 {
		existing.Price = updateData.Price
	}
	if len(updateData.Features) > 0 {
		existing.Features = updateData.Features
	}
	if updateData.Complexity >= domain.ComplexityBeginner && updateData.Complexity <= domain.ComplexityAdvanced {
		existing.Complexity = updateData.Complexity
	}

	// Edits go back through moderation.
	existing.Status = domain.BotStatusPending

	if err := s.botRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update bot", err)
		return domain.Bot{}, err
	}

	return existing, nil
}

func (s *botService) ApproveBot(ctx context.Context, id uint64) error {
	return s.moderate(ctx, id, domain.BotStatusApproved)
}

func (s *botService) RejectBot(ctx context.Context, id uint64) error {
	return s.moderate(ctx, id, domain.BotStatusRejected)
}

func (s *botService) moderate(ctx context.Context, id uint64, status string) error {
	bot, err := s.botRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Bot not found for moderation", err)
		return err
	}

	if bot.Status == status {
		return nil
	}

	if err := s.botRepo.UpdateStatus(ctx, id, status); err != nil {
		logger.Error("Failed to update bot status", err)
		return err
	}

	return nil
}

func (s *botService) DeleteBot(ctx context.Context, id uint64, developerID uint, isAdmin bool) error {
	bot, err := s.botRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Bot not found for deletion", err)
		return err
	}

	if !isAdmin && bot.DeveloperID != developerID {
		return errors.New("bot does not belong to this developer")
	}

	if err := s.botRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete bot", err)
		return err
	}

	return nil
}
