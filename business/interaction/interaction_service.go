package interaction

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"
	"botmart/pkg/logger"
)

// InteractionRepository contract interface
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
}

// BotRepository contract interface
type BotRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Bot, error)
}

var validEventTypes = map[string]bool{
	domain.InteractionView:       true,
	domain.InteractionHover:      true,
	domain.InteractionClick:      true,
	domain.InteractionTimeOnPage: true,
}

type interactionService struct {
	interactionRepo InteractionRepository
	botRepo         BotRepository
}

func NewInteractionService(interactionRepo InteractionRepository, botRepo BotRepository) *interactionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		botRepo:         botRepo,
	}
}

// RecordInteraction stores one browsing event for the behavioral scorer.
func (s *interactionService) RecordInteraction(ctx context.Context, interaction *domain.Interaction) (domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Interaction{}, fmt.Errorf("context error: %w", err)
	}

	if !validEventTypes[interaction.EventType] {
		return domain.Interaction{}, errors.New("unknown event type")
	}

	if interaction.DurationSeconds < 0 {
		return domain.Interaction{}, errors.New("duration cannot be negative")
	}

	if _, err := s.botRepo.FindByID(ctx, interaction.BotID); err != nil {
		logger.Error("Bot not found for interaction", err)
		return domain.Interaction{}, errors.New("bot not found")
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		logger.Error("Failed to record interaction", err)
		return domain.Interaction{}, err
	}

	return *interaction, nil
}

func (s *interactionService) GetInteractionsByUser(ctx context.Context, userID uint) ([]domain.Interaction, error) {
	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get interactions by user", err)
		return nil, err
	}

	return interactions, nil
}
