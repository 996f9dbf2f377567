package recommendation

import (
	"context"
	"fmt"

	"botmart/domain"
)

// enrich attaches a catalog summary to each result. Bots and categories are
// fetched in one batch each, keyed by the distinct id sets, never one query
// per candidate.
func (s *RecommendationService) enrich(ctx context.Context, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	botIDs := make([]uint64, 0, len(recs))
	seen := make(map[uint64]struct{}, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.BotID]; ok {
			continue
		}
		seen[rec.BotID] = struct{}{}
		botIDs = append(botIDs, rec.BotID)
	}

	bots, err := s.botRepo.FindByIDs(ctx, botIDs)
	if err != nil {
		return fmt.Errorf("enrich bots: %w", err)
	}
	botByID := make(map[uint64]domain.Bot, len(bots))

	catSeen := make(map[uint64]struct{})
	catIDs := make([]uint64, 0)
	for _, bot := range bots {
		botByID[bot.ID] = bot
		if _, ok := catSeen[bot.CategoryID]; !ok {
			catSeen[bot.CategoryID] = struct{}{}
			catIDs = append(catIDs, bot.CategoryID)
		}
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, catIDs)
	if err != nil {
		return fmt.Errorf("enrich categories: %w", err)
	}
	catByID := make(map[uint64]domain.Category, len(categories))
	for _, c := range categories {
		catByID[c.CategoryID] = c
	}

	for i := range recs {
		bot, ok := botByID[recs[i].BotID]
		if !ok {
			continue
		}
		recs[i].Bot = &domain.BotSummary{
			ID:            bot.ID,
			Title:         bot.Title,
			Price:         bot.Price,
			CategoryID:    bot.CategoryID,
			CategoryName:  catByID[bot.CategoryID].CategoryName,
			AverageRating: bot.AverageRating,
			DownloadCount: bot.DownloadCount,
		}
	}

	return nil
}
