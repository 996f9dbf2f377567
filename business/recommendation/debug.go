package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"botmart/domain"
	"botmart/pkg/logger"
)

// DebugRecommend returns the per-signal breakdown for inspection. Same
// pipeline as Recommend, but every candidate is reported, pre-threshold.
func (s *RecommendationService) DebugRecommend(
	ctx context.Context,
	userID uint,
	limit int,
) ([]domain.DebugRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultRecommendCount
	}

	profile, err := s.buildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	behavior := buildBehavior(interactions, time.Now())

	hood, err := s.buildNeighborhood(ctx, userID, profile.Owned)
	if err != nil {
		return nil, err
	}

	candidates, err := s.botRepo.FindApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("reco_debug_rank",
		"trace_id", tid,
		"user_id", userID,
		"limit", limit,
		"candidate_count", len(candidates),
	)

	out := make([]domain.DebugRecommendation, 0, len(candidates))
	for _, bot := range candidates {
		if profile.Owned[bot.ID] {
			continue
		}

		collab := collaborativeScore(hood, bot.ID)
		content := contentScore(profile, bot)
		behavioral := behavioralScore(behavior[bot.ID])
		trending := trendingScore(bot)

		final := (weightCollaborative*collab +
			weightContent*content +
			weightBehavioral*behavioral +
			weightTrending*trending) * 100

		out = append(out, domain.DebugRecommendation{
			BotID:         bot.ID,
			Collaborative: collab,
			Content:       content,
			Behavioral:    behavioral,
			Trending:      trending,
			FinalScore:    final,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FinalScore == out[j].FinalScore {
			return out[i].BotID < out[j].BotID
		}
		return out[i].FinalScore > out[j].FinalScore
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
