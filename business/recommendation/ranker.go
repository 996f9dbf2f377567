package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"botmart/domain"
	"botmart/pkg/logger"
)

// Recommend ranks every approved, not-yet-purchased bot for the user and
// returns the top results. The final score combines the four signals as
// 0.4*collaborative + 0.3*content + 0.2*behavioral + 0.1*trending on a
// 0–100 scale; anything at or below 30 is dropped. Errors from the data
// layer surface unchanged; no retries happen here.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	userID uint,
	limit int,
) ([]domain.Recommendation, error) {

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
	logger.Debug("reco_rank",
		"trace_id", tid,
		"user_id", userID,
		"limit", limit,
		"candidate_count", len(candidates),
		"neighbor_count", len(hood.sims),
	)

	recs := make([]domain.Recommendation, 0, len(candidates))
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

		if final <= minScoreThreshold {
			continue
		}

		recs = append(recs, domain.Recommendation{
			BotID:      bot.ID,
			Score:      final,
			Confidence: clamp01(final / 100),
			Reason:     buildReason(profile, bot),
			Tags:       buildTags(profile, bot),
		})
	}

	// Score descending; ties break on bot id so repeated calls agree.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score == recs[j].Score {
			return recs[i].BotID < recs[j].BotID
		}
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}

	if err := s.enrich(ctx, recs); err != nil {
		return nil, err
	}

	recommendationsServedTotal.WithLabelValues(sourcePersonalized).Add(float64(len(recs)))

	return recs, nil
}
