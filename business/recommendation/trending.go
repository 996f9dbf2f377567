package recommendation

import (
	"context"
	"fmt"
	"time"

	"botmart/domain"
	"botmart/pkg/logger"
)

// Trending returns the approved bots with the most completed purchases over
// the last 7 days, ties broken by lifetime view count. Order comes from the
// popularity query; the trending formula supplies each entry's score. The
// list is user-independent, so a short-TTL cache sits in front when
// configured.
func (s *RecommendationService) Trending(
	ctx context.Context,
	limit int,
) ([]domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultTrendingCount
	}

	if s.trendingCache != nil {
		cached, err := s.trendingCache.Get(ctx, limit)
		if err != nil {
			logger.Warn("trending cache read failed", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	bots, err := s.botRepo.FindTrending(ctx, time.Now().Add(-trendingWindow), limit)
	if err != nil {
		return nil, fmt.Errorf("load trending bots: %w", err)
	}

	recs := make([]domain.Recommendation, 0, len(bots))
	for _, bot := range bots {
		score := trendingScore(bot) * 100

		tags := []string{"trending"}
		if bot.AverageRating >= highlyRatedFloor {
			tags = append(tags, "highly-rated")
		}

		recs = append(recs, domain.Recommendation{
			BotID:      bot.ID,
			Score:      score,
			Confidence: clamp01(score / 100),
			Reason:     "Trending this week",
			Tags:       tags,
		})
	}

	if err := s.enrich(ctx, recs); err != nil {
		return nil, err
	}

	if s.trendingCache != nil {
		if err := s.trendingCache.Set(ctx, limit, recs); err != nil {
			logger.Warn("trending cache write failed", err)
		}
	}

	recommendationsServedTotal.WithLabelValues(sourceTrending).Add(float64(len(recs)))

	return recs, nil
}
