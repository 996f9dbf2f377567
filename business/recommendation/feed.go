package recommendation

import (
	"context"
	"fmt"
	"sort"

	"botmart/domain"
)

// PersonalizedFeed merges up to 6 personalized results with up to 4 trending
// ones into a single re-sorted list. A bot appearing in both sources is
// emitted once, keeping its personalized entry.
func (s *RecommendationService) PersonalizedFeed(
	ctx context.Context,
	userID uint,
) ([]domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	personalized, err := s.Recommend(ctx, userID, feedPersonalizedCount)
	if err != nil {
		return nil, err
	}

	trending, err := s.Trending(ctx, feedTrendingCount)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(personalized)+len(trending))
	feed := make([]domain.Recommendation, 0, len(personalized)+len(trending))

	for _, rec := range personalized {
		if _, ok := seen[rec.BotID]; ok {
			continue
		}
		seen[rec.BotID] = struct{}{}
		feed = append(feed, rec)
	}
	for _, rec := range trending {
		if _, ok := seen[rec.BotID]; ok {
			continue
		}
		seen[rec.BotID] = struct{}{}
		feed = append(feed, rec)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].Score == feed[j].Score {
			return feed[i].BotID < feed[j].BotID
		}
		return feed[i].Score > feed[j].Score
	})

	recommendationsServedTotal.WithLabelValues(sourceFeed).Add(float64(len(feed)))

	return feed, nil
}
