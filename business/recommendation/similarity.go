package recommendation

import (
	"context"
	"fmt"
	"sort"

	"botmart/domain"
)

// Similar-bot component weights, 0–100 scale.
const (
	similarCategoryPoints = 30.0
	similarPricePoints    = 20.0
	similarFeaturePoints  = 30.0
	similarRatingPoints   = 15.0
)

// SimilarBots ranks approved bots in the reference bot's category by
// closeness to the reference: category (constant, given the filter), price
// proximity, feature overlap, and rating proximity. The feature term is
// normalized by Jaccard overlap so a long shared tag list cannot swamp the
// other components.
func (s *RecommendationService) SimilarBots(
	ctx context.Context,
	botID uint64,
	limit int,
) ([]domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultSimilarCount
	}

	ref, err := s.botRepo.FindByID(ctx, botID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.botRepo.FindApprovedByCategory(ctx, ref.CategoryID, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("load similar candidates: %w", err)
	}

	refFeatures := featureSet(ref.Features)
	reason := fmt.Sprintf("Similar to %s", ref.Title)

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, bot := range candidates {
		score := similarCategoryPoints
		score += priceProximity(ref.Price, bot.Price)
		score += similarFeaturePoints * jaccardStrings(refFeatures, featureSet(bot.Features))
		score += ratingProximity(ref.AverageRating, bot.AverageRating)

		recs = append(recs, domain.Recommendation{
			BotID:      bot.ID,
			Score:      score,
			Confidence: clamp01(score / 100),
			Reason:     reason,
			Tags:       []string{"similar", "same-category"},
		})
	}

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

	recommendationsServedTotal.WithLabelValues(sourceSimilar).Add(float64(len(recs)))

	return recs, nil
}

// priceProximity awards up to 20 points, shrinking with the relative gap.
func priceProximity(p1, p2 float64) float64 {
	max := p1
	if p2 > max {
		max = p2
	}
	if max <= 0 {
		return similarPricePoints
	}

	diff := p1 - p2
	if diff < 0 {
		diff = -diff
	}

	score := similarPricePoints - diff/max*similarPricePoints
	if score < 0 {
		return 0
	}
	return score
}

// ratingProximity awards up to 15 points, losing 3 per star of difference.
func ratingProximity(r1, r2 float64) float64 {
	diff := r1 - r2
	if diff < 0 {
		diff = -diff
	}

	score := similarRatingPoints - diff*3
	if score < 0 {
		return 0
	}
	return score
}

func featureSet(features []string) map[string]bool {
	set := make(map[string]bool, len(features))
	for _, f := range features {
		set[f] = true
	}
	return set
}

func jaccardStrings(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for f := range a {
		if b[f] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
