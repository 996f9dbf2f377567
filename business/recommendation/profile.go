package recommendation

import (
	"context"
	"fmt"
	"sort"

	"botmart/domain"
)

const (
	defaultAveragePrice  = 50.0
	defaultMaxPriceSeen  = 100.0
	maxPreferredFeatures = 5
)

// PreferenceProfile is the per-request summary of a user's taste. It is built
// fresh from current purchase/review rows on every ranking call and never
// cached or mutated afterwards.
type PreferenceProfile struct {
	CategoryAffinity  map[uint64]float64
	AveragePrice      float64
	MaxPriceSeen      float64
	PreferredFeatures []string
	ComplexityLevel   int
	Owned             map[uint64]bool
}

func (p *PreferenceProfile) maxAffinity() float64 {
	max := 0.0
	for _, a := range p.CategoryAffinity {
		if a > max {
			max = a
		}
	}
	return max
}

// complexityForPurchaseCount maps experience to the 1–3 complexity scale.
func complexityForPurchaseCount(n int) int {
	switch {
	case n < 3:
		return domain.ComplexityBeginner
	case n < 10:
		return domain.ComplexityIntermediate
	default:
		return domain.ComplexityAdvanced
	}
}

// buildProfile derives the user's category/price/feature affinities from
// completed purchases and reviews. A user with no history yields a valid
// profile with default price fields and empty affinity/feature data.
func (s *RecommendationService) buildProfile(ctx context.Context, userID uint) (*PreferenceProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	purchases, err := s.txRepo.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	// One batch lookup for every bot referenced by a purchase or review.
	botIDSet := make(map[uint64]struct{}, len(purchases)+len(reviews))
	botIDs := make([]uint64, 0, len(purchases)+len(reviews))
	for _, p := range purchases {
		if _, ok := botIDSet[p.BotID]; !ok {
			botIDSet[p.BotID] = struct{}{}
			botIDs = append(botIDs, p.BotID)
		}
	}
	for _, r := range reviews {
		if _, ok := botIDSet[r.BotID]; !ok {
			botIDSet[r.BotID] = struct{}{}
			botIDs = append(botIDs, r.BotID)
		}
	}

	bots, err := s.botRepo.FindByIDs(ctx, botIDs)
	if err != nil {
		return nil, fmt.Errorf("load profile bots: %w", err)
	}
	botByID := make(map[uint64]domain.Bot, len(bots))
	for _, b := range bots {
		botByID[b.ID] = b
	}

	profile := &PreferenceProfile{
		CategoryAffinity: make(map[uint64]float64),
		AveragePrice:     defaultAveragePrice,
		MaxPriceSeen:     defaultMaxPriceSeen,
		ComplexityLevel:  complexityForPurchaseCount(len(purchases)),
		Owned:            make(map[uint64]bool, len(purchases)),
	}

	// Purchases: +1 affinity per category, plus price history.
	priceSum := 0.0
	maxPrice := 0.0
	for _, p := range purchases {
		profile.Owned[p.BotID] = true
		if bot, ok := botByID[p.BotID]; ok {
			profile.CategoryAffinity[bot.CategoryID] += 1.0
		}
		priceSum += p.Amount
		if p.Amount > maxPrice {
			maxPrice = p.Amount
		}
	}
	if len(purchases) > 0 {
		profile.AveragePrice = priceSum / float64(len(purchases))
		profile.MaxPriceSeen = maxPrice
	}

	// Reviews: +0.5 affinity per high rating, additive with the purchase bump.
	for _, r := range reviews {
		if r.Rating < 4 {
			continue
		}
		if bot, ok := botByID[r.BotID]; ok {
			profile.CategoryAffinity[bot.CategoryID] += 0.5
		}
	}

	profile.PreferredFeatures = topFeatures(purchases, botByID)

	return profile, nil
}

// topFeatures returns the 5 most frequent feature tags across purchased bots,
// frequency descending, ties broken by first-encountered order.
func topFeatures(purchases []domain.Transaction, botByID map[uint64]domain.Bot) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, p := range purchases {
		bot, ok := botByID[p.BotID]
		if !ok {
			continue
		}
		for _, f := range bot.Features {
			if _, seen := counts[f]; !seen {
				order = append(order, f)
			}
			counts[f]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxPreferredFeatures {
		order = order[:maxPreferredFeatures]
	}
	return order
}
