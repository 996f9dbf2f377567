package recommendation

import (
	"context"
	"fmt"
)

// The collaborative signal uses Jaccard similarity over completed co-purchase
// sets. It is fully deterministic: the same purchase and review rows always
// produce the same neighbor weights and candidate scores.

// neighborhood holds the similar-user data for one ranking request.
type neighborhood struct {
	sims    map[uint]float64            // neighbor -> Jaccard similarity
	owned   map[uint]map[uint64]bool    // neighbor -> owned bot set
	ratings map[uint]map[uint64]float64 // neighbor -> bot -> star rating
}

func emptyNeighborhood() *neighborhood {
	return &neighborhood{
		sims:    make(map[uint]float64),
		owned:   make(map[uint]map[uint64]bool),
		ratings: make(map[uint]map[uint64]float64),
	}
}

// buildNeighborhood finds users who share at least one purchase with the
// target user and weights each by Jaccard similarity of the two purchase
// sets. Three batched queries total, independent of neighbor count.
func (s *RecommendationService) buildNeighborhood(
	ctx context.Context,
	userID uint,
	owned map[uint64]bool,
) (*neighborhood, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(owned) == 0 {
		return emptyNeighborhood(), nil
	}

	ownedIDs := make([]uint64, 0, len(owned))
	for id := range owned {
		ownedIDs = append(ownedIDs, id)
	}

	// 1) everyone who bought anything the target user bought
	pairs, err := s.txRepo.FindPurchasersOfBots(ctx, ownedIDs)
	if err != nil {
		return nil, fmt.Errorf("load co-purchasers: %w", err)
	}

	neighborSet := make(map[uint]struct{})
	neighborIDs := make([]uint, 0)
	for _, p := range pairs {
		if p.UserID == userID {
			continue
		}
		if _, ok := neighborSet[p.UserID]; !ok {
			neighborSet[p.UserID] = struct{}{}
			neighborIDs = append(neighborIDs, p.UserID)
		}
	}
	if len(neighborIDs) == 0 {
		return emptyNeighborhood(), nil
	}

	// 2) each neighbor's full purchase set, for the Jaccard denominator
	fullSets, err := s.txRepo.FindCompletedByUsers(ctx, neighborIDs)
	if err != nil {
		return nil, fmt.Errorf("load neighbor purchases: %w", err)
	}

	n := emptyNeighborhood()
	for _, p := range fullSets {
		set, ok := n.owned[p.UserID]
		if !ok {
			set = make(map[uint64]bool)
			n.owned[p.UserID] = set
		}
		set[p.BotID] = true
	}

	for uid, theirs := range n.owned {
		n.sims[uid] = jaccard(owned, theirs)
	}

	// 3) neighbor star ratings, one query for the whole set
	reviews, err := s.reviewRepo.FindByUsers(ctx, neighborIDs)
	if err != nil {
		return nil, fmt.Errorf("load neighbor reviews: %w", err)
	}
	for _, r := range reviews {
		m, ok := n.ratings[r.UserID]
		if !ok {
			m = make(map[uint64]float64)
			n.ratings[r.UserID] = m
		}
		m[r.BotID] = float64(r.Rating)
	}

	return n, nil
}

func jaccard(a map[uint64]bool, b map[uint64]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// collaborativeScore is the similarity-weighted average of neighbor ratings
// for one candidate. Neighbors who own the bot but never rated it count as a
// neutral rating. No owning neighbors means no signal.
func collaborativeScore(n *neighborhood, botID uint64) float64 {
	var num, den float64

	for uid, sim := range n.sims {
		if sim <= 0 || !n.owned[uid][botID] {
			continue
		}

		rating := unratedOwnerScore
		if stars, ok := n.ratings[uid][botID]; ok {
			rating = stars / 5.0
		}

		num += sim * rating
		den += sim
	}

	if den == 0 {
		return 0
	}
	return num / den
}
