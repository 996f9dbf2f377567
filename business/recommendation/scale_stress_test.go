//go:build !integration

package recommendation

import (
	"math/rand"
	"testing"
)

// scenario params
const (
	stressNumUsers        = 20000
	stressNumBots         = 500
	stressPurchasesPerUsr = 8
)

// TestNeighborhoodScale sizes the in-memory neighborhood for a catalog-wide
// worst case: every user shares at least one bot with the target. Verifies
// the structure stays proportional to users+purchases and logs the totals.
func TestNeighborhoodScale(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	owned := make(map[uint]map[uint64]bool, stressNumUsers)
	for u := 1; u <= stressNumUsers; u++ {
		set := make(map[uint64]bool, stressPurchasesPerUsr)
		// bot 0 is the shared anchor so everyone is a neighbor
		set[0] = true
		for i := 1; i < stressPurchasesPerUsr; i++ {
			set[uint64(rng.Intn(stressNumBots))] = true
		}
		owned[uint(u)] = set
	}

	target := owned[1]
	hood := emptyNeighborhood()
	for uid, set := range owned {
		if uid == 1 {
			continue
		}
		hood.owned[uid] = set
		hood.sims[uid] = jaccard(target, set)
	}

	totalArms := 0
	for _, set := range hood.owned {
		totalArms += len(set)
	}

	if len(hood.sims) != stressNumUsers-1 {
		t.Fatalf("neighbors=%d, want %d", len(hood.sims), stressNumUsers-1)
	}
	for uid, sim := range hood.sims {
		if sim <= 0 || sim > 1 {
			t.Fatalf("user %d sim %v outside (0,1]", uid, sim)
		}
	}

	// one score pass over the full candidate set
	scored := 0
	for b := uint64(0); b < stressNumBots; b++ {
		if s := collaborativeScore(hood, b); s > 0 {
			scored++
		}
	}

	t.Logf("[NEIGHBORHOOD] neighbors=%d ownedEntries=%d scoredCandidates=%d",
		len(hood.sims), totalArms, scored)
}
