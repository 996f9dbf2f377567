package recommendation

import (
	"context"
	"reflect"
	"testing"

	"botmart/domain"
)

func TestJaccard(t *testing.T) {
	a := map[uint64]bool{1: true, 2: true}
	b := map[uint64]bool{1: true, 2: true}
	if got := jaccard(a, b); !almostEqual(got, 1.0) {
		t.Errorf("identical sets = %v, want 1", got)
	}

	c := map[uint64]bool{3: true}
	if got := jaccard(a, c); got != 0 {
		t.Errorf("disjoint sets = %v, want 0", got)
	}

	d := map[uint64]bool{1: true, 3: true, 4: true}
	// intersection 1, union 4
	if got := jaccard(a, d); !almostEqual(got, 0.25) {
		t.Errorf("partial overlap = %v, want 0.25", got)
	}

	if got := jaccard(nil, a); got != 0 {
		t.Errorf("empty set = %v, want 0", got)
	}
}

func TestCollaborativeScore(t *testing.T) {
	hood := emptyNeighborhood()
	if got := collaborativeScore(hood, 1); got != 0 {
		t.Fatalf("no neighbors = %v, want 0", got)
	}

	hood.sims[2] = 0.5
	hood.owned[2] = map[uint64]bool{7: true}
	hood.ratings[2] = map[uint64]float64{7: 5}

	// One neighbor, five stars: weighted average is 1.0 regardless of sim.
	if got := collaborativeScore(hood, 7); !almostEqual(got, 1.0) {
		t.Errorf("rated owner = %v, want 1.0", got)
	}

	// Owned but unrated falls back to the neutral value.
	hood.sims[3] = 0.5
	hood.owned[3] = map[uint64]bool{8: true}
	if got := collaborativeScore(hood, 8); !almostEqual(got, unratedOwnerScore) {
		t.Errorf("unrated owner = %v, want %v", got, unratedOwnerScore)
	}

	// Nobody owns the candidate: no signal.
	if got := collaborativeScore(hood, 99); got != 0 {
		t.Errorf("unowned candidate = %v, want 0", got)
	}

	// Mixed neighbors blend by similarity: (0.5*1.0 + 0.25*0.4) / 0.75.
	hood.sims[4] = 0.25
	hood.owned[4] = map[uint64]bool{7: true}
	hood.ratings[4] = map[uint64]float64{7: 2}
	want := (0.5*1.0 + 0.25*0.4) / 0.75
	if got := collaborativeScore(hood, 7); !almostEqual(got, want) {
		t.Errorf("blended = %v, want %v", got, want)
	}
}

func TestBuildNeighborhoodDeterministic(t *testing.T) {
	txs := &fakeTxRepo{purchases: []domain.Transaction{
		{UserID: 1, BotID: 1, Status: domain.TransactionCompleted},
		{UserID: 2, BotID: 1, Status: domain.TransactionCompleted},
		{UserID: 2, BotID: 2, Status: domain.TransactionCompleted},
		{UserID: 3, BotID: 1, Status: domain.TransactionCompleted},
	}}
	reviews := &fakeReviewRepo{reviews: []domain.Review{
		{UserID: 2, BotID: 2, Rating: 4},
	}}
	svc := newTestService(nil, txs, reviews, nil, nil, nil)

	owned := map[uint64]bool{1: true}

	first, err := svc.buildNeighborhood(context.Background(), 1, owned)
	if err != nil {
		t.Fatalf("buildNeighborhood: %v", err)
	}
	second, err := svc.buildNeighborhood(context.Background(), 1, owned)
	if err != nil {
		t.Fatalf("buildNeighborhood: %v", err)
	}

	if !reflect.DeepEqual(first.sims, second.sims) {
		t.Errorf("sims differ across runs: %v vs %v", first.sims, second.sims)
	}

	// User 2 shares bot 1 out of {1,2}: Jaccard 1/2. User 3 matches exactly.
	if got := first.sims[2]; !almostEqual(got, 0.5) {
		t.Errorf("sim[2] = %v, want 0.5", got)
	}
	if got := first.sims[3]; !almostEqual(got, 1.0) {
		t.Errorf("sim[3] = %v, want 1.0", got)
	}
	if _, ok := first.sims[1]; ok {
		t.Error("target user counted as own neighbor")
	}

	if got := first.ratings[2][2]; !almostEqual(got, 4) {
		t.Errorf("neighbor rating = %v, want 4", got)
	}
}

func TestBuildNeighborhoodEmptyHistory(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil, nil)

	hood, err := svc.buildNeighborhood(context.Background(), 1, map[uint64]bool{})
	if err != nil {
		t.Fatalf("buildNeighborhood: %v", err)
	}
	if len(hood.sims) != 0 {
		t.Errorf("sims = %v, want empty", hood.sims)
	}
}
