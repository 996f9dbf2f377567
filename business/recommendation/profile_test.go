package recommendation

import (
	"context"
	"math"
	"reflect"
	"testing"

	"botmart/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil, nil)

	profile, err := svc.buildProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("buildProfile: %v", err)
	}

	if profile.AveragePrice != defaultAveragePrice {
		t.Errorf("AveragePrice = %v, want %v", profile.AveragePrice, defaultAveragePrice)
	}
	if profile.MaxPriceSeen != defaultMaxPriceSeen {
		t.Errorf("MaxPriceSeen = %v, want %v", profile.MaxPriceSeen, defaultMaxPriceSeen)
	}
	if len(profile.CategoryAffinity) != 0 {
		t.Errorf("CategoryAffinity = %v, want empty", profile.CategoryAffinity)
	}
	if len(profile.Owned) != 0 {
		t.Errorf("Owned = %v, want empty", profile.Owned)
	}
	if len(profile.PreferredFeatures) != 0 {
		t.Errorf("PreferredFeatures = %v, want empty", profile.PreferredFeatures)
	}
	if profile.ComplexityLevel != domain.ComplexityBeginner {
		t.Errorf("ComplexityLevel = %d, want %d", profile.ComplexityLevel, domain.ComplexityBeginner)
	}
}

func TestBuildProfileAffinityAndPrices(t *testing.T) {
	bots := &fakeBotRepo{bots: []domain.Bot{
		{ID: 1, CategoryID: 10, Price: 20, Features: []string{"nlp", "scheduler"}},
		{ID: 2, CategoryID: 10, Price: 40, Features: []string{"nlp"}},
		{ID: 3, CategoryID: 20, Price: 60},
	}}
	txs := &fakeTxRepo{purchases: []domain.Transaction{
		{UserID: 1, BotID: 1, Amount: 20, Status: domain.TransactionCompleted},
		{UserID: 1, BotID: 2, Amount: 40, Status: domain.TransactionCompleted},
		{UserID: 1, BotID: 3, Amount: 60, Status: domain.TransactionCompleted},
	}}
	reviews := &fakeReviewRepo{reviews: []domain.Review{
		{UserID: 1, BotID: 1, Rating: 5}, // high rating, +0.5
		{UserID: 1, BotID: 3, Rating: 2}, // low rating, ignored
	}}

	svc := newTestService(bots, txs, reviews, nil, nil, nil)

	profile, err := svc.buildProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("buildProfile: %v", err)
	}

	if got := profile.CategoryAffinity[10]; !almostEqual(got, 2.5) {
		t.Errorf("affinity[10] = %v, want 2.5", got)
	}
	if got := profile.CategoryAffinity[20]; !almostEqual(got, 1.0) {
		t.Errorf("affinity[20] = %v, want 1.0", got)
	}
	if !almostEqual(profile.AveragePrice, 40) {
		t.Errorf("AveragePrice = %v, want 40", profile.AveragePrice)
	}
	if !almostEqual(profile.MaxPriceSeen, 60) {
		t.Errorf("MaxPriceSeen = %v, want 60", profile.MaxPriceSeen)
	}
	if profile.ComplexityLevel != domain.ComplexityIntermediate {
		t.Errorf("ComplexityLevel = %d, want %d", profile.ComplexityLevel, domain.ComplexityIntermediate)
	}
	for _, id := range []uint64{1, 2, 3} {
		if !profile.Owned[id] {
			t.Errorf("Owned[%d] = false, want true", id)
		}
	}
	// nlp bought twice, scheduler once
	if want := []string{"nlp", "scheduler"}; !reflect.DeepEqual(profile.PreferredFeatures, want) {
		t.Errorf("PreferredFeatures = %v, want %v", profile.PreferredFeatures, want)
	}
}

func TestTopFeaturesCapsAtFive(t *testing.T) {
	botByID := map[uint64]domain.Bot{
		1: {ID: 1, Features: []string{"a", "b", "c", "d", "e", "f", "g"}},
		2: {ID: 2, Features: []string{"c", "d"}},
	}
	purchases := []domain.Transaction{
		{BotID: 1}, {BotID: 2},
	}

	got := topFeatures(purchases, botByID)
	if len(got) != maxPreferredFeatures {
		t.Fatalf("len = %d, want %d", len(got), maxPreferredFeatures)
	}
	// c and d appear twice so they lead; remaining slots keep first-seen order.
	if got[0] != "c" || got[1] != "d" {
		t.Errorf("top two = %v, want [c d ...]", got[:2])
	}
}

func TestComplexityForPurchaseCount(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, domain.ComplexityBeginner},
		{2, domain.ComplexityBeginner},
		{3, domain.ComplexityIntermediate},
		{9, domain.ComplexityIntermediate},
		{10, domain.ComplexityAdvanced},
		{50, domain.ComplexityAdvanced},
	}
	for _, tc := range cases {
		if got := complexityForPurchaseCount(tc.n); got != tc.want {
			t.Errorf("complexityForPurchaseCount(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
