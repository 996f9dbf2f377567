package recommendation

import (
	"context"
	"testing"

	"botmart/domain"
)

func TestSimilarBots(t *testing.T) {
	bots := &fakeBotRepo{bots: []domain.Bot{
		{ID: 1, CategoryID: 10, Price: 50, Features: []string{"a", "b"}, AverageRating: 4, Status: domain.BotStatusApproved},
		// identical twin: full marks on every component
		{ID: 2, CategoryID: 10, Price: 50, Features: []string{"a", "b"}, AverageRating: 4, Status: domain.BotStatusApproved},
		// same category, everything else far away
		{ID: 3, CategoryID: 10, Price: 500, Features: []string{"x"}, AverageRating: 1, Status: domain.BotStatusApproved},
		// other category: never a candidate
		{ID: 4, CategoryID: 20, Price: 50, Features: []string{"a", "b"}, AverageRating: 4, Status: domain.BotStatusApproved},
	}}
	categories := &fakeCategoryRepo{categories: []domain.Category{{CategoryID: 10, CategoryName: "Trading"}}}
	svc := newTestService(bots, nil, nil, nil, categories, nil)

	recs, err := svc.SimilarBots(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("SimilarBots: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(recs), recs)
	}
	for _, rec := range recs {
		if rec.BotID == 1 {
			t.Error("reference bot recommended as similar to itself")
		}
		if rec.BotID == 4 {
			t.Error("cross-category bot in similar results")
		}
	}

	// Twin: 30 category + 20 price + 30 features + 15 rating.
	if recs[0].BotID != 2 || !almostEqual(recs[0].Score, 95) {
		t.Errorf("twin = bot %d score %v, want bot 2 score 95", recs[0].BotID, recs[0].Score)
	}
	if recs[0].Reason == "" {
		t.Error("empty reason")
	}

	// Distant sibling keeps the category points but loses the rest:
	// price 20-450/500*20 = 2, no shared features, rating gap 3 stars.
	wantDistant := 30.0 + 2.0 + 0.0 + (15.0 - 3*3)
	if recs[1].BotID != 3 || !almostEqual(recs[1].Score, wantDistant) {
		t.Errorf("distant = bot %d score %v, want bot 3 score %v", recs[1].BotID, recs[1].Score, wantDistant)
	}
}

func TestSimilarBotsFeatureTermBounded(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	bots := &fakeBotRepo{bots: []domain.Bot{
		{ID: 1, CategoryID: 10, Price: 10, Features: many, AverageRating: 4, Status: domain.BotStatusApproved},
		{ID: 2, CategoryID: 10, Price: 10, Features: many, AverageRating: 4, Status: domain.BotStatusApproved},
	}}
	svc := newTestService(bots, nil, nil, nil, nil, nil)

	recs, err := svc.SimilarBots(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("SimilarBots: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d results, want 1", len(recs))
	}

	// Ten shared tags still award exactly the 30-point feature maximum.
	if recs[0].Score > 100 {
		t.Errorf("score %v exceeds 100", recs[0].Score)
	}
	if !almostEqual(recs[0].Score, 95) {
		t.Errorf("score = %v, want 95", recs[0].Score)
	}
}

func TestSimilarBotsUnknownReference(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil, nil)

	if _, err := svc.SimilarBots(context.Background(), 404, 10); err == nil {
		t.Fatal("expected error for unknown reference bot")
	}
}

func TestSimilarBotsDefaultLimit(t *testing.T) {
	list := make([]domain.Bot, 0, 12)
	list = append(list, domain.Bot{ID: 1, CategoryID: 10, Price: 10, Status: domain.BotStatusApproved})
	for i := uint64(2); i <= 12; i++ {
		list = append(list, domain.Bot{ID: i, CategoryID: 10, Price: 10, Status: domain.BotStatusApproved})
	}
	svc := newTestService(&fakeBotRepo{bots: list}, nil, nil, nil, nil, nil)

	recs, err := svc.SimilarBots(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("SimilarBots: %v", err)
	}
	if len(recs) != defaultSimilarCount {
		t.Errorf("got %d results, want default %d", len(recs), defaultSimilarCount)
	}
}

func TestPriceProximity(t *testing.T) {
	if got := priceProximity(50, 50); !almostEqual(got, similarPricePoints) {
		t.Errorf("equal prices = %v, want %v", got, similarPricePoints)
	}
	if got := priceProximity(0, 0); !almostEqual(got, similarPricePoints) {
		t.Errorf("both free = %v, want %v", got, similarPricePoints)
	}
	if got := priceProximity(100, 0); got != 0 {
		t.Errorf("total gap = %v, want 0", got)
	}
	if got := priceProximity(100, 50); !almostEqual(got, 10) {
		t.Errorf("half gap = %v, want 10", got)
	}
}
