package recommendation

import (
	"context"
	"testing"

	"botmart/domain"
)

func TestPersonalizedFeedDeduplicates(t *testing.T) {
	bots, txs, reviews, interactions, categories := rankerFixture()
	// Trending overlaps the personalized results on bot 2 and adds bot 6.
	bots.bots = append(bots.bots, domain.Bot{
		ID: 6, CategoryID: 20, Status: domain.BotStatusApproved, DownloadCount: 1000, AverageRating: 5,
	})
	bots.trending = []domain.Bot{
		{ID: 6, CategoryID: 20, DownloadCount: 1000, AverageRating: 5},
		{ID: 2, CategoryID: 10, DownloadCount: 500, AverageRating: 4.5},
	}
	svc := newTestService(bots, txs, reviews, interactions, categories, nil)

	feed, err := svc.PersonalizedFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("PersonalizedFeed: %v", err)
	}

	if len(feed) > feedPersonalizedCount+feedTrendingCount {
		t.Fatalf("feed has %d entries, cap is %d", len(feed), feedPersonalizedCount+feedTrendingCount)
	}

	seen := make(map[uint64]int)
	for _, rec := range feed {
		seen[rec.BotID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("bot %d appears %d times", id, n)
		}
	}

	// The overlapping bot keeps its personalized entry, not the trending one.
	for _, rec := range feed {
		if rec.BotID == 2 && rec.Reason == "Trending this week" {
			t.Error("duplicate resolved in favor of the trending entry")
		}
	}

	// Trending-only bot 6 made it in.
	if seen[6] != 1 {
		t.Errorf("trending-only bot missing from feed: %v", seen)
	}

	for i := 1; i < len(feed); i++ {
		if feed[i].Score > feed[i-1].Score {
			t.Errorf("feed not sorted at index %d", i)
		}
	}
}

func TestPersonalizedFeedColdStart(t *testing.T) {
	bots := &fakeBotRepo{
		bots: []domain.Bot{
			{ID: 1, CategoryID: 10, Status: domain.BotStatusApproved, DownloadCount: 900, AverageRating: 5},
		},
		trending: []domain.Bot{
			{ID: 1, CategoryID: 10, DownloadCount: 900, AverageRating: 5},
		},
	}
	svc := newTestService(bots, nil, nil, nil, nil, nil)

	// No history at all: the feed degrades to the trending slice.
	feed, err := svc.PersonalizedFeed(context.Background(), 42)
	if err != nil {
		t.Fatalf("PersonalizedFeed: %v", err)
	}
	if len(feed) != 1 || feed[0].BotID != 1 {
		t.Fatalf("cold-start feed = %+v, want the trending bot", feed)
	}
	if feed[0].Reason != "Trending this week" {
		t.Errorf("reason = %q", feed[0].Reason)
	}
}
