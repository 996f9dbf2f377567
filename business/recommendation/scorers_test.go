package recommendation

import (
	"testing"
	"time"

	"botmart/domain"
)

func TestTrendingScoreBounds(t *testing.T) {
	cases := []struct {
		name string
		bot  domain.Bot
		want float64
	}{
		{"zero signals", domain.Bot{}, 0},
		{"maxed out", domain.Bot{DownloadCount: 1000, AverageRating: 5}, 1},
		{"downloads capped", domain.Bot{DownloadCount: 50000, AverageRating: 5}, 1},
		{"half popularity", domain.Bot{DownloadCount: 500, AverageRating: 2.5}, 0.6*0.5 + 0.4*0.5},
	}
	for _, tc := range cases {
		if got := trendingScore(tc.bot); !almostEqual(got, tc.want) {
			t.Errorf("%s: trendingScore = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContentScoreComponents(t *testing.T) {
	profile := &PreferenceProfile{
		CategoryAffinity:  map[uint64]float64{10: 2.0, 20: 1.0},
		AveragePrice:      40,
		MaxPriceSeen:      60,
		PreferredFeatures: []string{"nlp"},
		ComplexityLevel:   2,
	}

	// Top category, price in [20,60], half the features shared, exact
	// complexity match: 0.3 + 0.2 + 0.3*1/2 + 0.2.
	bot := domain.Bot{
		CategoryID: 10,
		Price:      30,
		Features:   []string{"nlp", "scheduler"},
		Complexity: 2,
	}
	if got := contentScore(profile, bot); !almostEqual(got, 0.85) {
		t.Errorf("contentScore = %v, want 0.85", got)
	}

	// Secondary category gets the affinity-weighted share of 0.3.
	bot.CategoryID = 20
	if got := contentScore(profile, bot); !almostEqual(got, 0.3*0.5+0.2+0.15+0.2) {
		t.Errorf("contentScore secondary category = %v", got)
	}

	// No affinity, price out of range, no features, max complexity gap.
	stranger := domain.Bot{CategoryID: 99, Price: 500, Complexity: 2}
	profile.ComplexityLevel = 1
	want := 0.2 * (1.0 - 1.0/3.0)
	if got := contentScore(profile, stranger); !almostEqual(got, want) {
		t.Errorf("contentScore stranger = %v, want %v", got, want)
	}
}

func TestBehavioralScoreCapsAndClamp(t *testing.T) {
	if got := behavioralScore(nil); got != 0 {
		t.Fatalf("nil stats = %v, want 0", got)
	}

	now := time.Now()
	old := now.Add(-48 * time.Hour)

	// One recent 60s view: 0.4*(60/300) + 0.3*(1/10) + 0.1 + 0.05.
	stats := buildBehavior([]domain.Interaction{
		{BotID: 1, EventType: domain.InteractionView, DurationSeconds: 60, CreatedAt: now},
	}, now)
	want := 0.4*0.2 + 0.3*0.1 + perTypeBonus + perRecentBonus
	if got := behavioralScore(stats[1]); !almostEqual(got, want) {
		t.Errorf("single view = %v, want %v", got, want)
	}

	// Heavy engagement clamps to 1 even with all bonuses stacked.
	heavy := make([]domain.Interaction, 0, 40)
	for i := 0; i < 40; i++ {
		heavy = append(heavy, domain.Interaction{
			BotID:           2,
			EventType:       domain.InteractionTimeOnPage,
			DurationSeconds: 120,
			CreatedAt:       now,
		})
	}
	stats = buildBehavior(heavy, now)
	if got := behavioralScore(stats[2]); got != 1 {
		t.Errorf("heavy engagement = %v, want 1", got)
	}

	// Stale events earn no recency bonus.
	stats = buildBehavior([]domain.Interaction{
		{BotID: 3, EventType: domain.InteractionClick, CreatedAt: old},
	}, now)
	want = 0.3*0.1 + perTypeBonus
	if got := behavioralScore(stats[3]); !almostEqual(got, want) {
		t.Errorf("stale click = %v, want %v", got, want)
	}
}

func TestBuildBehaviorGroupsViewTime(t *testing.T) {
	now := time.Now()
	stats := buildBehavior([]domain.Interaction{
		{BotID: 1, EventType: domain.InteractionView, DurationSeconds: 30, CreatedAt: now},
		{BotID: 1, EventType: domain.InteractionTimeOnPage, DurationSeconds: 45, CreatedAt: now},
		{BotID: 1, EventType: domain.InteractionHover, DurationSeconds: 99, CreatedAt: now}, // hover time ignored
		{BotID: 2, EventType: domain.InteractionView, DurationSeconds: 10, CreatedAt: now},
	}, now)

	if got := stats[1].viewSeconds; !almostEqual(got, 75) {
		t.Errorf("bot 1 viewSeconds = %v, want 75", got)
	}
	if got := stats[1].events; got != 3 {
		t.Errorf("bot 1 events = %d, want 3", got)
	}
	if got := len(stats[1].types); got != 3 {
		t.Errorf("bot 1 distinct types = %d, want 3", got)
	}
	if got := stats[2].viewSeconds; !almostEqual(got, 10) {
		t.Errorf("bot 2 viewSeconds = %v, want 10", got)
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-0.5) != 0 {
		t.Error("negative not clamped to 0")
	}
	if clamp01(1.5) != 1 {
		t.Error("overflow not clamped to 1")
	}
	if clamp01(0.42) != 0.42 {
		t.Error("in-range value changed")
	}
}
