package recommendation

import (
	"time"

	"botmart/domain"
)

// Behavioral signal caps.
const (
	maxViewSeconds    = 300.0 // 5 minutes of cumulative view time
	maxInteractions   = 10.0
	recentWindow      = 24 * time.Hour
	perTypeBonus      = 0.1
	perRecentBonus    = 0.05
	unratedOwnerScore = 0.6 // neutral rating for owned-but-unrated bots
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// contentScore matches a candidate's attributes against the profile.
// Additive out of 1.0: category up to 0.3 weighted by normalized affinity,
// price-in-range 0.2, feature overlap up to 0.3, complexity match up to 0.2.
func contentScore(p *PreferenceProfile, bot domain.Bot) float64 {
	score := 0.0

	if aff, ok := p.CategoryAffinity[bot.CategoryID]; ok && aff > 0 {
		score += 0.3 * (aff / p.maxAffinity())
	}

	if bot.Price >= p.AveragePrice/2 && bot.Price <= p.MaxPriceSeen {
		score += 0.2
	}

	if len(bot.Features) > 0 && len(p.PreferredFeatures) > 0 {
		preferred := make(map[string]struct{}, len(p.PreferredFeatures))
		for _, f := range p.PreferredFeatures {
			preferred[f] = struct{}{}
		}
		shared := 0
		for _, f := range bot.Features {
			if _, ok := preferred[f]; ok {
				shared++
			}
		}
		score += 0.3 * float64(shared) / float64(len(bot.Features))
	}

	diff := bot.Complexity - p.ComplexityLevel
	if diff < 0 {
		diff = -diff
	}
	score += 0.2 * (1.0 - float64(diff)/3.0)

	return clamp01(score)
}

// behaviorStats aggregates a user's interaction rows for one bot.
type behaviorStats struct {
	viewSeconds float64
	events      int
	types       map[string]struct{}
	recent      int
}

// buildBehavior groups interaction events by bot so scoring never re-scans
// the raw rows per candidate.
func buildBehavior(interactions []domain.Interaction, now time.Time) map[uint64]*behaviorStats {
	stats := make(map[uint64]*behaviorStats)

	for _, ev := range interactions {
		st, ok := stats[ev.BotID]
		if !ok {
			st = &behaviorStats{types: make(map[string]struct{})}
			stats[ev.BotID] = st
		}

		st.events++
		st.types[ev.EventType] = struct{}{}
		if ev.EventType == domain.InteractionView || ev.EventType == domain.InteractionTimeOnPage {
			st.viewSeconds += ev.DurationSeconds
		}
		if now.Sub(ev.CreatedAt) <= recentWindow {
			st.recent++
		}
	}

	return stats
}

// behavioralScore scores engagement with one bot: view time up to 0.4 capped
// at 5 minutes, interaction count up to 0.3 capped at 10, 0.1 per distinct
// event type, 0.05 per event in the last 24h, clamped to [0,1].
func behavioralScore(st *behaviorStats) float64 {
	if st == nil {
		return 0
	}

	viewRatio := st.viewSeconds / maxViewSeconds
	if viewRatio > 1 {
		viewRatio = 1
	}
	countRatio := float64(st.events) / maxInteractions
	if countRatio > 1 {
		countRatio = 1
	}

	score := 0.4*viewRatio + 0.3*countRatio
	score += perTypeBonus * float64(len(st.types))
	score += perRecentBonus * float64(st.recent)

	return clamp01(score)
}

// trendingScore is the popularity signal independent of any user:
// 0.6 * min(1, downloads/1000) + 0.4 * (rating/5).
func trendingScore(bot domain.Bot) float64 {
	downloads := float64(bot.DownloadCount) / 1000.0
	if downloads > 1 {
		downloads = 1
	}
	return 0.6*downloads + 0.4*(bot.AverageRating/5.0)
}
