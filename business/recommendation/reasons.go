package recommendation

import (
	"strings"

	"botmart/domain"
)

const (
	highlyRatedFloor   = 4.5
	popularDownloads   = 100
	affordablePriceCap = 20.0
)

// buildReason joins the matching predicates into a single sentence.
func buildReason(p *PreferenceProfile, bot domain.Bot) string {
	clauses := make([]string, 0, 4)

	if p.CategoryAffinity[bot.CategoryID] > 0 {
		clauses = append(clauses, "matches your favorite category")
	}
	if bot.Price >= p.AveragePrice/2 && bot.Price <= p.MaxPriceSeen {
		clauses = append(clauses, "fits your budget")
	}
	if bot.AverageRating >= highlyRatedFloor {
		clauses = append(clauses, "is highly rated")
	}
	if bot.DownloadCount > popularDownloads {
		clauses = append(clauses, "is popular with other users")
	}

	if len(clauses) == 0 {
		return "Recommended based on your overall activity"
	}
	return "Recommended because it " + strings.Join(clauses, ", ")
}

// buildTags mirrors the reason predicates, plus affordable for cheap listings.
func buildTags(p *PreferenceProfile, bot domain.Bot) []string {
	tags := make([]string, 0, 5)

	if p.CategoryAffinity[bot.CategoryID] > 0 {
		tags = append(tags, "category-match")
	}
	if bot.Price >= p.AveragePrice/2 && bot.Price <= p.MaxPriceSeen {
		tags = append(tags, "price-match")
	}
	if bot.AverageRating >= highlyRatedFloor {
		tags = append(tags, "highly-rated")
	}
	if bot.DownloadCount > popularDownloads {
		tags = append(tags, "popular")
	}
	if bot.Price < affordablePriceCap {
		tags = append(tags, "affordable")
	}

	return tags
}
