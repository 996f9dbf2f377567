package domain

// BotSummary is the batch-enriched catalog projection attached to a recommendation.
type BotSummary struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	CategoryID    uint64  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	AverageRating float64 `json:"average_rating"`
	DownloadCount int     `json:"download_count"`
}

type Recommendation struct {
	BotID      uint64      `json:"bot_id"`
	Score      float64     `json:"score"`      // 0–100
	Confidence float64     `json:"confidence"` // score/100, capped at 1
	Reason     string      `json:"reason"`
	Tags       []string    `json:"tags"`
	Bot        *BotSummary `json:"bot,omitempty"`
}

// DebugRecommendation exposes the per-signal breakdown behind a final score.
type DebugRecommendation struct {
	BotID         uint64  `json:"bot_id"`
	Collaborative float64 `json:"collaborative"` // 0–1
	Content       float64 `json:"content"`       // 0–1
	Behavioral    float64 `json:"behavioral"`    // 0–1
	Trending      float64 `json:"trending"`      // 0–1
	FinalScore    float64 `json:"final_score"`   // 0–100, pre-threshold
}
