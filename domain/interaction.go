package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.interactions (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id          BIGINT NOT NULL,
//     bot_id           BIGINT NOT NULL,
//     event_type       TEXT NOT NULL,
//     duration_seconds NUMERIC DEFAULT 0,
//     context          JSONB,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

const (
	InteractionView       = "view"
	InteractionHover      = "hover"
	InteractionClick      = "click"
	InteractionTimeOnPage = "time_on_page"
)

type Interaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"column:user_id;not null" json:"user_id"`
	BotID           uint64            `gorm:"column:bot_id;not null" json:"bot_id"`
	EventType       string            `gorm:"column:event_type;not null" json:"event_type"`
	DurationSeconds float64           `gorm:"column:duration_seconds;type:numeric;default:0" json:"duration_seconds"`
	Context         datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}
