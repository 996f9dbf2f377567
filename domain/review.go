package domain

import "time"

// CREATE TABLE public.reviews (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL,
//     bot_id      BIGINT NOT NULL,
//     rating      INT NOT NULL,
//     comment     TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, bot_id)
// );

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	BotID     uint64    `gorm:"column:bot_id;not null" json:"bot_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
