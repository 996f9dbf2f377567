package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.bots (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     developer_id    BIGINT NOT NULL,
//     category_id     BIGINT NOT NULL,
//     title           TEXT NOT NULL,
//     description     TEXT,
//     price           NUMERIC NOT NULL,
//     features        JSONB,
//     complexity      INT DEFAULT 1,
//     status          TEXT DEFAULT 'pending',
//     average_rating  NUMERIC DEFAULT 0,
//     rating_count    INT DEFAULT 0,
//     download_count  INT DEFAULT 0,
//     view_count      INT DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

const (
	BotStatusPending  = "pending"
	BotStatusApproved = "approved"
	BotStatusRejected = "rejected"
)

const (
	ComplexityBeginner     = 1
	ComplexityIntermediate = 2
	ComplexityAdvanced     = 3
)

type Bot struct {
	ID            uint64                     `gorm:"primaryKey;autoIncrement" json:"id"`
	DeveloperID   uint                       `gorm:"column:developer_id;not null" json:"developer_id"`
	CategoryID    uint64                     `gorm:"column:category_id;not null" json:"category_id"`
	Title         string                     `gorm:"column:title;type:text;not null" json:"title"`
	Description   string                     `gorm:"column:description;type:text" json:"description"`
	Price         float64                    `gorm:"column:price;type:numeric" json:"price"`
	Features      datatypes.JSONSlice[string] `gorm:"column:features;type:jsonb" json:"features"`
	Complexity    int                        `gorm:"column:complexity;default:1" json:"complexity"`
	Status        string                     `gorm:"column:status;default:pending" json:"status"`
	AverageRating float64                    `gorm:"column:average_rating;type:numeric;default:0" json:"average_rating"`
	RatingCount   int                        `gorm:"column:rating_count;default:0" json:"rating_count"`
	DownloadCount int                        `gorm:"column:download_count;default:0" json:"download_count"`
	ViewCount     int                        `gorm:"column:view_count;default:0" json:"view_count"`
	CreatedAt     time.Time                  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time                  `gorm:"column:updated_at" json:"updated_at"`
}

func (Bot) TableName() string {
	return "bots"
}
