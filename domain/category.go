package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     category_id     BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_name   TEXT NOT NULL,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	CategoryID   uint64    `gorm:"primaryKey;column:category_id;autoIncrement" json:"category_id"`
	CategoryName string    `gorm:"column:category_name;type:text;not null" json:"category_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
