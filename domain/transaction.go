package domain

import "time"

// CREATE TABLE public.transactions (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     reference   TEXT UNIQUE NOT NULL,
//     user_id     BIGINT NOT NULL,
//     bot_id      BIGINT NOT NULL,
//     amount      NUMERIC NOT NULL,
//     status      TEXT NOT NULL,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

const (
	TransactionPending   = "PENDING"
	TransactionCompleted = "COMPLETED"
	TransactionFailed    = "FAILED"
)

type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Reference string    `gorm:"column:reference;unique;not null" json:"reference"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	BotID     uint64    `gorm:"column:bot_id;not null" json:"bot_id"`
	Amount    float64   `gorm:"column:amount;type:numeric;not null" json:"amount"`
	Status    string    `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// PurchasePair is the (user, bot) projection used by the collaborative scorer.
type PurchasePair struct {
	UserID uint   `json:"user_id"`
	BotID  uint64 `json:"bot_id"`
}
