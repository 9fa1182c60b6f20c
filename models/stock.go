package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeReportStockDay is one ingested row of the TWSE STOCK_DAY_ALL feed.
// (TradeDate, Code) is the reconciliation key: the sync worker updates the
// row in place when the same code reappears for the same trading day.
type ExchangeReportStockDay struct {
	ID               int             `gorm:"primary_key" json:"id"`
	TradeDate        string          `gorm:"uniqueIndex:idx_trade_date_code;size:8;not null" json:"trade_date"`
	Code             string          `gorm:"uniqueIndex:idx_trade_date_code;size:10;not null" json:"code"`
	Name             string          `gorm:"index;size:40;not null" json:"name"`
	TradeVolume      int64           `gorm:"not null;default:0" json:"trade_volume"`
	TradeValue       int64           `gorm:"not null;default:0" json:"trade_value"`
	OpeningPrice     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"opening_price"`
	HighestPrice     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"highest_price"`
	LowestPrice      decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"lowest_price"`
	ClosingPrice     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"closing_price"`
	Change           decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"change"`
	TransactionCount int             `gorm:"not null;default:0" json:"transaction_count"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
