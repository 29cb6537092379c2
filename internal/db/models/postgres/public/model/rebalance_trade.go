package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RebalanceTrade struct {
	RebalanceTradeID uuid.UUID `sql:"primary_key"`
	RebalanceRunID   uuid.UUID
	Company          string
	Action           string
	TradeShares      decimal.Decimal
	TradeValue       decimal.Decimal
	CreatedAt        time.Time
}
