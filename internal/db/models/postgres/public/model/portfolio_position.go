package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PortfolioPosition struct {
	PortfolioPositionID uuid.UUID `sql:"primary_key"`
	RebalanceRunID      uuid.UUID
	Date                time.Time
	Company             string
	Shares              decimal.Decimal
	Allocation          decimal.Decimal
	Price               decimal.Decimal
	CreatedAt           time.Time
}
