package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RebalanceRun struct {
	RebalanceRunID uuid.UUID `sql:"primary_key"`
	OldDate        time.Time
	NewDate        time.Time
	Cutoff         float64
	Capital        decimal.Decimal
	TurnoverPct    float64
	CreatedAt      time.Time
}
