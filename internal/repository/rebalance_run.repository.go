package repository

import (
	"database/sql"
	"fmt"
	"time"

	"capindex/internal/db/models/postgres/public/model"
	"capindex/internal/db/models/postgres/public/table"
	"capindex/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// RebalanceRunRepository records each rebalance with its trades and
// both dated portfolios, so there is an auditable history of what the
// index held on every run.
type RebalanceRunRepository interface {
	AddRun(tx *sql.Tx, run model.RebalanceRun) (*model.RebalanceRun, error)
	AddTrades(tx *sql.Tx, runID uuid.UUID, trades []domain.Trade) error
	AddPortfolio(tx *sql.Tx, runID uuid.UUID, portfolio *domain.Portfolio) error
	GetRun(id uuid.UUID) (*model.RebalanceRun, error)
	ListRuns() ([]model.RebalanceRun, error)
}

type rebalanceRunRepositoryHandler struct {
	Db *sql.DB
}

func NewRebalanceRunRepository(db *sql.DB) RebalanceRunRepository {
	return rebalanceRunRepositoryHandler{Db: db}
}

func (h rebalanceRunRepositoryHandler) AddRun(tx *sql.Tx, run model.RebalanceRun) (*model.RebalanceRun, error) {
	run.CreatedAt = time.Now().UTC()
	query := table.RebalanceRun.
		INSERT(table.RebalanceRun.MutableColumns).
		MODEL(run).
		RETURNING(table.RebalanceRun.AllColumns)

	out := model.RebalanceRun{}
	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}
	if err := query.Query(db, &out); err != nil {
		return nil, fmt.Errorf("failed to insert rebalance run: %w", err)
	}

	return &out, nil
}

func (h rebalanceRunRepositoryHandler) AddTrades(tx *sql.Tx, runID uuid.UUID, trades []domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	models := make([]model.RebalanceTrade, 0, len(trades))
	now := time.Now().UTC()
	for _, t := range trades {
		models = append(models, model.RebalanceTrade{
			RebalanceRunID: runID,
			Company:        t.Company,
			Action:         string(t.Action),
			TradeShares:    t.TradeShares,
			TradeValue:     t.TradeValue,
			CreatedAt:      now,
		})
	}

	query := table.RebalanceTrade.
		INSERT(table.RebalanceTrade.MutableColumns).
		MODELS(models)

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}
	if _, err := query.Exec(db); err != nil {
		return fmt.Errorf("failed to insert rebalance trades: %w", err)
	}

	return nil
}

func (h rebalanceRunRepositoryHandler) AddPortfolio(tx *sql.Tx, runID uuid.UUID, portfolio *domain.Portfolio) error {
	if len(portfolio.Positions) == 0 {
		return nil
	}
	models := make([]model.PortfolioPosition, 0, len(portfolio.Positions))
	now := time.Now().UTC()
	for _, company := range portfolio.HeldCompanies() {
		position := portfolio.Positions[company]
		models = append(models, model.PortfolioPosition{
			RebalanceRunID: runID,
			Date:           portfolio.Date,
			Company:        company,
			Shares:         position.Shares,
			Allocation:     position.Allocation,
			Price:          position.PriceAtBuild,
			CreatedAt:      now,
		})
	}

	query := table.PortfolioPosition.
		INSERT(table.PortfolioPosition.MutableColumns).
		MODELS(models)

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}
	if _, err := query.Exec(db); err != nil {
		return fmt.Errorf("failed to insert portfolio positions: %w", err)
	}

	return nil
}

func (h rebalanceRunRepositoryHandler) GetRun(id uuid.UUID) (*model.RebalanceRun, error) {
	query := table.RebalanceRun.
		SELECT(table.RebalanceRun.AllColumns).
		WHERE(table.RebalanceRun.RebalanceRunID.EQ(postgres.UUID(id)))

	result := model.RebalanceRun{}
	if err := query.Query(h.Db, &result); err != nil {
		return nil, fmt.Errorf("failed to get rebalance run: %w", err)
	}

	return &result, nil
}

func (h rebalanceRunRepositoryHandler) ListRuns() ([]model.RebalanceRun, error) {
	query := table.RebalanceRun.
		SELECT(table.RebalanceRun.AllColumns).
		ORDER_BY(table.RebalanceRun.CreatedAt.DESC())

	result := []model.RebalanceRun{}
	if err := query.Query(h.Db, &result); err != nil {
		return nil, fmt.Errorf("failed to list rebalance runs: %w", err)
	}

	return result, nil
}
