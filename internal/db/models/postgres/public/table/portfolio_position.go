package table

import "github.com/go-jet/jet/v2/postgres"

var PortfolioPosition = newPortfolioPositionTable("public", "portfolio_position", "")

type portfolioPositionTable struct {
	postgres.Table

	// Columns
	PortfolioPositionID postgres.ColumnString
	RebalanceRunID      postgres.ColumnString
	Date                postgres.ColumnDate
	Company             postgres.ColumnString
	Shares              postgres.ColumnFloat
	Allocation          postgres.ColumnFloat
	Price               postgres.ColumnFloat
	CreatedAt           postgres.ColumnTimestamp

	AllColumns     postgres.ColumnList
	MutableColumns postgres.ColumnList
}

type PortfolioPositionTable struct {
	portfolioPositionTable

	EXCLUDED portfolioPositionTable
}

// AS creates new PortfolioPositionTable with assigned alias
func (a PortfolioPositionTable) AS(alias string) *PortfolioPositionTable {
	return newPortfolioPositionTable(a.SchemaName(), a.TableName(), alias)
}

func newPortfolioPositionTable(schemaName, tableName, alias string) *PortfolioPositionTable {
	return &PortfolioPositionTable{
		portfolioPositionTable: newPortfolioPositionTableImpl(schemaName, tableName, alias),
		EXCLUDED:               newPortfolioPositionTableImpl("", "excluded", ""),
	}
}

func newPortfolioPositionTableImpl(schemaName, tableName, alias string) portfolioPositionTable {
	var (
		PortfolioPositionIDColumn = postgres.StringColumn("portfolio_position_id")
		RebalanceRunIDColumn      = postgres.StringColumn("rebalance_run_id")
		DateColumn                = postgres.DateColumn("date")
		CompanyColumn             = postgres.StringColumn("company")
		SharesColumn              = postgres.FloatColumn("shares")
		AllocationColumn          = postgres.FloatColumn("allocation")
		PriceColumn               = postgres.FloatColumn("price")
		CreatedAtColumn           = postgres.TimestampColumn("created_at")
		allColumns                = postgres.ColumnList{PortfolioPositionIDColumn, RebalanceRunIDColumn, DateColumn, CompanyColumn, SharesColumn, AllocationColumn, PriceColumn, CreatedAtColumn}
		mutableColumns            = postgres.ColumnList{RebalanceRunIDColumn, DateColumn, CompanyColumn, SharesColumn, AllocationColumn, PriceColumn, CreatedAtColumn}
	)

	return portfolioPositionTable{
		Table: postgres.NewTable(schemaName, tableName, alias, allColumns...),

		PortfolioPositionID: PortfolioPositionIDColumn,
		RebalanceRunID:      RebalanceRunIDColumn,
		Date:                DateColumn,
		Company:             CompanyColumn,
		Shares:              SharesColumn,
		Allocation:          AllocationColumn,
		Price:               PriceColumn,
		CreatedAt:           CreatedAtColumn,

		AllColumns:     allColumns,
		MutableColumns: mutableColumns,
	}
}
