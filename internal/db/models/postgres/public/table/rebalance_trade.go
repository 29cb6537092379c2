package table

import "github.com/go-jet/jet/v2/postgres"

var RebalanceTrade = newRebalanceTradeTable("public", "rebalance_trade", "")

type rebalanceTradeTable struct {
	postgres.Table

	// Columns
	RebalanceTradeID postgres.ColumnString
	RebalanceRunID   postgres.ColumnString
	Company          postgres.ColumnString
	Action           postgres.ColumnString
	TradeShares      postgres.ColumnFloat
	TradeValue       postgres.ColumnFloat
	CreatedAt        postgres.ColumnTimestamp

	AllColumns     postgres.ColumnList
	MutableColumns postgres.ColumnList
}

type RebalanceTradeTable struct {
	rebalanceTradeTable

	EXCLUDED rebalanceTradeTable
}

// AS creates new RebalanceTradeTable with assigned alias
func (a RebalanceTradeTable) AS(alias string) *RebalanceTradeTable {
	return newRebalanceTradeTable(a.SchemaName(), a.TableName(), alias)
}

func newRebalanceTradeTable(schemaName, tableName, alias string) *RebalanceTradeTable {
	return &RebalanceTradeTable{
		rebalanceTradeTable: newRebalanceTradeTableImpl(schemaName, tableName, alias),
		EXCLUDED:            newRebalanceTradeTableImpl("", "excluded", ""),
	}
}

func newRebalanceTradeTableImpl(schemaName, tableName, alias string) rebalanceTradeTable {
	var (
		RebalanceTradeIDColumn = postgres.StringColumn("rebalance_trade_id")
		RebalanceRunIDColumn   = postgres.StringColumn("rebalance_run_id")
		CompanyColumn          = postgres.StringColumn("company")
		ActionColumn           = postgres.StringColumn("action")
		TradeSharesColumn      = postgres.FloatColumn("trade_shares")
		TradeValueColumn       = postgres.FloatColumn("trade_value")
		CreatedAtColumn        = postgres.TimestampColumn("created_at")
		allColumns             = postgres.ColumnList{RebalanceTradeIDColumn, RebalanceRunIDColumn, CompanyColumn, ActionColumn, TradeSharesColumn, TradeValueColumn, CreatedAtColumn}
		mutableColumns         = postgres.ColumnList{RebalanceRunIDColumn, CompanyColumn, ActionColumn, TradeSharesColumn, TradeValueColumn, CreatedAtColumn}
	)

	return rebalanceTradeTable{
		Table: postgres.NewTable(schemaName, tableName, alias, allColumns...),

		RebalanceTradeID: RebalanceTradeIDColumn,
		RebalanceRunID:   RebalanceRunIDColumn,
		Company:          CompanyColumn,
		Action:           ActionColumn,
		TradeShares:      TradeSharesColumn,
		TradeValue:       TradeValueColumn,
		CreatedAt:        CreatedAtColumn,

		AllColumns:     allColumns,
		MutableColumns: mutableColumns,
	}
}
