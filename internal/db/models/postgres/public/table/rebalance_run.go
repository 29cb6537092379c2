package table

import "github.com/go-jet/jet/v2/postgres"

var RebalanceRun = newRebalanceRunTable("public", "rebalance_run", "")

type rebalanceRunTable struct {
	postgres.Table

	// Columns
	RebalanceRunID postgres.ColumnString
	OldDate        postgres.ColumnDate
	NewDate        postgres.ColumnDate
	Cutoff         postgres.ColumnFloat
	Capital        postgres.ColumnFloat
	TurnoverPct    postgres.ColumnFloat
	CreatedAt      postgres.ColumnTimestamp

	AllColumns     postgres.ColumnList
	MutableColumns postgres.ColumnList
}

type RebalanceRunTable struct {
	rebalanceRunTable

	EXCLUDED rebalanceRunTable
}

// AS creates new RebalanceRunTable with assigned alias
func (a RebalanceRunTable) AS(alias string) *RebalanceRunTable {
	return newRebalanceRunTable(a.SchemaName(), a.TableName(), alias)
}

func newRebalanceRunTable(schemaName, tableName, alias string) *RebalanceRunTable {
	return &RebalanceRunTable{
		rebalanceRunTable: newRebalanceRunTableImpl(schemaName, tableName, alias),
		EXCLUDED:          newRebalanceRunTableImpl("", "excluded", ""),
	}
}

func newRebalanceRunTableImpl(schemaName, tableName, alias string) rebalanceRunTable {
	var (
		RebalanceRunIDColumn = postgres.StringColumn("rebalance_run_id")
		OldDateColumn        = postgres.DateColumn("old_date")
		NewDateColumn        = postgres.DateColumn("new_date")
		CutoffColumn         = postgres.FloatColumn("cutoff")
		CapitalColumn        = postgres.FloatColumn("capital")
		TurnoverPctColumn    = postgres.FloatColumn("turnover_pct")
		CreatedAtColumn      = postgres.TimestampColumn("created_at")
		allColumns           = postgres.ColumnList{RebalanceRunIDColumn, OldDateColumn, NewDateColumn, CutoffColumn, CapitalColumn, TurnoverPctColumn, CreatedAtColumn}
		mutableColumns       = postgres.ColumnList{OldDateColumn, NewDateColumn, CutoffColumn, CapitalColumn, TurnoverPctColumn, CreatedAtColumn}
	)

	return rebalanceRunTable{
		Table: postgres.NewTable(schemaName, tableName, alias, allColumns...),

		RebalanceRunID: RebalanceRunIDColumn,
		OldDate:        OldDateColumn,
		NewDate:        NewDateColumn,
		Cutoff:         CutoffColumn,
		Capital:        CapitalColumn,
		TurnoverPct:    TurnoverPctColumn,
		CreatedAt:      CreatedAtColumn,

		AllColumns:     allColumns,
		MutableColumns: mutableColumns,
	}
}
