package repository

import (
	"capindex/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CSVMarketDataRepository(t *testing.T) {
	write := func(t *testing.T, contents string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "market_capitalisation.csv")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
		return path
	}

	t.Run("loads and groups records by date", func(t *testing.T) {
		path := write(t, `date,company,market_cap_m,price
2025-08-04,A,1200,12.32
2025-08-04,B,800,4.52
2025-08-04,C,4000,8.45
2025-08-05,A,1250,12.40
2025-08-05,B,790,4.48
`)

		repo, err := NewCSVMarketDataRepository(path)
		require.NoError(t, err)

		records, err := repo.GetOnDay(util.NewDate(2025, 8, 4))
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, "A", records[0].Company)
		require.Equal(t, "1200", records[0].MarketCap.String())
		require.Equal(t, "12.32", records[0].Price.String())

		records, err = repo.GetOnDay(util.NewDate(2025, 8, 5))
		require.NoError(t, err)
		require.Len(t, records, 2)

		dates := repo.Dates()
		require.Equal(t, []string{"2025-08-04", "2025-08-05"}, []string{
			dates[0].Format("2006-01-02"),
			dates[1].Format("2006-01-02"),
		})
	})

	t.Run("drops unparseable rows instead of failing", func(t *testing.T) {
		path := write(t, `date,company,market_cap_m,price
2025-08-04,A,1200,12.32
2025-08-04,,800,4.52
2025-08-04,C,not-a-number,8.45
not-a-date,D,100,1.00
2025-08-04,E,100,bad
`)

		repo, err := NewCSVMarketDataRepository(path)
		require.NoError(t, err)

		records, err := repo.GetOnDay(util.NewDate(2025, 8, 4))
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "A", records[0].Company)
	})

	t.Run("unknown date is an error", func(t *testing.T) {
		path := write(t, `date,company,market_cap_m,price
2025-08-04,A,1200,12.32
`)

		repo, err := NewCSVMarketDataRepository(path)
		require.NoError(t, err)

		_, err = repo.GetOnDay(util.NewDate(2025, 8, 6))
		require.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewCSVMarketDataRepository(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}
