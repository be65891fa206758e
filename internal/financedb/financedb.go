package financedb

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"finance-rag/internal/config"
)

// StockFinanceData is one row of the crawled market fundamentals table. The
// table is owned by the crawler that fills it; this service only reads it.
type StockFinanceData struct {
	bun.BaseModel `bun:"table:stock_finance_data,alias:sfd"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Ticker    string    `bun:"ticker,notnull" json:"ticker"`
	Name      string    `bun:"name" json:"name"`
	Market    string    `bun:"market" json:"market"`
	Price     float64   `bun:"price" json:"price"`
	MarketCap int64     `bun:"market_cap" json:"market_cap"`
	PER       float64   `bun:"per" json:"per"`
	PBR       float64   `bun:"pbr" json:"pbr"`
	CrawledAt time.Time `bun:"crawled_at" json:"crawled_at"`
}

func ConnectDB(cfg *config.PostgresConfig) *sql.DB {
	return sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// Count returns the number of rows in the fundamentals table.
func Count(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*StockFinanceData)(nil)).Count(ctx)
}

// ByTicker fetches the latest fundamentals row for a ticker.
func ByTicker(ctx context.Context, db *bun.DB, ticker string) (*StockFinanceData, error) {
	row := new(StockFinanceData)
	err := db.NewSelect().
		Model(row).
		Where("ticker = ?", ticker).
		Order("crawled_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return row, nil
}
