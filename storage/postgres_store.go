package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"hotel-deals/models"
	"hotel-deals/utils"
)

const listingColumns = 9

// PostgresStore keeps a history of runs and their ranked listings.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres-ping", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS search_runs (
			id             SERIAL PRIMARY KEY,
			city           TEXT          NOT NULL,
			budget         NUMERIC(12,2) NOT NULL,
			currency       VARCHAR(8)    NOT NULL DEFAULT '',
			source         VARCHAR(32)   NOT NULL,
			total_found    INTEGER       NOT NULL DEFAULT 0,
			retained       INTEGER       NOT NULL DEFAULT 0,
			market_average NUMERIC(12,2),
			best_value     TEXT          NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS run_listings (
			id           SERIAL PRIMARY KEY,
			run_id       INTEGER       NOT NULL REFERENCES search_runs(id) ON DELETE CASCADE,
			rank         INTEGER       NOT NULL,
			name         TEXT          NOT NULL,
			price        NUMERIC(12,2) NOT NULL,
			currency     VARCHAR(8)    NOT NULL DEFAULT '',
			rating       NUMERIC(4,2)  NOT NULL DEFAULT 0,
			below_market BOOLEAN       NOT NULL DEFAULT FALSE,
			value_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
			source_url   TEXT          NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_search_runs_city    ON search_runs(city);
		CREATE INDEX IF NOT EXISTS idx_search_runs_created ON search_runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_run_listings_run    ON run_listings(run_id);
	`)
	return err
}

// SaveRun stores the run and its ranked listings in one transaction and
// returns the new run id.
func (ps *PostgresStore) SaveRun(ctx context.Context, source string, report *models.Report) (int64, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var market sql.NullFloat64
	if report.MarketAverage != nil {
		market = sql.NullFloat64{Float64: *report.MarketAverage, Valid: true}
	}
	best := ""
	if report.BestValue != nil {
		best = report.BestValue.Name
	}

	var runID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO search_runs (city, budget, currency, source, total_found, retained, market_average, best_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, report.City, report.Budget.Amount, report.Budget.Currency, source,
		report.TotalFound, len(report.Listings), market, best).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("postgres: insert run: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(report.Listings); i += batchSize {
		end := i + batchSize
		if end > len(report.Listings) {
			end = len(report.Listings)
		}
		query, args := buildListingInsert(runID, report.Listings[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("postgres: insert listings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return runID, nil
}

func buildListingInsert(runID int64, batch []*models.RankedListing) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*listingColumns)

	for idx, l := range batch {
		base := idx * listingColumns
		placeholders := make([]string, listingColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			runID, l.Rank, l.Name, l.Price, l.Currency, l.Rating, l.BelowMarket, l.ValueScore, l.SourceURL)
	}

	query := fmt.Sprintf(`
		INSERT INTO run_listings (run_id, rank, name, price, currency, rating, below_market, value_score, source_url)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// Recent returns the latest runs, newest first.
func (ps *PostgresStore) Recent(ctx context.Context, limit int) ([]*models.RunSummary, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, city, budget, currency, source, retained, market_average, best_value, created_at
		FROM search_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunSummary
	for rows.Next() {
		r := &models.RunSummary{}
		var market sql.NullFloat64
		var created time.Time
		if err := rows.Scan(
			&r.ID, &r.City, &r.Budget, &r.Currency, &r.Source,
			&r.Retained, &market, &r.BestValue, &created,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if market.Valid {
			avg := market.Float64
			r.MarketAverage = &avg
		}
		r.CreatedAt = created
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
