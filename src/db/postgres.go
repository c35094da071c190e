package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"Go_Discovery/src/types"
)

const seedBatchSize = 50

type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore opens the connection, waits for the server to answer and
// makes sure the restaurants table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger.Named("postgres")}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS restaurants (
			id          SERIAL PRIMARY KEY,
			name        TEXT             NOT NULL,
			blurhash    TEXT             NOT NULL,
			launch_date DATE             NOT NULL,
			lat         DOUBLE PRECISION NOT NULL,
			lon         DOUBLE PRECISION NOT NULL,
			online      BOOLEAN          NOT NULL,
			popularity  DOUBLE PRECISION NOT NULL
		);
	`)
	return err
}

// Restaurants returns the catalog in insertion order.
func (ps *PostgresStore) Restaurants(ctx context.Context) ([]types.Restaurant, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT name, blurhash, launch_date, lat, lon, online, popularity
		FROM restaurants
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres query: %v", types.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	restaurants := make([]types.Restaurant, 0)
	for rows.Next() {
		var (
			r      types.Restaurant
			launch time.Time
		)
		if err := rows.Scan(&r.Name, &r.Blurhash, &launch, &r.Location.Lat, &r.Location.Lon, &r.Online, &r.Popularity); err != nil {
			return nil, fmt.Errorf("%w: postgres scan: %v", types.ErrMalformedRecord, err)
		}
		r.LaunchDate = types.NewDate(launch.Year(), launch.Month(), launch.Day())
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: postgres rows: %v", types.ErrCatalogUnavailable, err)
	}
	return restaurants, nil
}

// Seed replaces the table contents with the given catalog in one transaction.
func (ps *PostgresStore) Seed(ctx context.Context, restaurants []types.Restaurant) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "TRUNCATE restaurants RESTART IDENTITY"); err != nil {
		return fmt.Errorf("postgres: truncate: %w", err)
	}

	for i := 0; i < len(restaurants); i += seedBatchSize {
		end := i + seedBatchSize
		if end > len(restaurants) {
			end = len(restaurants)
		}
		query, args := insertBatchQuery(restaurants[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("catalog seeded", zap.Int("restaurants", len(restaurants)))
	return nil
}

func insertBatchQuery(batch []types.Restaurant) (string, []interface{}) {
	const columns = 7
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*columns)

	for idx, r := range batch {
		base := idx * columns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			r.Name, r.Blurhash, r.LaunchDate.String(), r.Location.Lat, r.Location.Lon, r.Online, r.Popularity)
	}

	query := fmt.Sprintf(`
		INSERT INTO restaurants (name, blurhash, launch_date, lat, lon, online, popularity)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
