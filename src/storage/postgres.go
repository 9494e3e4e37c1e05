package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"stock-dashboard/src/config"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

type PostgresRecorder struct {
	Config *config.Config
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresRecorder(cfg *config.Config, log *logger.Logger) (*PostgresRecorder, error) {
	// The executable name becomes the schema so several deployments can share
	// one database.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresRecorder{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.recreateTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresRecorder initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) recreateTables() error {
	// Every session starts from empty tables; the dashboard never reads back
	// rows written by a previous run.
	snapshots := fmt.Sprintf(`"%s"."quote_snapshots"`, d.Schema)
	if _, err := d.DB.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, snapshots)); err != nil {
		return fmt.Errorf("failed to drop quote_snapshots: %w", err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE %s (
			symbol TEXT,
			fetched_at BIGINT,
			price DOUBLE PRECISION,
			percent_change DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			market_cap DOUBLE PRECISION,
			pe_ratio DOUBLE PRECISION,
			dividend_yield DOUBLE PRECISION,
			PRIMARY KEY (symbol, fetched_at)
		);
	`, snapshots)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create quote_snapshots: %w", err)
	}

	forecasts := fmt.Sprintf(`"%s"."forecast_rows"`, d.Schema)
	if _, err := d.DB.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, forecasts)); err != nil {
		return fmt.Errorf("failed to drop forecast_rows: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE %s (
			symbol TEXT,
			generated_at BIGINT,
			horizon_days INTEGER,
			date BIGINT,
			yhat DOUBLE PRECISION,
			yhat_lower DOUBLE PRECISION,
			yhat_upper DOUBLE PRECISION,
			PRIMARY KEY (symbol, generated_at, date)
		);
	`, forecasts)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create forecast_rows: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) SaveQuotes(quotes []models.MQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO "%s"."quote_snapshots" (symbol, fetched_at, price, percent_change, volume, market_cap, pe_ratio, dividend_yield)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (symbol, fetched_at) DO NOTHING
	`, d.Schema)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range quotes {
		_, err := stmt.Exec(q.Symbol, q.FetchedAt.Unix(), q.Price, q.PercentChange, q.Volume, q.MarketCap, q.PERatio, q.DividendYield)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) SaveForecast(result *models.MForecastResult) error {
	if result == nil || len(result.Points) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO "%s"."forecast_rows" (symbol, generated_at, horizon_days, date, yhat, yhat_lower, yhat_upper)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, generated_at, date) DO NOTHING
	`, d.Schema)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	generatedAt := result.GeneratedAt.Unix()
	for _, p := range result.Points {
		_, err := stmt.Exec(result.Symbol, generatedAt, result.HorizonDays, p.Date, p.Yhat, p.YhatLower, p.YhatUpper)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	d.Logger.Info("Cleaning up rows older than %d days (timestamp < %d)...", retentionDays, cutoff)

	query := fmt.Sprintf(`DELETE FROM "%s"."quote_snapshots" WHERE fetched_at < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		d.Logger.Error("Cleanup quote_snapshots error: %v", err)
	}
	query = fmt.Sprintf(`DELETE FROM "%s"."forecast_rows" WHERE generated_at < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		d.Logger.Error("Cleanup forecast_rows error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresRecorder) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
