package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"stock-dashboard/src/config"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

type SQLiteRecorder struct {
	Config *config.Config
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteRecorder(cfg *config.Config, log *logger.Logger) (*SQLiteRecorder, error) {
	return &SQLiteRecorder{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteRecorder) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.recreateTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteRecorder) recreateTables() error {
	// Every session starts from empty tables; the dashboard never reads back
	// rows written by a previous run.
	if _, err := d.DB.Exec("DROP TABLE IF EXISTS quote_snapshots"); err != nil {
		return fmt.Errorf("failed to drop quote_snapshots: %w", err)
	}

	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE quote_snapshots (
			symbol TEXT,
			fetched_at INTEGER,
			price REAL,
			percent_change REAL,
			volume REAL,
			market_cap REAL,
			pe_ratio REAL,
			dividend_yield REAL,
			PRIMARY KEY (symbol, fetched_at)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create quote_snapshots: %w", err)
	}

	if _, err := d.DB.Exec("DROP TABLE IF EXISTS forecast_rows"); err != nil {
		return fmt.Errorf("failed to drop forecast_rows: %w", err)
	}

	query = `
		CREATE TABLE forecast_rows (
			symbol TEXT,
			generated_at INTEGER,
			horizon_days INTEGER,
			date INTEGER,
			yhat REAL,
			yhat_lower REAL,
			yhat_upper REAL,
			PRIMARY KEY (symbol, generated_at, date)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create forecast_rows: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteRecorder) SaveQuotes(quotes []models.MQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO quote_snapshots (symbol, fetched_at, price, percent_change, volume, market_cap, pe_ratio, dividend_yield)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol, fetched_at) DO NOTHING
	`)
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

func (d *SQLiteRecorder) SaveForecast(result *models.MForecastResult) error {
	if result == nil || len(result.Points) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO forecast_rows (symbol, generated_at, horizon_days, date, yhat, yhat_lower, yhat_upper)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol, generated_at, date) DO NOTHING
	`)
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

func (d *SQLiteRecorder) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	d.Logger.Info("Cleaning up rows older than %d days (timestamp < %d)...", retentionDays, cutoff)

	if _, err := d.DB.Exec("DELETE FROM quote_snapshots WHERE fetched_at < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup quote_snapshots error: %v", err)
	}
	if _, err := d.DB.Exec("DELETE FROM forecast_rows WHERE generated_at < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup forecast_rows error: %v", err)
	}

	d.Logger.Info("Cleanup completed")
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteRecorder) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
