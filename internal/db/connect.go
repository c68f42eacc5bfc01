package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // driver: mysql
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:examstack.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/examstack?sslmode=disable"
		}
	case DriverMySQL:
		drvName = "mysql"
		if dsn == "" {
			dsn = "root@tcp(localhost:3306)/examstack?parseTime=true"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	case DriverMySQL:
		schema = schemaMySQL
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS exam_scores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  candidate_id TEXT NOT NULL,
  score INTEGER NOT NULL,
  submitted_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS exam_scores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  candidate_id TEXT NOT NULL,
  score INTEGER NOT NULL,
  submitted_at BIGINT NOT NULL
);
`

const schemaMySQL = `
CREATE TABLE IF NOT EXISTS exam_scores (
  id VARCHAR(64) PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  candidate_id VARCHAR(64) NOT NULL,
  score INT NOT NULL,
  submitted_at BIGINT NOT NULL
);
`
