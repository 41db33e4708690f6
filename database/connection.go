// database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gewnthar/trending/config"
	"github.com/go-sql-driver/mysql" // MariaDB/MySQL driver
	_ "modernc.org/sqlite"           // local sink and tests
)

var DB *sql.DB

// InitDB opens the table sink database and creates its tables.
func InitDB(cfg config.DatabaseConfig) error {
	// Build the DSN for the configured driver
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return err
	}

	DB, err = sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool settings
	if driver == "sqlite" {
		// One writer; sqlite serializes anyway.
		DB.SetMaxOpenConns(1)
	} else {
		DB.SetMaxOpenConns(25)
		DB.SetMaxIdleConns(25)
		DB.SetConnMaxLifetime(5 * time.Minute)
	}

	// Ping the database to verify connection
	err = DB.Ping()
	if err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Create the sink tables on first use
	if err := ensureSchema(); err != nil {
		DB.Close()
		DB = nil
		return err
	}

	log.Printf("Database: Connected to %s database\n", driver)
	return nil
}

func dataSource(cfg config.DatabaseConfig) (driver string, dsn string, err error) {
	switch cfg.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		return "mysql", mc.FormatDSN(), nil
	case "sqlite":
		return "sqlite", cfg.Path, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		DB = nil
		log.Println("Database: Connection closed.")
	}
}

// Both statements are valid MySQL and SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trending_videos (
		row_index         INTEGER      NOT NULL,
		video_id          VARCHAR(64)  NOT NULL,
		title             TEXT         NOT NULL,
		published_at      VARCHAR(32)  NOT NULL,
		channel_id        VARCHAR(64)  NOT NULL,
		channel_title     TEXT         NOT NULL,
		category_id       VARCHAR(16)  NOT NULL,
		trending_date     VARCHAR(32)  NOT NULL,
		view_count        BIGINT       NOT NULL,
		likes             BIGINT       NOT NULL,
		comment_count     BIGINT       NOT NULL,
		comments_disabled BOOLEAN      NOT NULL,
		description       TEXT         NOT NULL,
		notes             INTEGER      NOT NULL,
		age               BIGINT       NULL,
		temperature       BIGINT       NULL,
		run_label         VARCHAR(64)  NOT NULL,
		loaded_at         DATETIME     NOT NULL,
		PRIMARY KEY (video_id, published_at)
	)`,
	`CREATE TABLE IF NOT EXISTS clean_runs (
		run_label              VARCHAR(64)  NOT NULL PRIMARY KEY,
		snapshot_dir           TEXT         NOT NULL,
		snapshot_files         INTEGER      NOT NULL,
		input_rows             INTEGER      NOT NULL,
		missing_value_rows     INTEGER      NOT NULL,
		invalid_numeric_rows   INTEGER      NOT NULL,
		bad_timestamp_rows     INTEGER      NOT NULL,
		duplicate_rows         INTEGER      NOT NULL,
		repeated_region_videos INTEGER      NOT NULL,
		output_rows            INTEGER      NOT NULL,
		output_path            TEXT         NOT NULL,
		finished_at            DATETIME     NOT NULL
	)`,
}

func ensureSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
