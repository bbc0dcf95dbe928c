package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = name
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const adminRoomsDDL = `CREATE TABLE IF NOT EXISTS admin_rooms (
  id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  number          VARCHAR(16)   NOT NULL,
  name            VARCHAR(120)  NOT NULL DEFAULT '',
  type            VARCHAR(32)   NOT NULL,
  description     TEXT          NULL,
  price_per_night DECIMAL(10,2) NOT NULL DEFAULT 0,
  capacity        INT           NOT NULL DEFAULT 1,
  status          VARCHAR(16)   NOT NULL DEFAULT 'AVAILABLE',
  image_url       VARCHAR(512)  NOT NULL DEFAULT '',
  created_at      DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at      DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  UNIQUE KEY uq_admin_rooms_number (number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Migrate creates the tables the service owns.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, adminRoomsDDL); err != nil {
		return fmt.Errorf("create admin_rooms: %w", err)
	}
	return nil
}
