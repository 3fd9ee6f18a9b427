package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/config"
	"github.com/stockhaus/stockhaus-backend/internal/db"
)

// OpenDB connects to Postgres and applies pending migrations.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*sql.DB, error) {
	conn, err := db.Open(ctx, db.Options{
		DSN:       cfg.ConnString(),
		MaxConns:  cfg.MaxConns,
		MinConns:  cfg.MinConns,
		ConnectTO: 5 * time.Second,
		PingTO:    3 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info("database ready")
	return conn, nil
}
