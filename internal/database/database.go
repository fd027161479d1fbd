// Package database opens the PostgreSQL pool that backs structured file storage.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"

	"filegate/internal/config"
)

const applicationName = "filegate"

var (
	sqlOpen = sql.Open

	errIncompleteConfig = errors.New("invalid database config: host, port, user, and name are required")
)

// newPingBackOff controls the delay between connectivity checks on startup.
var newPingBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

// BuildPostgresDSN renders c as a postgres:// URL for the pgx driver.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", errIncompleteConfig
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// NewPostgres opens a traced database/sql pool and waits for the server to answer.
// Pings are retried up to ConnectRetries times with exponential backoff; each
// failed attempt is logged so slow container startups are visible.
func NewPostgres(ctx context.Context, c config.DatabaseConfig, log *zap.Logger) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pctx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("db_ping_retry", zap.String("db_host", c.Host), zap.Duration("wait", wait), zap.Error(err))
	}
	retries := uint64(max(c.ConnectRetries, 0))
	policy := backoff.WithContext(backoff.WithMaxRetries(newPingBackOff(), retries), ctx)
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db_connected", zap.String("db_host", c.Host), zap.String("db_name", c.Name))
	return db, nil
}

func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
