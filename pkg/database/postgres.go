package database

import (
	"art-booking/pkg/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgxIface is the subset of the pool used by PostgresStore
type PgxIface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		version    INT NOT NULL,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps each document as one JSONB row.
type PostgresStore struct {
	db      PgxIface
	version int
	log     *zap.Logger
}

// NewPostgresStore ensures the documents table exists.
func NewPostgresStore(ctx context.Context, db PgxIface, version int, log *zap.Logger) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &PostgresStore{
		db:      db,
		version: version,
		log:     log.With(zap.String("store", "postgres")),
	}, nil
}

func (s *PostgresStore) Load(ctx context.Context, name string, v any) (bool, error) {
	query := `SELECT version, body FROM documents WHERE name = $1`

	var (
		version int
		body    []byte
	)
	err := s.db.QueryRow(ctx, query, name).Scan(&version, &body)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.log.Error("Failed to load document", zap.Error(err), zap.String("document", name))
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if err := decodeBody(name, s.version, version, body, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	query := `
		INSERT INTO documents (name, version, body, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE
		SET version = EXCLUDED.version, body = EXCLUDED.body, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, name, s.version, body); err != nil {
		s.log.Error("Failed to save document", zap.Error(err), zap.String("document", name))
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// InitDB opens the pgx pool described by config
func InitDB(config utils.DatabaseConfig) (PgxIface, error) {
	connStr := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		config.User, config.Password, config.Name, config.Host, config.Port)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return pool, nil
}
