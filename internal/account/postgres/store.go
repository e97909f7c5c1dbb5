package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfiorito/hard75/internal/account"
)

// Store is the PostgreSQL-backed account repository.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and ensures the schema exists.
func Connect(ctx context.Context, connString string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("error parsing connection string: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar_url    TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS physical_stats (
			id                  TEXT PRIMARY KEY,
			user_id             TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			weight              DOUBLE PRECISION NOT NULL,
			height              DOUBLE PRECISION NOT NULL,
			body_fat_percentage DOUBLE PRECISION,
			date                TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	query := `
		SELECT id, name, email, password_hash, COALESCE(avatar_url, ''), created_at
		FROM users WHERE email = $1`

	user := &account.User{}
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *account.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.AvatarURL,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (s *Store) CreatePhysicalStats(ctx context.Context, stats *account.PhysicalStats) error {
	query := `
		INSERT INTO physical_stats (id, user_id, weight, height, body_fat_percentage, date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query,
		stats.ID,
		stats.UserID,
		stats.Weight,
		stats.Height,
		stats.BodyFatPercentage,
		stats.Date,
	)
	if err != nil {
		return fmt.Errorf("error inserting physical stats: %w", err)
	}
	return nil
}
