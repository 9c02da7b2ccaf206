package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps operators and their saved preferences in PostgreSQL.
type Storage struct {
	pool     pgxPool
	logger   *slog.Logger
	location *time.Location
}

type operatorRepository struct {
	storage *Storage
}

type preferencesRepository struct {
	storage *Storage
}

// New connects to dsn and creates the schema. Custom metrics windows are read back in loc.
func New(ctx context.Context, dsn string, loc *time.Location, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if loc == nil {
		loc = time.UTC
	}
	storage := &Storage{pool: pool, logger: logger, location: loc}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Operators() repository.OperatorRepository {
	return &operatorRepository{storage: s}
}

func (s *Storage) Preferences() repository.PreferencesRepository {
	return &preferencesRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS operators (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS preferences (
            operator_id BIGINT PRIMARY KEY REFERENCES operators(id) ON DELETE CASCADE,
            filters JSONB NOT NULL,
            page_size INTEGER NOT NULL,
            metrics_range TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func (r *operatorRepository) Create(ctx context.Context, login, passwordHash string) (*model.Operator, error) {
	const query = `INSERT INTO operators (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var op model.Operator
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&op.ID, &op.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	op.Login = login
	op.PasswordHash = passwordHash
	return &op, nil
}

func (r *operatorRepository) GetByLogin(ctx context.Context, login string) (*model.Operator, error) {
	const query = `SELECT id, login, password_hash, created_at FROM operators WHERE login=$1`
	return r.scanOne(ctx, query, login)
}

func (r *operatorRepository) GetByID(ctx context.Context, id int64) (*model.Operator, error) {
	const query = `SELECT id, login, password_hash, created_at FROM operators WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *operatorRepository) scanOne(ctx context.Context, query string, arg any) (*model.Operator, error) {
	var op model.Operator
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&op.ID, &op.Login, &op.PasswordHash, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r *preferencesRepository) Get(ctx context.Context, operatorID int64) (*model.Preferences, error) {
	const query = `SELECT filters, page_size, metrics_range, updated_at FROM preferences WHERE operator_id=$1`
	var (
		filters []byte
		window  string
		prefs   = model.Preferences{OperatorID: operatorID}
	)
	err := r.storage.pool.QueryRow(ctx, query, operatorID).Scan(&filters, &prefs.PageSize, &window, &prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	prefs.Filters = model.DefaultFilterSpec()
	if err := json.Unmarshal(filters, &prefs.Filters); err != nil {
		return nil, fmt.Errorf("decode filters of operator %d: %w", operatorID, err)
	}
	if prefs.MetricsWindow, err = model.ParseDateWindow(window, r.storage.location); err != nil {
		r.storage.logger.Warn("stored metrics range ignored",
			slog.Int64("operator_id", operatorID),
			slog.String("range", window),
			slog.String("error", err.Error()),
		)
		prefs.MetricsWindow = model.RollingWindow(model.DefaultWindowDays)
	}
	return &prefs, nil
}

func (r *preferencesRepository) Save(ctx context.Context, prefs model.Preferences) error {
	filters, err := json.Marshal(prefs.Filters)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	const query = `INSERT INTO preferences (operator_id, filters, page_size, metrics_range, updated_at)
                   VALUES ($1, $2, $3, $4, NOW())
                   ON CONFLICT (operator_id) DO UPDATE
                   SET filters = EXCLUDED.filters,
                       page_size = EXCLUDED.page_size,
                       metrics_range = EXCLUDED.metrics_range,
                       updated_at = EXCLUDED.updated_at`
	_, err = r.storage.pool.Exec(ctx, query, prefs.OperatorID, filters, prefs.PageSize, prefs.MetricsWindow.String())
	return err
}

func (r *preferencesRepository) Delete(ctx context.Context, operatorID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM preferences WHERE operator_id=$1`, operatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
