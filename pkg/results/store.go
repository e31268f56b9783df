package results

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/internal/telemetry"
)

// Store persists runs and their parameter snapshots.
type Store struct {
	db     *gorm.DB
	config Config
}

// New opens a Store. SQLite schemas are created with AutoMigrate, PostgreSQL
// schemas with the embedded migrations.
func New(ctx context.Context, config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	cfg := *config
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid results configuration: %w", err)
	}

	var dialector gorm.Dialector
	switch cfg.Backend() {
	case BackendPostgres:
		if err := runMigrations(ctx, cfg.Path); err != nil {
			return nil, err
		}
		dialector = postgres.Open(cfg.Path)

	default:
		if cfg.Path != MemoryPath {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// WAL allows readers (gbench params) while a run is writing.
		dsn := cfg.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}
	switch {
	case cfg.Backend() == BackendPostgres:
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	case cfg.Path == MemoryPath:
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.Backend() == BackendSQLite {
		if err := db.AutoMigrate(AllModels()...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to run database migration: %w", err)
		}
	}

	logger.Debug("Results store opened", "backend", string(cfg.Backend()))
	return &Store{db: db, config: cfg}, nil
}

// Backend returns the engine behind the store.
func (s *Store) Backend() Backend {
	return s.config.Backend()
}

// DB returns the underlying GORM handle for ad-hoc queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// SaveParameters stores one run with a row per entry of params, in a single
// transaction. The run's library and graph columns are taken from the
// ParamLibrary and ParamGraph entries.
func (s *Store) SaveParameters(ctx context.Context, params map[string]string) (*Run, error) {
	ctx, span := telemetry.StartResultsSpan(ctx, "save_parameters", telemetry.Count(len(params)))
	defer span.End()

	run := &Run{
		ID:      uuid.New().String(),
		Library: params[ParamLibrary],
		Graph:   params[ParamGraph],
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Parameter, 0, len(names))
	for _, name := range names {
		rows = append(rows, Parameter{RunID: run.ID, Name: name, Value: params[name]})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to save parameters: %w", err)
	}

	run.Parameters = rows
	span.SetAttributes(telemetry.RunID(run.ID))
	return run, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	var runs []*Run
	q := s.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun returns a run with its parameters ordered by name.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}
	return &run, nil
}

// ListParameters returns the parameters of a run ordered by name.
func (s *Store) ListParameters(ctx context.Context, runID string) ([]*Parameter, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Run{}).Where("id = ?", runID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	var params []*Parameter
	if err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("name").Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// Healthcheck pings the database.
func (s *Store) Healthcheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.Close()
}
