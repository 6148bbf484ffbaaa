package iohistory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/history"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgStore struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

// NewPostgres connects to PostgreSQL and creates the snapshots table if
// it is missing.
func NewPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (history.Store, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		pool.Close()
		return nil, OpenError(cfg.Host, err)
	}

	if err = gormDB.WithContext(ctx).AutoMigrate(&snapshotRow{}); err != nil {
		pool.Close()
		return nil, MigrateError(err)
	}

	slog.Debug("History database is ready",
		"backend", "postgres",
		"host", cfg.Host,
		"database", cfg.Database,
	)
	return &pgStore{pool: pool, db: gormDB}, nil
}

func (p *pgStore) Save(ctx context.Context, snap history.Snapshot) error {
	r := toRow(snap)
	if err := p.db.WithContext(ctx).Create(&r).Error; err != nil {
		return SaveError(snap.ID, err)
	}
	slog.Info("Snapshot saved", "id", snap.ID, "source", snap.Source)
	return nil
}

func (p *pgStore) Get(
	ctx context.Context,
	id string,
) (history.Snapshot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return history.Snapshot{}, NotFoundError(id)
	}

	var r snapshotRow
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return history.Snapshot{}, NotFoundError(id)
	}
	if err != nil {
		return history.Snapshot{}, QueryError(err)
	}
	return r.snapshot(), nil
}

func (p *pgStore) List(
	ctx context.Context,
	limit int,
) ([]history.Snapshot, error) {
	var rows []snapshotRow
	q := p.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, QueryError(err)
	}

	res := make([]history.Snapshot, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.snapshot())
	}
	return res, nil
}

func (p *pgStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
