package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateVehicles,
		migrationCreateParkingSlots,
		migrationCreateParkingSessions,
		migrationAddActiveSessionConstraints,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// querier 统一连接池与事务的查询入口
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation 判断是否违反唯一约束
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// 数据库迁移 SQL
const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id BIGSERIAL PRIMARY KEY,
    number_plate VARCHAR(20) NOT NULL UNIQUE,
    vehicle_type VARCHAR(30) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vehicles_number_plate ON vehicles(number_plate);
`

const migrationCreateParkingSlots = `
CREATE TABLE IF NOT EXISTS parking_slots (
    id BIGSERIAL PRIMARY KEY,
    slot_number VARCHAR(10) NOT NULL UNIQUE,
    slot_type VARCHAR(30) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Available',
    has_charger BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS idx_parking_slots_status ON parking_slots(status);
CREATE INDEX IF NOT EXISTS idx_parking_slots_slot_type ON parking_slots(slot_type);
`

const migrationCreateParkingSessions = `
CREATE TABLE IF NOT EXISTS parking_sessions (
    id UUID PRIMARY KEY,
    vehicle_number_plate VARCHAR(20) NOT NULL,
    slot_id BIGINT NOT NULL REFERENCES parking_slots(id),
    entry_time TIMESTAMP WITH TIME ZONE NOT NULL,
    exit_time TIMESTAMP WITH TIME ZONE,
    status VARCHAR(20) NOT NULL,
    billing_type VARCHAR(20) NOT NULL,
    billing_amount_cents BIGINT
);
CREATE INDEX IF NOT EXISTS idx_parking_sessions_plate ON parking_sessions(vehicle_number_plate);
CREATE INDEX IF NOT EXISTS idx_parking_sessions_slot_id ON parking_sessions(slot_id);
CREATE INDEX IF NOT EXISTS idx_parking_sessions_entry_time ON parking_sessions(entry_time);
`

// 同一车牌、同一车位最多各一个活跃会话，由部分唯一索引兜底
const migrationAddActiveSessionConstraints = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_parking_sessions_active_plate
    ON parking_sessions(vehicle_number_plate) WHERE status = 'Active';
CREATE UNIQUE INDEX IF NOT EXISTS idx_parking_sessions_active_slot
    ON parking_sessions(slot_id) WHERE status = 'Active';
`
