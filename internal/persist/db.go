// Package persist 把最高分表保存到 Postgres
package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// queryTimeout 单次存取的超时
const queryTimeout = 5 * time.Second

// DB 包装 pgx 连接池
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// Open 连接数据库并执行迁移
func Open(ctx context.Context, dsn string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	// 一个玩家，比赛结束时才写库
	poolCfg.MaxConns = 2
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	db := &DB{Pool: pool, log: log.Named("persist")}
	db.log.Info("database ready", zap.String("host", poolCfg.ConnConfig.Host))
	return db, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
