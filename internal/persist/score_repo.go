package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/decker502/lastfighter/pkg/game"
)

// MatchRow 一局比赛的结果
type MatchRow struct {
	ID         int64
	Score      int
	NewRecord  bool
	FinishedAt time.Time
}

// ScoreRepo 最高分表和比赛记录，实现 platform.HighScoreStore 和 game.MatchRecorder
//
// 调用方没有上下文，每次存取使用独立的超时。
type ScoreRepo struct {
	db *DB
}

func NewScoreRepo(db *DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// LoadHighScores 按槽位顺序读取，表为空时返回 game.ErrNoHighScores
func (r *ScoreRepo) LoadHighScores() ([]int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, `SELECT score FROM high_scores ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int32
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan high score: %w", err)
		}
		scores = append(scores, int(s))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read high scores: %w", err)
	}
	if len(scores) == 0 {
		return nil, game.ErrNoHighScores
	}
	return scores, nil
}

// SaveHighScores 在一个事务里覆盖整张表
func (r *ScoreRepo) SaveHighScores(scores []int) error {
	if len(scores) != game.HighScoreSlots {
		return fmt.Errorf("save high scores: want %d entries, got %d", game.HighScoreSlots, len(scores))
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for slot, score := range scores {
		if _, err := tx.Exec(ctx,
			`INSERT INTO high_scores (slot, score, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (slot) DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`,
			int16(slot), int32(score),
		); err != nil {
			return fmt.Errorf("save slot %d: %w", slot, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit high scores: %w", err)
	}
	return nil
}

// RecordMatch 追加一局的结果
func (r *ScoreRepo) RecordMatch(score int, newRecord bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx,
		`INSERT INTO match_results (score, new_record) VALUES ($1, $2)`,
		int32(score), newRecord,
	); err != nil {
		return fmt.Errorf("record match: %w", err)
	}
	return nil
}

// BestMatches 分数最高的 n 局
func (r *ScoreRepo) BestMatches(ctx context.Context, n int) ([]MatchRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, score, new_record, finished_at
		 FROM match_results ORDER BY score DESC, id LIMIT $1`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var result []MatchRow
	for rows.Next() {
		var m MatchRow
		var score int32
		if err := rows.Scan(&m.ID, &score, &m.NewRecord, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Score = int(score)
		result = append(result, m)
	}
	return result, rows.Err()
}
