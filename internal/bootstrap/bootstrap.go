// Package bootstrap 两个前端共用的启动步骤：存储、计分规则、最高分打印
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/decker502/lastfighter/internal/persist"
	"github.com/decker502/lastfighter/internal/scripting"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
)

// Stores 按配置打开的存储
type Stores struct {
	// Scores 最高分存储，memory 后端时为 *game.MemoryStore
	Scores platform.HighScoreStore
	// Settings 设置存储，打不开 gdata 时为 nil
	Settings *gdata.Manager
	// Repo postgres 后端时非空
	Repo *persist.ScoreRepo

	db *persist.DB
}

// OpenStores 按 [scores] 打开最高分存储
//
// 设置总是放在 gdata 里。gdata 打不开时设置不持久化；
// 最高分后端打不开时返回错误。
func OpenStores(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Stores, error) {
	s := &Stores{}

	gd, err := game.OpenGdataScoreStore(cfg.Scores.AppName)
	if err != nil {
		log.Warn("settings will not be saved", zap.Error(err))
	} else {
		s.Settings = gd.Manager()
	}

	switch cfg.Scores.Backend {
	case "gdata":
		if gd == nil {
			return nil, fmt.Errorf("scores backend gdata: %w", err)
		}
		s.Scores = gd
	case "postgres":
		db, err := persist.Open(ctx, cfg.Scores.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("scores backend postgres: %w", err)
		}
		s.db = db
		s.Repo = persist.NewScoreRepo(db)
		s.Scores = s.Repo
	default:
		s.Scores = &game.MemoryStore{}
	}
	log.Info("high score store ready", zap.String("backend", cfg.Scores.Backend))
	return s, nil
}

// Close 关闭数据库连接
func (s *Stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// LoadRules 加载 Lua 计分规则，失败时退回内置规则
func LoadRules(cfg *config.AppConfig, log *zap.Logger) (game.ScoreRules, func()) {
	if cfg.Scripting.RulesFile == "" {
		return game.DefaultRules{}, func() {}
	}
	rules, err := scripting.LoadRules(cfg.Scripting.RulesFile, log)
	if err != nil {
		log.Warn("using built-in score rules", zap.Error(err))
		return game.DefaultRules{}, func() {}
	}
	return rules, rules.Close
}

// PrintScores 按从高到低打印最高分表，数字按千分位分组
func PrintScores(w io.Writer, store platform.HighScoreStore, log *zap.Logger) error {
	m := game.NewHighScoreManager(store, log)
	scores := m.Scores()

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "HIGH-SCORE\n"); err != nil {
		return err
	}
	for i := len(scores) - 1; i >= 0; i-- {
		rank := len(scores) - i
		if _, err := p.Fprintf(w, "%d- %10d\n", rank, scores[i]); err != nil {
			return err
		}
	}
	return nil
}

// PrintBestMatches 打印 postgres 中记录的最佳比赛
func PrintBestMatches(ctx context.Context, w io.Writer, repo *persist.ScoreRepo, n int) error {
	rows, err := repo.BestMatches(ctx, n)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "\nBEST MATCHES\n")
	for _, r := range rows {
		mark := ""
		if r.NewRecord {
			mark = " < NEW"
		}
		p.Fprintf(w, "%s %10d%s\n", r.FinishedAt.Format("2006-01-02 15:04"), r.Score, mark)
	}
	return nil
}
