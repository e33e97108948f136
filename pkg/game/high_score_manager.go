package game

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

// HighScoreSlots 最高分表的条目数
const HighScoreSlots = 5

// ErrNoHighScores 存储中还没有最高分记录
var ErrNoHighScores = errors.New("no high scores stored")

// DefaultHighScores 首次运行时的最高分表（升序）
func DefaultHighScores() []int {
	return []int{1000, 2000, 3000, 4000, 5000}
}

// MatchRecorder 可选的存储扩展：记录每一局的最终分数
type MatchRecorder interface {
	RecordMatch(score int, newRecord bool) error
}

// HighScoreManager 最高分表
//
// 分数按升序保存。新分数高于最低分时替换最低分并标记为新纪录。
// 持久化失败只记录日志，游戏继续使用内存中的表。
type HighScoreManager struct {
	store  platform.HighScoreStore
	log    *zap.Logger
	scores []int
	last   int
	isNew  bool
}

// NewHighScoreManager 创建最高分表并从 store 加载，store 可为 nil（仅内存）
func NewHighScoreManager(store platform.HighScoreStore, log *zap.Logger) *HighScoreManager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &HighScoreManager{
		store:  store,
		log:    log.Named("scores"),
		scores: DefaultHighScores(),
	}
	if err := m.Load(); err != nil {
		m.log.Warn("using default high scores", zap.Error(err))
	}
	return m
}

// Load 从存储加载，失败时保留默认表
func (m *HighScoreManager) Load() error {
	if m.store == nil {
		return nil
	}
	scores, err := m.store.LoadHighScores()
	if errors.Is(err, ErrNoHighScores) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load high scores: %w", err)
	}
	if len(scores) != HighScoreSlots {
		return fmt.Errorf("load high scores: want %d entries, got %d", HighScoreSlots, len(scores))
	}
	m.scores = append([]int(nil), scores...)
	sort.Ints(m.scores)
	return nil
}

// Save 写入存储
func (m *HighScoreManager) Save() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SaveHighScores(m.Scores()); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}

// Update 记录本局分数，高于最低分时替换最低分，返回是否为新纪录
func (m *HighScoreManager) Update(score int) bool {
	m.last = score
	m.isNew = score > m.scores[0]
	if m.isNew {
		m.scores[0] = score
		sort.Ints(m.scores)
	}
	return m.isNew
}

// Record 更新并保存，保存失败只记录日志
func (m *HighScoreManager) Record(score int) {
	if m.Update(score) {
		m.log.Info("new high score", zap.Int("score", score))
	}
	if err := m.Save(); err != nil {
		m.log.Warn("high scores not saved", zap.Error(err))
	}
	if rec, ok := m.store.(MatchRecorder); ok {
		if err := rec.RecordMatch(score, m.isNew); err != nil {
			m.log.Warn("match result not saved", zap.Error(err))
		}
	}
}

// Scores 升序的最高分表副本
func (m *HighScoreManager) Scores() []int {
	return append([]int(nil), m.scores...)
}

// LastScore 最近一次记录的分数
func (m *HighScoreManager) LastScore() int {
	return m.last
}

// IsNew 最近一次记录是否进入了最高分表
func (m *HighScoreManager) IsNew() bool {
	return m.isNew
}

// NewIndex 新纪录在升序表中的下标（第一个等于该分数的位置），没有新纪录时为 -1
func (m *HighScoreManager) NewIndex() int {
	if !m.isNew {
		return -1
	}
	for i, s := range m.scores {
		if s == m.last {
			return i
		}
	}
	return -1
}

// DrawTable 在 pos 处绘制最高分表，forEnd 时 "LAST SCORE" 用粉色
func (m *HighScoreManager) DrawTable(r platform.Renderer, pos utils.Vector, forEnd bool) {
	const cw, lh = config.CharWidth, config.LineHeight

	titleColor := platform.Purple
	if forEnd {
		titleColor = platform.Pink
	}

	r.DrawText(pos.X, pos.Y, "HIGH-SCORE", platform.Purple)

	newIdx := m.NewIndex()
	for n, sc := range m.scores {
		rank := HighScoreSlots - n
		y := pos.Y + float64(rank*lh)
		r.DrawText(pos.X, y, strconv.Itoa(rank)+"- ", platform.Brown)
		r.DrawText(pos.X+3*cw, y, fmt.Sprintf("%7d", sc), platform.White)
		if n == newIdx {
			r.DrawText(pos.X+10*cw, y, " < NEW", platform.Red)
		}
	}

	y := pos.Y + 6*lh
	r.DrawText(pos.X, y, "LAST SCORE", titleColor)
	r.DrawText(pos.X, y+lh, fmt.Sprintf("%10d", m.last), platform.White)
}
