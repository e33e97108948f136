// Package scenes 实现比赛的六个阶段
//
// 每个阶段是一个 game.Scene，Update 返回自身表示停留，返回新阶段表示切换，
// 切换由 game.SceneManager 按切换表校验后执行。
package scenes

import (
	"strconv"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/entities"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

// Session 所有阶段共享的上下文
type Session struct {
	World  *entities.World
	Match  *game.Match
	Scores *game.HighScoreManager
	Reward *entities.RewardAnim
	log    *zap.Logger
}

// NewSession 创建会话，scores 为 nil 时使用仅内存的最高分表
func NewSession(match *game.Match, scores *game.HighScoreManager, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if scores == nil {
		scores = game.NewHighScoreManager(nil, log)
	}
	return &Session{
		World:  match.World,
		Match:  match,
		Scores: scores,
		Reward: entities.NewRewardAnim(match.World),
		log:    log.Named("session"),
	}
}

// Intro 开场阶段，是 SceneManager 的初始场景
func (s *Session) Intro() game.Scene {
	return &IntroScene{session: s}
}

// bindActions 为阶段创建定时动作队列并随注册表推进
func (s *Session) bindActions() *ecs.ActionQueue {
	q := ecs.NewActionQueue()
	s.World.Actions = q
	s.World.Registry.RegisterForUpdate(q)
	return q
}

// releaseActions 丢弃阶段未执行的动作
func (s *Session) releaseActions(q *ecs.ActionQueue) {
	if q == nil {
		return
	}
	if pending := q.Pending(); len(pending) > 0 {
		s.log.Debug("dropping pending actions", zap.Strings("actions", pending))
	}
	s.World.Registry.UnregisterForUpdate(q)
	q.Clear()
}

// view 带镜头偏移的渲染器
func (s *Session) view(r platform.Renderer) platform.Renderer {
	return platform.WithOffset(r, s.World.Camera.Offset)
}

// drawLayers 清屏并按层绘制
func (s *Session) drawLayers(r platform.Renderer) {
	r.Clear(s.World.Sky.Background)
	s.World.Registry.DrawAll(s.view(r))
}

// drawHUD 右上角分数，左上角生命图标
func (s *Session) drawHUD(r platform.Renderer) {
	v := s.view(r)
	score := strconv.Itoa(s.Match.Score)
	x := float64(config.ScreenWidth - len(score)*config.CharWidth - 1)
	v.DrawText(x, 2, score, platform.White)

	s.drawLives(v, utils.Vec(2, 2), s.Match.Lives)
}

// drawLives 从 pos 起横向绘制 n 个生命图标
func (s *Session) drawLives(r platform.Renderer, pos utils.Vector, n int) {
	life := s.World.Region("life")
	for i := 0; i < n; i++ {
		r.DrawSprite(pos.Add(utils.Vec(float64(i*8), 0)), life, platform.Black)
	}
}

// centered 在屏幕水平居中写一行字
func centered(r platform.Renderer, y float64, s string, c platform.Color) {
	r.DrawText(utils.CenterText(config.ScreenWidth, s, config.CharWidth), y, s, c)
}
