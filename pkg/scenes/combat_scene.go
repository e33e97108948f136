package scenes

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"go.uber.org/zap"
)

// CombatScene 战斗阶段
//
// 每帧顺序：推进所有可更新对象，结算碰撞，执行出场，再判断胜负。
// 生命耗尽优先于胜利。
type CombatScene struct {
	session *Session
	actions *ecs.ActionQueue
}

func (s *CombatScene) Phase() game.Phase { return game.PhaseCombat }

func (s *CombatScene) Enter(t float64) {
	w := s.session.World
	w.StopAudio()
	w.PlayMusic(config.MusicCombat, true)
	s.actions = s.session.bindActions()
	s.session.Match.Start(t)
}

func (s *CombatScene) Update(dt, t float64) game.Scene {
	m := s.session.Match
	m.World.Registry.AdvanceAll(dt, t)
	m.Step(t)

	switch {
	case m.Lost():
		m.Ship.Alive = false
		s.session.log.Info("ship destroyed", zap.Int("score", m.Score))
		return &ShipDestroyedScene{session: s.session}
	case m.Won():
		s.session.log.Info("war won", zap.Int("score", m.Score), zap.Int("lives", m.Lives))
		return &ShipExitingScene{session: s.session}
	}
	return s
}

func (s *CombatScene) Draw(r platform.Renderer) {
	s.session.drawLayers(r)
	s.session.drawHUD(r)
}

func (s *CombatScene) Exit() {
	s.session.releaseActions(s.actions)
	s.actions = nil
}
