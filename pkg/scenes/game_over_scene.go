package scenes

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
)

// gameOverDelay 爆炸结束后再回到标题画面（秒）
const gameOverDelay = 5.0

// ShipDestroyedScene 飞船被摧毁，显示 GAME OVER
type ShipDestroyedScene struct {
	session *Session
	actions *ecs.ActionQueue
	start   float64
}

func (s *ShipDestroyedScene) Phase() game.Phase { return game.PhaseShipDestroyed }

func (s *ShipDestroyedScene) Enter(t float64) {
	w := s.session.World
	s.start = t
	s.actions = s.session.bindActions()
	s.session.Match.Ship.Destroy(t, s.actions)
	w.PlayMusic(config.MusicGameOver, false)
	w.Sky.Reset()
	s.session.Scores.Record(s.session.Match.Score)
}

func (s *ShipDestroyedScene) Update(dt, t float64) game.Scene {
	w := s.session.World
	w.Registry.AdvanceAll(dt, t)
	if t-s.start >= gameOverDelay {
		w.ClearBattlefield()
		return s.session.Intro()
	}
	return s
}

func (s *ShipDestroyedScene) Draw(r platform.Renderer) {
	s.session.drawLayers(r)
	s.session.drawHUD(r)
	centered(r, 60, "GAME OVER", platform.White)
}

func (s *ShipDestroyedScene) Exit() {
	s.session.releaseActions(s.actions)
	s.actions = nil
}
