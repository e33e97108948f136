package scenes

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// slideSpeed 胜利画面从下方滑入的速度（像素/秒）
const slideSpeed = 100.0

// VictoryScene 胜利画面，滑入完成后按开火键回到标题画面
type VictoryScene struct {
	session *Session
}

func (s *VictoryScene) Phase() game.Phase { return game.PhaseVictory }

func (s *VictoryScene) Enter(t float64) {
	s.session.World.Camera.Offset = utils.Vec(0, config.ScreenHeight)
	s.session.Reward.Start(t)
}

// Settled 滑入是否完成
func (s *VictoryScene) Settled() bool {
	return s.session.World.Camera.Offset.Y <= 0
}

func (s *VictoryScene) Update(dt, t float64) game.Scene {
	w := s.session.World
	w.Registry.AdvanceAll(dt, t)
	var next game.Scene = s
	if w.Camera.Offset.Y > 0 {
		w.Camera.Offset.Y -= slideSpeed * dt
	} else {
		w.Camera.Reset()
		if w.Input != nil && w.Input.WasPressed(platform.KeyFire) {
			next = s.session.Intro()
		}
	}
	s.session.Reward.Update(dt, t)
	return next
}

func (s *VictoryScene) Draw(r platform.Renderer) {
	r.Clear(platform.Black)
	s.session.Reward.Draw(s.session.view(r), s.session.Scores)
}

func (s *VictoryScene) Exit() {
	s.session.World.Camera.Reset()
}
