package scenes

import (
	"strconv"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	// exitCeiling 飞船越过此高度视为离开屏幕
	exitCeiling = -7.0
	// bonusDelay 生命奖励画面停留时间（秒）
	bonusDelay = 3.0
)

// ShipExitingScene 胜利后星空停止，飞船加速飞出屏幕
type ShipExitingScene struct {
	session *Session
}

func (s *ShipExitingScene) Phase() game.Phase { return game.PhaseShipExiting }

func (s *ShipExitingScene) Enter(t float64) {
	s.session.World.StarField.Stop()
	s.session.Match.Ship.StartExit()
}

func (s *ShipExitingScene) Update(dt, t float64) game.Scene {
	w := s.session.World
	ship := s.session.Match.Ship
	w.Registry.AdvanceAll(dt, t)
	ship.Exiting(dt)

	if w.StarField.Len() == 0 && ship.Body().Pos.Y <= exitCeiling {
		ship.Deactivate()
		return &LivesBonusScene{session: s.session}
	}
	return s
}

func (s *ShipExitingScene) Draw(r platform.Renderer) {
	s.session.drawLayers(r)
}

func (s *ShipExitingScene) Exit() {}

// LivesBonusScene 剩余生命折算奖励分
type LivesBonusScene struct {
	session *Session
	bonus   int
	start   float64
}

func (s *LivesBonusScene) Phase() game.Phase { return game.PhaseLivesBonus }

func (s *LivesBonusScene) Enter(t float64) {
	s.start = t
	s.bonus = s.session.Match.AwardLivesBonus()
	s.session.Scores.Record(s.session.Match.Score)
}

// Bonus 本局获得的生命奖励
func (s *LivesBonusScene) Bonus() int {
	return s.bonus
}

func (s *LivesBonusScene) Update(dt, t float64) game.Scene {
	s.session.World.Registry.AdvanceAll(dt, t)
	if t-s.start >= bonusDelay {
		return &VictoryScene{session: s.session}
	}
	return s
}

func (s *LivesBonusScene) Draw(r platform.Renderer) {
	r.Clear(s.session.World.Sky.Background)

	const y = 50
	centered(r, y, "LIVES BONUS", platform.White)

	lives := s.session.Match.Lives
	txt := " x " + strconv.Itoa(game.LivesBonusPerLife) + " = " + strconv.Itoa(s.bonus)
	x := float64(config.ScreenWidth-(lives*8+len(txt)*config.CharWidth)) / 2
	s.session.drawLives(r, utils.Vec(x, y+8), lives)
	r.DrawText(x+float64(lives*8), y+8, txt, platform.White)
}

func (s *LivesBonusScene) Exit() {}
