package scenes

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	titleWidth = 84
	author     = "by Yuiio"
)

var introLines = []string{
	"'Arrows' to move - 'X' to fire",
	"Press 'X' to start",
}

// IntroScene 标题画面：星空滚动，显示最高分表，按开火键开局
type IntroScene struct {
	session *Session
}

func (s *IntroScene) Phase() game.Phase { return game.PhaseIntro }

func (s *IntroScene) Enter(t float64) {
	w := s.session.World
	w.StarField.Start()
	w.PlayMusic(config.MusicIntro, true)
}

func (s *IntroScene) Update(dt, t float64) game.Scene {
	w := s.session.World
	w.Registry.AdvanceAll(dt, t)
	if w.Input != nil && w.Input.WasPressed(platform.KeyFire) {
		return &CombatScene{session: s.session}
	}
	return s
}

func (s *IntroScene) Draw(r platform.Renderer) {
	w := s.session.World
	r.Clear(w.Sky.Background)
	w.Registry.DrawLayer(r, ecs.LayerBack)

	h := float64(config.ScreenHeight) / 32
	r.DrawSprite(utils.Vec(float64((config.ScreenWidth-titleWidth)/2), h), w.Region("title"), platform.Black)
	r.DrawText(utils.CenterText(config.ScreenWidth, author, config.CharWidth), h+38, author, platform.Cyan)

	s.session.Scores.DrawTable(r, utils.Vec(60, float64(config.ScreenHeight)*9/20), false)

	for n, line := range introLines {
		y := float64(config.ScreenHeight - 2 - (n+1)*config.LineHeight)
		centered(r, y, line, platform.Grey)
	}
}

func (s *IntroScene) Exit() {}
