package tty

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/scenes"
)

// Mutable 可静音的音频实现（audio.SpeakerPlayer）
type Mutable interface {
	SetMuted(muted bool)
	Muted() bool
}

// Silent 不发声的 platform.Audio，speaker 打不开时使用
type Silent struct{}

func (Silent) Play(int, int)       {}
func (Silent) PlayMusic(int, bool) {}
func (Silent) Stop()               {}

// Options 启动参数
type Options struct {
	Config *config.AppConfig
	// Screen 已 Init 的屏幕，Run 返回前会 Fini
	Screen tcell.Screen
	// Audio nil 时不发声
	Audio  platform.Audio
	Scores platform.HighScoreStore
	Rules  game.ScoreRules
	Seed   int64
	Log    *zap.Logger
}

// Game 终端版游戏
type Game struct {
	screen tcell.Screen
	runner *game.Runner
	scenes *game.SceneManager
	fb     *Framebuffer
	input  *Input
	tick   time.Duration
	log    *zap.Logger
}

// NewGame 加载数据并组装游戏，调用前须先 embedded.Init
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	au := opts.Audio
	if au == nil {
		au = Silent{}
	}

	atlas, err := config.LoadSpriteConfig(cfg.Game.SpritesFile)
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	army, err := config.LoadArmyConfig(cfg.Game.ArmyFile)
	if err != nil {
		return nil, fmt.Errorf("load army: %w", err)
	}

	input := NewInput()
	world := entities.NewWorld(atlas, au, input, rand.New(rand.NewSource(opts.Seed)), log)
	match := game.NewMatch(world, army, opts.Rules, cfg.Game.Lives)
	session := scenes.NewSession(match, game.NewHighScoreManager(opts.Scores, log), log)

	sm := game.NewSceneManager(log)
	sm.Start(session.Intro(), 0)

	g := &Game{
		screen: opts.Screen,
		scenes: sm,
		fb:     NewFramebuffer(game.PaintAtlas(atlas)),
		input:  input,
		tick:   time.Second / time.Duration(max(cfg.Terminal.FrameRate, 1)),
		log:    log.Named("tty"),
	}
	g.runner = game.NewRunner(sm, input, au, log)
	if m, ok := au.(Mutable); ok {
		g.runner.OnMute(func() {
			m.SetMuted(!m.Muted())
			g.log.Info("sound toggled", zap.Bool("muted", m.Muted()))
		})
	}
	return g, nil
}

// Scenes 场景管理器
func (g *Game) Scenes() *game.SceneManager {
	return g.scenes
}

// Frame 推进一帧并输出，返回 true 表示玩家要求退出
func (g *Game) Frame(now time.Time) bool {
	g.input.BeginFrame(now)
	if g.runner.Step(now) {
		return true
	}
	g.runner.Draw(g.fb)
	Present(g.screen, g.fb)
	return false
}

// Run 事件循环，直到玩家退出或 ctx 取消
//
// 按键事件由单独的 goroutine 从屏幕读出，主循环按固定帧率推进。
func (g *Game) Run(ctx context.Context) error {
	g.screen.HideCursor()
	g.screen.Clear()

	done := make(chan struct{})
	events := pollEvents(g.screen, done, 100)
	defer g.screen.Fini()
	defer close(done)

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()
	g.log.Info("terminal loop started", zap.Duration("tick", g.tick))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				g.input.Handle(ev, time.Now())
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case now := <-ticker.C:
			if g.Frame(now) {
				return nil
			}
		}
	}
}

// pollEvents 在单独的 goroutine 中读取屏幕事件
//
// 屏幕 Fini 或 done 关闭后 goroutine 退出并关闭返回的通道。
func pollEvents(screen tcell.Screen, done <-chan struct{}, size int) <-chan tcell.Event {
	events := make(chan tcell.Event, size)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
