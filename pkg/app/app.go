// Package app 组装桌面版游戏并实现 ebiten.Game
//
// 资源、音频、世界、比赛和场景在 NewApp 中一次建好，
// 之后 ebiten 在自己的 goroutine 上逐帧调用 Update 和 Draw。
package app

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/lastfighter/internal/audio"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/scenes"
	"github.com/decker502/lastfighter/pkg/systems"
)

// Options 启动参数
type Options struct {
	Config *config.AppConfig
	// Scores 最高分存储，nil 时只保存在内存
	Scores platform.HighScoreStore
	// Settings 设置存储，nil 时不持久化
	Settings *gdata.Manager
	// Rules 计分规则，nil 时使用内置规则
	Rules game.ScoreRules
	Log   *zap.Logger
}

// App 实现 ebiten.Game
type App struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	runner   *game.Runner
	scenes   *game.SceneManager
	renderer *systems.EbitenRenderer
	audio    *game.AudioManager
	settings *game.SettingsManager
	input    *systems.EbitenInput

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 加载数据并组装游戏，调用前须先 embedded.Init
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	atlas, err := config.LoadSpriteConfig(cfg.Game.SpritesFile)
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	army, err := config.LoadArmyConfig(cfg.Game.ArmyFile)
	if err != nil {
		return nil, fmt.Errorf("load army: %w", err)
	}

	seed := Seed(cfg.Game.Seed)
	bank, err := audio.NewBank(cfg.Audio.SampleRate, seed)
	if err != nil {
		return nil, fmt.Errorf("render sounds: %w", err)
	}
	resources := game.NewResourceManager(atlas, bank, log)
	settings := game.NewSettingsManager(opts.Settings, game.DefaultSettings(cfg), log)
	audioManager := game.NewAudioManager(ebaudio.NewContext(cfg.Audio.SampleRate), resources, settings, log)
	input := systems.NewEbitenInput()

	world := entities.NewWorld(atlas, audioManager, input, rand.New(rand.NewSource(seed)), log)
	match := game.NewMatch(world, army, opts.Rules, cfg.Game.Lives)
	session := scenes.NewSession(match, game.NewHighScoreManager(opts.Scores, log), log)

	sm := game.NewSceneManager(log)
	sm.Start(session.Intro(), 0)

	a := &App{
		cfg:      cfg,
		log:      log.Named("app"),
		scenes:   sm,
		renderer: systems.NewEbitenRenderer(resources, cfg.Window.Scale),
		audio:    audioManager,
		settings: settings,
		input:    input,
	}
	a.runner = game.NewRunner(sm, input, audioManager, log)
	a.runner.OnMute(a.toggleMusic)

	a.log.Info("game ready",
		zap.Int64("seed", seed),
		zap.Int("waves", len(army.Waves)),
		zap.Int("sample_rate", cfg.Audio.SampleRate),
	)
	return a, nil
}

// Seed 0 表示按当前时间播种
func Seed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// ConfigureWindow 按配置和已保存的设置设置窗口
func (a *App) ConfigureWindow() {
	w, h := a.renderer.Layout()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetFullscreen(a.settings.GetSettings().Fullscreen)
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	// 退出全屏后需要等几帧窗口管理器才接受新尺寸
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.renderer.Layout())
			a.pendingWindowSizeReset = false
		}
	}
	if a.input.WasPressed(platform.KeyFullscreen) {
		a.toggleFullscreen()
	}

	if a.runner.Step(time.Now()) {
		a.audio.Stop()
		return ebiten.Termination
	}
	return nil
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Begin(screen)
	a.runner.Draw(a.renderer)
}

// DrawFinalScreen 全屏时两侧填黑，像素画使用最近邻缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕放大 scale 倍后的尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.renderer.Layout()
}

// Scenes 场景管理器
func (a *App) Scenes() *game.SceneManager {
	return a.scenes
}

func (a *App) toggleMusic() {
	on := a.settings.ToggleMusic()
	a.audio.ApplySettings()
	a.log.Info("music toggled", zap.Bool("enabled", on))
}

func (a *App) toggleFullscreen() {
	full := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(full)
	if !full {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.settings.SetFullscreen(full)
	if err := a.settings.Save(); err != nil {
		a.log.Warn("settings not saved", zap.Error(err))
	}
}
