package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// AppConfig 应用配置（config.toml）
type AppConfig struct {
	Window    WindowConfig    `toml:"window"`
	Audio     AudioConfig     `toml:"audio"`
	Game      GameConfig      `toml:"game"`
	Scores    ScoresConfig    `toml:"scores"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Terminal  TerminalConfig  `toml:"terminal"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Scale      int    `toml:"scale"` // 窗口尺寸 = 逻辑尺寸 * scale
	Fullscreen bool   `toml:"fullscreen"`
}

type AudioConfig struct {
	SampleRate  int     `toml:"sample_rate"`
	MusicVolume float64 `toml:"music_volume"` // 0.0 ~ 1.0，首次启动时的默认值
	SoundVolume float64 `toml:"sound_volume"`
}

type GameConfig struct {
	ArmyFile    string `toml:"army_file"`
	SpritesFile string `toml:"sprites_file"`
	Lives       int    `toml:"lives"`
	Seed        int64  `toml:"seed"` // 0 表示按启动时间播种
}

type ScoresConfig struct {
	Backend string `toml:"backend"` // "gdata", "postgres" 或 "memory"
	AppName string `toml:"app_name"`
	DSN     string `toml:"dsn"`
}

type ScriptingConfig struct {
	RulesFile string `toml:"rules_file"`
}

// TerminalConfig 终端前端（cmd/lastfighter-tty）
type TerminalConfig struct {
	FrameRate int    `toml:"frame_rate"`
	LogFile   string `toml:"log_file"` // 终端占满屏幕，日志只能写文件
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load 读取 toml 配置，文件不存在时返回默认配置
func Load(path string) (*AppConfig, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validateAppConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *AppConfig {
	return defaults()
}

func defaults() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Title: "The last space fighter",
			Scale: 4,
		},
		Audio: AudioConfig{
			SampleRate:  48000,
			MusicVolume: 0.6,
			SoundVolume: 0.8,
		},
		Game: GameConfig{
			ArmyFile:    "data/army.yaml",
			SpritesFile: "data/sprites.yaml",
			Lives:       3,
		},
		Scores: ScoresConfig{
			Backend: "gdata",
			AppName: "lastspacefighter",
		},
		Scripting: ScriptingConfig{
			RulesFile: "data/rules/score.lua",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Terminal: TerminalConfig{
			FrameRate: 60,
			LogFile:   "lastfighter-tty.log",
		},
	}
}

// validateAppConfig 验证配置取值
func validateAppConfig(cfg *AppConfig) error {
	if cfg.Window.Scale < 1 {
		return fmt.Errorf("window.scale must be at least 1, got %d", cfg.Window.Scale)
	}
	if cfg.Game.Lives < 1 {
		return fmt.Errorf("game.lives must be at least 1, got %d", cfg.Game.Lives)
	}
	if cfg.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Terminal.FrameRate < 1 || cfg.Terminal.FrameRate > 240 {
		return fmt.Errorf("terminal.frame_rate must be between 1 and 240, got %d", cfg.Terminal.FrameRate)
	}
	switch cfg.Scores.Backend {
	case "gdata", "memory":
	case "postgres":
		if cfg.Scores.DSN == "" {
			return fmt.Errorf("scores.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("scores.backend must be one of: gdata, postgres, memory, got %q", cfg.Scores.Backend)
	}
	return nil
}
