// Command lastfighter-tty 在终端里玩 The last space fighter
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/lastfighter/data"
	"github.com/decker502/lastfighter/internal/audio"
	"github.com/decker502/lastfighter/internal/bootstrap"
	"github.com/decker502/lastfighter/internal/logging"
	"github.com/decker502/lastfighter/internal/tty"
	"github.com/decker502/lastfighter/pkg/app"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/embedded"
	"github.com/decker502/lastfighter/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.toml", "path to the toml config file")
	logPath := flag.String("log", "", "log file (defaults to terminal.log_file)")
	mute := flag.Bool("mute", false, "start without sound")
	flag.Parse()

	embedded.Init(data.FS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logPath != "" {
		cfg.Terminal.LogFile = *logPath
	}

	log, err := logging.NewFile(cfg.Logging, cfg.Terminal.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	rules, closeRules := bootstrap.LoadRules(cfg, log)
	defer closeRules()

	seed := app.Seed(cfg.Game.Seed)
	var sound platform.Audio = tty.Silent{}
	if !*mute {
		if p, err := openSpeaker(cfg, seed, log); err != nil {
			log.Warn("sound disabled", zap.Error(err))
		} else {
			defer p.Close()
			sound = p
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	g, err := tty.NewGame(tty.Options{
		Config: cfg,
		Screen: screen,
		Audio:  sound,
		Scores: stores.Scores,
		Rules:  rules,
		Seed:   seed,
		Log:    log,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("bye", zap.Stringer("phase", g.Scenes().Phase()))
	return nil
}

func openSpeaker(cfg *config.AppConfig, seed int64, log *zap.Logger) (*audio.SpeakerPlayer, error) {
	bank, err := audio.NewBank(cfg.Audio.SampleRate, seed)
	if err != nil {
		return nil, fmt.Errorf("render sounds: %w", err)
	}
	return audio.NewSpeakerPlayer(bank, log)
}
