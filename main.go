// Command lastfighter 桌面版：一架飞船对抗一波又一波的敌机
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/lastfighter/data"
	"github.com/decker502/lastfighter/internal/bootstrap"
	"github.com/decker502/lastfighter/internal/logging"
	"github.com/decker502/lastfighter/pkg/app"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/embedded"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.toml", "path to the toml config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showScores := flag.Bool("scores", false, "print the high-score table and exit")
	flag.Parse()

	embedded.Init(data.FS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	stores, err := bootstrap.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	if *showScores {
		if err := bootstrap.PrintScores(os.Stdout, stores.Scores, log); err != nil {
			return err
		}
		if stores.Repo != nil {
			return bootstrap.PrintBestMatches(ctx, os.Stdout, stores.Repo, 10)
		}
		return nil
	}

	rules, closeRules := bootstrap.LoadRules(cfg, log)
	defer closeRules()

	a, err := app.NewApp(app.Options{
		Config:   cfg,
		Scores:   stores.Scores,
		Settings: stores.Settings,
		Rules:    rules,
		Log:      log,
	})
	if err != nil {
		return err
	}
	a.ConfigureWindow()

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("bye", zap.Stringer("phase", a.Scenes().Phase()))
	return nil
}
