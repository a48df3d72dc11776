package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/cEvolve05/minesweeper/internal/app"
	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	cfg, err := config.NewApp(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	if err := config.SetupLogging(log, cfg); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}
	mines.Log = log
	log.WithFields(cfg.Fields()).Debug("config loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Fatal("server failed: ", err)
	}
	log.Info("server stopped")
}
