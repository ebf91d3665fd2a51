package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/infexion/infexion/config"
	"github.com/infexion/infexion/shell"
)

func setupLogging(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	logger := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}

func main() {
	cfg := &config.Config{}
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if err := cfg.Load(configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)
	log.Debug().Interface("config", cfg).Msg("loaded config")

	quit := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(quit)
	}()

	sc := shell.NewShellController(cfg)
	go sc.Loop(sig)

	<-quit
	log.Info().Msg("shutting down")
}
