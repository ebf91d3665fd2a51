package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/infexion/infexion/automatic"
	"github.com/infexion/infexion/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a config file")
		games      = flag.Int("games", 0, "number of games to play (0 = config default)")
		threads    = flag.Int("threads", 0, "parallel games (0 = config default)")
		redStrat   = flag.String("red", "", "red strategy override")
		blueStrat  = flag.String("blue", "", "blue strategy override")
	)
	flag.Parse()

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	redCfg := &config.Config{}
	if err := redCfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	lvl, err := zerolog.ParseLevel(redCfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	blueCfg := *redCfg
	if *redStrat != "" {
		redCfg.Strategy = *redStrat
	}
	if *blueStrat != "" {
		blueCfg.Strategy = *blueStrat
	}
	n := redCfg.SelfplayGames
	if *games > 0 {
		n = *games
	}
	t := redCfg.SelfplayThreads
	if *threads > 0 {
		t = *threads
	}

	runner := automatic.NewGameRunner(redCfg, &blueCfg)
	if redCfg.SelfplayLogFile != "" {
		f, err := os.Create(redCfg.SelfplayLogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating selfplay log")
		}
		defer f.Close()
		runner.SetLogStream(f, true)
	}

	stats, err := runner.RunGames(context.Background(), n, t)
	if err != nil {
		log.Fatal().Err(err).Msg("selfplay run failed")
	}
	fmt.Println(stats.String())
}
