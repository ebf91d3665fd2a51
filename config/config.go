// Package config loads engine settings from a config file and the
// environment (INFEXION_ prefix), with defaults suitable for tournament
// play.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Strategy is the engine used by the AI player: negascout, negamax,
	// minimax, montecarlo, greedy or random.
	Strategy string        `mapstructure:"strategy"`
	Depth    int           `mapstructure:"depth"`
	MoveTime time.Duration `mapstructure:"move-time"`
	// GameClock is the per-player clock a whole game must fit in; the
	// player shrinks its search depth as it runs low.
	GameClock time.Duration `mapstructure:"game-clock"`
	LogLevel  string        `mapstructure:"log-level"`

	MCTSIterations    int    `mapstructure:"mcts-iterations"`
	MCTSRolloutLimit  int    `mapstructure:"mcts-rollout-limit"`
	MCTSRolloutPolicy string `mapstructure:"mcts-rollout-policy"`
	MCTSNodeBudget    int    `mapstructure:"mcts-node-budget"`

	SelfplayGames   int    `mapstructure:"selfplay-games"`
	SelfplayThreads int    `mapstructure:"selfplay-threads"`
	SelfplayLogFile string `mapstructure:"selfplay-logfile"`
}

// Load populates the config from defaults, then an optional config file,
// then INFEXION_* environment variables. An empty path searches the
// working directory and ~/.infexion for infexion.{yaml,toml,json}.
func (c *Config) Load(path string) error {
	v := viper.New()
	v.SetDefault("strategy", "negascout")
	v.SetDefault("depth", 4)
	v.SetDefault("move-time", 18*time.Second)
	v.SetDefault("game-clock", 180*time.Second)
	v.SetDefault("log-level", "info")
	v.SetDefault("mcts-iterations", 200)
	v.SetDefault("mcts-rollout-limit", 100)
	v.SetDefault("mcts-rollout-policy", "greedy")
	v.SetDefault("mcts-node-budget", 0) // 0 sizes from physical memory
	v.SetDefault("selfplay-games", 10)
	v.SetDefault("selfplay-threads", 1)
	v.SetDefault("selfplay-logfile", "")

	v.SetEnvPrefix("infexion")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName("infexion")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.infexion")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("config: %w", err)
			}
		}
	}
	return v.Unmarshal(c)
}
