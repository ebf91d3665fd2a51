package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(""))
	is.Equal(c.Strategy, "negascout")
	is.Equal(c.Depth, 4)
	is.Equal(c.MoveTime, 18*time.Second)
	is.Equal(c.MCTSRolloutPolicy, "greedy")
}

func TestFileOverridesDefaults(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "infexion.yaml")
	is.NoErr(os.WriteFile(path, []byte("strategy: montecarlo\ndepth: 2\n"), 0644))

	c := &Config{}
	is.NoErr(c.Load(path))
	is.Equal(c.Strategy, "montecarlo")
	is.Equal(c.Depth, 2)
	// untouched keys keep their defaults
	is.Equal(c.SelfplayGames, 10)
}

func TestEnvOverridesDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("INFEXION_LOG_LEVEL", "debug")
	c := &Config{}
	is.NoErr(c.Load(""))
	is.Equal(c.LogLevel, "debug")
}
