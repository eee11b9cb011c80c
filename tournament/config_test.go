package tournament

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Name:          "test",
		BuyIn:         100,
		StartingChips: 1000,
		TableSize:     9,
		Levels: []BlindLevel{
			{SmallBlind: 5, BigBlind: 10, Duration: 15 * time.Minute},
			{SmallBlind: 10, BigBlind: 20, Ante: 2, Duration: 15 * time.Minute},
			{SmallBlind: 25, BigBlind: 50, Ante: 5, Duration: 15 * time.Minute},
		},
		Payouts: []PayoutTier{
			{Position: 1, Percent: 50},
			{Position: 2, Percent: 30},
			{Position: 3, Percent: 20},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := validConfig()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no levels", func(c *Config) { c.Levels = nil }, "at least one blind level"},
		{"decreasing big blind", func(c *Config) { c.Levels[1].BigBlind = 5 }, "big blind 5 below small blind"},
		{"blinds go down", func(c *Config) { c.Levels[2] = BlindLevel{SmallBlind: 5, BigBlind: 10, Duration: time.Minute} }, "may not decrease"},
		{"identical levels", func(c *Config) { c.Levels[1] = c.Levels[0] }, "identical to level"},
		{"zero duration", func(c *Config) { c.Levels[0].Duration = 0 }, "duration must be positive"},
		{"payouts do not sum", func(c *Config) { c.Payouts[0].Percent = 40 }, "sum to 100"},
		{"payout gap", func(c *Config) { c.Payouts[1].Position = 3 }, "positions 1..3 in order"},
		{"no payouts", func(c *Config) { c.Payouts = nil }, "at least one payout tier"},
		{"zero starting chips", func(c *Config) { c.StartingChips = 0 }, "starting_chips must be positive"},
		{"tiny table", func(c *Config) { c.TableSize = 1 }, "table_size must be at least 2"},
		{"rebuy window without chips", func(c *Config) { c.RebuyWindow = time.Hour }, "rebuy_chips must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigLevelPastEndRepeatsFinal(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	final := cfg.Levels[len(cfg.Levels)-1]
	assert.Equal(t, final, cfg.Level(len(cfg.Levels)))
	assert.Equal(t, final, cfg.Level(100))
	assert.Equal(t, cfg.Levels[0], cfg.Level(0))
}

const sampleHCL = `
tournament "sunday-major" {
  buy_in            = 100
  starting_chips    = 10000
  max_players       = 27
  table_size        = 9
  late_registration = "30m"
  rebuy_window      = "1h"
  rebuy_price       = 100
  rebuy_chips       = 10000
  addon_window      = "1h30m"
  addon_price       = 50
  addon_chips       = 5000

  level {
    small_blind = 25
    big_blind   = 50
    duration    = "20m"
  }

  level {
    small_blind = 50
    big_blind   = 100
    ante        = 10
    duration    = "20m"
  }

  payout "1" {
    percent = 50
  }

  payout "2" {
    percent = 30
  }

  payout "3" {
    percent = 20
  }
}
`

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tournament.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfigFile(t, sampleHCL))
	require.NoError(t, err)

	assert.Equal(t, "sunday-major", cfg.Name)
	assert.Equal(t, 100, cfg.BuyIn)
	assert.Equal(t, 10000, cfg.StartingChips)
	assert.Equal(t, 27, cfg.MaxPlayers)
	assert.Equal(t, 30*time.Minute, cfg.LateRegistration)
	assert.Equal(t, time.Hour, cfg.RebuyWindow)
	assert.Equal(t, 90*time.Minute, cfg.AddonWindow)

	require.Len(t, cfg.Levels, 2)
	assert.Equal(t, BlindLevel{SmallBlind: 25, BigBlind: 50, Duration: 20 * time.Minute}, cfg.Levels[0])
	assert.Equal(t, 10, cfg.Levels[1].Ante)

	require.Len(t, cfg.Payouts, 3)
	assert.Equal(t, PayoutTier{Position: 1, Percent: 50}, cfg.Payouts[0])
}

func TestLoadConfigDefaultsTableSize(t *testing.T) {
	t.Parallel()

	minimal := `
tournament "t" {
  buy_in         = 10
  starting_chips = 1000

  level {
    small_blind = 5
    big_blind   = 10
  }

  payout "1" {
    percent = 100
  }
}
`
	cfg, err := LoadConfig(writeConfigFile(t, minimal))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.TableSize)
	assert.Equal(t, 15*time.Minute, cfg.Levels[0].Duration, "level duration defaults when omitted")
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad duration", func(t *testing.T) {
		bad := `
tournament "t" {
  buy_in         = 10
  starting_chips = 1000

  level {
    small_blind = 5
    big_blind   = 10
    duration    = "soon"
  }

  payout "1" {
    percent = 100
  }
}
`
		_, err := LoadConfig(writeConfigFile(t, bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad duration")
	})

	t.Run("invalid schedule", func(t *testing.T) {
		bad := `
tournament "t" {
  buy_in         = 10
  starting_chips = 1000

  level {
    small_blind = 10
    big_blind   = 5
  }

  payout "1" {
    percent = 100
  }
}
`
		_, err := LoadConfig(writeConfigFile(t, bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tournament config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
		require.Error(t, err)
	})
}
