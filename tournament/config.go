package tournament

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// BlindLevel is one step of the escalating blind schedule
type BlindLevel struct {
	SmallBlind int
	BigBlind   int
	Ante       int
	Duration   time.Duration
}

// PayoutTier maps a finishing position to its share of the prize pool
type PayoutTier struct {
	Position int
	Percent  int
}

// Config describes a complete tournament
type Config struct {
	Name          string
	BuyIn         int
	StartingChips int
	MaxPlayers    int // 0 means unbounded
	TableSize     int

	// Windows are measured from tournament start. A zero window
	// disables the feature.
	LateRegistration time.Duration
	RebuyWindow      time.Duration
	RebuyPrice       int
	RebuyChips       int
	AddonWindow      time.Duration
	AddonPrice       int
	AddonChips       int

	Levels  []BlindLevel
	Payouts []PayoutTier
}

// Validate checks the schedule and payout table. Blinds and antes may
// only go up from level to level, and every level must change at least
// one of them.
func (c *Config) Validate() error {
	if c.BuyIn < 0 {
		return fmt.Errorf("buy_in must not be negative, got %d", c.BuyIn)
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("starting_chips must be positive, got %d", c.StartingChips)
	}
	if c.TableSize < 2 {
		return fmt.Errorf("table_size must be at least 2, got %d", c.TableSize)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("at least one blind level is required")
	}

	for i, lvl := range c.Levels {
		if lvl.SmallBlind <= 0 || lvl.BigBlind <= 0 {
			return fmt.Errorf("level %d: blinds must be positive", i)
		}
		if lvl.BigBlind < lvl.SmallBlind {
			return fmt.Errorf("level %d: big blind %d below small blind %d", i, lvl.BigBlind, lvl.SmallBlind)
		}
		if lvl.Ante < 0 {
			return fmt.Errorf("level %d: ante must not be negative", i)
		}
		if lvl.Duration <= 0 {
			return fmt.Errorf("level %d: duration must be positive", i)
		}
		if i == 0 {
			continue
		}
		prev := c.Levels[i-1]
		if lvl.SmallBlind < prev.SmallBlind || lvl.BigBlind < prev.BigBlind || lvl.Ante < prev.Ante {
			return fmt.Errorf("level %d: blinds and antes may not decrease", i)
		}
		if lvl.SmallBlind == prev.SmallBlind && lvl.BigBlind == prev.BigBlind && lvl.Ante == prev.Ante {
			return fmt.Errorf("level %d: identical to level %d", i, i-1)
		}
	}

	if len(c.Payouts) == 0 {
		return fmt.Errorf("at least one payout tier is required")
	}
	total := 0
	for i, tier := range c.Payouts {
		if tier.Position != i+1 {
			return fmt.Errorf("payout tiers must cover positions 1..%d in order, got position %d at index %d", len(c.Payouts), tier.Position, i)
		}
		if tier.Percent <= 0 {
			return fmt.Errorf("payout position %d: percent must be positive", tier.Position)
		}
		total += tier.Percent
	}
	if total != 100 {
		return fmt.Errorf("payout percentages must sum to 100, got %d", total)
	}

	if c.RebuyWindow > 0 && c.RebuyChips <= 0 {
		return fmt.Errorf("rebuy_chips must be positive when a rebuy window is configured")
	}
	if c.AddonWindow > 0 && c.AddonChips <= 0 {
		return fmt.Errorf("addon_chips must be positive when an addon window is configured")
	}
	return nil
}

// Level returns the schedule entry for a level index. Past the end of
// the schedule the final configured level applies indefinitely.
func (c *Config) Level(i int) BlindLevel {
	if i >= len(c.Levels) {
		return c.Levels[len(c.Levels)-1]
	}
	return c.Levels[i]
}

// hclConfig is the on-disk shape. Durations are written as Go duration
// strings ("15m", "1h30m") and parsed during load.
type hclConfig struct {
	Tournament hclTournament `hcl:"tournament,block"`
}

type hclTournament struct {
	Name             string      `hcl:"name,label"`
	BuyIn            int         `hcl:"buy_in"`
	StartingChips    int         `hcl:"starting_chips"`
	MaxPlayers       int         `hcl:"max_players,optional"`
	TableSize        int         `hcl:"table_size,optional"`
	LateRegistration string      `hcl:"late_registration,optional"`
	RebuyWindow      string      `hcl:"rebuy_window,optional"`
	RebuyPrice       int         `hcl:"rebuy_price,optional"`
	RebuyChips       int         `hcl:"rebuy_chips,optional"`
	AddonWindow      string      `hcl:"addon_window,optional"`
	AddonPrice       int         `hcl:"addon_price,optional"`
	AddonChips       int         `hcl:"addon_chips,optional"`
	Levels           []hclLevel  `hcl:"level,block"`
	Payouts          []hclPayout `hcl:"payout,block"`
}

type hclLevel struct {
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	Ante       int    `hcl:"ante,optional"`
	Duration   string `hcl:"duration,optional"`
}

type hclPayout struct {
	Position string `hcl:"position,label"`
	Percent  int    `hcl:"percent"`
}

// LoadConfig loads and validates a tournament definition from an HCL
// file.
func LoadConfig(filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return buildConfig(raw.Tournament)
}

func buildConfig(raw hclTournament) (*Config, error) {
	cfg := &Config{
		Name:          raw.Name,
		BuyIn:         raw.BuyIn,
		StartingChips: raw.StartingChips,
		MaxPlayers:    raw.MaxPlayers,
		TableSize:     raw.TableSize,
		RebuyPrice:    raw.RebuyPrice,
		RebuyChips:    raw.RebuyChips,
		AddonPrice:    raw.AddonPrice,
		AddonChips:    raw.AddonChips,
	}
	if cfg.TableSize == 0 {
		cfg.TableSize = 9
	}

	var err error
	if cfg.LateRegistration, err = parseWindow(raw.LateRegistration, "late_registration"); err != nil {
		return nil, err
	}
	if cfg.RebuyWindow, err = parseWindow(raw.RebuyWindow, "rebuy_window"); err != nil {
		return nil, err
	}
	if cfg.AddonWindow, err = parseWindow(raw.AddonWindow, "addon_window"); err != nil {
		return nil, err
	}

	for i, lvl := range raw.Levels {
		d := 15 * time.Minute
		if lvl.Duration != "" {
			if d, err = time.ParseDuration(lvl.Duration); err != nil {
				return nil, fmt.Errorf("level %d: bad duration %q: %w", i, lvl.Duration, err)
			}
		}
		cfg.Levels = append(cfg.Levels, BlindLevel{
			SmallBlind: lvl.SmallBlind,
			BigBlind:   lvl.BigBlind,
			Ante:       lvl.Ante,
			Duration:   d,
		})
	}
	for _, tier := range raw.Payouts {
		pos, err := strconv.Atoi(tier.Position)
		if err != nil {
			return nil, fmt.Errorf("bad payout position label %q: %w", tier.Position, err)
		}
		cfg.Payouts = append(cfg.Payouts, PayoutTier{Position: pos, Percent: tier.Percent})
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament config: %w", err)
	}
	return cfg, nil
}

func parseWindow(s, name string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s duration %q: %w", name, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
