package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/holdem/game"
	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/tournament"
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#2E7D32")).
		Padding(0, 1).
		Bold(true)

	winnerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true)
)

type CLI struct {
	Config   string `short:"c" help:"Tournament config file (HCL)" type:"existingfile"`
	Players  int    `short:"p" default:"9" help:"Number of simulated players"`
	Seed     int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Verbose  bool   `short:"v" help:"Verbose logging"`
	MaxHands int    `default:"10000" help:"Safety cap on total hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "sim",
	})
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1).
		Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1).
		Foreground(lipgloss.Color("#D32F2F")).Bold(true)
	logger.SetStyles(styles)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ holdem tournament simulator ♦ ♣ "))

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting simulation", "players", cli.Players, "seed", seed)

	if err := run(cli, seed, logger); err != nil {
		log.Fatal("simulation failed", "error", err)
	}
	ctx.Exit(0)
}

func loadConfig(path string) (*tournament.Config, error) {
	if path != "" {
		return tournament.LoadConfig(path)
	}
	cfg := &tournament.Config{
		Name:          "simulated",
		BuyIn:         100,
		StartingChips: 5000,
		TableSize:     6,
		Levels: []tournament.BlindLevel{
			{SmallBlind: 25, BigBlind: 50, Duration: 15 * time.Minute},
			{SmallBlind: 50, BigBlind: 100, Ante: 10, Duration: 15 * time.Minute},
			{SmallBlind: 100, BigBlind: 200, Ante: 25, Duration: 15 * time.Minute},
		},
		Payouts: []tournament.PayoutTier{
			{Position: 1, Percent: 50},
			{Position: 2, Percent: 30},
			{Position: 3, Percent: 20},
		},
	}
	return cfg, cfg.Validate()
}

func run(cli CLI, seed int64, logger *log.Logger) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tour, err := tournament.New(*cfg, randutil.New(seed), tournament.WithLogger(logger))
	if err != nil {
		return err
	}

	tour.Events().Subscribe(tournament.SubscriberFunc(func(e tournament.Event) {
		switch ev := e.(type) {
		case tournament.LevelAdvancedEvent:
			logger.Info("blinds up", "level", ev.Level,
				"small_blind", ev.Blinds.SmallBlind, "big_blind", ev.Blinds.BigBlind, "ante", ev.Blinds.Ante)
		case tournament.PlayerEliminatedEvent:
			logger.Info("player out", "player", ev.PlayerID, "position", ev.Position,
				"payout", ev.Payout, "remaining", ev.Remaining)
		case tournament.FinalTableEvent:
			logger.Info("final table", "players", len(ev.Players))
		case tournament.CompletedEvent:
			logger.Info("tournament over", "winner", ev.WinnerID, "payout", ev.Payout)
		}
	}))

	for i := 0; i < cli.Players; i++ {
		if err := tour.RegisterPlayer(fmt.Sprintf("player-%d", i+1)); err != nil {
			return fmt.Errorf("registering player %d: %w", i+1, err)
		}
	}
	if err := tour.StartTournament(); err != nil {
		return err
	}

	hands := 0
	for tour.Status() != tournament.StatusCompleted && hands < cli.MaxHands {
		tableIDs := tour.TableIDs()

		// One goroutine per table; the tournament serializes internally,
		// so tables interleave safely.
		var g errgroup.Group
		for i, tableID := range tableIDs {
			agentRNG := randutil.New(seed + int64(hands)*31 + int64(i))
			g.Go(func() error {
				return playOneHand(tour, tableID, agentRNG)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		hands += len(tableIDs)
	}

	if tour.Status() != tournament.StatusCompleted {
		return fmt.Errorf("tournament did not complete within %d hands", cli.MaxHands)
	}

	printResults(tour, hands)
	return nil
}

// playOneHand deals and plays a single hand on one table with simple
// random agents. Closed or short tables are skipped silently.
func playOneHand(tour *tournament.Tournament, tableID string, rng *rand.Rand) error {
	if err := tour.StartHand(tableID); err != nil {
		return nil
	}
	for {
		state, err := tour.GameState(tableID)
		if err != nil || !state.HandInProgress || state.ActionOn == "" {
			return nil
		}
		legal, err := tour.LegalActions(state.ActionOn)
		if err != nil || len(legal) == 0 {
			return nil
		}
		action, amount := chooseAction(state, legal, rng)
		if _, err := tour.ProcessAction(state.ActionOn, action, amount); err != nil {
			return fmt.Errorf("action %s by %s: %w", action, state.ActionOn, err)
		}
	}
}

// chooseAction plays a loose-passive random strategy: mostly check or
// call, an occasional raise or shove, and a rare fold.
func chooseAction(state *game.GameState, legal []game.ActionType, rng *rand.Rand) (game.ActionType, int) {
	has := func(want game.ActionType) bool {
		for _, a := range legal {
			if a == want {
				return true
			}
		}
		return false
	}

	roll := rng.IntN(100)
	switch {
	case roll < 5 && has(game.AllIn):
		return game.AllIn, 0
	case roll < 20 && has(game.Raise):
		return game.Raise, state.CurrentBet + state.MinRaise
	case roll < 90:
		if has(game.Check) {
			return game.Check, 0
		}
		if has(game.Call) {
			return game.Call, 0
		}
	}
	if has(game.Check) {
		return game.Check, 0
	}
	if has(game.Fold) {
		return game.Fold, 0
	}
	return legal[0], 0
}

func printResults(tour *tournament.Tournament, hands int) {
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf(" results after %d hands ", hands)))

	for _, s := range tour.Leaderboard() {
		line := fmt.Sprintf("%2d. %-12s", s.Position, s.PlayerID)
		if s.Payout > 0 {
			line += fmt.Sprintf("  paid %d", s.Payout)
		}
		if s.Position == 1 {
			line = winnerStyle.Render(line + "  🏆")
		}
		fmt.Println(line)
	}
	fmt.Printf("\nprize pool: %d\n", tour.PrizePool())
}
