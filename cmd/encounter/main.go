// Command encounter plays one battle headlessly: the battle manager and the
// scripted engine run with synthetic input, and the dialogue transcript is
// printed when the encounter ends.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/battle"
	"github.com/milk9111/firebattle/config"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/engine"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/prefabs"
	"github.com/rs/zerolog/log"
)

const frameDelta = 1.0 / 60

var errFrameLimit = errors.New("encounter: frame limit reached")

type options struct {
	maxFrames int
	move      int
	flee      bool
}

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fs := flag.NewFlagSet("encounter", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	var opts options
	fs.IntVar(&opts.maxFrames, "frames", 36000, "give up after this many frames")
	fs.IntVar(&opts.move, "move", 0, "move slot the player always picks")
	fs.BoolVar(&opts.flee, "flee", false, "try to run instead of fighting")
	_ = fs.Parse(os.Args[1:])

	if err := config.SetupLogging(cfg, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	prefabs.Dir = cfg.PrefabDir

	if _, err := run(cfg, opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("encounter failed")
	}
}

type outcome struct {
	Frames int
	Won    bool
	Save   *encounter.Save
}

func run(cfg config.Config, opts options, out io.Writer) (outcome, error) {
	data, err := prefabs.LoadAll()
	if err != nil {
		return outcome{}, fmt.Errorf("encounter: load prefabs: %w", err)
	}
	script, err := engine.Compile(data.Script)
	if err != nil {
		return outcome{}, fmt.Errorf("encounter: %w", err)
	}

	seed := cfg.ResolvedSeed()
	var entry encounter.Entry
	if cfg.Trainer != "" {
		entry, err = data.Trainers.Entry(cfg.Trainer)
	} else {
		entry, err = data.Encounters.Roll(cfg.Area, rand.New(rand.NewPCG(seed, seed>>1|1)))
	}
	if err != nil {
		return outcome{}, fmt.Errorf("encounter: %w", err)
	}

	pilot := &autopilot{action: encounter.Action{Kind: encounter.ActionMove, Move: opts.move}}
	if opts.flee {
		pilot.action = encounter.Action{Kind: encounter.ActionRun}
	}
	textSpeed := cfg.TextSpeed
	if textSpeed <= 0 {
		textSpeed = data.Battle.TextSpeed
	}
	moves, items := data.Moves.Catalogs()
	m := battle.New(battle.Options{
		NewBattle: func(save *encounter.Save, entry encounter.Entry) (battle.Battle, error) {
			e, err := engine.New(script, save, entry)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
		Player:    pilot,
		Moves:     moves,
		Items:     items,
		TextSpeed: textSpeed,
		Seed:      seed,
	})

	save := data.Player.Save()
	if !m.Begin(save, entry) {
		return outcome{}, fmt.Errorf("encounter: %s could not start", entry.ID)
	}

	var (
		in    input.Input
		phase = m.Phase()
		res   outcome
	)
	for res.Frames = 0; !m.Finished; res.Frames++ {
		if res.Frames >= opts.maxFrames {
			return res, errFrameLimit
		}
		// Alternate so every confirm is a fresh press.
		in.ConfirmPressed = res.Frames%2 == 0
		m.Update(&in, frameDelta)
		if p := m.Phase(); p != phase {
			log.Info().Int("frame", res.Frames).Stringer("phase", p).Msg("phase changed")
			phase = p
		}
	}

	winner, _ := m.Winner()
	res.Won = m.UpdateData(winner, save)
	res.Save = save
	for _, line := range m.Transcript() {
		fmt.Fprintln(out, line)
	}
	log.Info().Int("frames", res.Frames).Bool("won", res.Won).Uint32("money", save.Money).Msg("encounter over")
	return res, nil
}

// autopilot stands in for the action menu and picks the same action on every
// confirm press once the battle has started.
type autopilot struct {
	action  encounter.Action
	started bool
	pending []encounter.Action
}

func (a *autopilot) Reset() {
	a.started = false
	a.pending = nil
}

func (a *autopilot) Start() {
	a.started = true
}

func (a *autopilot) Update(in *input.Input, delta float64) {
	if a.started && in.ConfirmPressed {
		a.pending = append(a.pending, a.action)
	}
}

func (a *autopilot) Draw(screen *ebiten.Image) {}

func (a *autopilot) Actions() []encounter.Action {
	out := a.pending
	a.pending = nil
	return out
}
