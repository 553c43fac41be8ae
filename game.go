package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/firebattle/assets"
	"github.com/milk9111/firebattle/audio"
	"github.com/milk9111/firebattle/battle"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/config"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/engine"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/prefabs"
	"github.com/milk9111/firebattle/transition"
	"github.com/milk9111/firebattle/world"
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

type Game struct {
	frames int
	cfg    config.Config

	input  *input.Input
	world  *world.World
	battle *battle.Manager

	data   *prefabs.Data
	script *engine.Script
	save   *encounter.Save
	sounds *audio.Service
	res    *transition.Resources

	watcher *prefabs.Watcher
	rng     *rand.Rand

	inBattle bool
	paused   bool
	pauseUI  *ebitenui.UI

	clipboardOnce sync.Once
	clipboardErr  error
}

func NewGame(cfg config.Config) (*Game, error) {
	data, err := prefabs.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load prefabs: %w", err)
	}
	script, err := engine.Compile(data.Script)
	if err != nil {
		return nil, fmt.Errorf("compile damage script: %w", err)
	}

	seed := cfg.ResolvedSeed()
	w, err := world.Load(cfg.Area+".json", seed)
	if err != nil {
		return nil, err
	}

	var ctx *ebaudio.Context
	if !cfg.Mute {
		ctx = ebaudio.NewContext(cfg.SampleRate)
	}
	sounds := audio.NewService(ctx, assets.LoadFile)
	sounds.Bind(data.Sounds.Clips())
	sounds.SetTracks(data.Sounds.Tracks())

	g := &Game{
		cfg:    cfg,
		input:  input.New(),
		world:  w,
		data:   data,
		script: script,
		save:   data.Player.Save(),
		sounds: sounds,
		res: &transition.Resources{
			Sounds:   sounds,
			Music:    sounds,
			Textures: assets.NewTextures(),
		},
		rng: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	g.world.Defeated = func(npc string) bool { return g.save.Defeated[npc] }
	g.configureTrainers()

	textSpeed := cfg.TextSpeed
	if textSpeed <= 0 {
		textSpeed = data.Battle.TextSpeed
	}
	moves, items := data.Moves.Catalogs()
	g.battle = battle.New(battle.Options{
		Resources:  g.res,
		NewBattle:  g.newEngine,
		Background: background(data.Battle.Background),
		Moves:      moves,
		Items:      items,
		TextSpeed:  textSpeed,
		Debug:      cfg.Debug,
		Seed:       seed,
	})
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		if g.watcher, err = prefabs.NewWatcher(); err != nil {
			log.Warn().Err(err).Msg("prefab hot reload disabled")
		}
	}

	g.res.PlayMusic(w.Map.Music)

	log.Info().
		Str("level", w.Map.Name).
		Uint64("seed", seed).
		Bool("muted", cfg.Mute).
		Msg("game ready")

	if cfg.Trainer != "" {
		g.startTrainer(cfg.Trainer)
	}
	return g, nil
}

// configureTrainers applies trainers.yaml to the npcs standing on the map.
func (g *Game) configureTrainers() {
	for _, n := range g.world.NPCs {
		t, ok := g.data.Trainers.Trainers[n.ID]
		if !ok {
			log.Warn().Str("npc", n.ID).Msg("npc on the map has no trainer prefab")
			continue
		}
		g.world.Configure(n.ID, world.Challenge{
			Sight:            t.Tracking,
			BattleOnInteract: t.Interacts(),
			Message:          g.data.Trainers.EncounterMessage(n.ID),
		})
	}
}

func background(c prefabs.YAMLColor) *ebiten.Image {
	if c.Color == nil {
		return nil
	}
	img := ebiten.NewImage(common.BaseWidth, common.BaseHeight)
	img.Fill(c.Color)
	return img
}

// newEngine builds the scripted engine with whatever script is current, so a
// reloaded script applies from the next encounter on.
func (g *Game) newEngine(save *encounter.Save, entry encounter.Entry) (battle.Battle, error) {
	e, err := engine.New(g.script, save, entry)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()
	g.drainWatcher()

	if g.input.DebugCopy {
		g.copyTranscript()
	}

	delta := 1 / float64(ebiten.TPS())
	g.sounds.UpdateMusic()

	if g.inBattle {
		g.battle.Update(g.input, delta)
		if g.battle.WorldActive() {
			g.world.Simulate(delta)
		}
		if g.battle.Finished {
			g.finishBattle()
		}
		return nil
	}

	if g.input.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	switch tr := g.world.Update(g.input, delta); tr.Kind {
	case world.TriggerWild:
		g.startWild()
	case world.TriggerTrainer:
		g.startTrainer(tr.NPC)
	}
	return nil
}

func (g *Game) startWild() {
	entry, err := g.data.Encounters.Roll(g.world.Map.Area, g.rng)
	if err != nil {
		log.Warn().Str("area", g.world.Map.Area).Err(err).Msg("no wild encounter")
		return
	}
	g.start(entry)
}

func (g *Game) startTrainer(npc string) {
	entry, err := g.data.Trainers.Entry(npc)
	if err != nil {
		log.Warn().Str("npc", npc).Err(err).Msg("no trainer encounter")
		return
	}
	g.start(entry)
}

func (g *Game) start(entry encounter.Entry) {
	if !g.battle.Begin(g.save, entry) {
		return
	}
	g.inBattle = true
	g.paused = false
}

// finishBattle writes the result back and whites out a defeated player: the
// party is healed and the walker returns to the spawn point.
func (g *Game) finishBattle() {
	g.inBattle = false
	winner, _ := g.battle.Winner()
	won := g.battle.UpdateData(winner, g.save)
	log.Info().Bool("won", won).Uint32("money", g.save.Money).Strs("badges", g.save.Badges).Msg("battle over")

	if g.save.Party.Ready() {
		return
	}
	for i := range g.save.Party {
		g.save.Party[i].HP = g.save.Party[i].MaxHP
	}
	g.world.Respawn()
	log.Info().Msg("whited out")
}

// drainWatcher applies pending prefab edits between frames. A batch that only
// touches scripts recompiles the damage script and keeps the data.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case batch := <-g.watcher.Events:
			log.Debug().Int("files", len(batch)).Bool("scripts_only", prefabs.ScriptsOnly(batch)).Msg("prefabs changed")
			if prefabs.ScriptsOnly(batch) {
				g.reloadScript()
			} else {
				g.reload()
			}
		case err := <-g.watcher.Errors:
			log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

// reload swaps in freshly loaded prefab data. A load or compile failure keeps
// the previous data.
func (g *Game) reload() {
	data, err := prefabs.LoadAll()
	if err != nil {
		log.Warn().Err(err).Msg("prefab reload failed, keeping previous data")
		return
	}
	script, err := engine.Compile(data.Script)
	if err != nil {
		log.Warn().Err(err).Msg("damage script reload failed, keeping previous data")
		return
	}
	g.data = data
	g.script = script
	g.battle.SetCatalogs(data.Moves.Catalogs())
	g.sounds.Bind(data.Sounds.Clips())
	g.sounds.SetTracks(data.Sounds.Tracks())
	g.configureTrainers()
	log.Info().Msg("prefabs reloaded")
}

func (g *Game) reloadScript() {
	name := g.data.Battle.ScriptName()
	src, err := prefabs.LoadScript(name)
	if err == nil {
		var script *engine.Script
		if script, err = engine.Compile(src); err == nil {
			g.data.Script = src
			g.script = script
			log.Info().Str("script", name).Msg("damage script reloaded")
			return
		}
	}
	log.Warn().Str("script", name).Err(err).Msg("damage script reload failed, keeping previous script")
}

func (g *Game) copyTranscript() {
	g.clipboardOnce.Do(func() {
		g.clipboardErr = clipboard.Init()
	})
	if g.clipboardErr != nil {
		log.Warn().Err(g.clipboardErr).Msg("clipboard unavailable")
		return
	}
	lines := g.battle.Transcript()
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(lines, "\n")))
	log.Debug().Int("lines", len(lines)).Msg("transcript copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if !g.inBattle || g.battle.WorldActive() {
		g.world.Draw(screen)
	}
	if g.inBattle {
		g.battle.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f fps %s", ebiten.ActualFPS(), g.battle.Phase()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
