// Package world is the overworld shown around battles: a tile map, the player
// walking on it, and the trainers standing on it.
package world

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/gfx"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/levels"
	"github.com/milk9111/firebattle/text"
	"github.com/rs/zerolog/log"
)

// DefaultSight is how many tiles a trainer sees along its facing until it is
// configured otherwise.
const DefaultSight = 4

type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerWild
	TriggerTrainer
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerWild:
		return "wild"
	case TriggerTrainer:
		return "trainer"
	}
	return "none"
}

// Trigger is an encounter the world asks the game to start.
type Trigger struct {
	Kind TriggerKind
	// NPC is the trainer id for TriggerTrainer.
	NPC string
}

// Challenge is how a trainer npc engages the player.
type Challenge struct {
	// Sight is how many tiles the trainer sees along its facing. Zero means
	// the trainer never spots the player and has to be talked to.
	Sight int
	// BattleOnInteract starts the battle when the player talks to the
	// trainer. Without it talking only shows Message.
	BattleOnInteract bool
	// Message is shown in the world before the battle starts, one slice of
	// lines per page.
	Message [][]string
}

type NPC struct {
	ID     string
	X, Y   int
	Facing Direction
	Challenge
}

type World struct {
	Map    *Map
	Walker *Walker
	NPCs   []NPC

	// Defeated reports trainers that no longer challenge the player.
	Defeated func(npc string) bool

	spawnX, spawnY int
	rng            *rand.Rand

	talk       *text.MessageBox
	talker     string
	talkBattle bool
}

func New(lvl *levels.Level, seed uint64) (*World, error) {
	m, err := NewMap(lvl)
	if err != nil {
		return nil, err
	}
	w := &World{
		Map:    m,
		spawnX: 1,
		spawnY: 1,
		rng:    rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
		talk:   text.NewMessageBox(),
	}
	for _, e := range lvl.Entities {
		switch e.Type {
		case "spawn":
			w.spawnX, w.spawnY = e.X, e.Y
		case "trainer":
			npc := e.Props["npc"]
			if npc == "" {
				return nil, fmt.Errorf("world: trainer at %d,%d has no npc prop", e.X, e.Y)
			}
			sight := DefaultSight
			if v, ok := e.Props["sight"]; ok {
				if sight, err = strconv.Atoi(v); err != nil || sight < 0 {
					return nil, fmt.Errorf("world: trainer %s has a bad sight %q", npc, v)
				}
			}
			w.NPCs = append(w.NPCs, NPC{
				ID:        npc,
				X:         e.X,
				Y:         e.Y,
				Facing:    ParseDirection(e.Props["facing"]),
				Challenge: Challenge{Sight: sight, BattleOnInteract: true},
			})
		default:
			log.Warn().Str("component", "world").Str("type", e.Type).Msg("unknown entity type")
		}
	}
	w.Walker = NewWalker(w.spawnX, w.spawnY)
	return w, nil
}

// Load builds a world from an embedded level.
func Load(name string, seed uint64) (*World, error) {
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, fmt.Errorf("world: load %s: %w", name, err)
	}
	return New(lvl, seed)
}

// Respawn puts the walker back at the level's spawn, facing down.
func (w *World) Respawn() {
	w.Walker.Place(w.spawnX, w.spawnY)
	w.Walker.Facing = Down
}

// Configure replaces how trainer id challenges the player. It reports false
// when no such npc stands on the map.
func (w *World) Configure(id string, c Challenge) bool {
	for i := range w.NPCs {
		if w.NPCs[i].ID == id {
			w.NPCs[i].Challenge = c
			return true
		}
	}
	return false
}

// Talking reports whether a trainer's message is on screen.
func (w *World) Talking() bool {
	return w.talk.Alive()
}

func (w *World) Blocked(x, y int) bool {
	if w.Map.Blocked(x, y) {
		return true
	}
	_, ok := w.npcAt(x, y)
	return ok
}

func (w *World) npcAt(x, y int) (NPC, bool) {
	for _, n := range w.NPCs {
		if n.X == x && n.Y == y {
			return n, true
		}
	}
	return NPC{}, false
}

func (w *World) defeated(npc string) bool {
	return w.Defeated != nil && w.Defeated(npc)
}

// Update moves the walker and reports an encounter if one starts this frame.
// While a trainer's message is shown the walker stands still and the battle
// is reported once the last page is dismissed.
func (w *World) Update(in *input.Input, delta float64) Trigger {
	if in == nil {
		in = &input.Input{}
	}
	if w.talk.Alive() {
		return w.updateTalk(in, delta)
	}
	if in.ConfirmPressed && !w.Walker.Walking() {
		if n, ok := w.npcAt(w.Walker.Front()); ok {
			return w.interact(n)
		}
	}

	if !w.Walker.Update(in, delta, w.Blocked) {
		return Trigger{}
	}
	if n, ok := w.spotted(); ok {
		return w.challenge(n)
	}
	if w.Map.Grass(w.Walker.X, w.Walker.Y) && w.Map.Area != "" && w.rng.Float64() < w.Map.Chance {
		return Trigger{Kind: TriggerWild}
	}
	return Trigger{}
}

// Simulate advances the walker without player input and never starts an
// encounter. It runs while the world shows behind a battle.
func (w *World) Simulate(delta float64) {
	w.Walker.Update(&input.Input{}, delta, w.Blocked)
}

func (w *World) interact(n NPC) Trigger {
	if w.defeated(n.ID) {
		log.Debug().Str("component", "world").Str("npc", n.ID).Msg("trainer already defeated")
		return Trigger{}
	}
	if !n.BattleOnInteract {
		if len(n.Message) > 0 {
			w.say(n, false)
		}
		return Trigger{}
	}
	return w.challenge(n)
}

// challenge starts the battle with n, after its message when it has one.
func (w *World) challenge(n NPC) Trigger {
	if len(n.Message) == 0 {
		return Trigger{Kind: TriggerTrainer, NPC: n.ID}
	}
	w.say(n, true)
	return Trigger{}
}

func (w *World) say(n NPC, battle bool) {
	w.talk.Clear()
	for _, page := range n.Message {
		w.talk.Push(text.Lines(page...))
	}
	w.talk.Spawn()
	w.talker = n.ID
	w.talkBattle = battle
	log.Debug().Str("component", "world").Str("npc", n.ID).Bool("battle", battle).Msg("trainer speaks")
}

func (w *World) updateTalk(in *input.Input, delta float64) Trigger {
	w.talk.Update(in, delta)
	if !w.talk.Finished() {
		return Trigger{}
	}
	w.talk.Despawn()
	if !w.talkBattle {
		return Trigger{}
	}
	return Trigger{Kind: TriggerTrainer, NPC: w.talker}
}

// spotted returns an undefeated trainer with a clear line of sight to the
// walker.
func (w *World) spotted() (NPC, bool) {
	for _, n := range w.NPCs {
		if w.defeated(n.ID) {
			continue
		}
		dx, dy := n.Facing.Delta()
		x, y := n.X, n.Y
		for range n.Sight {
			x, y = x+dx, y+dy
			if x == w.Walker.X && y == w.Walker.Y {
				return n, true
			}
			if w.Map.Blocked(x, y) {
				break
			}
		}
	}
	return NPC{}, false
}

// Camera returns the top-left of the view, centred on the walker and clamped
// to the map.
func (w *World) Camera() (float64, float64) {
	px, py := w.Walker.Position()
	mw, mh := w.Map.PixelSize()
	cx := clamp(px+TileSize/2-common.BaseWidth/2, 0, float64(mw-common.BaseWidth))
	cy := clamp(py+TileSize/2-common.BaseHeight/2, 0, float64(mh-common.BaseHeight))
	return cx, cy
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

var (
	npcColor      = color.NRGBA{R: 0x30, G: 0x48, B: 0xa8, A: 0xff}
	defeatedColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x90, A: 0xff}
	walkerColor   = color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	noseColor     = color.NRGBA{R: 0xf8, G: 0xf8, B: 0xf8, A: 0xff}
)

func (w *World) Draw(screen *ebiten.Image) {
	camX, camY := w.Camera()
	w.Map.Draw(screen, camX, camY)
	for _, n := range w.NPCs {
		c := npcColor
		if w.defeated(n.ID) {
			c = defeatedColor
		}
		drawFigure(screen, float64(n.X*TileSize)-camX, float64(n.Y*TileSize)-camY, n.Facing, c)
	}
	px, py := w.Walker.Position()
	drawFigure(screen, px-camX, py-camY, w.Walker.Facing, walkerColor)
	if w.talk.Alive() {
		w.talk.Draw(screen)
	}
}

func drawFigure(screen *ebiten.Image, x, y float64, facing Direction, c color.Color) {
	gfx.FillRect(screen, x+3, y+2, TileSize-6, TileSize-3, c)
	dx, dy := facing.Delta()
	gfx.FillRect(screen, x+TileSize/2-1+float64(dx*4), y+TileSize/2-1+float64(dy*4), 2, 2, noseColor)
}
