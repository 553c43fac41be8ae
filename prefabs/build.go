package prefabs

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/milk9111/firebattle/audio"
	"github.com/milk9111/firebattle/encounter"
)

var (
	ErrUnknownTrainer = errors.New("prefabs: unknown trainer")
	ErrUnknownArea    = errors.New("prefabs: unknown area")
)

// Data is every prefab the game needs, loaded together so a reload swaps all
// of it or none of it.
type Data struct {
	Battle     BattleSpec
	Player     PlayerSpec
	Trainers   TrainersSpec
	Encounters EncountersSpec
	Moves      MovesSpec
	Sounds     SoundsSpec
	Script     []byte
}

func LoadAll() (*Data, error) {
	var (
		d   Data
		err error
	)
	if d.Battle, err = LoadSpec[BattleSpec]("battle.yaml"); err != nil {
		return nil, err
	}
	if d.Player, err = LoadSpec[PlayerSpec]("player.yaml"); err != nil {
		return nil, err
	}
	if d.Trainers, err = LoadSpec[TrainersSpec]("trainers.yaml"); err != nil {
		return nil, err
	}
	if d.Encounters, err = LoadSpec[EncountersSpec]("encounters.yaml"); err != nil {
		return nil, err
	}
	if d.Moves, err = LoadSpec[MovesSpec]("moves.yaml"); err != nil {
		return nil, err
	}
	if d.Sounds, err = LoadSpec[SoundsSpec]("sounds.yaml"); err != nil {
		return nil, err
	}

	script := d.Battle.ScriptName()
	if d.Script, err = LoadScript(script); err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", script, err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks cross references between prefab files.
func (d *Data) Validate() error {
	moves, _ := d.Moves.Catalogs()
	var errs []error
	check := func(owner string, party encounter.Party) {
		if len(party) == 0 {
			errs = append(errs, fmt.Errorf("prefabs: %s has an empty party", owner))
		}
		for _, c := range party {
			for _, id := range c.Moves {
				if _, ok := moves[id]; !ok {
					errs = append(errs, fmt.Errorf("prefabs: %s: %s knows unknown move %q", owner, c.Name, id))
				}
			}
		}
	}

	tracks := make(map[string]bool, len(d.Sounds.Music))
	for _, t := range d.Sounds.Music {
		tracks[t.Name] = true
	}

	check("player", d.Player.Party)
	for _, npc := range slices.Sorted(maps.Keys(d.Trainers.Trainers)) {
		t := d.Trainers.Trainers[npc]
		check("trainer "+npc, t.Party)
		if t.Tracking < 0 {
			errs = append(errs, fmt.Errorf("prefabs: trainer %s has negative tracking %d", npc, t.Tracking))
		}
		if t.Music != "" && !tracks[t.Music] {
			errs = append(errs, fmt.Errorf("prefabs: trainer %s plays unknown music %q", npc, t.Music))
		}
		for _, other := range t.Disable {
			if _, ok := d.Trainers.Trainers[other]; !ok {
				errs = append(errs, fmt.Errorf("prefabs: trainer %s disables unknown trainer %q", npc, other))
			}
		}
	}
	for _, area := range slices.Sorted(maps.Keys(d.Encounters.Areas)) {
		for i, slot := range d.Encounters.Areas[area] {
			check(fmt.Sprintf("area %s slot %d", area, i), slot.Party)
		}
	}
	return errors.Join(errs...)
}

// Save builds a fresh save from the starting player data.
func (s PlayerSpec) Save() *encounter.Save {
	bag := make(map[string]int, len(s.Bag))
	maps.Copy(bag, s.Bag)
	return &encounter.Save{
		ID:       encounter.PlayerID,
		Name:     s.Name,
		Party:    s.Party.Clone(),
		Bag:      bag,
		Money:    s.Money,
		Defeated: make(map[string]bool),
	}
}

// Entry builds the encounter for fighting trainer npc.
func (s TrainersSpec) Entry(npc string) (encounter.Entry, error) {
	t, ok := s.Trainers[npc]
	if !ok {
		return encounter.Entry{}, fmt.Errorf("%w: %q", ErrUnknownTrainer, npc)
	}
	kind := encounter.ParseType(t.Type)
	if kind == encounter.Wild {
		kind = encounter.Trainer
	}
	victory := make([][]string, len(t.Victory))
	for i, page := range t.Victory {
		victory[i] = slices.Clone(page)
	}
	return encounter.Entry{
		ID:    encounter.TrainerID(npc),
		Type:  kind,
		Party: t.Party.Clone(),
		Trainer: &encounter.TrainerEntry{
			Name:           t.Name,
			Prefix:         t.Prefix,
			Sprite:         t.Sprite,
			Badge:          t.Badge,
			VictoryMessage: victory,
			Worth:          t.Worth,
			Music:          t.Music,
			Disable:        slices.Clone(t.Disable),
		},
	}, nil
}

// EncounterMessage is a copy of the pages trainer npc says before battling.
func (s TrainersSpec) EncounterMessage(npc string) [][]string {
	t := s.Trainers[npc]
	pages := make([][]string, len(t.EncounterMessage))
	for i, page := range t.EncounterMessage {
		pages[i] = slices.Clone(page)
	}
	return pages
}

// Roll picks a weighted wild encounter for area.
func (s EncountersSpec) Roll(area string, rng *rand.Rand) (encounter.Entry, error) {
	slots := s.Areas[area]
	total := 0
	for _, slot := range slots {
		total += max(slot.Weight, 0)
	}
	if total == 0 {
		return encounter.Entry{}, fmt.Errorf("%w: %q", ErrUnknownArea, area)
	}

	n := rng.IntN(total)
	for _, slot := range slots {
		w := max(slot.Weight, 0)
		if n < w {
			return encounter.Entry{ID: encounter.WildID, Type: encounter.Wild, Party: slot.Party.Clone()}, nil
		}
		n -= w
	}
	panic("prefabs: weighted roll out of range")
}

func (s MovesSpec) Catalogs() (encounter.MoveCatalog, encounter.ItemCatalog) {
	moves := make(encounter.MoveCatalog, len(s.Moves))
	for _, m := range s.Moves {
		moves[m.ID] = m
	}
	items := make(encounter.ItemCatalog, len(s.Items))
	for _, it := range s.Items {
		items[it.ID] = it
	}
	return moves, items
}

// Clips converts sounds.yaml entries. An entry with a species is a variant of
// its name, so "Cry" with species 25 is the cry for species 25.
func (s SoundsSpec) Clips() []audio.Clip {
	clips := make([]audio.Clip, 0, len(s.Sounds))
	for _, a := range s.Sounds {
		sound := audio.Named(a.Name)
		if a.Species > 0 {
			sound = audio.Variant(a.Name, a.Species)
		}
		clips = append(clips, audio.Clip{Sound: sound, File: a.File, Volume: a.Volume})
	}
	return clips
}

// Tracks converts the music table.
func (s SoundsSpec) Tracks() []audio.Track {
	tracks := make([]audio.Track, 0, len(s.Music))
	for _, t := range s.Music {
		tracks = append(tracks, audio.Track{Name: t.Name, File: t.File, Volume: t.Volume})
	}
	return tracks
}
