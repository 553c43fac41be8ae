package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/firebattle/encounter"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BattleSpec is battle.yaml: presentation settings shared by every encounter.
type BattleSpec struct {
	Background YAMLColor `yaml:"background"`
	TextSpeed  float64   `yaml:"text_speed"`
	Script     string    `yaml:"script"`
}

// ScriptName is the damage script to load, damage.tengo unless overridden.
func (s BattleSpec) ScriptName() string {
	if s.Script == "" {
		return "damage.tengo"
	}
	return s.Script
}

// PlayerSpec is player.yaml, the starting save for a new game.
type PlayerSpec struct {
	Name  string          `yaml:"name"`
	Money uint32          `yaml:"money"`
	Bag   map[string]int  `yaml:"bag"`
	Party encounter.Party `yaml:"party"`
}

type TrainerSpec struct {
	Name    string          `yaml:"name"`
	Prefix  string          `yaml:"prefix"`
	Sprite  string          `yaml:"sprite"`
	Badge   string          `yaml:"badge"`
	Worth   uint32          `yaml:"worth"`
	Type    string          `yaml:"type"`
	Music   string          `yaml:"music"`
	Victory [][]string      `yaml:"victory"`
	Party   encounter.Party `yaml:"party"`

	// EncounterMessage is shown in the world before the battle.
	EncounterMessage [][]string `yaml:"encounter_message"`
	// Tracking is the sight range in tiles; zero never spots the player.
	Tracking         int      `yaml:"tracking"`
	BattleOnInteract *bool    `yaml:"battle_on_interact"`
	Disable          []string `yaml:"disable"`
}

// Interacts reports whether talking to the trainer starts the battle. It
// defaults to true.
func (t TrainerSpec) Interacts() bool {
	return t.BattleOnInteract == nil || *t.BattleOnInteract
}

// TrainersSpec is trainers.yaml, keyed by npc id.
type TrainersSpec struct {
	Trainers map[string]TrainerSpec `yaml:"trainers"`
}

// EncounterSpec is one wild encounter slot.
type EncounterSpec struct {
	Weight int             `yaml:"weight"`
	Party  encounter.Party `yaml:"party"`
}

// EncountersSpec is encounters.yaml, keyed by area.
type EncountersSpec struct {
	Areas map[string][]EncounterSpec `yaml:"areas"`
}

type MovesSpec struct {
	Moves []encounter.Move `yaml:"moves"`
	Items []encounter.Item `yaml:"items"`
}

type AudioSpec struct {
	Name    string  `yaml:"name"`
	Species int     `yaml:"species"`
	File    string  `yaml:"file"`
	Volume  float64 `yaml:"volume"`
}

type TrackSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// SoundsSpec is sounds.yaml: one-shot clips and looping music.
type SoundsSpec struct {
	Sounds []AudioSpec `yaml:"sounds"`
	Music  []TrackSpec `yaml:"music"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
