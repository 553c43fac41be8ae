package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile values used in the ground layer.
const (
	TilePath  = 0
	TileGrass = 1
	TileTree  = 2
	TileWater = 3
)

type Level struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Ground is a flat row-major array of Width*Height tile values.
	Ground []int `json:"ground"`
	// Area names the encounters.yaml table rolled in tall grass.
	Area     string   `json:"area"`
	Palette  []string `json:"palette,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
	// Chance is the per-step wild encounter probability in tall grass.
	Chance float64 `json:"encounter_chance,omitempty"`
	// Music is the sounds.yaml track looped while walking here.
	Music string `json:"music,omitempty"`
}

type Entity struct {
	Type  string            `json:"type"`
	X     int               `json:"x"`
	Y     int               `json:"y"`
	Props map[string]string `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	if len(lvl.Ground) != lvl.Width*lvl.Height {
		return nil, fmt.Errorf("ground layer has %d tiles, want %d", len(lvl.Ground), lvl.Width*lvl.Height)
	}
	return &lvl, nil
}
