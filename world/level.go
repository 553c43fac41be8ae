package world

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/levels"
)

const TileSize = 16

var defaultPalette = []string{"#d8c898", "#58a848", "#206030", "#4878d0"}

// Map is the walkable ground layer of a level.
type Map struct {
	Name   string
	Width  int
	Height int
	// Area is the encounter table rolled in tall grass.
	Area string
	// Chance is the per-step wild encounter probability in tall grass.
	Chance float64
	Music  string

	ground  []int
	palette []color.RGBA

	tileImgs []*ebiten.Image
	tuftImg  *ebiten.Image
}

func NewMap(lvl *levels.Level) (*Map, error) {
	if lvl == nil {
		return nil, fmt.Errorf("world: nil level")
	}
	if len(lvl.Ground) != lvl.Width*lvl.Height {
		return nil, fmt.Errorf("world: ground layer has %d tiles, want %d", len(lvl.Ground), lvl.Width*lvl.Height)
	}
	m := &Map{
		Name:   lvl.Name,
		Width:  lvl.Width,
		Height: lvl.Height,
		Area:   lvl.Area,
		Chance: lvl.Chance,
		Music:  lvl.Music,
		ground: append([]int(nil), lvl.Ground...),
	}
	for i, hex := range defaultPalette {
		if i < len(lvl.Palette) {
			hex = lvl.Palette[i]
		}
		m.palette = append(m.palette, parseHexColor(hex))
	}
	return m, nil
}

// TileAt returns the tile value at x,y. Anything off the map reads as a tree.
func (m *Map) TileAt(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return levels.TileTree
	}
	return m.ground[y*m.Width+x]
}

// Blocked reports whether the ground at x,y cannot be walked on.
func (m *Map) Blocked(x, y int) bool {
	switch m.TileAt(x, y) {
	case levels.TileTree, levels.TileWater:
		return true
	}
	return false
}

func (m *Map) Grass(x, y int) bool {
	return m.TileAt(x, y) == levels.TileGrass
}

// PixelSize is the map's size in screen units.
func (m *Map) PixelSize() (int, int) {
	return m.Width * TileSize, m.Height * TileSize
}

func (m *Map) Draw(screen *ebiten.Image, camX, camY float64) {
	if m.tileImgs == nil {
		m.tileImgs = make([]*ebiten.Image, len(m.palette))
		for i, c := range m.palette {
			m.tileImgs[i] = ebiten.NewImage(TileSize, TileSize)
			m.tileImgs[i].Fill(c)
		}
		m.tuftImg = triangleImage(TileSize/2, color.RGBA{R: 0x30, G: 0x80, B: 0x30, A: 0xff})
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.ground[y*m.Width+x]
			if v < 0 || v >= len(m.tileImgs) {
				continue
			}
			px, py := float64(x*TileSize)-camX, float64(y*TileSize)-camY
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(px, py)
			screen.DrawImage(m.tileImgs[v], op)
			if v == levels.TileGrass {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(px+TileSize/4, py+TileSize/2)
				screen.DrawImage(m.tuftImg, op)
			}
		}
	}
}

// triangleImage builds an upward-pointing filled triangle, used for grass
// tufts.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		rowWidth := float64(y) / float64(size-1) * float64(size)
		left, right := cx-rowWidth/2, cx+rowWidth/2
		for x := 0; x < size; x++ {
			if fx := float64(x) + 0.5; fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// parseHexColor parses #rrggbb. A malformed value yields opaque magenta so it
// stands out on the map.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0xff, 0x00, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r, g, b = uint8(ri), uint8(gi), uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
