package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

//go:embed sprites sounds
var assetsFS embed.FS

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path. It is the loader
// handed to the sound service.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Textures resolves battle sprites from the embedded sprite tree. Images are
// decoded on first use and cached; a sprite that fails to load is reported
// once and then treated as absent.
type Textures struct {
	mu      sync.Mutex
	cache   map[string]*ebiten.Image
	missing map[string]bool
}

func NewTextures() *Textures {
	return &Textures{
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

func (t *Textures) Trainer(sprite string) *ebiten.Image {
	if sprite == "" {
		return nil
	}
	return t.get(sprite)
}

func (t *Textures) Species(id int, back bool) *ebiten.Image {
	if back {
		return t.get(fmt.Sprintf("sprites/species/%d_back.png", id))
	}
	return t.get(fmt.Sprintf("sprites/species/%d.png", id))
}

func (t *Textures) PlayerSheet() *ebiten.Image {
	return t.get("sprites/player-sheet.png")
}

func (t *Textures) get(path string) *ebiten.Image {
	clean := cleanAssetPath(path)

	t.mu.Lock()
	defer t.mu.Unlock()
	if img, ok := t.cache[clean]; ok {
		return img
	}
	if t.missing[clean] {
		return nil
	}

	img, err := LoadImage(clean)
	if err != nil {
		t.missing[clean] = true
		log.Warn().Str("component", "assets").Str("sprite", clean).Err(err).Msg("sprite unavailable")
		return nil
	}
	t.cache[clean] = img
	return img
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
