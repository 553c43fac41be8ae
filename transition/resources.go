package transition

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/audio"
	"github.com/rs/zerolog/log"
)

// SoundPlayer plays a named sound. Implementations return
// audio.ErrUninitialized while no audio backend is available.
type SoundPlayer interface {
	PlaySound(s audio.Sound) error
}

// MusicPlayer loops one background track at a time. The empty name fades to
// silence.
type MusicPlayer interface {
	PlayMusic(track string) error
	CurrentMusic() string
}

// TextureSource resolves sprites. A nil image means the sprite is missing and
// is simply not drawn.
type TextureSource interface {
	Trainer(sprite string) *ebiten.Image
	Species(id int, back bool) *ebiten.Image
	PlayerSheet() *ebiten.Image
}

// Resources is the explicit context the animations draw side effects from.
// Its lifetime is owned by the game loop.
type Resources struct {
	Sounds   SoundPlayer
	Music    MusicPlayer
	Textures TextureSource
}

// PlayMusic switches the background track. Like cries, a track that cannot
// play is logged and otherwise ignored.
func (r *Resources) PlayMusic(track string) {
	if r == nil || r.Music == nil {
		return
	}
	err := r.Music.PlayMusic(track)
	if err == nil {
		return
	}
	if errors.Is(err, audio.ErrUninitialized) {
		log.Debug().Str("component", "transition").Str("track", track).Msg("audio uninitialized, skipping music")
		return
	}
	log.Warn().Str("component", "transition").Str("track", track).Err(err).Msg("could not play music")
}

// CurrentMusic is the track the music player is on, empty without one.
func (r *Resources) CurrentMusic() string {
	if r == nil || r.Music == nil {
		return ""
	}
	return r.Music.CurrentMusic()
}

func (r *Resources) trainer(sprite string) *ebiten.Image {
	if r == nil || r.Textures == nil {
		return nil
	}
	return r.Textures.Trainer(sprite)
}

func (r *Resources) playerSheet() *ebiten.Image {
	if r == nil || r.Textures == nil {
		return nil
	}
	return r.Textures.PlayerSheet()
}

// playCry plays a species cry. Failures are logged and otherwise ignored;
// nothing that completes a phase may depend on a sound.
func (r *Resources) playCry(species int, side string) {
	if r == nil || r.Sounds == nil {
		return
	}
	err := r.Sounds.PlaySound(audio.Cry(species))
	if err == nil {
		return
	}
	if errors.Is(err, audio.ErrUninitialized) {
		log.Debug().Str("component", "transition").Str("side", side).Msg("audio uninitialized, skipping cry")
		return
	}
	log.Warn().Str("component", "transition").Str("side", side).Int("species", species).Err(err).Msg("could not play cry")
}
