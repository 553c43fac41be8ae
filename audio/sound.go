package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitialized is returned while no audio context is bound or the
	// clip bank is still loading. Callers treat it as silence.
	ErrUninitialized = errors.New("audio: uninitialized")
	// ErrUnknownSound is returned for a sound that was never registered.
	ErrUnknownSound = errors.New("audio: unknown sound")
	// ErrUnknownTrack is returned for music that is not in the track table.
	ErrUnknownTrack = errors.New("audio: unknown track")
)

// Sound names a clip, optionally narrowed to a variant such as a species id
// for cries.
type Sound struct {
	Name       string
	Variant    int
	HasVariant bool
}

func Named(name string) Sound {
	return Sound{Name: name}
}

func Variant(name string, id int) Sound {
	return Sound{Name: name, Variant: id, HasVariant: true}
}

func (s Sound) String() string {
	if s.HasVariant {
		return fmt.Sprintf("%s#%d", s.Name, s.Variant)
	}
	return s.Name
}

// Cry is the sound a species makes when it enters battle.
func Cry(species int) Sound {
	return Variant("Cry", species)
}

// Clip binds a sound to an asset file.
type Clip struct {
	Sound  Sound
	File   string
	Volume float64
}
