package audio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSampleRate = 44100
	maxDecoders       = 4
)

// Loader reads raw asset bytes by path.
type Loader func(path string) ([]byte, error)

type decodedClip struct {
	pcm    []byte
	volume float64
}

// Service plays short sound effects and one looping music track. Clips are
// decoded in the background by Bind; until that finishes every PlaySound
// returns ErrUninitialized. Music is driven from the game loop.
type Service struct {
	ctx        *audio.Context
	sampleRate int
	load       Loader

	mu     sync.RWMutex
	clips  map[Sound]decodedClip
	tracks map[string]Track
	ready  atomic.Bool

	music *Music
}

// NewService creates a sound service. ctx may be nil for a silent service
// (headless runs, tests).
func NewService(ctx *audio.Context, load Loader) *Service {
	rate := DefaultSampleRate
	if ctx != nil {
		rate = ctx.SampleRate()
	}
	s := &Service{
		ctx:        ctx,
		sampleRate: rate,
		load:       load,
		clips:      make(map[Sound]decodedClip),
		tracks:     make(map[string]Track),
	}
	s.music = newMusic(s.openTrack)
	return s
}

// Bind decodes clips on background goroutines. The returned channel is closed
// once every clip was either decoded or skipped. Failed clips are logged; they
// never fail the bind.
func (s *Service) Bind(clips []Clip) <-chan struct{} {
	done := make(chan struct{})
	if s == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		var g errgroup.Group
		g.SetLimit(maxDecoders)
		for _, clip := range clips {
			g.Go(func() error {
				pcm, err := s.decode(clip.File)
				if err != nil {
					log.Warn().Str("component", "audio").Str("sound", clip.Sound.String()).Err(err).Msg("skipping clip")
					return nil
				}
				s.mu.Lock()
				s.clips[clip.Sound] = decodedClip{pcm: pcm, volume: clip.Volume}
				s.mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		s.ready.Store(true)
		log.Debug().Str("component", "audio").Int("clips", s.Len()).Msg("sound bank bound")
	}()

	return done
}

func (s *Service) decode(path string) ([]byte, error) {
	if s.load == nil {
		return nil, fmt.Errorf("audio: no loader for %q", path)
	}
	b, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("audio: load %q: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		// Already-decoded PCM in ebiten's native format.
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(s.sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: read wav %q: %w", path, err)
	}
	return pcm, nil
}

// Ready reports whether Bind has finished.
func (s *Service) Ready() bool {
	return s != nil && s.ready.Load()
}

// Len is the number of decoded clips.
func (s *Service) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clips)
}

// PlaySound starts a new one-shot player for the clip.
func (s *Service) PlaySound(sound Sound) error {
	if s == nil || s.ctx == nil || !s.ready.Load() {
		return ErrUninitialized
	}

	s.mu.RLock()
	clip, ok := s.clips[sound]
	if !ok && sound.HasVariant {
		// A bank may only ship a generic clip for a family of variants.
		clip, ok = s.clips[Named(sound.Name)]
	}
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, sound)
	}

	player := s.ctx.NewPlayerFromBytes(clip.pcm)
	if clip.volume > 0 {
		player.SetVolume(clip.volume)
	}
	player.Play()
	return nil
}

// SetTracks replaces the music table. The playing track keeps playing; every
// other track is decoded again on its next request.
func (s *Service) SetTracks(tracks []Track) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.tracks = make(map[string]Track, len(tracks))
	for _, t := range tracks {
		s.tracks[t.Name] = t
	}
	s.mu.Unlock()

	clear(s.music.volumes)
	for _, t := range tracks {
		s.music.volumes[t.Name] = t.Volume
	}
	s.music.forget()
}

// PlayMusic fades the current track out and loops track after it. The empty
// name fades to silence.
func (s *Service) PlayMusic(track string) error {
	if s == nil || s.ctx == nil {
		return ErrUninitialized
	}
	if track != "" {
		s.mu.RLock()
		_, ok := s.tracks[track]
		s.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTrack, track)
		}
	}
	s.music.Request(track)
	return nil
}

// CurrentMusic is the track playing or about to play.
func (s *Service) CurrentMusic() string {
	if s == nil {
		return ""
	}
	return s.music.Current()
}

// UpdateMusic runs once per game frame.
func (s *Service) UpdateMusic() {
	if s == nil {
		return
	}
	s.music.Update()
}

func (s *Service) openTrack(name string) (loopPlayer, error) {
	if s.ctx == nil {
		return nil, ErrUninitialized
	}
	s.mu.RLock()
	t, ok := s.tracks[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrack, name)
	}
	pcm, err := s.decode(t.File)
	if err != nil {
		return nil, err
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := s.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("audio: music player %q: %w", name, err)
	}
	return player, nil
}
