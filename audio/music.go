package audio

import (
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

// Track names the battle screens ask for.
const (
	MusicBattleWild    = "battle_wild"
	MusicBattleTrainer = "battle_trainer"
	MusicBattleGym     = "battle_gym"
)

// Track binds a music name to a looping asset file.
type Track struct {
	Name   string
	File   string
	Volume float64
}

// loopPlayer is the part of *audio.Player the music state drives.
type loopPlayer interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// Music keeps at most one track audible. Requesting another track fades the
// current one out over FadeFrames updates, then starts the new one.
type Music struct {
	FadeFrames int

	open    func(track string) (loopPlayer, error)
	volumes map[string]float64
	players map[string]loopPlayer

	current       string
	currentVolume float64

	pending       string
	pendingActive bool
	fadeStep      float64
}

func newMusic(open func(track string) (loopPlayer, error)) *Music {
	return &Music{
		FadeFrames: defaultMusicFadeFrames,
		open:       open,
		volumes:    make(map[string]float64),
		players:    make(map[string]loopPlayer),
	}
}

// Request queues track. The empty name fades to silence.
func (m *Music) Request(track string) {
	track = strings.TrimSpace(track)

	cur := m.currentPlayer()
	if !m.pendingActive && track == m.current && cur != nil {
		if !cur.IsPlaying() {
			m.restart(cur)
		}
		return
	}

	m.pending = track
	m.pendingActive = true
	if cur == nil {
		m.switchToPending()
		return
	}

	frames := m.FadeFrames
	if frames <= 0 {
		frames = defaultMusicFadeFrames
	}
	m.fadeStep = m.currentVolume / float64(frames)
	if m.fadeStep <= 0 {
		m.fadeStep = 1
	}
}

// Current is the track playing, or the one that will once a fade completes.
func (m *Music) Current() string {
	if m.pendingActive {
		return m.pending
	}
	return m.current
}

// Update advances a running fade by one frame.
func (m *Music) Update() {
	if m.pendingActive {
		m.fade()
		return
	}
	if cur := m.currentPlayer(); cur != nil && !cur.IsPlaying() {
		m.restart(cur)
	}
}

func (m *Music) fade() {
	cur := m.currentPlayer()
	if cur == nil {
		m.switchToPending()
		return
	}

	m.currentVolume -= m.fadeStep
	if m.currentVolume > 0 {
		cur.SetVolume(m.currentVolume)
		return
	}

	cur.SetVolume(0)
	cur.Pause()
	if err := cur.Rewind(); err != nil {
		log.Warn().Str("component", "music").Str("track", m.current).Err(err).Msg("could not rewind")
	}
	m.switchToPending()
}

func (m *Music) switchToPending() {
	track := m.pending
	m.pending = ""
	m.pendingActive = false
	m.fadeStep = 0
	m.current = ""
	m.currentVolume = 0
	if track == "" {
		return
	}

	p, err := m.playerFor(track)
	if err != nil {
		log.Warn().Str("component", "music").Str("track", track).Err(err).Msg("could not start track")
		return
	}
	volume := m.volumes[track]
	if volume <= 0 {
		volume = defaultMusicVolume
	}
	m.current = track
	m.currentVolume = min(volume, 1)
	m.restart(p)
	log.Debug().Str("component", "music").Str("track", track).Msg("playing")
}

func (m *Music) restart(p loopPlayer) {
	if err := p.Rewind(); err != nil {
		log.Warn().Str("component", "music").Str("track", m.current).Err(err).Msg("could not rewind")
	}
	p.SetVolume(m.currentVolume)
	p.Play()
}

func (m *Music) currentPlayer() loopPlayer {
	if m.current == "" {
		return nil
	}
	return m.players[m.current]
}

func (m *Music) playerFor(track string) (loopPlayer, error) {
	if p, ok := m.players[track]; ok && p != nil {
		return p, nil
	}
	p, err := m.open(track)
	if err != nil {
		return nil, err
	}
	m.players[track] = p
	return p, nil
}

// forget drops cached players for every track but the current one, so edited
// track files are decoded again on their next request.
func (m *Music) forget() {
	for name := range m.players {
		if name != m.current {
			delete(m.players, name)
		}
	}
}
