package audio

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPlaySoundUninitialized(t *testing.T) {
	cases := []struct {
		name string
		svc  *Service
	}{
		{"nil_service", nil},
		{"no_context", NewService(nil, nil)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.svc.PlaySound(Cry(16))
			if !errors.Is(err, ErrUninitialized) {
				t.Fatalf("expected ErrUninitialized, got %v", err)
			}
		})
	}
}

func TestBindSkipsBrokenClips(t *testing.T) {
	var loads atomic.Int32
	svc := NewService(nil, func(path string) ([]byte, error) {
		loads.Add(1)
		if path == "missing.wav" {
			return nil, errors.New("not found")
		}
		return []byte{0, 0, 0, 0}, nil
	})

	<-svc.Bind([]Clip{
		{Sound: Cry(1), File: "missing.wav"},
		{Sound: Named("Click"), File: "click.pcm"},
	})

	if !svc.Ready() {
		t.Fatalf("bind should mark the service ready even when a clip fails")
	}
	if svc.Len() != 1 {
		t.Fatalf("expected 1 decoded clip, got %d", svc.Len())
	}
	if loads.Load() != 2 {
		t.Fatalf("expected 2 loads, got %d", loads.Load())
	}
	if err := svc.PlaySound(Named("Click")); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("a service without a context stays silent, got %v", err)
	}
}

func TestSoundString(t *testing.T) {
	if got := Cry(25).String(); got != "Cry#25" {
		t.Fatalf("unexpected cry name %q", got)
	}
	if got := Named("Click").String(); got != "Click" {
		t.Fatalf("unexpected name %q", got)
	}
}
