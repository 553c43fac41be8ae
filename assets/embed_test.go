package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"sprites/trainers/leader.png", "sprites/trainers/leader.png"},
		{"assets/sounds/cry.wav", "sounds/cry.wav"},
		{"/home/dev/firebattle/assets/sprites/player-sheet.png", "sprites/player-sheet.png"},
		{"/tmp/elsewhere/cry.wav", "cry.wav"},
	}
	for _, tt := range tests {
		if got := cleanAssetPath(tt.in); got != tt.want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	b, err := LoadFile("assets/sounds/cry.wav")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b) < 12 || string(b[:4]) != "RIFF" {
		t.Fatalf("cry.wav is not a wav file")
	}
}

func TestMissingSpriteIsNil(t *testing.T) {
	tex := NewTextures()
	if img := tex.Trainer("sprites/trainers/nobody.png"); img != nil {
		t.Fatalf("expected nil for a missing sprite")
	}
	if !tex.missing["sprites/trainers/nobody.png"] {
		t.Fatalf("missing sprite should be remembered")
	}
	if img := tex.Trainer(""); img != nil {
		t.Fatalf("an empty sprite name is no sprite")
	}
}
