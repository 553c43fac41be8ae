package gui

import "testing"

func TestActiveRendererOffset(t *testing.T) {
	r := NewActiveRenderer(SidePlayer)
	if r.Offset(10) {
		t.Fatalf("an unspawned renderer must never report its panel in place")
	}

	r.Spawn()
	if r.Offset(0.25) {
		t.Fatalf("panel should still be sliding after a quarter second")
	}
	if got := r.PanelOffset(); got != panelSlide-panelSpeed*0.25 {
		t.Fatalf("unexpected panel offset %v", got)
	}
	if !r.Offset(1) {
		t.Fatalf("panel should be in place after a full second")
	}

	r.Reset()
	if r.Alive() || r.PanelOffset() != panelSlide {
		t.Fatalf("reset should despawn and rewind the panel")
	}
}

func TestBattleGuiReset(t *testing.T) {
	g := NewBattleGui(nil)
	g.Opponent.Spawn()
	g.Player.Spawn()
	g.Text.Spawn()

	g.Reset()
	if g.Opponent.Alive() || g.Player.Alive() || g.Text.Alive() {
		t.Fatalf("reset should clear every renderer and the text box")
	}
}
