package tidewalk

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPhysicalKeys(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want Key
	}{
		{ebiten.KeyW, KeyMoveUp},
		{ebiten.KeyA, KeyMoveLeft},
		{ebiten.KeyS, KeyMoveDown},
		{ebiten.KeyD, KeyMoveRight},
		{ebiten.KeyArrowLeft, KeyNudgeLeft},
		{ebiten.KeyF, KeyToggleFollow},
	}
	for _, tt := range tests {
		if got, ok := physicalKeys[tt.key]; !ok || got != tt.want {
			t.Errorf("physicalKeys[%v] = (%v,%v), want %v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := physicalKeys[ebiten.KeySpace]; ok {
		t.Error("space should not be bound")
	}
}

func TestGameShellLayout(t *testing.T) {
	s := newTestScene(t)
	g := &gameShell{scene: s}
	w, h := g.Layout(300, 200)
	if w != 300 || h != 200 {
		t.Errorf("Layout = (%d,%d), want (300,200)", w, h)
	}
	if s.Camera().Width != 300 || s.Camera().Height != 200 {
		t.Errorf("camera size = (%v,%v), want (300,200)", s.Camera().Width, s.Camera().Height)
	}
}
