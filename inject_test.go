package tidewalk

import "testing"

func TestInjectPressRelease(t *testing.T) {
	s := newTestScene(t)
	s.InjectPress(KeyMoveUp)
	s.InjectRelease(KeyMoveUp)
	if len(s.injectQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(s.injectQueue))
	}

	s.Update(0.016)
	if !s.input.Held(KeyMoveUp) {
		t.Error("press not applied on first frame")
	}
	if s.Player().Facing != DirUp {
		t.Errorf("facing = %v, want up", s.Player().Facing)
	}

	s.Update(0.016)
	if s.input.Held(KeyMoveUp) {
		t.Error("release not applied on second frame")
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue not drained: %d left", len(s.injectQueue))
	}
}

func TestInjectTapNudge(t *testing.T) {
	s := newTestScene(t)
	s.SetViewportSize(240, 240)
	s.InjectTap(KeyToggleFollow)
	s.Update(0.016)
	s.Update(0.016)
	if s.Camera().Following {
		t.Error("follow tap did not free the camera")
	}
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	s := newTestScene(t)
	if s.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
}
