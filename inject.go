package tidewalk

// keyEvent is a single injected key edge.
type keyEvent struct {
	key     Key
	pressed bool
}

// InjectPress queues a key press. Queued events are consumed one per frame
// at the start of Update, ahead of the input state.
func (s *Scene) InjectPress(k Key) {
	s.injectQueue = append(s.injectQueue, keyEvent{key: k, pressed: true})
}

// InjectRelease queues a key release.
func (s *Scene) InjectRelease(k Key) {
	s.injectQueue = append(s.injectQueue, keyEvent{key: k, pressed: false})
}

// InjectTap is a convenience that queues a press followed by a release.
// Consumes two frames.
func (s *Scene) InjectTap(k Key) {
	s.InjectPress(k)
	s.InjectRelease(k)
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.pressed {
		s.KeyDown(evt.key)
	} else {
		s.KeyUp(evt.key)
	}
	return true
}
