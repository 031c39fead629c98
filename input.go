package tidewalk

// InputState tracks the four movement keys and whether the facing needs to
// be recomputed.
type InputState struct {
	up, down, left, right bool
	dirty                 bool
}

// Press marks a movement key held. Pressing an already held key is not an
// edge. It reports whether k is a movement key.
func (in *InputState) Press(k Key) bool {
	return in.set(k, true)
}

// Release marks a movement key released.
func (in *InputState) Release(k Key) bool {
	return in.set(k, false)
}

func (in *InputState) set(k Key, held bool) bool {
	var flag *bool
	switch k {
	case KeyMoveUp:
		flag = &in.up
	case KeyMoveDown:
		flag = &in.down
	case KeyMoveLeft:
		flag = &in.left
	case KeyMoveRight:
		flag = &in.right
	default:
		return false
	}
	if *flag != held {
		*flag = held
		in.dirty = true
	}
	return true
}

// Held reports whether movement key k is down.
func (in *InputState) Held(k Key) bool {
	switch k {
	case KeyMoveUp:
		return in.up
	case KeyMoveDown:
		return in.down
	case KeyMoveLeft:
		return in.left
	case KeyMoveRight:
		return in.right
	default:
		return false
	}
}

// Any reports whether any movement key is down.
func (in *InputState) Any() bool {
	return in.up || in.down || in.left || in.right
}

// Facing returns the direction the held keys select. Keys are evaluated Up,
// Down, Left, Right and each held key overwrites the result, so Right wins
// every tie and Up loses every tie. With nothing held current is returned
// along with false.
func (in *InputState) Facing(current Direction) (Direction, bool) {
	if !in.Any() {
		return current, false
	}
	d := current
	if in.up {
		d = DirUp
	}
	if in.down {
		d = DirDown
	}
	if in.left {
		d = DirLeft
	}
	if in.right {
		d = DirRight
	}
	return d, true
}

// Settle runs the pending facing recomputation, if any. With a movement key
// held the player turns and the walk clock restarts at now; with none held
// the facing is kept and the clock stops. It reports whether anything ran.
func (in *InputState) Settle(p *Player, now int64) bool {
	if !in.dirty {
		return false
	}
	in.dirty = false
	if d, held := in.Facing(p.Facing); held {
		p.Facing = d
		p.Clock.Start(now)
	} else {
		p.Clock.Stop()
	}
	return true
}

// Deltas returns the per-axis displacement for a frame of dt seconds.
func (in *InputState) Deltas(speed, dt float64) (dx, dy float64) {
	return AxisDelta(in.left, in.right, speed, dt), AxisDelta(in.up, in.down, speed, dt)
}
