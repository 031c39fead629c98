package tidewalk

// Default walk-cycle timing.
const (
	DefaultFramePeriod = 150 // milliseconds per walk frame
	DefaultWalkFrames  = 3
)

// FrameOffset maps elapsed milliseconds onto a zero-based frame of a looping
// animation with the given period and frame count. Non-positive periods or
// counts yield frame 0.
func FrameOffset(elapsed int64, periodMs, count int) int {
	if periodMs <= 0 || count <= 0 || elapsed < 0 {
		return 0
	}
	return int(elapsed / int64(periodMs) % int64(count))
}

// Ticker accumulates elapsed milliseconds. It only moves forward.
type Ticker struct {
	ticks int64
}

// Advance adds dt seconds, truncated to whole milliseconds, and returns the
// new tick count. Negative dt is ignored.
func (t *Ticker) Advance(dt float64) int64 {
	if ms := int64(dt * 1000); ms > 0 {
		t.ticks += ms
	}
	return t.ticks
}

// Now returns the current tick count.
func (t *Ticker) Now() int64 {
	return t.ticks
}

// AnimationClock remembers when the current motion began. While stopped
// every frame query returns 0 (the idle pose).
type AnimationClock struct {
	start   int64
	running bool
}

// Start (re)starts the clock at tick now.
func (c *AnimationClock) Start(now int64) {
	c.start = now
	c.running = true
}

// Stop clears the motion start.
func (c *AnimationClock) Stop() {
	c.running = false
	c.start = 0
}

// Running reports whether a motion is in progress.
func (c *AnimationClock) Running() bool {
	return c.running
}

// Elapsed returns the milliseconds since Start, or 0 while stopped.
func (c *AnimationClock) Elapsed(now int64) int64 {
	if !c.running {
		return 0
	}
	return now - c.start
}

// Frame returns the walk-cycle frame for tick now.
func (c *AnimationClock) Frame(now int64, periodMs, count int) int {
	if !c.running {
		return 0
	}
	return FrameOffset(now-c.start, periodMs, count)
}
