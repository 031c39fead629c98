package tidewalk

import (
	"math"

	"github.com/tanema/gween/ease"
)

// nudgeDuration is how long a manual one-tile scroll takes, in seconds.
const nudgeDuration = 0.15

// Camera is the viewport into the map. X and Y are the top-left corner in
// map pixels; Width and Height are the window size in screen pixels.
type Camera struct {
	X, Y          float64
	Width, Height float64
	// Zoom is the display scale. The visible map area is Width/Zoom by
	// Height/Zoom pixels.
	Zoom float64
	// Following makes the camera track the player. Manual nudges are ignored
	// while it is set.
	Following bool

	scroll                       *TweenGroup
	scrollTargetX, scrollTargetY float64
}

// newCamera creates a following camera with the given zoom.
func newCamera(zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{Zoom: zoom, Following: true}
}

// SetSize updates the window size in screen pixels.
func (c *Camera) SetSize(w, h int) {
	c.Width = float64(w)
	c.Height = float64(h)
}

// LogicalSize returns the visible map area in map pixels.
func (c *Camera) LogicalSize() Vec2 {
	return Vec2{X: c.Width / c.Zoom, Y: c.Height / c.Zoom}
}

// Origin returns the viewport origin snapped to whole pixels, as used for
// drawing.
func (c *Camera) Origin() Vec2 {
	return Vec2{X: math.Floor(c.X), Y: math.Floor(c.Y)}
}

// DeadZone returns the new origin along one axis for a target at pos. The
// origin is unchanged while pos stays within the middle third of extent;
// otherwise it snaps so pos sits on the third it crossed.
func DeadZone(origin, pos, extent float64) float64 {
	lo := extent / 3
	hi := 2 * extent / 3
	rel := pos - origin
	switch {
	case rel < lo:
		return pos - lo
	case rel > hi:
		return pos - hi
	default:
		return origin
	}
}

// ClampAxis keeps origin within [0, mapSize-viewSize]. Maps smaller than the
// view pin the origin at 0.
func ClampAxis(origin, mapSize, viewSize float64) float64 {
	return math.Max(0, math.Min(origin, mapSize-viewSize))
}

// Track follows target (map pixels) with the dead-zone rule and clamps the
// result to the map. No-op while not following.
func (c *Camera) Track(target, mapSize Vec2) {
	if !c.Following {
		return
	}
	view := c.LogicalSize()
	c.X = ClampAxis(DeadZone(c.X, target.X, view.X), mapSize.X, view.X)
	c.Y = ClampAxis(DeadZone(c.Y, target.Y, view.Y), mapSize.Y, view.Y)
}

// ClampTo clamps the current origin to the map.
func (c *Camera) ClampTo(mapSize Vec2) {
	view := c.LogicalSize()
	c.X = ClampAxis(c.X, mapSize.X, view.X)
	c.Y = ClampAxis(c.Y, mapSize.Y, view.Y)
}

// Nudge scrolls the free camera by whole tiles. It reports false, doing
// nothing, while the camera follows the player.
func (c *Camera) Nudge(dx, dy int, mapSize Vec2) bool {
	if c.Following {
		return false
	}
	view := c.LogicalSize()
	baseX, baseY := c.X, c.Y
	if c.scroll != nil {
		// Chain from where the running scroll was heading.
		baseX, baseY = c.scrollTargetX, c.scrollTargetY
	}
	toX := ClampAxis(baseX+float64(dx*TileSize), mapSize.X, view.X)
	toY := ClampAxis(baseY+float64(dy*TileSize), mapSize.Y, view.Y)
	c.scrollTargetX, c.scrollTargetY = toX, toY
	c.scroll = TweenPair(&c.X, &c.Y, toX, toY, nudgeDuration, ease.OutQuad)
	return true
}

// ToggleFollow switches between following the player and the free camera.
// Any running scroll is dropped.
func (c *Camera) ToggleFollow() {
	c.Following = !c.Following
	c.scroll = nil
}

// Scrolling reports whether a nudge scroll is in progress.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// update advances a running scroll.
func (c *Camera) update(dt float32) {
	if c.scroll == nil {
		return
	}
	c.scroll.Update(dt)
	if c.scroll.Done {
		c.scroll = nil
	}
}
