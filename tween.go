package tidewalk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields simultaneously. Call Update(dt)
// each frame; values are written straight into the fields.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPair creates a TweenGroup that moves *x and *y to (toX, toY) over
// duration seconds using the easing function.
func TweenPair(x, y *float64, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(*x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(*y), float32(toY), duration, fn)
	g.fields[0] = x
	g.fields[1] = y
	return g
}
