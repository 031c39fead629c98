package tidewalk

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPair(t *testing.T) {
	x, y := 0.0, 5.0
	g := TweenPair(&x, &y, 10, -5, 1.0, ease.Linear)

	g.Update(0.5)
	if !approxEqual(x, 5, 1e-4) || !approxEqual(y, 0, 1e-4) {
		t.Errorf("halfway = (%v,%v), want (5,0)", x, y)
	}
	if g.Done {
		t.Error("Done before duration elapsed")
	}

	g.Update(0.5)
	if !g.Done {
		t.Error("Done = false after duration")
	}
	if !approxEqual(x, 10, 1e-4) || !approxEqual(y, -5, 1e-4) {
		t.Errorf("end = (%v,%v), want (10,-5)", x, y)
	}

	// Updates after completion leave the fields alone.
	x = 42
	g.Update(0.5)
	if x != 42 {
		t.Errorf("finished group wrote x = %v", x)
	}
}
