package tidewalk

import "fmt"

// DefaultSpeed is the walking speed in pixels per second.
const DefaultSpeed = 100.0

const (
	// offsetLimit is how far the sub-tile offset may go from the cell center
	// before the position moves to the neighbouring cell.
	offsetLimit = TileSize / 2
	// blockedOffset pins a blocked crossing just inside the cell.
	blockedOffset = 7.99
)

// CollisionProbe vetoes moving into a cell.
type CollisionProbe interface {
	// Blocked reports whether the player may not enter target.
	Blocked(target Cell) bool
}

// ObstructionLayer answers collision queries from a map's obstruction layer.
// A cell is blocked when the obstruction layer has a tile under the player's
// feet there (one row below the target) or when the cell lies outside the
// map.
type ObstructionLayer struct {
	cells         map[Cell]struct{}
	width, height int
}

// NewObstructionLayer indexes the layer with the given id. A map without
// one is a configuration error.
func NewObstructionLayer(m *Map, id string) (*ObstructionLayer, error) {
	l, ok := m.Layer(id)
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", id, ErrNoObstructionLayer)
	}
	o := &ObstructionLayer{cells: make(map[Cell]struct{}, len(l.Tiles))}
	o.width, o.height = m.Size()
	for _, t := range l.Tiles {
		o.cells[t.Cell()] = struct{}{}
	}
	return o, nil
}

// Blocked implements CollisionProbe.
func (o *ObstructionLayer) Blocked(target Cell) bool {
	if !o.inBounds(target) {
		return true
	}
	_, hit := o.cells[Cell{X: target.X, Y: target.Y + 1}]
	return hit
}

func (o *ObstructionLayer) inBounds(c Cell) bool {
	if o.width <= 0 || o.height <= 0 {
		return true
	}
	return c.X >= 0 && c.Y >= 0 && c.X < o.width && c.Y < o.height
}

// AxisDelta returns the signed displacement along one axis for a frame of dt
// seconds. neg is the left/up key, pos the right/down key. Holding both, or
// neither, yields zero.
func AxisDelta(neg, pos bool, speed, dt float64) float64 {
	switch {
	case neg && !pos:
		return -speed * dt
	case pos && !neg:
		return speed * dt
	default:
		return 0
	}
}

// Position is a cell plus a sub-tile pixel offset.
type Position struct {
	Cell   Cell
	Offset Vec2
}

// Move applies dx and dy to pos. An axis whose candidate offset passes ±8 px
// crosses into the neighbouring cell. The crossings of both axes form one
// adjusted target cell, and the probe is asked about it once. Unblocked, each
// crossing axis wraps its offset to the opposite edge and steps the cell.
// Blocked, each crossing axis pins its offset at ±7.99 and keeps the cell.
//
// The offset normally stays in [-8, 8). Landing exactly on +8 does not cross,
// so +8 is the one reachable value outside that range.
func Move(pos Position, dx, dy float64, probe CollisionProbe) Position {
	candX, candY := pos.Offset.X+dx, pos.Offset.Y+dy
	stepX, stepY := crossing(candX, dx), crossing(candY, dy)
	if stepX == 0 && stepY == 0 {
		pos.Offset = Vec2{X: candX, Y: candY}
		return pos
	}
	blocked := probe.Blocked(Cell{X: pos.Cell.X + stepX, Y: pos.Cell.Y + stepY})
	pos.Cell.X, pos.Offset.X = resolveAxis(pos.Cell.X, candX, stepX, blocked)
	pos.Cell.Y, pos.Offset.Y = resolveAxis(pos.Cell.Y, candY, stepY, blocked)
	return pos
}

// crossing returns the cell step a candidate offset implies: +1 past +8 while
// moving forward, -1 past -8 while moving back, else 0.
func crossing(candidate, delta float64) int {
	switch {
	case delta > 0 && candidate > offsetLimit:
		return 1
	case delta < 0 && candidate < -offsetLimit:
		return -1
	}
	return 0
}

// resolveAxis applies the clamp-or-commit rule to one axis.
func resolveAxis(cell int, candidate float64, step int, blocked bool) (int, float64) {
	switch {
	case step == 0:
		return cell, candidate
	case blocked && step > 0:
		return cell, blockedOffset
	case blocked:
		return cell, -blockedOffset
	case step > 0:
		return cell + 1, -offsetLimit
	default:
		return cell - 1, offsetLimit
	}
}
