package tidewalk

// TileSize is the edge length of a map cell in pixels. Movement offsets,
// camera math and destination rectangles are all expressed against it.
const TileSize = 16

// DefaultZoom is the display scale applied to every draw operation.
const DefaultZoom = 1.5

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Cell is an integer map-cell coordinate.
type Cell struct {
	X, Y int
}

// Pixel returns the top-left pixel position of the cell.
func (c Cell) Pixel() Vec2 {
	return Vec2{X: float64(c.X * TileSize), Y: float64(c.Y * TileSize)}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Source rectangles may carry a
// negative Width to mirror the sampled region horizontally.
type Rect struct {
	X, Y, Width, Height float64
}

// Flipped reports whether the rectangle samples its region mirrored.
func (r Rect) Flipped() bool {
	return r.Width < 0
}

// Normalize returns the rectangle with a non-negative width and height,
// covering the same region.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Direction is a facing. The ordinal values are fixed.
type Direction uint8

const (
	DirDown  Direction = iota // facing the camera
	DirRight                  // facing screen right
	DirUp                     // facing away from the camera
	DirLeft                   // facing screen left
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Key identifies a logical input key. The host maps physical keys to these.
type Key uint8

const (
	KeyMoveUp       Key = iota // W
	KeyMoveDown                // S
	KeyMoveLeft                // A
	KeyMoveRight               // D
	KeyNudgeUp                 // arrow up, free camera only
	KeyNudgeDown               // arrow down, free camera only
	KeyNudgeLeft               // arrow left, free camera only
	KeyNudgeRight              // arrow right, free camera only
	KeyToggleFollow            // F
)

var keyNames = map[string]Key{
	"up":          KeyMoveUp,
	"down":        KeyMoveDown,
	"left":        KeyMoveLeft,
	"right":       KeyMoveRight,
	"nudge-up":    KeyNudgeUp,
	"nudge-down":  KeyNudgeDown,
	"nudge-left":  KeyNudgeLeft,
	"nudge-right": KeyNudgeRight,
	"follow":      KeyToggleFollow,
}

// ParseKey resolves a key name as used in test scripts ("up", "nudge-left",
// "follow", ...).
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}
