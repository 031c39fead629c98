package tidewalk

import (
	"errors"
	"fmt"
)

// Well-known layer ids.
const (
	DefaultObstructionLayer = "Buildings"
	DefaultPathsLayer       = "Paths"
)

// Construction errors. NewScene wraps these with context.
var (
	ErrMissingTileSheet     = errors.New("tile sheet not found")
	ErrMissingTexture       = errors.New("texture not found")
	ErrNoObstructionLayer   = errors.New("obstruction layer not found")
	ErrBadDirectionCode     = errors.New("direction code out of range")
	ErrUnknownCharacter     = errors.New("character not in catalog")
	errEmptyMap             = errors.New("map has no layers")
	errInvalidSheetGeometry = errors.New("tile sheet geometry must be positive")
)

// TileSheet is a sprite sheet plus its per-tile grid geometry.
type TileSheet struct {
	ID          string // identity referenced by tiles and the texture source
	ImageSource string // image name the asset collaborator decoded
	TileWidth   int
	TileHeight  int
	Columns     int
	Rows        int
}

// AnimFrame is one frame of an animated tile.
type AnimFrame struct {
	Index    int // sheet index for this frame
	Duration int // milliseconds
}

// Tile places one sheet frame at a map cell. Tiles with Frames animate and
// ignore Index.
type Tile struct {
	Sheet  string
	Index  int
	X, Y   int
	Frames []AnimFrame
}

// Cell returns the tile's map cell.
func (t Tile) Cell() Cell {
	return Cell{X: t.X, Y: t.Y}
}

// IndexAt returns the sheet index to draw at the given tick count.
func (t Tile) IndexAt(ticks int64) int {
	if len(t.Frames) == 0 {
		return t.Index
	}
	total := 0
	for _, f := range t.Frames {
		total += f.Duration
	}
	if total <= 0 {
		return t.Frames[0].Index
	}
	elapsed := int(ticks % int64(total))
	acc := 0
	for _, f := range t.Frames {
		acc += f.Duration
		if elapsed < acc {
			return f.Index
		}
	}
	return t.Frames[0].Index
}

// Layer is an ordered collection of tiles sharing a z-plane.
type Layer struct {
	ID      string
	Visible bool
	Width   int // in cells
	Height  int // in cells
	Tiles   []Tile
}

// Map is a decoded tile map. The last layer is the foreground overlay.
type Map struct {
	TileSheets []TileSheet
	Layers     []Layer
}

// Sheet returns the sheet with the given id.
func (m *Map) Sheet(id string) (*TileSheet, bool) {
	for i := range m.TileSheets {
		if m.TileSheets[i].ID == id {
			return &m.TileSheets[i], true
		}
	}
	return nil, false
}

// Layer returns the layer with the given id.
func (m *Map) Layer(id string) (*Layer, bool) {
	for i := range m.Layers {
		if m.Layers[i].ID == id {
			return &m.Layers[i], true
		}
	}
	return nil, false
}

// Size returns the map extent in cells, taken from the largest layer.
func (m *Map) Size() (w, h int) {
	for i := range m.Layers {
		w = max(w, m.Layers[i].Width)
		h = max(h, m.Layers[i].Height)
	}
	return w, h
}

// PixelSize returns the map extent in pixels.
func (m *Map) PixelSize() Vec2 {
	w, h := m.Size()
	return Vec2{X: float64(w * TileSize), Y: float64(h * TileSize)}
}

// Validate checks that every tile references a sheet present in the map and
// that every sheet has usable geometry.
func (m *Map) Validate() error {
	if len(m.Layers) == 0 {
		return errEmptyMap
	}
	for _, ts := range m.TileSheets {
		if ts.TileWidth <= 0 || ts.TileHeight <= 0 || ts.Columns <= 0 {
			return fmt.Errorf("sheet %q: %w", ts.ID, errInvalidSheetGeometry)
		}
	}
	for _, l := range m.Layers {
		for _, t := range l.Tiles {
			if _, ok := m.Sheet(t.Sheet); !ok {
				return fmt.Errorf("layer %q tile (%d,%d) sheet %q: %w", l.ID, t.X, t.Y, t.Sheet, ErrMissingTileSheet)
			}
		}
	}
	return nil
}
