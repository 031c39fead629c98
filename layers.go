package tidewalk

import (
	"cmp"
	"math"
	"slices"
)

// compiledLayer is a map layer prepared for composition. The interleave
// layer carries its tiles sorted row-major.
type compiledLayer struct {
	id         string
	tiles      []Tile
	skip       bool // invisible or the paths layer
	interleave bool
}

// frameContext carries per-pass values shared by every tile op.
type frameContext struct {
	view   Vec2 // viewport origin in pixels
	bounds cellBounds
	zoom   float64
	ticks  int64
	sheets map[string]*TileSheet
	stats  *debugStats
}

// cellBounds is an inclusive range of visible cells.
type cellBounds struct {
	minX, minY, maxX, maxY int
}

// visibleCells returns the cells touched by a viewport at view with the
// given logical (zoom-adjusted) size.
func visibleCells(view, size Vec2) cellBounds {
	return cellBounds{
		minX: int(math.Floor(view.X / TileSize)),
		minY: int(math.Floor(view.Y / TileSize)),
		maxX: int(math.Floor((view.X + size.X) / TileSize)),
		maxY: int(math.Floor((view.Y + size.Y) / TileSize)),
	}
}

func (b cellBounds) contains(x, y int) bool {
	return x >= b.minX && x <= b.maxX && y >= b.minY && y <= b.maxY
}

// sortRowMajor returns a copy of tiles ordered by (y asc, x asc).
func sortRowMajor(tiles []Tile) []Tile {
	sorted := slices.Clone(tiles)
	slices.SortStableFunc(sorted, func(a, b Tile) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return sorted
}

// PlayerSlot returns the position in a row-major sorted tile sequence before
// which the player standing on cell p is drawn. The player goes in front of
// the first tile in row p.Y+1 at a column >= p.X whose predecessor in the
// sweep lies at a column < p.X (or that has no predecessor). Tiles on that
// row and below the player's feet then cover the player; the rows above are
// already behind it. When no tile qualifies the result is len(tiles) and the
// player is drawn after the whole layer.
//
// The decision uses map coordinates only; viewport culling happens later.
func PlayerSlot(tiles []Tile, p Cell) int {
	prevX, havePrev := 0, false
	for i, t := range tiles {
		if t.Y == p.Y+1 && t.X >= p.X && (!havePrev || prevX < p.X) {
			return i
		}
		prevX, havePrev = t.X, true
	}
	return len(tiles)
}

// tileOp resolves a map tile into a draw operation.
func tileOp(t Tile, sheet *TileSheet, fc *frameContext) DrawOp {
	src := SourceRect(sheet.TileWidth, sheet.TileHeight, sheet.Columns, t.IndexAt(fc.ticks), 0, false)
	return DrawOp{
		Texture: TextureID(sheet.ID),
		Src:     src,
		Dst: Rect{
			X:      float64(t.X*TileSize) - fc.view.X,
			Y:      float64(t.Y*TileSize) - fc.view.Y,
			Width:  float64(sheet.TileWidth),
			Height: float64(sheet.TileHeight),
		},
		Zoom: fc.zoom,
	}
}

// appendTiles appends ops for the visible tiles in order.
func appendTiles(ops []DrawOp, tiles []Tile, fc *frameContext) []DrawOp {
	for _, t := range tiles {
		if !fc.bounds.contains(t.X, t.Y) {
			fc.stats.culled++
			continue
		}
		ops = append(ops, tileOp(t, fc.sheets[t.Sheet], fc))
	}
	return ops
}

// appendLayer appends a layer's ops. For the interleave layer, drawPlayer is
// invoked at the slot PlayerSlot picks and the second result is true.
func appendLayer(ops []DrawOp, l *compiledLayer, fc *frameContext, player Cell, drawPlayer func([]DrawOp) []DrawOp) ([]DrawOp, bool) {
	if l.skip {
		return ops, false
	}
	if !l.interleave {
		return appendTiles(ops, l.tiles, fc), false
	}
	slot := PlayerSlot(l.tiles, player)
	ops = appendTiles(ops, l.tiles[:slot], fc)
	ops = drawPlayer(ops)
	ops = appendTiles(ops, l.tiles[slot:], fc)
	return ops, true
}

// compileLayers prepares the map layers. interleaveID selects the layer drawn
// with the player; empty picks the layer right below the foreground.
func compileLayers(m *Map, interleaveID, pathsID string) []compiledLayer {
	interleaveAt := len(m.Layers) - 2
	if interleaveID != "" {
		interleaveAt = -1
		for i := range m.Layers {
			if m.Layers[i].ID == interleaveID {
				interleaveAt = i
				break
			}
		}
	}

	out := make([]compiledLayer, len(m.Layers))
	for i := range m.Layers {
		l := &m.Layers[i]
		c := compiledLayer{
			id:    l.ID,
			tiles: l.Tiles,
			skip:  !l.Visible || l.ID == pathsID,
		}
		// The foreground layer never interleaves.
		if i == interleaveAt && i != len(m.Layers)-1 && !c.skip {
			c.interleave = true
			c.tiles = sortRowMajor(l.Tiles)
		}
		out[i] = c
	}
	return out
}
