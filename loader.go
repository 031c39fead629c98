package tidewalk

import (
	"encoding/json"
	"fmt"
)

// --- JSON structure types ---

type jsonTileSheet struct {
	ID         string `json:"id"`
	Image      string `json:"image"`
	TileWidth  int    `json:"tileWidth"`
	TileHeight int    `json:"tileHeight"`
	Columns    int    `json:"columns"`
	Rows       int    `json:"rows"`
}

type jsonFrame struct {
	Index    int `json:"index"`
	Duration int `json:"duration"`
}

type jsonTile struct {
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Sheet  string      `json:"sheet"`
	Index  int         `json:"index"`
	Frames []jsonFrame `json:"frames"`
}

type jsonLayer struct {
	ID      string          `json:"id"`
	Visible *bool           `json:"visible"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Sheet   string          `json:"sheet"`
	Data    json.RawMessage `json:"data"`
	Tiles   json.RawMessage `json:"tiles"`
}

type jsonMap struct {
	TileSheets []jsonTileSheet `json:"tileSheets"`
	Layers     []jsonLayer     `json:"layers"`
}

// LoadMap parses a JSON map description. Each layer carries its tiles either
// as a "tiles" list of placed tiles or as a row-major "data" grid of sheet
// indices (-1 for empty cells) drawn from the layer's "sheet". A layer may
// use both; list tiles are appended after the grid. The result is validated.
func LoadMap(jsonData []byte) (*Map, error) {
	var raw jsonMap
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("tidewalk: failed to parse map JSON: %w", err)
	}

	m := &Map{TileSheets: make([]TileSheet, 0, len(raw.TileSheets))}
	for _, s := range raw.TileSheets {
		m.TileSheets = append(m.TileSheets, TileSheet{
			ID:          s.ID,
			ImageSource: s.Image,
			TileWidth:   s.TileWidth,
			TileHeight:  s.TileHeight,
			Columns:     s.Columns,
			Rows:        s.Rows,
		})
	}

	for _, jl := range raw.Layers {
		l, err := parseLayer(jl)
		if err != nil {
			return nil, err
		}
		m.Layers = append(m.Layers, l)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tidewalk: invalid map: %w", err)
	}
	return m, nil
}

func parseLayer(jl jsonLayer) (Layer, error) {
	l := Layer{ID: jl.ID, Visible: true, Width: jl.Width, Height: jl.Height}
	if jl.Visible != nil {
		l.Visible = *jl.Visible
	}
	if jl.Data == nil && jl.Tiles == nil {
		return Layer{}, fmt.Errorf("tidewalk: layer %q has neither \"data\" nor \"tiles\" key", jl.ID)
	}

	if jl.Data != nil {
		if err := parseGrid(jl, &l); err != nil {
			return Layer{}, err
		}
	}
	if jl.Tiles != nil {
		if err := parseTileList(jl, &l); err != nil {
			return Layer{}, err
		}
	}
	return l, nil
}

// parseGrid parses the grid format: [idx, idx, -1, ...] in row-major order.
func parseGrid(jl jsonLayer, l *Layer) error {
	var data []int
	if err := json.Unmarshal(jl.Data, &data); err != nil {
		return fmt.Errorf("tidewalk: layer %q: failed to parse data: %w", jl.ID, err)
	}
	if jl.Width <= 0 || len(data) != jl.Width*jl.Height {
		return fmt.Errorf("tidewalk: layer %q: data has %d cells, want %dx%d", jl.ID, len(data), jl.Width, jl.Height)
	}
	if jl.Sheet == "" {
		return fmt.Errorf("tidewalk: layer %q: data grid needs a \"sheet\"", jl.ID)
	}
	for i, idx := range data {
		if idx < 0 {
			continue
		}
		l.Tiles = append(l.Tiles, Tile{
			Sheet: jl.Sheet,
			Index: idx,
			X:     i % jl.Width,
			Y:     i / jl.Width,
		})
	}
	return nil
}

// parseTileList parses the list format: [{"x":..,"y":..,"index":..}, ...]
func parseTileList(jl jsonLayer, l *Layer) error {
	var tiles []jsonTile
	if err := json.Unmarshal(jl.Tiles, &tiles); err != nil {
		return fmt.Errorf("tidewalk: layer %q: failed to parse tiles: %w", jl.ID, err)
	}
	for _, jt := range tiles {
		t := Tile{Sheet: jt.Sheet, Index: jt.Index, X: jt.X, Y: jt.Y}
		if t.Sheet == "" {
			t.Sheet = jl.Sheet
		}
		for _, f := range jt.Frames {
			t.Frames = append(t.Frames, AnimFrame{Index: f.Index, Duration: f.Duration})
		}
		l.Tiles = append(l.Tiles, t)
		l.Width = max(l.Width, t.X+1)
		l.Height = max(l.Height, t.Y+1)
	}
	return nil
}

// FarmerOutfit builds the standard player outfit. Body, bottom, arms and
// pants are cut from the base sheet. An empty hat or accessory texture leaves
// that slot unequipped.
func FarmerOutfit(base, hair, hat, shirt, accessory TextureID) Outfit {
	lower := Vec2{Y: 16}
	walk := Rows(0, 2, 4, 2)
	o := Outfit{
		SlotBody:   {Texture: base, Index: 0, FrameW: 16, FrameH: 16, Directions: walk},
		SlotBottom: {Texture: base, Index: 24, FrameW: 16, FrameH: 16, DrawOffset: lower, Directions: walk},
		SlotArms:   {Texture: base, Index: 30, FrameW: 16, FrameH: 16, DrawOffset: lower, Directions: walk},
		SlotPants:  {Texture: base, Index: 42, FrameW: 16, FrameH: 16, DrawOffset: lower, Directions: walk},
		SlotHair:   {Texture: hair, Index: 0, FrameW: 16, FrameH: 16, Directions: walk},
		SlotShirt: {
			Texture:    shirt,
			FrameW:     8,
			FrameH:     8,
			DrawOffset: Vec2{X: 4, Y: 15},
			Directions: Rows(0, 1, 3, 2),
		},
	}
	if hat != "" {
		o[SlotHat] = SpriteFrameSet{
			Texture:    hat,
			Index:      2,
			FrameW:     20,
			FrameH:     20,
			DrawOffset: Vec2{X: -2, Y: -2},
			Directions: Rows(0, 1, 3, 2),
		}
	}
	if accessory != "" {
		o[SlotAccessory] = SpriteFrameSet{
			Texture:    accessory,
			FrameW:     16,
			FrameH:     16,
			DrawOffset: Vec2{Y: 3},
			Directions: DirectionTable{Down: Row(0), Right: Row(1), Up: NoRow, Left: Row(1)},
		}
	}
	return o
}
