package tidewalk

import "math"

// TextureID identifies a renderable texture. Tile sheets use their sheet id.
type TextureID string

// TextureSource reports the pixel size of a texture. The ebiten-backed
// TextureCache implements it; the compositors only need sizes.
type TextureSource interface {
	TextureSize(id TextureID) (w, h int, ok bool)
}

// DirectionRow is an optional row offset into a sprite sheet. The zero value
// means the part has no art for that facing.
type DirectionRow struct {
	Row   int
	Valid bool
}

// Row returns a present row offset.
func Row(n int) DirectionRow {
	return DirectionRow{Row: n, Valid: true}
}

// NoRow marks a facing without art.
var NoRow = DirectionRow{}

// DirectionTable maps each facing to a row offset.
type DirectionTable struct {
	Down, Right, Up, Left DirectionRow
}

// Rows builds a table where every facing has art.
func Rows(down, right, up, left int) DirectionTable {
	return DirectionTable{Down: Row(down), Right: Row(right), Up: Row(up), Left: Row(left)}
}

// For returns the row entry for d.
func (t DirectionTable) For(d Direction) DirectionRow {
	switch d {
	case DirDown:
		return t.Down
	case DirRight:
		return t.Right
	case DirUp:
		return t.Up
	case DirLeft:
		return t.Left
	default:
		return NoRow
	}
}

// Mirrored reports whether facing d reuses right-facing art flipped. That is
// the case when facing left and the table points left at the same rows as
// right.
func (t DirectionTable) Mirrored(d Direction) bool {
	return d == DirLeft && t.Left == t.Right
}

// SpriteFrameSet describes one drawable part cut from a sprite sheet.
type SpriteFrameSet struct {
	Texture    TextureID
	Index      int  // base frame index
	FrameW     int  // frame width in pixels
	FrameH     int  // frame height in pixels
	DrawOffset Vec2 // pixel offset from the cell origin
	Directions DirectionTable
}

// Slot is a player equip slot. Slots draw in ascending order.
type Slot uint8

const (
	SlotBody      Slot = iota // base body
	SlotBottom                // lower body
	SlotHair                  // hairstyle
	SlotHat                   // headwear, optional
	SlotArms                  // arms over the torso
	SlotPants                 // legwear
	SlotShirt                 // shirt
	SlotAccessory             // facial accessory
	slotCount
)

// animated reports whether the slot follows the walk cycle.
func (s Slot) animated() bool {
	switch s {
	case SlotBody, SlotBottom, SlotArms, SlotPants:
		return true
	default:
		return false
	}
}

// Outfit holds the equipped sprite parts. Missing slots are not drawn.
type Outfit map[Slot]SpriteFrameSet

// Player is the controllable avatar.
type Player struct {
	Cell   Cell
	Offset Vec2 // sub-tile offset in pixels
	Facing Direction
	Clock  AnimationClock
	Outfit Outfit
}

// Position returns the absolute pixel position of the player.
func (p *Player) Position() Vec2 {
	return Vec2{
		X: float64(p.Cell.X*TileSize) + p.Offset.X,
		Y: float64(p.Cell.Y*TileSize) + p.Offset.Y,
	}
}

// Character is a non-player character placed by a cutscene.
type Character struct {
	Name   string
	Frames SpriteFrameSet
	Cell   Cell
	Offset Vec2
	Facing Direction
}

// spritePart is a frame set with its sheet column count resolved.
type spritePart struct {
	slot     Slot
	set      SpriteFrameSet
	cols     int
	animated bool
}

// resolveColumns returns how many frames fit across the texture.
func resolveColumns(set SpriteFrameSet, textures TextureSource) (int, bool) {
	w, _, ok := textures.TextureSize(set.Texture)
	if !ok || set.FrameW <= 0 {
		return 0, false
	}
	cols := w / set.FrameW
	if cols <= 0 {
		cols = 1
	}
	return cols, true
}

// spriteOp resolves one sprite part into a draw operation. It returns false
// when the part has no art for the facing.
func spriteOp(part spritePart, cell Cell, offset Vec2, facing Direction, frame int, view Vec2, zoom float64) (DrawOp, bool) {
	row := part.set.Directions.For(facing)
	if !row.Valid {
		return DrawOp{}, false
	}
	index := part.set.Index
	if part.animated {
		index += frame
	}
	flip := part.set.Directions.Mirrored(facing)
	src := SourceRect(part.set.FrameW, part.set.FrameH, part.cols, index, row.Row, flip)

	dst := Rect{
		X:      float64(cell.X*TileSize) + part.set.DrawOffset.X + math.Trunc(offset.X) - view.X,
		Y:      float64(cell.Y*TileSize) + part.set.DrawOffset.Y + math.Trunc(offset.Y) - view.Y,
		Width:  float64(part.set.FrameW),
		Height: float64(part.set.FrameH),
	}
	return DrawOp{Texture: part.set.Texture, Src: src, Dst: dst, Zoom: zoom}, true
}

// appendPlayerOps appends the player's parts back to front. The accessory is
// skipped when facing up.
func appendPlayerOps(ops []DrawOp, parts []spritePart, p *Player, frame int, view Vec2, zoom float64) []DrawOp {
	for _, part := range parts {
		if part.slot == SlotAccessory && p.Facing == DirUp {
			continue
		}
		if op, ok := spriteOp(part, p.Cell, p.Offset, p.Facing, frame, view, zoom); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// appendCharacterOps appends one op per NPC, always on its static frame.
func appendCharacterOps(ops []DrawOp, npcs []npcSprite, view Vec2, zoom float64) []DrawOp {
	for _, n := range npcs {
		if op, ok := spriteOp(n.part, n.char.Cell, n.char.Offset, n.char.Facing, 0, view, zoom); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// npcSprite pairs a character with its resolved frame set.
type npcSprite struct {
	char *Character
	part spritePart
}
