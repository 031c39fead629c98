package tidewalk

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerCharacterName is the placement name that positions the player rather
// than an NPC.
const PlayerCharacterName = "farmer"

// CharacterPlacement places one named character at a cell. Code is the
// event direction code, see DirectionFromEventCode.
type CharacterPlacement struct {
	Name string
	Cell Cell
	Code int
}

// Placement is the part of a cutscene event the engine consumes: where the
// viewport starts and who stands where. Commands holds the remaining event
// commands verbatim; they are never interpreted here.
type Placement struct {
	Music      string
	Viewport   Cell
	Characters []CharacterPlacement
	Skippable  bool
	Commands   []string
}

// DirectionFromEventCode translates an event direction code. Event codes run
// 0 up, 1 right, 2 down, 3 left, which is not the Direction ordinal order.
func DirectionFromEventCode(code int) (Direction, error) {
	switch code {
	case 0:
		return DirUp, nil
	case 1:
		return DirRight, nil
	case 2:
		return DirDown, nil
	case 3:
		return DirLeft, nil
	default:
		return DirDown, fmt.Errorf("code %d: %w", code, ErrBadDirectionCode)
	}
}

// ParseEventHeader reads the placement fields from an event script:
//
//	music/viewX viewY/name x y dir [name x y dir ...]/[skippable/]command/...
//
// Only the first line is considered; later lines are fork branches.
func ParseEventHeader(script string) (Placement, error) {
	line, _, _ := strings.Cut(script, "\n")
	parts := strings.Split(strings.TrimSpace(line), "/")
	if len(parts) < 3 {
		return Placement{}, fmt.Errorf("tidewalk: event header: want music/viewport/characters, got %d fields", len(parts))
	}

	p := Placement{Music: parts[0]}

	view := strings.Fields(parts[1])
	if len(view) != 2 {
		return Placement{}, fmt.Errorf("tidewalk: event header: viewport %q: want two numbers", parts[1])
	}
	vx, errX := strconv.Atoi(view[0])
	vy, errY := strconv.Atoi(view[1])
	if errX != nil || errY != nil {
		return Placement{}, fmt.Errorf("tidewalk: event header: viewport %q: not integers", parts[1])
	}
	p.Viewport = Cell{X: vx, Y: vy}

	fields := strings.Fields(parts[2])
	if len(fields)%4 != 0 {
		return Placement{}, fmt.Errorf("tidewalk: event header: characters %q: want groups of name x y dir", parts[2])
	}
	for i := 0; i < len(fields); i += 4 {
		cp, err := parsePlacement(fields[i : i+4])
		if err != nil {
			return Placement{}, fmt.Errorf("tidewalk: event header: %w", err)
		}
		p.Characters = append(p.Characters, cp)
	}

	rest := parts[3:]
	if len(rest) > 0 && rest[0] == "skippable" {
		p.Skippable = true
		rest = rest[1:]
	}
	for _, cmd := range rest {
		if cmd = strings.TrimSpace(cmd); cmd != "" {
			p.Commands = append(p.Commands, cmd)
		}
	}
	return p, nil
}

func parsePlacement(f []string) (CharacterPlacement, error) {
	x, errX := strconv.Atoi(f[1])
	y, errY := strconv.Atoi(f[2])
	code, errD := strconv.Atoi(f[3])
	if errX != nil || errY != nil || errD != nil {
		return CharacterPlacement{}, fmt.Errorf("character %q: position and direction must be integers", f[0])
	}
	if _, err := DirectionFromEventCode(code); err != nil {
		return CharacterPlacement{}, fmt.Errorf("character %q: %w", f[0], err)
	}
	return CharacterPlacement{Name: f[0], Cell: Cell{X: x, Y: y}, Code: code}, nil
}

// CharacterCatalog resolves character names to their sprite frames.
type CharacterCatalog map[string]SpriteFrameSet

// NPCFrames returns the frame set of a standard character sheet: 16x32
// frames, one row per facing in down, right, up, left order, drawn one cell
// above the feet.
func NPCFrames(tex TextureID) SpriteFrameSet {
	return SpriteFrameSet{
		Texture:    tex,
		FrameW:     16,
		FrameH:     32,
		DrawOffset: Vec2{Y: -16},
		Directions: Rows(0, 1, 2, 3),
	}
}

// ApplyPlacement replaces the scene's NPCs with the placed characters, moves
// the player when it is named, and sets the initial viewport. Nothing is
// changed when an entry cannot be resolved.
//
// The camera keeps following the player, so the next Update applies the
// dead-zone rule to the placed viewport: it survives only while the player
// sits in its middle third. Call Camera().ToggleFollow to hold it.
func (s *Scene) ApplyPlacement(p Placement, catalog CharacterCatalog) error {
	var npcs []*Character
	var playerAt *CharacterPlacement
	for i := range p.Characters {
		cp := &p.Characters[i]
		dir, err := DirectionFromEventCode(cp.Code)
		if err != nil {
			return fmt.Errorf("tidewalk: placement %q: %w", cp.Name, err)
		}
		if cp.Name == PlayerCharacterName {
			playerAt = cp
			continue
		}
		frames, ok := catalog[cp.Name]
		if !ok {
			return fmt.Errorf("tidewalk: placement %q: %w", cp.Name, ErrUnknownCharacter)
		}
		if _, ok := resolveColumns(frames, s.textures); !ok {
			return fmt.Errorf("tidewalk: placement %q texture %q: %w", cp.Name, frames.Texture, ErrMissingTexture)
		}
		npcs = append(npcs, &Character{Name: cp.Name, Frames: frames, Cell: cp.Cell, Facing: dir})
	}

	s.ClearCharacters()
	for _, c := range npcs {
		if err := s.AddCharacter(c); err != nil {
			return err
		}
	}
	if playerAt != nil {
		dir, _ := DirectionFromEventCode(playerAt.Code)
		s.player.Cell = playerAt.Cell
		s.player.Offset = Vec2{}
		s.player.Facing = dir
		s.player.Clock.Stop()
	}
	s.camera.X = float64(p.Viewport.X * TileSize)
	s.camera.Y = float64(p.Viewport.Y * TileSize)
	s.camera.ClampTo(s.mapSize)

	s.log.Info("placement applied",
		"music", p.Music,
		"viewport", p.Viewport,
		"npcs", len(npcs),
		"player_placed", playerAt != nil,
		"commands", len(p.Commands))
	return nil
}
