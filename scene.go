package tidewalk

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config tunes a Scene. Zero fields take the defaults from DefaultConfig.
type Config struct {
	// Zoom is the display scale applied to every draw op.
	Zoom float64
	// Speed is the walking speed in pixels per second.
	Speed float64
	// FramePeriod is the walk-cycle frame length in milliseconds.
	FramePeriod int
	// WalkFrames is the number of walk-cycle frames.
	WalkFrames int
	// ObstructionLayer names the layer the collision probe reads.
	ObstructionLayer string
	// PathsLayer names the layer that is never drawn.
	PathsLayer string
	// InterleaveLayer names the layer the player is depth-sorted into.
	// Empty selects the layer right below the foreground layer.
	InterleaveLayer string
	// Debug logs per-frame composition stats at debug level.
	Debug bool
	// Logger receives scene logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Zoom:             DefaultZoom,
		Speed:            DefaultSpeed,
		FramePeriod:      DefaultFramePeriod,
		WalkFrames:       DefaultWalkFrames,
		ObstructionLayer: DefaultObstructionLayer,
		PathsLayer:       DefaultPathsLayer,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Zoom <= 0 {
		c.Zoom = d.Zoom
	}
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.FramePeriod <= 0 {
		c.FramePeriod = d.FramePeriod
	}
	if c.WalkFrames <= 0 {
		c.WalkFrames = d.WalkFrames
	}
	if c.ObstructionLayer == "" {
		c.ObstructionLayer = d.ObstructionLayer
	}
	if c.PathsLayer == "" {
		c.PathsLayer = d.PathsLayer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// EntityStore is the interface for optional ECS integration. When set on a
// Scene, movement events are forwarded to it.
type EntityStore interface {
	EmitEvent(event MoveEvent)
}

// EventType identifies a kind of movement event.
type EventType uint8

const (
	EventCellEntered   EventType = iota // the player moved to a new cell
	EventFacingChanged                  // the player turned
	EventWalkStarted                    // a movement key went down from idle
	EventWalkStopped                    // the last movement key was released
)

// MoveEvent carries player movement data for the ECS bridge.
type MoveEvent struct {
	Type   EventType
	Cell   Cell
	Facing Direction
	Tick   int64
}

const defaultOpCap = 1024

// Scene is the engine instance. It owns the player, camera, input state and
// tick counter and mutates them only from Update. Compose turns the current
// state into draw ops. A Scene is not safe for concurrent use.
type Scene struct {
	cfg      Config
	log      *slog.Logger
	debug    bool
	textures TextureSource

	sheets  map[string]*TileSheet
	layers  []compiledLayer
	probe   CollisionProbe
	mapSize Vec2

	player *Player
	parts  []spritePart
	npcs   []npcSprite
	camera *Camera
	input  InputState
	ticker Ticker

	ops      []DrawOp
	batch    Batcher
	batching bool
	store    EntityStore
	stats    debugStats

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	injectQueue     []keyEvent
	testRunner      *TestRunner
}

// NewScene validates the map and player against textures and builds a
// scene. Any inconsistency (a tile naming a missing sheet, a sheet or sprite
// without a texture, no obstruction layer) is returned as an error and no
// scene is built.
func NewScene(m *Map, textures TextureSource, player *Player, cfg Config) (*Scene, error) {
	if m == nil || textures == nil || player == nil {
		return nil, errors.New("tidewalk: new scene: map, textures and player are required")
	}
	cfg = cfg.withDefaults()

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tidewalk: new scene: %w", err)
	}
	sheets := make(map[string]*TileSheet, len(m.TileSheets))
	for i := range m.TileSheets {
		ts := &m.TileSheets[i]
		if _, _, ok := textures.TextureSize(TextureID(ts.ID)); !ok {
			return nil, fmt.Errorf("tidewalk: new scene: sheet %q: %w", ts.ID, ErrMissingTexture)
		}
		sheets[ts.ID] = ts
	}
	probe, err := NewObstructionLayer(m, cfg.ObstructionLayer)
	if err != nil {
		return nil, fmt.Errorf("tidewalk: new scene: %w", err)
	}
	parts, err := resolveOutfit(player.Outfit, textures)
	if err != nil {
		return nil, fmt.Errorf("tidewalk: new scene: %w", err)
	}

	s := &Scene{
		cfg:           cfg,
		log:           cfg.Logger,
		debug:         cfg.Debug,
		textures:      textures,
		sheets:        sheets,
		layers:        compileLayers(m, cfg.InterleaveLayer, cfg.PathsLayer),
		probe:         probe,
		mapSize:       m.PixelSize(),
		player:        player,
		parts:         parts,
		camera:        newCamera(cfg.Zoom),
		ops:           make([]DrawOp, 0, defaultOpCap),
		batching:      true,
		ScreenshotDir: "screenshots",
	}
	w, h := m.Size()
	s.log.Info("scene ready",
		"sheets", len(m.TileSheets),
		"layers", len(m.Layers),
		"map_cells", fmt.Sprintf("%dx%d", w, h),
		"player", player.Cell)
	return s, nil
}

// resolveOutfit orders the equipped parts by slot and resolves each sheet's
// column count.
func resolveOutfit(outfit Outfit, textures TextureSource) ([]spritePart, error) {
	parts := make([]spritePart, 0, len(outfit))
	for slot := Slot(0); slot < slotCount; slot++ {
		set, ok := outfit[slot]
		if !ok {
			continue
		}
		cols, ok := resolveColumns(set, textures)
		if !ok {
			return nil, fmt.Errorf("outfit slot %d texture %q: %w", slot, set.Texture, ErrMissingTexture)
		}
		parts = append(parts, spritePart{slot: slot, set: set, cols: cols, animated: slot.animated()})
	}
	return parts, nil
}

// Player returns the player.
func (s *Scene) Player() *Player {
	return s.player
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Ticks returns the elapsed milliseconds since the scene started.
func (s *Scene) Ticks() int64 {
	return s.ticker.Now()
}

// MapSize returns the map extent in pixels.
func (s *Scene) MapSize() Vec2 {
	return s.mapSize
}

// Characters returns the placed NPCs in draw order.
func (s *Scene) Characters() []*Character {
	out := make([]*Character, len(s.npcs))
	for i, n := range s.npcs {
		out[i] = n.char
	}
	return out
}

// AddCharacter places an NPC. Its texture must be known.
func (s *Scene) AddCharacter(c *Character) error {
	cols, ok := resolveColumns(c.Frames, s.textures)
	if !ok {
		return fmt.Errorf("tidewalk: character %q texture %q: %w", c.Name, c.Frames.Texture, ErrMissingTexture)
	}
	s.npcs = append(s.npcs, npcSprite{char: c, part: spritePart{set: c.Frames, cols: cols}})
	return nil
}

// ClearCharacters removes every NPC.
func (s *Scene) ClearCharacters() {
	s.npcs = s.npcs[:0]
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-frame stats logging.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetBatching selects between coalesced DrawTriangles32 submission (the
// default) and one DrawImage call per op.
func (s *Scene) SetBatching(enabled bool) {
	s.batching = enabled
}

// SetViewportSize records the window size in screen pixels. The host calls
// it every frame.
func (s *Scene) SetViewportSize(w, h int) {
	s.camera.SetSize(w, h)
}

// KeyDown handles a key press. Movement keys feed the input state; nudge
// keys scroll a free camera; the follow key toggles camera tracking.
func (s *Scene) KeyDown(k Key) {
	if s.input.Press(k) {
		return
	}
	switch k {
	case KeyNudgeUp:
		s.nudge(0, -1)
	case KeyNudgeDown:
		s.nudge(0, 1)
	case KeyNudgeLeft:
		s.nudge(-1, 0)
	case KeyNudgeRight:
		s.nudge(1, 0)
	case KeyToggleFollow:
		s.camera.ToggleFollow()
		s.log.Debug("camera follow toggled", "following", s.camera.Following)
	}
}

// KeyUp handles a key release.
func (s *Scene) KeyUp(k Key) {
	s.input.Release(k)
}

func (s *Scene) nudge(dx, dy int) {
	if !s.camera.Nudge(dx, dy, s.mapSize) {
		s.log.Debug("nudge ignored while following", "dx", dx, "dy", dy)
	}
}

// Update runs one update step of dt seconds: injected input, facing,
// movement, then the camera.
func (s *Scene) Update(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	now := s.ticker.Advance(dt)
	p := s.player

	prevFacing, wasWalking := p.Facing, p.Clock.Running()
	if s.input.Settle(p, now) {
		switch {
		case p.Clock.Running() && !wasWalking:
			s.emit(EventWalkStarted, now)
		case !p.Clock.Running() && wasWalking:
			s.emit(EventWalkStopped, now)
		}
		if p.Facing != prevFacing {
			s.emit(EventFacingChanged, now)
		}
	}

	dx, dy := s.input.Deltas(s.cfg.Speed, dt)
	if dx != 0 || dy != 0 {
		prev := p.Cell
		pos := Move(Position{Cell: p.Cell, Offset: p.Offset}, dx, dy, s.probe)
		p.Cell, p.Offset = pos.Cell, pos.Offset
		if p.Cell != prev {
			s.emit(EventCellEntered, now)
		}
	}

	s.camera.update(float32(dt))
	s.camera.Track(p.Position(), s.mapSize)
}

func (s *Scene) emit(t EventType, now int64) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(MoveEvent{Type: t, Cell: s.player.Cell, Facing: s.player.Facing, Tick: now})
}

// Compose emits the draw ops for the current state: every layer but the
// last (the player interleaved into the designated layer), then NPCs, then
// the last layer as foreground. The returned slice is reused by the next
// call.
func (s *Scene) Compose() []DrawOp {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.stats = debugStats{}

	view := s.camera.Origin()
	fc := frameContext{
		view:   view,
		bounds: visibleCells(view, s.camera.LogicalSize()),
		zoom:   s.cfg.Zoom,
		ticks:  s.ticker.Now(),
		sheets: s.sheets,
		stats:  &s.stats,
	}
	frame := s.player.Clock.Frame(fc.ticks, s.cfg.FramePeriod, s.cfg.WalkFrames)
	drawPlayer := func(ops []DrawOp) []DrawOp {
		return appendPlayerOps(ops, s.parts, s.player, frame, view, fc.zoom)
	}

	ops := s.ops[:0]
	playerDrawn := false
	last := len(s.layers) - 1
	for i := 0; i < last; i++ {
		var drew bool
		ops, drew = appendLayer(ops, &s.layers[i], &fc, s.player.Cell, drawPlayer)
		playerDrawn = playerDrawn || drew
	}
	if !playerDrawn {
		ops = drawPlayer(ops)
	}
	ops = appendCharacterOps(ops, s.npcs, view, fc.zoom)
	if last >= 0 {
		ops, _ = appendLayer(ops, &s.layers[last], &fc, s.player.Cell, drawPlayer)
	}
	s.ops = ops

	if s.debug {
		s.stats.composeTime = time.Since(t0)
		s.stats.opCount = len(ops)
		s.debugLog(s.stats)
	}
	return ops
}

// Draw composes the current state and submits it to screen, then captures
// any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image, textures *TextureCache) {
	ops := s.Compose()
	if s.batching {
		calls := s.batch.Submit(screen, ops, textures)
		if s.debug {
			s.log.Debug("submit", "ops", len(ops), "calls", calls)
		}
	} else {
		Submit(screen, ops, textures)
	}
	s.flushScreenshots(screen)
}
