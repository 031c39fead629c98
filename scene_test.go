package tidewalk

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Map, tex fakeTextures, p *Player)
		want   error
	}{
		{"missing sheet texture", func(m *Map, tex fakeTextures, p *Player) {
			delete(tex, "outdoors")
		}, ErrMissingTexture},
		{"tile names unknown sheet", func(m *Map, tex fakeTextures, p *Player) {
			m.Layers[0].Tiles[0].Sheet = "indoors"
		}, ErrMissingTileSheet},
		{"no obstruction layer", func(m *Map, tex fakeTextures, p *Player) {
			m.Layers[1].ID = "Walls"
		}, ErrNoObstructionLayer},
		{"missing outfit texture", func(m *Map, tex fakeTextures, p *Player) {
			p.Outfit[SlotHat] = SpriteFrameSet{Texture: "hats", FrameW: 20, FrameH: 20}
		}, ErrMissingTexture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, tex, p := testMap(), testTextures(), testPlayer()
			tt.mutate(m, tex, p)
			s, err := NewScene(m, tex, p, quietConfig())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if s != nil {
				t.Error("scene returned alongside an error")
			}
		})
	}
}

func TestNewSceneNilArgs(t *testing.T) {
	if _, err := NewScene(nil, testTextures(), testPlayer(), quietConfig()); err == nil {
		t.Error("nil map accepted")
	}
	if _, err := NewScene(testMap(), testTextures(), nil, quietConfig()); err == nil {
		t.Error("nil player accepted")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	want := DefaultConfig()
	if cfg.Zoom != want.Zoom || cfg.Speed != want.Speed || cfg.FramePeriod != want.FramePeriod ||
		cfg.WalkFrames != want.WalkFrames || cfg.ObstructionLayer != "Buildings" || cfg.PathsLayer != "Paths" {
		t.Errorf("withDefaults = %+v", cfg)
	}
	if cfg.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

// describeOps lists the texture of each op.
func describeOps(ops []DrawOp) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = string(op.Texture)
	}
	return out
}

func TestComposeOrder(t *testing.T) {
	s := newTestScene(t)
	ops := s.Compose()

	// Back (0,0); Buildings (5,7); Front (5,3) (4,6) | player | (6,6);
	// AlwaysFront (2,2). Paths is never drawn.
	want := []struct {
		tex TextureID
		x   float64
		y   float64
	}{
		{"outdoors", 0, 0},
		{"outdoors", 80, 112},
		{"outdoors", 80, 48},
		{"outdoors", 64, 96},
		{"base", 80, 80},
		{"outdoors", 96, 96},
		{"outdoors", 32, 32},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops %v, want %d", len(ops), describeOps(ops), len(want))
	}
	for i, w := range want {
		if ops[i].Texture != w.tex || ops[i].Dst.X != w.x || ops[i].Dst.Y != w.y {
			t.Errorf("op %d = %s at (%v,%v), want %s at (%v,%v)", i, ops[i].Texture, ops[i].Dst.X, ops[i].Dst.Y, w.tex, w.x, w.y)
		}
		if ops[i].Zoom != DefaultZoom {
			t.Errorf("op %d zoom = %v, want %v", i, ops[i].Zoom, DefaultZoom)
		}
	}
}

func TestComposeTileSource(t *testing.T) {
	s := newTestScene(t)
	ops := s.Compose()
	// AlwaysFront tile index 6 on a 4 column sheet.
	last := ops[len(ops)-1]
	if last.Src != (Rect{X: 32, Y: 16, Width: 16, Height: 16}) {
		t.Errorf("tile Src = %v, want (32,16,16,16)", last.Src)
	}
}

func TestComposeCulling(t *testing.T) {
	s := newTestScene(t)
	s.SetViewportSize(48, 48) // 32 logical px: cells 0..2
	ops := s.Compose()
	got := describeOps(ops)
	want := []string{"outdoors", "base", "outdoors"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ops = %v, want %v", got, want)
	}
	if s.stats.culled != 4 {
		t.Errorf("culled = %d, want 4", s.stats.culled)
	}
}

func TestComposeInterleaveBeforeCulling(t *testing.T) {
	s := newTestScene(t)
	cam := s.Camera()
	cam.ToggleFollow()
	cam.X = 80 // cells 5.. visible: (4,6) is culled, (6,6) is not

	ops := s.Compose()
	// Buildings (5,7); Front (5,3) | player | (6,6). The player still goes
	// before (6,6) because its predecessor on the full map is (4,6).
	want := []struct {
		tex  TextureID
		x, y float64
	}{
		{"outdoors", 0, 112},
		{"outdoors", 0, 48},
		{"base", 0, 80},
		{"outdoors", 16, 96},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops %v, want %d", len(ops), describeOps(ops), len(want))
	}
	for i, w := range want {
		if ops[i].Texture != w.tex || ops[i].Dst.X != w.x || ops[i].Dst.Y != w.y {
			t.Errorf("op %d = %s at (%v,%v), want %s at (%v,%v)", i, ops[i].Texture, ops[i].Dst.X, ops[i].Dst.Y, w.tex, w.x, w.y)
		}
	}
	// Back (0,0), Front (4,6) and AlwaysFront (2,2).
	if s.stats.culled != 3 {
		t.Errorf("culled = %d, want 3", s.stats.culled)
	}
}

func TestComposePlayerFallback(t *testing.T) {
	m := testMap()
	// Keep only Back and AlwaysFront plus the obstruction layer; with the
	// interleave landing on the obstruction layer and no tile in the row
	// below the player, the player is drawn after that layer.
	m.Layers = []Layer{m.Layers[0], m.Layers[1], m.Layers[4]}
	s, err := NewScene(m, testTextures(), testPlayer(), quietConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.SetViewportSize(480, 480)
	got := strings.Join(describeOps(s.Compose()), ",")
	if got != "outdoors,outdoors,base,outdoors" {
		t.Errorf("ops = %s", got)
	}
}

func TestComposeNoInterleaveLayer(t *testing.T) {
	m := testMap()
	m.Layers[3].Visible = false
	s, err := NewScene(m, testTextures(), testPlayer(), quietConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.SetViewportSize(480, 480)
	ops := s.Compose()
	// Back, Buildings, player, AlwaysFront.
	got := strings.Join(describeOps(ops), ",")
	if got != "outdoors,outdoors,base,outdoors" {
		t.Errorf("ops = %s", got)
	}
}

func TestComposeReusesBuffer(t *testing.T) {
	s := newTestScene(t)
	a := s.Compose()
	b := s.Compose()
	if len(a) != len(b) || &a[0] != &b[0] {
		t.Error("Compose did not reuse its op buffer")
	}
}

func TestUpdateWalk(t *testing.T) {
	s := newTestScene(t)
	s.KeyDown(KeyMoveRight)
	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	p := s.Player()
	// Each frame moves 10 px; every crossing lands at -8.
	if p.Cell != (Cell{X: 10, Y: 5}) {
		t.Errorf("cell = %v, want (10,5)", p.Cell)
	}
	if !approxEqual(p.Offset.X, 2, 1e-9) {
		t.Errorf("offset.X = %v, want 2", p.Offset.X)
	}
	if p.Facing != DirRight {
		t.Errorf("facing = %v, want right", p.Facing)
	}
	if s.Ticks() != 1000 {
		t.Errorf("ticks = %d, want 1000", s.Ticks())
	}
}

func TestUpdateBlocked(t *testing.T) {
	s := newTestScene(t)
	s.KeyDown(KeyMoveDown)
	s.Update(0.1)
	p := s.Player()
	// Buildings has a tile at (5,7), under the feet of cell (5,6).
	if p.Cell != (Cell{X: 5, Y: 5}) || p.Offset.Y != 7.99 {
		t.Errorf("got cell %v offset %v, want (5,5) 7.99", p.Cell, p.Offset)
	}
}

func TestUpdateWalkAnimation(t *testing.T) {
	s := newTestScene(t)
	s.KeyDown(KeyMoveRight)
	s.Update(0.15) // clock starts at tick 150
	s.Update(0.15) // 150 ms in: frame 1
	var body DrawOp
	for _, op := range s.Compose() {
		if op.Texture == "base" {
			body = op
		}
	}
	if body.Src != (Rect{X: 16, Y: 32, Width: 16, Height: 16}) {
		t.Errorf("body Src = %v, want right row frame 1", body.Src)
	}

	s.KeyUp(KeyMoveRight)
	s.Update(0.15)
	for _, op := range s.Compose() {
		if op.Texture == "base" {
			body = op
		}
	}
	if body.Src.X != 0 {
		t.Errorf("idle body Src.X = %v, want 0", body.Src.X)
	}
}

func TestUpdateEvents(t *testing.T) {
	s := newTestScene(t)
	store := &recordStore{}
	s.SetEntityStore(store)

	s.KeyDown(KeyMoveRight)
	s.Update(0.1)
	s.KeyUp(KeyMoveRight)
	s.Update(0.016)

	want := []EventType{EventWalkStarted, EventFacingChanged, EventCellEntered, EventWalkStopped}
	got := store.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if store.events[2].Cell != (Cell{X: 6, Y: 5}) || store.events[2].Tick != 100 {
		t.Errorf("cell event = %+v", store.events[2])
	}
}

func TestUpdateCameraFollows(t *testing.T) {
	s := newTestScene(t)
	s.SetViewportSize(240, 240) // 160 logical px
	s.Player().Cell = Cell{X: 15, Y: 5}
	s.Update(0.016)
	cam := s.Camera()
	// Player at x=240; the dead zone's high edge sits at 2*160/3.
	if !approxEqual(cam.X, 240-320.0/3, 1e-9) {
		t.Errorf("camera X = %v, want %v", cam.X, 240-320.0/3)
	}
	if cam.Y != 0 {
		t.Errorf("camera Y = %v, want 0", cam.Y)
	}
}

func TestNudgeKeys(t *testing.T) {
	s := newTestScene(t)
	s.SetViewportSize(240, 240)

	s.KeyDown(KeyNudgeRight)
	s.Update(0.2)
	if s.Camera().X != 0 {
		t.Errorf("nudge moved following camera to %v", s.Camera().X)
	}

	s.KeyDown(KeyToggleFollow)
	s.KeyDown(KeyNudgeRight)
	s.Update(0.2)
	if !approxEqual(s.Camera().X, TileSize, 1e-4) {
		t.Errorf("camera X = %v, want %d", s.Camera().X, TileSize)
	}
	if s.Player().Cell != (Cell{X: 5, Y: 5}) {
		t.Error("nudge moved the player")
	}
}

func TestCharacters(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddCharacter(&Character{Name: "ghost", Frames: SpriteFrameSet{Texture: "missing", FrameW: 16, FrameH: 32}}); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("err = %v, want ErrMissingTexture", err)
	}
	c := &Character{Name: "abigail", Frames: NPCFrames("abigail"), Cell: Cell{X: 8, Y: 8}, Facing: DirLeft}
	if err := s.AddCharacter(c); err != nil {
		t.Fatal(err)
	}
	if got := s.Characters(); len(got) != 1 || got[0] != c {
		t.Errorf("Characters = %v", got)
	}

	ops := s.Compose()
	npc := ops[len(ops)-2]
	if npc.Texture != "abigail" {
		t.Fatalf("op before foreground = %s, want abigail", npc.Texture)
	}
	// Left has its own row on character sheets.
	if npc.Src != (Rect{X: 0, Y: 96, Width: 16, Height: 32}) {
		t.Errorf("npc Src = %v", npc.Src)
	}
	if npc.Dst != (Rect{X: 128, Y: 112, Width: 16, Height: 32}) {
		t.Errorf("npc Dst = %v", npc.Dst)
	}

	s.ClearCharacters()
	if len(s.Characters()) != 0 {
		t.Error("ClearCharacters left NPCs")
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := NewScene(testMap(), testTextures(), testPlayer(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.SetViewportSize(480, 480)
	s.Compose()
	if !strings.Contains(buf.String(), "msg=compose") || !strings.Contains(buf.String(), "ops=7") {
		t.Errorf("debug log missing compose stats:\n%s", buf.String())
	}

	buf.Reset()
	s.SetDebugMode(false)
	s.Compose()
	if strings.Contains(buf.String(), "compose") {
		t.Error("compose stats logged with debug off")
	}
}
