package tidewalk

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window and loop used by Run.
type RunConfig struct {
	Title  string
	Width  int // window width in screen pixels
	Height int // window height in screen pixels
	// TPS sets the update rate. Zero keeps ebiten's default of 60.
	TPS int
	// ShowFPS overlays the measured FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir overrides Scene.ScreenshotDir when set.
	ScreenshotDir string
	// Logger receives host loop logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// physicalKeys maps keyboard keys to logical keys.
var physicalKeys = map[ebiten.Key]Key{
	ebiten.KeyW:          KeyMoveUp,
	ebiten.KeyS:          KeyMoveDown,
	ebiten.KeyA:          KeyMoveLeft,
	ebiten.KeyD:          KeyMoveRight,
	ebiten.KeyArrowUp:    KeyNudgeUp,
	ebiten.KeyArrowDown:  KeyNudgeDown,
	ebiten.KeyArrowLeft:  KeyNudgeLeft,
	ebiten.KeyArrowRight: KeyNudgeRight,
	ebiten.KeyF:          KeyToggleFollow,
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene    *Scene
	textures *TextureCache
	showFPS  bool
	keys     []ebiten.Key

	fpsImage *ebiten.Image
	fpsAge   float64
}

func (g *gameShell) Update() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if lk, ok := physicalKeys[k]; ok {
			g.scene.KeyDown(lk)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if lk, ok := physicalKeys[k]; ok {
			g.scene.KeyUp(lk)
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.scene.Update(dt)

	if g.showFPS {
		g.updateFPS(dt)
	}
	if r := g.scene.testRunner; r != nil && r.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// updateFPS redraws the overlay roughly twice a second.
func (g *gameShell) updateFPS(dt float64) {
	if g.fpsImage == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		g.fpsImage = ebiten.NewImage(100, 32)
	}
	g.fpsAge += dt
	if g.fpsAge < 0.5 {
		return
	}
	g.fpsAge = 0
	g.fpsImage.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(g.fpsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen, g.textures)
	if g.showFPS && g.fpsImage != nil {
		screen.DrawImage(g.fpsImage, nil)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewportSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and drives scene until the window closes or
// an attached test script finishes.
func Run(scene *Scene, textures *TextureCache, cfg RunConfig) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 640
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.ScreenshotDir != "" {
		scene.ScreenshotDir = cfg.ScreenshotDir
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	scene.SetViewportSize(cfg.Width, cfg.Height)

	log.Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "tps", ebiten.TPS())
	g := &gameShell{scene: scene, textures: textures, showFPS: cfg.ShowFPS}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("tidewalk: run: %w", err)
	}
	log.Info("stopped")
	return nil
}
