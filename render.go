package tidewalk

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DrawOp is a single draw instruction. Src is in texture pixels and may have
// a negative width (mirrored). Dst is in logical screen pixels, before Zoom
// is applied.
type DrawOp struct {
	Texture TextureID
	Src     Rect
	Dst     Rect
	Zoom    float64
}

// TextureCache holds the ebiten images the draw ops refer to.
type TextureCache struct {
	images map[TextureID]*ebiten.Image
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{images: make(map[TextureID]*ebiten.Image)}
}

// Add registers img under id, replacing any previous image.
func (tc *TextureCache) Add(id TextureID, img *ebiten.Image) {
	tc.images[id] = img
}

// Image returns the image registered under id.
func (tc *TextureCache) Image(id TextureID) (*ebiten.Image, bool) {
	img, ok := tc.images[id]
	return img, ok
}

// TextureSize implements TextureSource.
func (tc *TextureCache) TextureSize(id TextureID) (w, h int, ok bool) {
	img, ok := tc.images[id]
	if !ok {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// LoadFile decodes an image file and registers it under id.
func (tc *TextureCache) LoadFile(id TextureID, path string) error {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return fmt.Errorf("tidewalk: load texture %q: %w", id, err)
	}
	tc.Add(id, img)
	return nil
}

// LoadSheets loads every tile sheet image of m from dir. Sheet images are
// looked up as <ImageSource>.png.
func (tc *TextureCache) LoadSheets(m *Map, dir string) error {
	for _, ts := range m.TileSheets {
		name := ts.ImageSource
		if filepath.Ext(name) == "" {
			name += ".png"
		}
		if err := tc.LoadFile(TextureID(ts.ID), filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Submit draws ops onto target in order. Ops referring to unknown textures
// or sampling an empty region are skipped.
func Submit(target *ebiten.Image, ops []DrawOp, textures *TextureCache) {
	var opts ebiten.DrawImageOptions
	for i := range ops {
		op := &ops[i]
		img, ok := textures.images[op.Texture]
		if !ok {
			continue
		}
		src := op.Src.Normalize()
		r := image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height))
		if r.Empty() {
			continue
		}
		sub := img.SubImage(r).(*ebiten.Image)

		opts.GeoM.Reset()
		opts.Filter = ebiten.FilterNearest
		if op.Src.Flipped() {
			opts.GeoM.Scale(-1, 1)
			opts.GeoM.Translate(src.Width, 0)
		}
		opts.GeoM.Translate(op.Dst.X, op.Dst.Y)
		opts.GeoM.Scale(op.Zoom, op.Zoom)
		target.DrawImage(sub, &opts)
	}
}
