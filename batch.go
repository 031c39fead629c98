package tidewalk

import "github.com/hajimehoshi/ebiten/v2"

// --- Coalesced batching ---

// Batcher coalesces consecutive draw ops sharing a texture into a single
// DrawTriangles32 call. Tile layers are long runs of one sheet, so a frame
// usually costs a handful of calls. Op order is preserved; a texture change
// always flushes. The vertex buffers are reused across frames.
type Batcher struct {
	verts []ebiten.Vertex
	inds  []uint32
	calls int
}

// Submit draws ops onto target and returns the number of draw calls issued.
// Ops referring to unknown textures or sampling an empty region are skipped.
func (b *Batcher) Submit(target *ebiten.Image, ops []DrawOp, textures *TextureCache) int {
	b.calls = 0
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]

	var current *ebiten.Image
	for i := range ops {
		op := &ops[i]
		img, ok := textures.images[op.Texture]
		if !ok || op.Src.Width == 0 || op.Src.Height == 0 {
			continue
		}
		if img != current {
			b.flush(target, current)
			current = img
		}
		b.appendQuad(op)
	}
	b.flush(target, current)
	return b.calls
}

// appendQuad appends 4 vertices and 6 indices for a single op. A mirrored
// source (negative width) swaps the left and right texture coordinates.
func (b *Batcher) appendQuad(op *DrawOp) {
	z := op.Zoom
	x0 := float32(op.Dst.X * z)
	y0 := float32(op.Dst.Y * z)
	x1 := float32((op.Dst.X + op.Dst.Width) * z)
	y1 := float32((op.Dst.Y + op.Dst.Height) * z)

	sx0 := float32(op.Src.X)
	sy0 := float32(op.Src.Y)
	sx1 := float32(op.Src.X + op.Src.Width)
	sy1 := float32(op.Src.Y + op.Src.Height)

	// 4 corners: TL, TR, BL, BR
	dx := [4]float32{x0, x1, x0, x1}
	dy := [4]float32{y0, y0, y1, y1}
	sx := [4]float32{sx0, sx1, sx0, sx1}
	sy := [4]float32{sy0, sy0, sy1, sy1}

	base := uint32(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   dx[i],
			DstY:   dy[i],
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (b *Batcher) flush(target, img *ebiten.Image) {
	if len(b.verts) == 0 || img == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Filter = ebiten.FilterNearest
	target.DrawTriangles32(b.verts, b.inds, img, &triOp)
	b.calls++

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}
