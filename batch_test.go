package tidewalk

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBatcherAppendQuad(t *testing.T) {
	var b Batcher
	b.appendQuad(&DrawOp{
		Texture: "outdoors",
		Src:     Rect{X: 16, Y: 32, Width: 16, Height: 16},
		Dst:     Rect{X: 10, Y: 20, Width: 16, Height: 16},
		Zoom:    1.5,
	})
	if len(b.verts) != 4 || len(b.inds) != 6 {
		t.Fatalf("verts=%d inds=%d, want 4 and 6", len(b.verts), len(b.inds))
	}
	tl, br := b.verts[0], b.verts[3]
	if tl.DstX != 15 || tl.DstY != 30 || br.DstX != 39 || br.DstY != 54 {
		t.Errorf("dst corners = (%v,%v)-(%v,%v), want (15,30)-(39,54)", tl.DstX, tl.DstY, br.DstX, br.DstY)
	}
	if tl.SrcX != 16 || tl.SrcY != 32 || br.SrcX != 32 || br.SrcY != 48 {
		t.Errorf("src corners = (%v,%v)-(%v,%v), want (16,32)-(32,48)", tl.SrcX, tl.SrcY, br.SrcX, br.SrcY)
	}
	if tl.ColorA != 1 {
		t.Errorf("ColorA = %v, want 1", tl.ColorA)
	}
}

func TestBatcherAppendQuadMirrored(t *testing.T) {
	var b Batcher
	b.appendQuad(&DrawOp{
		Src:  SourceRect(16, 16, 6, 1, 2, true),
		Dst:  Rect{Width: 16, Height: 16},
		Zoom: 1,
	})
	// The left screen edge samples the right texture edge.
	if b.verts[0].SrcX != 32 || b.verts[1].SrcX != 16 {
		t.Errorf("mirrored src x = %v,%v, want 32,16", b.verts[0].SrcX, b.verts[1].SrcX)
	}
}

func TestBatcherIndicesOffset(t *testing.T) {
	var b Batcher
	op := &DrawOp{Src: Rect{Width: 16, Height: 16}, Dst: Rect{Width: 16, Height: 16}, Zoom: 1}
	b.appendQuad(op)
	b.appendQuad(op)
	want := []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	for i, w := range want {
		if b.inds[i] != w {
			t.Errorf("inds[%d] = %d, want %d", i, b.inds[i], w)
		}
	}
}

func TestBatcherSubmitCoalesces(t *testing.T) {
	tc := NewTextureCache()
	tc.Add("a", ebiten.NewImage(32, 32))
	tc.Add("b", ebiten.NewImage(32, 32))
	target := ebiten.NewImage(64, 64)

	quad := func(tex TextureID) DrawOp {
		return DrawOp{Texture: tex, Src: Rect{Width: 16, Height: 16}, Dst: Rect{Width: 16, Height: 16}, Zoom: 1}
	}
	ops := []DrawOp{quad("a"), quad("a"), quad("missing"), quad("a"), quad("b"), quad("a")}

	var b Batcher
	if calls := b.Submit(target, ops, tc); calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(b.verts) != 0 || len(b.inds) != 0 {
		t.Error("buffers not reset after submit")
	}
	if calls := b.Submit(target, nil, tc); calls != 0 {
		t.Errorf("empty submit issued %d calls", calls)
	}
}
