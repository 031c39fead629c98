package tidewalk

// SourceRect resolves a logical frame index on a sheet laid out in cols
// columns of tileW x tileH frames into a source rectangle in sheet pixels.
//
// rowOffset shifts the result down by whole frame rows and is how a
// direction-specific block of the sheet is selected. When flip is set, the
// origin moves right by tileW and the width is negated so the sampled region
// is mirrored; the destination is untouched.
//
// Callers guarantee cols > 0.
func SourceRect(tileW, tileH, cols, index, rowOffset int, flip bool) Rect {
	srcX := index % cols * tileW
	srcY := (index/cols + rowOffset) * tileH
	if flip {
		return Rect{
			X:      float64(srcX + tileW),
			Y:      float64(srcY),
			Width:  -float64(tileW),
			Height: float64(tileH),
		}
	}
	return Rect{X: float64(srcX), Y: float64(srcY), Width: float64(tileW), Height: float64(tileH)}
}
