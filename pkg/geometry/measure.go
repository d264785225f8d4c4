package geometry

// Measurer reports the bounding box of rendered text. Implementations wrap
// whatever glyph metrics the drawing surface provides; the layout functions
// never depend on a live widget or font object.
type Measurer interface {
	// TextBounds returns the bounding box of text drawn at the given
	// font size, anchored at the origin.
	TextBounds(text string, size float64) Rect
}

// DefaultCellAspect is the width-to-height ratio of a terminal cell glyph.
const DefaultCellAspect = 0.5

// CellMeasurer models a monospaced cell font: every glyph advances by
// Aspect times the font size horizontally and the font size vertically.
// This is exact for terminal surfaces and a sound approximation for any
// monospaced face.
type CellMeasurer struct {
	Aspect float64
}

func (m CellMeasurer) TextBounds(text string, size float64) Rect {
	aspect := m.Aspect
	if aspect <= 0 {
		aspect = DefaultCellAspect
	}
	n := float64(len([]rune(text)))
	return Rect{Right: n * aspect * size, Bottom: size}
}
