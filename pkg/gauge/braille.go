package gauge

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	drawille "github.com/exrook/drawille-go"

	"github.com/windlass/ringview/pkg/geometry"
)

// BrailleSurface renders onto a braille drawing canvas. Each terminal
// cell holds a 2x4 dot matrix, so the surface's coordinate space is
// cols*2 wide and rows*4 tall. Arcs are rasterized with the midpoint
// circle algorithm to avoid floating-point gaps.
type BrailleSurface struct {
	cols, rows int

	canvas drawille.Canvas
	kinds  map[cellPos]ArcKind
	texts  []placedText

	style  Style
	colors map[ArcKind]lipgloss.Style
	value  lipgloss.Style
	unit   lipgloss.Style
}

type cellPos struct {
	col, row int
}

type placedText struct {
	text string
	col  int
	row  int
	kind TextKind
}

// NewBrailleSurface creates a surface for a terminal region of the given
// cell dimensions, colored according to the style.
func NewBrailleSurface(cols, rows int, style Style) *BrailleSurface {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &BrailleSurface{
		cols:   cols,
		rows:   rows,
		canvas: drawille.NewCanvas(),
		kinds:  make(map[cellPos]ArcKind),
		style:  style,
		colors: map[ArcKind]lipgloss.Style{
			ArcFill:    fg(style.FillColor),
			ArcRim:     fg(style.RimColor),
			ArcContour: fg(style.ContourColor),
			ArcBar:     fg(style.BarColor),
			ArcSpinner: fg(style.SpinnerColor),
		},
		value: fg(style.TextColor),
		unit:  fg(style.UnitColor),
	}
}

// Size returns the surface dimensions in dots.
func (s *BrailleSurface) Size() (width, height float64) {
	return float64(s.cols * 2), float64(s.rows * 4)
}

// Clear resets the surface for the next frame.
func (s *BrailleSurface) Clear() {
	s.canvas.Clear()
	s.kinds = make(map[cellPos]ArcKind)
	s.texts = s.texts[:0]
}

// DrawArc rasterizes an arc of the given kind. Angles follow the gauge
// convention: 0 degrees at 3 o'clock, increasing clockwise.
func (s *BrailleSurface) DrawArc(bounds geometry.Rect, startDeg, sweepDeg float64, kind ArcKind) {
	if bounds.IsEmpty() || sweepDeg <= 0 {
		return
	}
	if sweepDeg > 360 {
		sweepDeg = 360
	}
	start := math.Mod(startDeg, 360)
	if start < 0 {
		start += 360
	}
	end := start + sweepDeg

	center := bounds.Center()
	radius := math.Min(bounds.Width(), bounds.Height()) / 2

	thickness := s.thicknessFor(kind, radius)
	for t := 0; t < thickness; t++ {
		r := int(radius) - t
		if r <= 0 {
			continue
		}
		s.arcRing(int(center.X), int(center.Y), r, start, end, kind)
	}
}

func (s *BrailleSurface) thicknessFor(kind ArcKind, radius float64) int {
	var w float64
	switch kind {
	case ArcFill:
		w = radius
	case ArcRim:
		w = s.style.RimWidth
	case ArcContour:
		w = s.style.ContourSize
	default:
		w = s.style.BarWidth
	}
	if w < 1 {
		w = 1
	}
	return int(w)
}

// arcRing draws one circle of radius r, restricted to the angle range,
// via the midpoint circle algorithm.
func (s *BrailleSurface) arcRing(cx, cy, r int, startDeg, endDeg float64, kind ArcKind) {
	x := r
	y := 0
	d := 1 - r

	for x >= y {
		s.setOctantDots(cx, cy, x, y, startDeg, endDeg, kind)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// setOctantDots plots the 8 symmetric points of (x, y) that fall within
// the angle range.
func (s *BrailleSurface) setOctantDots(cx, cy, x, y int, startDeg, endDeg float64, kind ArcKind) {
	points := [8][2]int{
		{cx + x, cy - y},
		{cx + y, cy - x},
		{cx - y, cy - x},
		{cx - x, cy - y},
		{cx - x, cy + y},
		{cx - y, cy + x},
		{cx + y, cy + x},
		{cx + x, cy + y},
	}
	for _, p := range points {
		if !inArcRange(cx, cy, p[0], p[1], startDeg, endDeg) {
			continue
		}
		s.setDot(p[0], p[1], kind)
	}
}

func (s *BrailleSurface) setDot(x, y int, kind ArcKind) {
	if x < 0 || y < 0 || x >= s.cols*2 || y >= s.rows*4 {
		return
	}
	s.canvas.Set(x, y)
	s.kinds[cellPos{col: x / 2, row: y / 4}] = kind
}

// inArcRange reports whether the point's angle from the center falls
// within [startDeg, endDeg]. Y grows downward, so atan2 yields clockwise
// angles directly. Ranges ending past 360 wrap around.
func inArcRange(cx, cy, px, py int, startDeg, endDeg float64) bool {
	angle := math.Atan2(float64(py-cy), float64(px-cx)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	if endDeg > 360 {
		return angle >= startDeg || angle <= endDeg-360
	}
	return angle >= startDeg && angle <= endDeg
}

// DrawText places a text run over the cells nearest the rect. Braille
// cells cannot scale glyphs, so the size only gates whether the layout
// engine produced a usable fit.
func (s *BrailleSurface) DrawText(text string, rect geometry.Rect, size float64, kind TextKind) {
	if text == "" || size <= 0 {
		return
	}
	row := int((rect.Top + rect.Bottom) / 2 / 4)
	col := int(rect.Left / 2)
	s.texts = append(s.texts, placedText{text: text, col: col, row: row, kind: kind})
}

// Render flattens the frame into a styled string, one line per terminal
// row.
func (s *BrailleSurface) Render() string {
	grid := make([][]rune, s.rows)
	for i := range grid {
		grid[i] = blankRow(s.cols)
	}
	for r, line := range s.canvas.Rows(0, 0, s.cols*2, s.rows*4) {
		if r >= s.rows {
			break
		}
		for c, ch := range []rune(line) {
			if c >= s.cols {
				break
			}
			grid[r][c] = ch
		}
	}

	text := make(map[cellPos]placedRune)
	for _, t := range s.texts {
		for i, ch := range []rune(t.text) {
			pos := cellPos{col: t.col + i, row: t.row}
			if pos.col < 0 || pos.col >= s.cols || pos.row < 0 || pos.row >= s.rows {
				continue
			}
			text[pos] = placedRune{ch: ch, kind: t.kind}
		}
	}

	var b strings.Builder
	for r := 0; r < s.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		s.renderRow(&b, r, grid[r], text)
	}
	return b.String()
}

type placedRune struct {
	ch   rune
	kind TextKind
}

func (s *BrailleSurface) renderRow(b *strings.Builder, row int, cells []rune, text map[cellPos]placedRune) {
	var run []rune
	var runStyle lipgloss.Style
	var haveRun bool

	flush := func() {
		if len(run) == 0 {
			return
		}
		b.WriteString(runStyle.Render(string(run)))
		run = run[:0]
	}

	for col, ch := range cells {
		pos := cellPos{col: col, row: row}
		style := lipgloss.NewStyle()
		if tr, ok := text[pos]; ok {
			ch = tr.ch
			if tr.kind == TextUnit {
				style = s.unit
			} else {
				style = s.value
			}
		} else if blankCell(ch) {
			ch = ' '
		} else if kind, ok := s.kinds[pos]; ok {
			style = s.colors[kind]
		}

		if !haveRun || !sameStyle(runStyle, style) {
			flush()
			runStyle = style
			haveRun = true
		}
		run = append(run, ch)
	}
	flush()
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// blankCell reports whether a braille character carries no dots.
func blankCell(ch rune) bool {
	return ch == ' ' || ch == '⠀' || ch == 0
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.Render("x") == b.Render("x")
}
