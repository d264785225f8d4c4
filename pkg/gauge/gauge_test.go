package gauge

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/windlass/ringview/pkg/anim"
	"github.com/windlass/ringview/pkg/geometry"
)

type arcCall struct {
	bounds geometry.Rect
	start  float64
	sweep  float64
	kind   ArcKind
}

type textCall struct {
	text string
	rect geometry.Rect
	size float64
	kind TextKind
}

// recordingSurface captures draw calls for inspection.
type recordingSurface struct {
	width, height float64
	arcs          []arcCall
	texts         []textCall
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }

func (s *recordingSurface) DrawArc(bounds geometry.Rect, start, sweep float64, kind ArcKind) {
	s.arcs = append(s.arcs, arcCall{bounds: bounds, start: start, sweep: sweep, kind: kind})
}

func (s *recordingSurface) DrawText(text string, rect geometry.Rect, size float64, kind TextKind) {
	s.texts = append(s.texts, textCall{text: text, rect: rect, size: size, kind: kind})
}

func (s *recordingSurface) arcsOf(kind ArcKind) []arcCall {
	var out []arcCall
	for _, a := range s.arcs {
		if a.kind == kind {
			out = append(out, a)
		}
	}
	return out
}

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func (c *stubClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type stubScheduler struct {
	fn func()
}

func (s *stubScheduler) ScheduleAfter(d time.Duration, fn func()) anim.CancelFunc {
	s.fn = fn
	return func() { s.fn = nil }
}

func (s *stubScheduler) fire() {
	if s.fn == nil {
		return
	}
	fn := s.fn
	s.fn = nil
	fn()
}

func newTestGauge(t *testing.T, opts ...anim.Option) (*Gauge, *stubClock, *stubScheduler) {
	t.Helper()
	clock := &stubClock{now: time.Unix(1000, 0)}
	sched := &stubScheduler{}
	base := []anim.Option{anim.WithClock(clock), anim.WithScheduler(sched)}
	engine := anim.NewEngine(append(base, opts...)...)
	t.Cleanup(engine.Close)
	g := New(engine, DefaultStyle())
	g.Resize(200, 200)
	return g, clock, sched
}

func step(clock *stubClock, sched *stubScheduler, interval time.Duration) {
	clock.advance(interval)
	sched.fire()
}

func TestDrawIdleValue(t *testing.T) {
	g, _, _ := newTestGauge(t)
	g.Engine().SetValue(25)

	s := &recordingSurface{width: 200, height: 200}
	g.Draw(s)

	bars := s.arcsOf(ArcBar)
	if len(bars) != 1 {
		t.Fatalf("expected 1 value arc, got %d", len(bars))
	}
	if bars[0].start != -90 {
		t.Errorf("value arc start = %v, want -90", bars[0].start)
	}
	if math.Abs(bars[0].sweep-90) > 1e-9 {
		t.Errorf("value arc sweep = %v, want 90", bars[0].sweep)
	}
	if len(s.arcsOf(ArcSpinner)) != 0 {
		t.Errorf("idle frame drew a spinner arc")
	}
	if len(s.texts) == 0 {
		t.Fatal("idle frame drew no text")
	}
	if s.texts[0].text != "25" {
		t.Errorf("value text = %q, want %q", s.texts[0].text, "25")
	}
}

func TestDrawBackgroundLayers(t *testing.T) {
	g, _, _ := newTestGauge(t)

	s := &recordingSurface{width: 200, height: 200}
	g.Draw(s)

	if n := len(s.arcsOf(ArcRim)); n != 1 {
		t.Errorf("rim arcs = %d, want 1", n)
	}
	if n := len(s.arcsOf(ArcFill)); n != 1 {
		t.Errorf("fill arcs = %d, want 1", n)
	}
	// Default style has no contour.
	if n := len(s.arcsOf(ArcContour)); n != 0 {
		t.Errorf("contour arcs = %d, want 0", n)
	}

	style := g.Style()
	style.ContourSize = 1
	g.SetStyle(style)
	s = &recordingSurface{width: 200, height: 200}
	g.Draw(s)
	if n := len(s.arcsOf(ArcContour)); n != 2 {
		t.Errorf("contour arcs = %d, want 2", n)
	}
}

func TestDrawSpinner(t *testing.T) {
	g, clock, sched := newTestGauge(t)
	g.Engine().StartSpin()
	for i := 0; i < 5; i++ {
		step(clock, sched, g.Engine().TickInterval())
	}

	s := &recordingSurface{width: 200, height: 200}
	g.Draw(s)

	spin := s.arcsOf(ArcSpinner)
	if len(spin) != 1 {
		t.Fatalf("expected 1 spinner arc, got %d", len(spin))
	}
	length := g.Engine().SpinnerArcLength()
	wantStart := g.Engine().SpinnerSweepAngle() - 90 - length
	if math.Abs(spin[0].start-wantStart) > 1e-9 {
		t.Errorf("spinner start = %v, want %v", spin[0].start, wantStart)
	}
	if math.Abs(spin[0].sweep-length) > 1e-9 {
		t.Errorf("spinner sweep = %v, want %v", spin[0].sweep, length)
	}
	if len(s.arcsOf(ArcBar)) != 0 {
		t.Errorf("spinning frame drew a value arc")
	}
	if len(s.texts) != 0 {
		t.Errorf("spinning frame drew text")
	}
}

func TestDrawHybridShowsBothArcs(t *testing.T) {
	g, clock, sched := newTestGauge(t)
	eng := g.Engine()
	eng.StartSpin()
	step(clock, sched, eng.TickInterval())
	if err := eng.SetValueAnimatedTo(60, 600*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	sawBoth := false
	for i := 0; i < 5000 && eng.State() != anim.StateIdle; i++ {
		step(clock, sched, eng.TickInterval())
		if eng.State() != anim.StateEndSpinningStartAnimating {
			continue
		}
		s := &recordingSurface{width: 200, height: 200}
		g.Draw(s)
		hasSpin := len(s.arcsOf(ArcSpinner)) == 1
		hasBar := len(s.arcsOf(ArcBar)) == 1
		if eng.IsDrawingValueArcWhileSpinning() {
			if !hasSpin || !hasBar {
				t.Fatalf("hybrid arc phase: spinner=%v bar=%v, want both", hasSpin, hasBar)
			}
			sawBoth = true
		} else if hasBar {
			t.Fatal("hybrid drew value arc before completing the revolution")
		}
	}
	if !sawBoth {
		t.Fatal("never observed spinner and value arc together")
	}
}

func TestDrawSkipsDegenerateBounds(t *testing.T) {
	g, _, _ := newTestGauge(t)
	g.Resize(4, 4)

	s := &recordingSurface{width: 4, height: 4}
	g.Draw(s)
	if len(s.arcs) != 0 || len(s.texts) != 0 {
		t.Errorf("degenerate bounds still drew %d arcs and %d texts", len(s.arcs), len(s.texts))
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Gauge)
		value float64
		max   float64
		want  string
	}{
		{name: "percent", value: 30, max: 100, want: "30"},
		{name: "percent scaled max", value: 30, max: 60, want: "50"},
		{
			name: "raw value",
			mut: func(g *Gauge) {
				st := g.Style()
				st.ShowPercent = false
				g.SetStyle(st)
			},
			value: 30, max: 60, want: "30",
		},
		{
			name: "fixed text wins",
			mut: func(g *Gauge) {
				st := g.Style()
				st.Text = "ready"
				g.SetStyle(st)
			},
			value: 30, max: 100, want: "ready",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := newTestGauge(t)
			if err := g.Engine().SetMaxValue(tt.max); err != nil {
				t.Fatal(err)
			}
			g.Engine().SetValue(tt.value)
			if tt.mut != nil {
				tt.mut(g)
			}
			if got := g.displayText(); got != tt.want {
				t.Errorf("displayText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutCachedUntilTextLengthChanges(t *testing.T) {
	g, _, _ := newTestGauge(t)
	g.Engine().SetValue(25)

	s := &recordingSurface{width: 200, height: 200}
	g.Draw(s)
	first := g.layout

	// Same length, layout must be reused as-is.
	g.Engine().SetValue(47)
	g.Draw(s)
	if g.layout != first {
		t.Error("layout recomputed although text length is unchanged")
	}

	// Length change forces a recompute.
	g.Engine().SetValue(5)
	g.Draw(s)
	if g.layout == first {
		t.Error("layout not recomputed after text length changed")
	}
}

func TestValueAtPoint(t *testing.T) {
	g, _, _ := newTestGauge(t)
	c := g.Bounds().Center

	tests := []struct {
		name string
		p    geometry.Point
		want float64
	}{
		{name: "top", p: geometry.Point{X: c.X, Y: c.Y - 10}, want: 0},
		{name: "right", p: geometry.Point{X: c.X + 10, Y: c.Y}, want: 25},
		{name: "bottom", p: geometry.Point{X: c.X, Y: c.Y + 10}, want: 50},
		{name: "left", p: geometry.Point{X: c.X - 10, Y: c.Y}, want: 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ValueAtPoint(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ValueAtPoint(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBrailleSurfaceRender(t *testing.T) {
	style := DefaultStyle()
	s := NewBrailleSurface(40, 20, style)

	w, h := s.Size()
	if w != 80 || h != 160 {
		t.Fatalf("Size() = %v x %v, want 80 x 160", w, h)
	}

	bounds := geometry.NewRect(10, 20, 70, 140)
	s.DrawArc(bounds, 0, 360, ArcRim)
	s.DrawText("42", geometry.NewRect(36, 60, 44, 70), 10, TextValue)

	out := s.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("Render produced %d lines, want 20", len(lines))
	}
	if !strings.Contains(out, "42") {
		t.Error("rendered frame does not contain the value text")
	}
	hasDots := false
	for _, r := range out {
		if r >= 0x2801 && r <= 0x28FF {
			hasDots = true
			break
		}
	}
	if !hasDots {
		t.Error("rendered frame contains no braille dots")
	}

	s.Clear()
	cleared := s.Render()
	for _, r := range cleared {
		if r >= 0x2801 && r <= 0x28FF {
			t.Fatal("Clear left braille dots on the canvas")
		}
	}
}

func TestBrailleSurfaceArcAngles(t *testing.T) {
	s := NewBrailleSurface(40, 40, DefaultStyle())
	bounds := geometry.NewRect(0, 0, 80, 160)

	// Quarter arc starting at 12 o'clock: only the top-right quadrant
	// may contain dots.
	s.DrawArc(bounds, -90, 90, ArcBar)
	cx, cy := 40, 80
	for pos := range s.kinds {
		x := pos.col*2 + 1
		y := pos.row * 4
		if x < cx-2 || y > cy+2 {
			t.Fatalf("dot cell (%d,%d) outside top-right quadrant", pos.col, pos.row)
		}
	}
}
