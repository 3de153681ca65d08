package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/quick"

	"KolamStudio/internal/geom"
	"KolamStudio/internal/shape"
)

var ink = color.NRGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}

func newCanvas() *Canvas {
	return New(Options{Width: 200, Height: 150})
}

func line(x1, y1, x2, y2 float64) *shape.Line {
	l := shape.NewLine(geom.Pt(x1, y1), ink, 3)
	l.End = geom.Pt(x2, y2)
	return l
}

func TestAddShapeGrowsListAndHistory(t *testing.T) {
	property := func(n uint8) bool {
		c := newCanvas()
		for i := 0; i < int(n%40); i++ {
			c.AddShape(line(0, 0, float64(i), 10))
		}
		beforeLen, beforeHist := c.Len(), c.HistoryLen()

		s := line(1, 2, 3, 4)
		c.AddShape(s)

		last := c.Shape(c.Len() - 1)
		return c.Len() == beforeLen+1 &&
			c.HistoryLen() == beforeHist+1 &&
			last.Identity() == s.Identity()
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestUndoRestoresInitialState(t *testing.T) {
	c := newCanvas()
	c.AddShape(line(0, 0, 5, 5))
	initial := c.Shapes()

	const n = 7
	for i := 0; i < n; i++ {
		c.AddShape(shape.NewDot(geom.Pt(float64(i), float64(i)), 3, ink))
	}
	for i := 0; i < n; i++ {
		if !c.Undo() {
			t.Fatalf("Undo() #%d reported nothing to undo", i+1)
		}
	}

	got := c.Shapes()
	if len(got) != len(initial) {
		t.Fatalf("after undo: %d shapes, want %d", len(got), len(initial))
	}
	for i := range got {
		if got[i].Identity() != initial[i].Identity() {
			t.Errorf("shape %d identity = %s, want %s", i, got[i].Identity(), initial[i].Identity())
		}
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	c := newCanvas()
	if c.Undo() {
		t.Error("Undo() on empty history reported a change")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.CanUndo() {
		t.Error("CanUndo() = true on a fresh canvas")
	}
}

func TestHistoryCapacityDropsOldest(t *testing.T) {
	c := New(Options{Width: 10, Height: 10, HistoryCapacity: 3})
	for i := 0; i < 5; i++ {
		c.AddShape(shape.NewDot(geom.Pt(1, 1), 1, ink))
	}
	if c.HistoryLen() != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", c.HistoryLen())
	}
	for c.Undo() {
	}
	if c.Len() != 2 {
		t.Errorf("after exhausting history Len() = %d, want 2", c.Len())
	}
}

func TestClearAll(t *testing.T) {
	c := newCanvas()
	c.AddShape(line(0, 0, 10, 10))
	c.Begin(shape.NewStroke(geom.Pt(1, 1), ink, 3))

	c.ClearAll()

	if c.Len() != 0 || c.HistoryLen() != 0 || c.InProgress() != nil || c.Mode() != ModeIdle {
		t.Errorf("ClearAll left state behind: len=%d hist=%d mode=%v", c.Len(), c.HistoryLen(), c.Mode())
	}
}

func TestCommitLifecycle(t *testing.T) {
	c := newCanvas()
	if c.Commit() {
		t.Error("Commit() with nothing in progress reported a commit")
	}

	c.Begin(shape.NewLine(geom.Pt(0, 0), ink, 3))
	c.Update(func(s shape.Shape) { s.(*shape.Line).End = geom.Pt(100, 100) })
	if c.Len() != 0 {
		t.Fatal("in-progress shape must not be committed before Commit")
	}
	if !c.Commit() {
		t.Fatal("Commit() reported nothing committed")
	}

	got, ok := c.Shape(0).(*shape.Line)
	if !ok || got.End != geom.Pt(100, 100) {
		t.Fatalf("committed shape = %#v", c.Shape(0))
	}
	if c.InProgress() != nil || c.Mode() != ModeIdle {
		t.Error("commit must clear the in-progress shape")
	}
}

func TestDiscardDoesNotTouchHistory(t *testing.T) {
	c := newCanvas()
	c.Begin(shape.NewStroke(geom.Pt(0, 0), ink, 3))
	c.Discard()
	if c.Len() != 0 || c.HistoryLen() != 0 {
		t.Errorf("Discard() changed state: len=%d hist=%d", c.Len(), c.HistoryLen())
	}
}

func TestCommittedCurveEntersEditMode(t *testing.T) {
	c := newCanvas()
	c.AddShape(line(0, 0, 1, 1))
	c.Begin(shape.NewCurve(geom.Pt(10, 10), ink, 3))
	c.Commit()
	if c.EditingCurve() != 1 {
		t.Errorf("EditingCurve() = %d, want 1", c.EditingCurve())
	}
	c.Undo()
	if c.EditingCurve() != -1 {
		t.Error("undo must leave curve edit mode")
	}
}

func TestDeleteRemovesTopmost(t *testing.T) {
	c := newCanvas()
	circle := shape.NewCircle(geom.Pt(50, 50), ink, nil, 2)
	circle.Radius = 20
	dot := shape.NewDot(geom.Pt(50, 50), 4, ink)
	c.AddShape(circle)
	c.AddShape(dot)

	if !c.DeleteAt(geom.Pt(50, 50)) {
		t.Fatal("DeleteAt() found nothing")
	}
	if c.Len() != 1 || c.Shape(0).Identity() != circle.Identity() {
		t.Errorf("expected only the circle to remain, got %d shapes", c.Len())
	}

	if c.DeleteAt(geom.Pt(190, 140)) {
		t.Error("DeleteAt() on empty space reported a deletion")
	}

	c.Undo()
	if c.Len() != 2 {
		t.Errorf("undo after delete: Len() = %d, want 2", c.Len())
	}
}

func TestMoveIsUndoable(t *testing.T) {
	c := newCanvas()
	c.AddShape(line(10, 10, 50, 10))
	hist := c.HistoryLen()

	if !c.BeginMove(geom.Pt(30, 10)) {
		t.Fatal("BeginMove() missed the line")
	}
	if c.Mode() != ModeMoving || c.Selected() != 0 {
		t.Fatalf("mode=%v selected=%d", c.Mode(), c.Selected())
	}
	c.Drag(geom.Pt(30, 10))
	if c.HistoryLen() != hist {
		t.Error("a zero-length drag must not push history")
	}
	c.Drag(geom.Pt(35, 30))
	c.Drag(geom.Pt(40, 40))
	c.EndDrag()

	moved := c.Shape(0).(*shape.Line)
	if moved.Start != geom.Pt(20, 40) || moved.End != geom.Pt(60, 40) {
		t.Errorf("moved line = %v -> %v", moved.Start, moved.End)
	}
	if c.HistoryLen() != hist+1 {
		t.Errorf("HistoryLen() = %d, want %d", c.HistoryLen(), hist+1)
	}
	if c.Selected() != -1 || c.Mode() != ModeIdle {
		t.Error("EndDrag must release the selection")
	}

	c.Undo()
	back := c.Shape(0).(*shape.Line)
	if back.Start != geom.Pt(10, 10) {
		t.Errorf("undo after move: start = %v, want (10,10)", back.Start)
	}
}

func TestCurveHandleEdit(t *testing.T) {
	c := newCanvas()
	curve := shape.NewCurve(geom.Pt(20, 100), ink, 3)
	curve.End = geom.Pt(180, 100)
	curve.Control = geom.Pt(100, 100)
	c.Begin(curve)
	c.Commit()

	if c.BeginCurveEdit(geom.Pt(60, 60)) {
		t.Fatal("BeginCurveEdit() accepted a point far from every handle")
	}
	if !c.BeginCurveEdit(geom.Pt(105, 95)) {
		t.Fatal("BeginCurveEdit() missed the control handle")
	}
	c.Drag(geom.Pt(105, 35))
	c.EndDrag()

	got := c.Shape(0).(*shape.Curve)
	if got.Control != geom.Pt(100, 40) {
		t.Errorf("control = %v, want (100,40)", got.Control)
	}
	if got.Start != geom.Pt(20, 100) || got.End != geom.Pt(180, 100) {
		t.Errorf("start/end moved: %v %v", got.Start, got.End)
	}
	if c.EditingCurve() != 0 {
		t.Error("curve should stay in edit mode after the drag")
	}
}

func TestFrameIsStableUntilChange(t *testing.T) {
	c := newCanvas()
	c.AddShape(line(10, 10, 150, 120))
	c.Begin(shape.NewDot(geom.Pt(40, 40), 6, ink))

	f1 := c.Frame().(*image.RGBA)
	f2 := c.Frame().(*image.RGBA)
	if !bytes.Equal(f1.Pix, f2.Pix) {
		t.Error("two frames of an unchanged canvas differ")
	}

	c.Discard()
	f3 := c.Frame().(*image.RGBA)
	if bytes.Equal(f1.Pix, f3.Pix) {
		t.Error("frame did not change after discarding the preview")
	}
}

func TestRenderWithoutSurface(t *testing.T) {
	c := New(Options{})
	if c.Frame() != nil {
		t.Error("Frame() without a surface should be nil")
	}
	if err := c.ExportPNG(&bytes.Buffer{}); err != ErrNoSurface {
		t.Errorf("ExportPNG() error = %v, want ErrNoSurface", err)
	}
}

func TestExportPNGIsOpaque(t *testing.T) {
	c := New(Options{Width: 60, Height: 40, Background: color.NRGBA{R: 10, G: 20, B: 30, A: 0}})
	c.AddShape(line(5, 20, 55, 20))

	var buf bytes.Buffer
	if err := c.ExportPNG(&buf); err != nil {
		t.Fatalf("ExportPNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("exported size = %v", b)
	}
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0xffff {
		t.Errorf("corner alpha = %#x, want opaque", a)
	}
}

func TestOnChangeFires(t *testing.T) {
	c := newCanvas()
	calls := 0
	c.OnChange = func() { calls++ }
	before := c.Revision()

	c.AddShape(line(0, 0, 1, 1))
	c.Undo()
	c.Undo()

	if calls != 2 {
		t.Errorf("OnChange calls = %d, want 2", calls)
	}
	if c.Revision() <= before {
		t.Error("revision did not advance")
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestLaterShapesPaintOnTop(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	c := newCanvas()
	c.AddShape(shape.NewDot(geom.Pt(50, 50), 20, red))
	c.AddShape(shape.NewDot(geom.Pt(70, 50), 20, blue))

	f := c.Frame().(*image.RGBA)
	if got := f.RGBAAt(60, 50); !near(got, color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("overlap pixel = %v, want blue", got)
	}
	if got := f.RGBAAt(40, 50); !near(got, color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("red-only pixel = %v, want red", got)
	}
}

func TestEraserCoversWithBackground(t *testing.T) {
	tests := []struct {
		name string
		bg   color.NRGBA
		want color.NRGBA
	}{
		{"opaque", color.NRGBA{R: 240, G: 230, B: 200, A: 0xff}, color.NRGBA{R: 240, G: 230, B: 200, A: 0xff}},
		{"translucent", color.NRGBA{B: 0xff, A: 0x80}, color.NRGBA{R: 127, G: 127, B: 0xff, A: 0xff}},
		{"transparent", color.NRGBA{R: 255, G: 255, B: 255, A: 0x40}, color.NRGBA{R: 255, G: 255, B: 255, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{Width: 100, Height: 100, Background: tt.bg})
			if got := c.Background(); got != tt.want {
				t.Fatalf("Background() = %v, want %v", got, tt.want)
			}
			c.AddShape(shape.NewDot(geom.Pt(50, 50), 10, color.NRGBA{A: 0xff}))
			eraser := shape.NewEraser(geom.Pt(20, 50), 30)
			eraser.Points = append(eraser.Points, geom.Pt(80, 50))
			c.AddShape(eraser)

			want := color.RGBA{R: tt.want.R, G: tt.want.G, B: tt.want.B, A: 0xff}
			frame := c.Frame().(*image.RGBA)
			if got := frame.RGBAAt(50, 50); !near(got, want) {
				t.Errorf("live pixel under eraser = %v, want %v", got, want)
			}

			var buf bytes.Buffer
			if err := c.ExportPNG(&buf); err != nil {
				t.Fatalf("ExportPNG() error = %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			got := color.RGBAModel.Convert(img.At(50, 50)).(color.RGBA)
			if !near(got, want) {
				t.Errorf("exported pixel under eraser = %v, want %v", got, want)
			}
		})
	}
}

func TestActiveID(t *testing.T) {
	c := newCanvas()
	l := line(10, 10, 50, 10)
	c.AddShape(l)
	if c.ActiveID() != "" {
		t.Error("ActiveID() should be empty with nothing selected")
	}

	c.BeginMove(geom.Pt(30, 10))
	if got := c.ActiveID(); got != l.Identity() {
		t.Errorf("ActiveID() while moving = %q, want %q", got, l.Identity())
	}
	c.EndDrag()
	if c.ActiveID() != "" {
		t.Error("ActiveID() should clear after the drag")
	}

	curve := shape.NewCurve(geom.Pt(100, 100), ink, 3)
	c.Begin(curve)
	c.Commit()
	if got := c.ActiveID(); got != curve.Identity() {
		t.Errorf("ActiveID() in curve edit = %q, want %q", got, curve.Identity())
	}
}
