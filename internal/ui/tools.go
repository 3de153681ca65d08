package ui

import (
	"image/color"

	"KolamStudio/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// palette is offered as colour swatches next to the tool selector.
var palette = []color.NRGBA{
	{A: 0xff},
	{R: 0xff, G: 0x57, B: 0x22, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
	{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff},
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func (s *Studio) newToolbar() fyne.CanvasObject {
	names := make([]string, 0, len(tool.Kinds()))
	for _, k := range tool.Kinds() {
		names = append(names, k.String())
	}
	s.toolSelect = widget.NewSelect(names, func(name string) {
		s.ctl.SetTool(tool.ParseKind(name))
	})
	s.toolSelect.PlaceHolder = "Choose a tool"

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, s.pickColor))
	}

	s.fillCheck = widget.NewCheck("Fill", s.setFilling)

	settings := s.ctl.Settings()
	s.sizeSlider = widget.NewSlider(float64(settings.MinSize), float64(settings.MaxSize))
	s.sizeSlider.Step = 1
	s.sizeSlider.SetValue(float64(settings.Size))
	s.sizeSlider.OnChanged = s.setSize
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), s.sizeSlider)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), s.undo),
		widget.NewToolbarAction(theme.DeleteIcon(), s.clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), s.save),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		s.toolSelect,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		s.fillCheck,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
		actions,
	)
}

func (s *Studio) pickColor(c color.NRGBA) {
	s.ctl.SetColor(c)
	if s.fillCheck.Checked {
		s.fill = c
		s.ctl.SetFill(c)
	}
}

func (s *Studio) setFilling(on bool) {
	if !on {
		s.ctl.SetFill(nil)
		return
	}
	s.ctl.SetFill(s.fill)
}

// setSize applies the slider to the eraser while it is active, otherwise
// to the brush.
func (s *Studio) setSize(v float64) {
	if s.ctl.Tool() == tool.Eraser {
		s.ctl.SetEraserSize(int(v))
		return
	}
	s.ctl.SetSize(int(v))
}

func (s *Studio) toolChanged(k tool.Kind) {
	if s.sizeSlider == nil {
		return
	}
	settings := s.ctl.Settings()
	size := settings.Size
	if k == tool.Eraser {
		size = settings.EraserSize
	}
	s.sizeSlider.SetValue(float64(size))
	s.refreshStatus()
}
