// Package ui is the desktop front end: a window holding the drawing board,
// the toolbar and a status line.
package ui

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"KolamStudio/internal/config"
	"KolamStudio/internal/engine"
	"KolamStudio/internal/export"
	"KolamStudio/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Studio wires the engine, the tool controller and the widgets together.
type Studio struct {
	cfg *config.Config
	log *slog.Logger

	canvas *engine.Canvas
	ctl    *tool.Controller

	win        fyne.Window
	board      *BoardWidget
	status     *widget.Label
	toolSelect *widget.Select
	fillCheck  *widget.Check
	sizeSlider *widget.Slider
	fill       color.NRGBA
}

// NewStudio builds the main window of a. Nothing is shown yet.
func NewStudio(a fyne.App, cfg *config.Config, logger *slog.Logger) *Studio {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Studio{
		cfg:    cfg,
		log:    logger,
		status: widget.NewLabel("Ready"),
	}

	s.canvas = engine.New(engine.Options{
		Width:           cfg.Canvas.Width,
		Height:          cfg.Canvas.Height,
		Background:      cfg.Background(),
		HistoryCapacity: cfg.History.Capacity,
		Logger:          logger.With("component", "engine"),
	})

	settings := tool.Settings{
		Color:      cfg.BrushColor(),
		Fill:       cfg.FillColor(),
		Size:       cfg.Brush.Size,
		EraserSize: cfg.Brush.EraserSize,
		MinSize:    cfg.Brush.MinSize,
		MaxSize:    cfg.Brush.MaxSize,
	}
	s.fill = settings.Color
	if settings.Fill != nil {
		s.fill = *settings.Fill
	}
	s.ctl = tool.NewController(s.canvas, settings, logger.With("component", "tool"))
	s.ctl.OnToolChange = s.toolChanged

	s.board = NewBoardWidget(s.ctl)
	toolbar := s.newToolbar()
	s.fillCheck.SetChecked(settings.Fill != nil)

	s.canvas.OnChange = func() {
		s.board.Refresh()
		s.refreshStatus()
	}

	s.win = a.NewWindow("Kolam Studio")
	s.win.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)+80))
	s.win.SetContent(container.NewBorder(toolbar, s.status, nil, nil, s.board))
	s.win.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) { s.undo() })

	s.toolSelect.SetSelected(tool.Pencil.String())
	s.refreshStatus()
	return s
}

// Window returns the main window.
func (s *Studio) Window() fyne.Window { return s.win }

func (s *Studio) refreshStatus() {
	undo := "nothing to undo"
	if s.canvas.CanUndo() {
		undo = "undo available"
	}
	text := fmt.Sprintf("Tool: %s | Shapes: %d | %s", s.ctl.Tool(), s.canvas.Len(), undo)
	if id := s.canvas.ActiveID(); id != "" {
		text += " | Active: " + shortID(id)
	}
	s.status.SetText(text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *Studio) undo() {
	if !s.ctl.Undo() {
		s.log.Debug("undo with empty history")
	}
}

func (s *Studio) clear() {
	s.ctl.ClearAll()
}

func (s *Studio) save() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			s.fail("save dialog", err)
			return
		}
		if w == nil {
			return
		}
		defer func() {
			if err := w.Close(); err != nil {
				s.log.Warn("close export", "uri", w.URI().String(), "err", err)
			}
		}()
		if err := s.saveTo(w, w.URI().Name()); err != nil {
			s.fail("save", err)
		}
	}, s.win)
	d.SetFileName(s.cfg.Export.Filename)
	d.Show()
}

// saveTo encodes the drawing to w in the format implied by name.
func (s *Studio) saveTo(w io.Writer, name string) error {
	f, err := export.FormatFor(name)
	if err != nil {
		return err
	}
	if err := export.Write(w, f, s.canvas); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	s.log.Info("drawing exported", "name", name, "format", f, "shapes", s.canvas.Len())
	s.status.SetText("Saved " + name)
	return nil
}

// fail reports an error on the status line and the log. It never opens a
// modal dialog.
func (s *Studio) fail(op string, err error) {
	s.log.Warn(op+" failed", "err", err)
	s.status.SetText(fmt.Sprintf("Could not %s: %v", op, err))
}

// RunApp opens the studio window and blocks until it is closed.
func RunApp(cfg *config.Config, logger *slog.Logger) {
	a := app.New()
	s := NewStudio(a, cfg, logger)
	s.Window().ShowAndRun()
}
