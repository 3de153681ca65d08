package engine

import (
	"errors"
	"fmt"
	"image"
	"io"

	"KolamStudio/internal/shape"

	"github.com/gogpu/gg"
)

// ErrNoSurface is returned when the canvas has no drawing surface yet.
var ErrNoSurface = errors.New("canvas has no drawing surface")

// renderLocked draws a full frame into dc: clear to the background,
// committed shapes bottom first, then the in-progress preview. Live frames
// carry selection highlights.
func (c *Canvas) renderLocked(dc *gg.Context, live bool) {
	dc.ClearWithColor(gg.FromColor(c.background))
	for i, s := range c.shapes {
		highlighted := live && (i == c.selected || i == c.editing)
		if err := shape.Render(dc, s, highlighted, c.background); err != nil {
			c.log.Debug("render shape", "kind", s.Kind(), "id", s.Identity(), "err", err)
		}
	}
	if live && c.inProgress != nil {
		if err := shape.Render(dc, c.inProgress, false, c.background); err != nil {
			c.log.Debug("render preview", "kind", c.inProgress.Kind(), "err", err)
		}
	}
}

// Frame returns the current live raster. The frame is re-rendered only
// when the revision changed since the last call, so repeated calls on an
// unchanged canvas return identical pixels. It returns nil when the canvas
// has no surface.
func (c *Canvas) Frame() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dc == nil {
		return nil
	}
	rev := c.revision.Load()
	if c.frame != nil && c.frameRev == rev {
		return c.frame
	}
	c.renderLocked(c.dc, true)
	c.frame = c.dc.Image()
	c.frameRev = rev
	return c.frame
}

// exportContext renders the committed shapes, without selection chrome or
// preview, over the opaque background.
func (c *Canvas) exportContext() (*gg.Context, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.width <= 0 || c.height <= 0 {
		return nil, ErrNoSurface
	}
	dc := gg.NewContext(c.width, c.height)
	c.renderLocked(dc, false)
	return dc, nil
}

// ExportPNG writes an opaque snapshot of the committed drawing to w as PNG.
func (c *Canvas) ExportPNG(w io.Writer) error {
	dc, err := c.exportContext()
	if err != nil {
		c.log.Warn("export png", "err", err)
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		c.log.Warn("export png", "err", err)
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
