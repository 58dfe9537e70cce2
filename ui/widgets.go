package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed panels and descriptor sections.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabel draws a text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawMarker draws a filled square left of a control to flag it as active.
func (r *Renderer) DrawMarker(x, y, size int32, active bool) {
	c := r.Theme.BarBg
	if active {
		c = r.Theme.ActiveButton
	}
	rl.DrawRectangle(x, y, size, size, c)
}

// rowHeight is the vertical space a field takes.
func (r *Renderer) rowHeight(w WidgetType) int32 {
	switch w {
	case WidgetSpacer:
		return 6
	case WidgetBar:
		return r.Theme.LineHeight + 2
	default:
		return r.Theme.LineHeight
	}
}

// SectionHeight measures sd for data without drawing it.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	var h int32
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		h += r.rowHeight(fd.Widget)
	}
	return h
}

// DrawSection renders the visible fields of sd under its title and returns
// the Y below the last row.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	t := r.Theme
	if sd.Title != "" {
		rl.DrawText(sd.Title, x, y, t.HeaderFontSize, t.SectionHeader)
		y += t.LineHeight
	}

	valueX := x + t.LabelWidth
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		if fd.Widget != WidgetSpacer {
			rl.DrawText(fd.Label+":", x, y, t.FontSize, t.LabelColor)
		}

		switch fd.Widget {
		case WidgetText:
			rl.DrawText(fd.TextGetter(data), valueX, y, t.FontSize, t.ValueColor)

		case WidgetBar:
			v := fd.Getter(data)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			barWidth := width - t.LabelWidth - 50
			rl.DrawRectangle(valueX, y+2, barWidth, t.BarHeight, t.BarBg)
			rl.DrawRectangle(valueX, y+2, int32(float32(barWidth)*v), t.BarHeight, t.BarFill)
			rl.DrawText(fmt.Sprintf("%.2f", v), valueX+barWidth+5, y, t.FontSize, t.ValueColor)

		case WidgetColorSwatch:
			rl.DrawRectangle(valueX, y+1, 12, 12, fd.ColorGetter(data))
			rl.DrawText(hexLabel(fd.ColorGetter(data)), valueX+18, y, t.FontSize, t.ValueColor)
		}

		y += r.rowHeight(fd.Widget)
	}
	return y
}

// hexLabel formats a colour as #rrggbb.
func hexLabel(c rl.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
