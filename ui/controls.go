package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelState is the morph state the control panel displays.
type PanelState struct {
	ShapeNames []string
	Current    int
	Target     int
	Progress   float32
	Active     bool // a ramp is in flight
	ColorA     rl.Color
	ColorB     rl.Color
	Clear      rl.Color
	Autoplay   bool
}

// PanelActions reports what the user changed this frame.
type PanelActions struct {
	MorphTo  int // shape index of a pressed button, -1 if none
	Scrubbed bool
	Progress float32

	ColorsChanged bool
	ColorA        rl.Color
	ColorB        rl.Color
	ClearChanged  bool
	Clear         rl.Color

	AutoplayChanged bool
	Autoplay        bool
}

// ControlsPanel renders the morph controls: one button per shape, a
// progress slider that follows the live value, colour pickers and the
// autoplay toggle.
type ControlsPanel struct {
	renderer   *Renderer
	x, y       int32
	width      int32
	visible    bool
	showColors bool
	shapes     int // button count of the last Draw
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel, so camera
// input can ignore drags that start on a widget.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(p, c.bounds(c.shapes))
}

const (
	buttonHeight = 24
	pickerSize   = 96
)

func (c *ControlsPanel) height(shapes int) int32 {
	pad := c.renderer.Theme.Padding
	line := c.renderer.Theme.LineHeight
	h := pad*2 + line + 4                   // title
	h += int32(shapes) * (buttonHeight + 4) // morph buttons
	h += line + 24 + 8                      // progress
	h += 2 * (line + 4)                     // toggles
	if c.showColors {
		h += 3 * (line + pickerSize + 8)
	}
	return h
}

func (c *ControlsPanel) bounds(shapes int) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(c.x),
		Y:      float32(c.y),
		Width:  float32(c.width),
		Height: float32(c.height(shapes)),
	}
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(s PanelState) PanelActions {
	act := PanelActions{MorphTo: -1}
	if !c.visible {
		return act
	}
	c.shapes = len(s.ShapeNames)

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	x := c.x + pad
	inner := c.width - pad*2

	r.DrawPanel(c.x, c.y, c.width, c.height(len(s.ShapeNames)))
	y := c.y + pad

	rl.DrawText("Morph", x, y, 16, rl.White)
	y += line + 4

	// One button per shape; the target is marked
	for i, name := range s.ShapeNames {
		r.DrawMarker(x, y+8, 8, i == s.Target)
		label := fmt.Sprintf("%d  %s", i+1, name)
		bounds := rl.Rectangle{X: float32(x + 14), Y: float32(y), Width: float32(inner - 14), Height: buttonHeight}
		if gui.Button(bounds, label) {
			act.MorphTo = i
		}
		y += buttonHeight + 4
	}

	// Progress slider tracks the live value; dragging it scrubs
	r.DrawLabel(x, y, fmt.Sprintf("progress %.3f", s.Progress))
	y += line
	p := gui.SliderBar(
		rl.Rectangle{X: float32(x + 14), Y: float32(y), Width: float32(inner - 28), Height: 20},
		"0", "1",
		s.Progress, 0, 1,
	)
	if p != s.Progress {
		act.Scrubbed = true
		act.Progress = p
	}
	y += 24 + 8

	autoplay := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14}, "autoplay", s.Autoplay)
	if autoplay != s.Autoplay {
		act.AutoplayChanged = true
		act.Autoplay = autoplay
	}
	y += line + 4

	c.showColors = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14}, "colours", c.showColors)
	y += line + 4

	if !c.showColors {
		return act
	}

	act.ColorA, act.ColorB, act.Clear = s.ColorA, s.ColorB, s.Clear
	pick := func(label string, col rl.Color) rl.Color {
		r.DrawLabel(x, y, label)
		y += line
		out := gui.ColorPicker(rl.Rectangle{X: float32(x), Y: float32(y), Width: pickerSize, Height: pickerSize}, "", col)
		y += pickerSize + 8
		return out
	}

	if a := pick("colour A", s.ColorA); a != s.ColorA {
		act.ColorA = a
		act.ColorsChanged = true
	}
	if b := pick("colour B", s.ColorB); b != s.ColorB {
		act.ColorB = b
		act.ColorsChanged = true
	}
	if cl := pick("clear", s.Clear); cl != s.Clear {
		act.Clear = cl
		act.ClearChanged = true
	}

	return act
}
