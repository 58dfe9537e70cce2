package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Shapes     int
	Capacity   int
	Current    string
	Target     string
	Progress   float32
	Active     bool
	Autoplay   bool
	FPS        int32
	ColorA     rl.Color
	ColorB     rl.Color
	RunID      string
	ShowStatus bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	status   SectionDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		status:   statusSection(),
	}
}

func hud(data any) HUDData { return data.(HUDData) }

// statusSection describes the morph status block.
func statusSection() SectionDescriptor {
	return SectionDescriptor{
		Title: "Status",
		Fields: []FieldDescriptor{
			{Label: "current", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Current }},
			{Label: "target", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Target }},
			{Label: "progress", Widget: WidgetBar, Getter: func(d any) float32 { return hud(d).Progress }},
			{
				Label:      "ramp",
				Widget:     WidgetText,
				TextGetter: func(d any) string { return "running" },
				Visible:    func(d any) bool { return hud(d).Active },
			},
			{Widget: WidgetSpacer},
			{Label: "colour A", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return hud(d).ColorA }},
			{Label: "colour B", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return hud(d).ColorB }},
			{
				Label:      "autoplay",
				Widget:     WidgetText,
				TextGetter: func(d any) string { return "on" },
				Visible:    func(d any) bool { return hud(d).Autoplay },
			},
		},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Shapes: %d | Particles: %d | FPS: %d", data.Shapes, data.Capacity, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	if data.RunID != "" {
		rl.DrawText("run "+data.RunID, 10, 55, 12, rl.Gray)
	}

	if !data.ShowStatus {
		return
	}
	const width = 220
	r := h.renderer
	r.DrawPanel(10, 75, width, r.SectionHeight(h.status, data)+2*r.Theme.Padding)
	r.DrawSection(10+r.Theme.Padding, 75+r.Theme.Padding, h.status, data, width-2*r.Theme.Padding)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Frame: %dus avg, %dus p99, %dus max",
		stats.AvgFrame.Microseconds(), stats.P99Frame.Microseconds(), stats.MaxFrame.Microseconds()),
		x, y, 14, rl.Yellow)
	y += 16

	rl.DrawText(fmt.Sprintf("Ramping: %d/%d frames", stats.RampFrames, stats.Frames), x, y, 12, rl.LightGray)
	y += 14
	if stats.ComputePerParticle > 0 {
		rl.DrawText(fmt.Sprintf("Compute: %dns/slot", stats.ComputePerParticle.Nanoseconds()), x, y, 12, rl.LightGray)
		y += 14
	}

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase], pct),
			x, y, 12, color,
		)
		y += 14
	}
}
