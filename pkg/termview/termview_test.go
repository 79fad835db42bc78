package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ss.SetSize(w, h)
	t.Cleanup(ss.Fini)
	return ss
}

func TestShade(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		want  rune
	}{
		{"透明", 0, ' '},
		{"很暗也可见", 0.05, '.'},
		{"最亮", 1, '@'},
		{"超出上限", 2, '@'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shade(tt.alpha); got != tt.want {
				t.Errorf("Shade(%v) = %q, want %q", tt.alpha, got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	if col, row, ok := Cell(400, 300, 800, 600, 80, 24); !ok || col != 40 || row != 12 {
		t.Errorf("centre = (%d, %d, %v), want (40, 12, true)", col, row, ok)
	}
	if _, _, ok := Cell(800, 10, 800, 600, 80, 24); ok {
		t.Error("x == width should be outside")
	}
	if _, _, ok := Cell(-1, 10, 800, 600, 80, 24); ok {
		t.Error("negative x should be outside")
	}
}

func TestRendererDraw(t *testing.T) {
	ss := newSimScreen(t, 80, 25)
	r := NewRenderer(ss)

	red := config.RGB{R: 200, G: 16, B: 46}
	particles := []components.BallParticle{
		{X: 400, Y: 300, Alpha: 0.4, Color: config.RGB{R: 75, G: 85, B: 99}},
		{X: 401, Y: 301, Alpha: 1, Color: red},
		{X: -5, Y: 10, Alpha: 1, Color: red},
	}
	r.Draw(particles, 800, 600, "loader 世界")

	ch, _, style, _ := ss.GetContent(40, 12)
	if ch != '@' {
		t.Errorf("nearest particle should win the cell, got %q", ch)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(200, 16, 46) {
		t.Errorf("cell colour = %v, want the particle colour", fg)
	}

	var status []rune
	for x := 0; x < 80; x++ {
		ch, _, _, width := ss.GetContent(x, 24)
		if ch != ' ' {
			status = append(status, ch)
		}
		if width == 2 {
			x++
		}
	}
	if string(status) != "loader世界" {
		t.Errorf("status row = %q", string(status))
	}
	startCol := (80 - runewidth.StringWidth("loader 世界")) / 2
	if ch, _, _, _ := ss.GetContent(startCol, 24); ch != 'l' {
		t.Errorf("status should be centred at column %d, got %q", startCol, ch)
	}
}
