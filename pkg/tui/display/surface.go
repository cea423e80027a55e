package display

import (
	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"
)

// panelSurface backs one scrollable board panel with a viewport. It keeps the
// scroll offset as a float so sub-line animation steps accumulate instead of
// truncating to zero between frames.
type panelSurface struct {
	vp      viewport.Model
	ready   bool
	lines   int
	visible int
	offset  float64
}

// Reset swaps in fresh content and rewinds to the top. Called on every
// re-render, right before the scrollers restart.
func (p *panelSurface) Reset(body string, width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if !p.ready {
		p.vp = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
		p.ready = true
	} else {
		p.vp.SetWidth(width)
		p.vp.SetHeight(height)
	}
	p.vp.SetContent(body)
	p.lines = lipgloss.Height(body)
	p.visible = height
	p.offset = 0
	p.vp.SetYOffset(0)
}

// View renders the visible slice of the panel.
func (p *panelSurface) View() string {
	if !p.ready {
		return ""
	}
	return p.vp.View()
}

func (p *panelSurface) ContentHeight() int { return p.lines }

func (p *panelSurface) VisibleHeight() int { return p.visible }

func (p *panelSurface) Offset() float64 { return p.offset }

func (p *panelSurface) SetOffset(o float64) {
	p.offset = o
	if p.ready {
		p.vp.SetYOffset(int(o))
	}
}
