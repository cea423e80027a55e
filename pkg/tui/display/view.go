package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/gntech/signage/pkg/notify"
)

// View renders the whole board.
func (m *Model) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return ""
	}
	if m.starting {
		return m.startupView()
	}

	rows := []string{
		m.headerView(),
		m.columnsView(),
		m.panelsView(),
		m.footerView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) headerView() string {
	left := m.frame.Header

	right := make([]string, 0, 3)
	if m.notifier.BannerVisible() {
		right = append(right, m.theme.Banner.Render("Updated"))
	}
	if m.chipVisible {
		if m.notifier.AudioState() == notify.Unlocked {
			right = append(right, m.theme.Audio.On.Render("🔊"))
		} else {
			right = append(right, m.theme.Audio.Off.Render("🔇"))
		}
	}
	right = append(right, m.theme.Header.Clock.Render(m.clock.Format("15:04:05")))
	rightStr := strings.Join(right, " ")

	gap := m.termWidth - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + rightStr
}

func (m *Model) columnsView() string {
	th := m.theme.Column
	colsHeight, _ := m.layoutHeights()
	inner := colsHeight - 2
	if inner < 1 {
		inner = 1
	}

	cols := make([]string, 0, len(m.frame.Columns))
	for _, c := range m.frame.Columns {
		title := th.Title.Render(c.Title)
		if c.IsToday {
			title = th.TitleToday.Render(c.Title)
		}
		body := c.Body
		if ps := m.columns[c.DateKey]; ps != nil {
			body = ps.View()
		}
		joined := lipgloss.JoinVertical(lipgloss.Left, title, body)
		cols = append(cols, th.Frame.Width(m.panelWidth()).Height(inner).Render(joined))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) panelsView() string {
	width := m.panelWidth()
	_, panelHeight := m.layoutHeights()

	notices := m.theme.Notice.Frame.Width(width).Height(panelHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Notice.Title.Render(m.frame.Notices.Title),
			m.notices.View(),
		))
	assignments := m.theme.Assignment.Frame.Width(width).Height(panelHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Assignment.Title.Render(m.frame.Assignments.Title),
			m.assignments.View(),
		))
	ad := m.theme.Ad.Frame.Width(width).Height(panelHeight).Render(
		m.renderer.AdSurface(m.adView.Ad, m.adView.Quiet, width),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, notices, assignments, ad)
}

func (m *Model) footerView() string {
	if m.status != "" {
		return m.theme.Ad.Placeholder.Render(m.status)
	}
	if !m.kiosk {
		return m.theme.Ad.Placeholder.Render("q to quit")
	}
	return ""
}

func (m *Model) startupView() string {
	th := m.theme.Startup
	box := th.Frame.Render(lipgloss.JoinVertical(lipgloss.Center,
		th.Title.Render("Class Signage"),
		th.Countdown.Render(fmt.Sprintf("Starting in %d...", m.countdown)),
		th.Hint.Render("press any key to start now"),
	))
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) panelWidth() int {
	w := m.termWidth/3 - 4
	if w < 10 {
		w = 10
	}
	return w
}

// layoutHeights splits the vertical space between the schedule columns row
// and the panels row, after reserving the header and footer lines.
func (m *Model) layoutHeights() (columns, panelInner int) {
	avail := m.termHeight - 2
	if avail < 8 {
		avail = 8
	}
	columns = avail / 2
	panelInner = avail - columns - 3 // frame borders and panel title
	if panelInner < 3 {
		panelInner = 3
	}
	return columns, panelInner
}
