// Package theme centralizes Lip Gloss styles for the signage display.
package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme groups the styles used across the board.
type Theme struct {
	Header     HeaderTheme
	Column     ColumnTheme
	Notice     NoticeTheme
	Assignment AssignmentTheme
	Ad         AdTheme
	Banner     lipgloss.Style
	Audio      AudioTheme
	Startup    StartupTheme
}

// HeaderTheme styles the top date/class strip.
type HeaderTheme struct {
	Date   lipgloss.Style
	Day    lipgloss.Style
	Class  lipgloss.Style
	School lipgloss.Style
	Clock  lipgloss.Style
}

// ColumnTheme styles one weekday schedule column.
type ColumnTheme struct {
	Frame      lipgloss.Style
	Title      lipgloss.Style
	TitleToday lipgloss.Style
	Time       lipgloss.Style
	Content    lipgloss.Style
	Empty      lipgloss.Style
}

// NoticeTheme styles the notice board.
type NoticeTheme struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Item      lipgloss.Style
	Highlight lipgloss.Style
	Empty     lipgloss.Style
}

// AssignmentTheme styles the deadline table, one style per countdown bucket.
type AssignmentTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Row      lipgloss.Style
	Overdue  lipgloss.Style
	DueToday lipgloss.Style
	Urgent   lipgloss.Style
	Normal   lipgloss.Style
	Empty    lipgloss.Style
}

// AdTheme styles the ad surface.
type AdTheme struct {
	Frame       lipgloss.Style
	Label       lipgloss.Style
	Placeholder lipgloss.Style
	QuietNote   lipgloss.Style
}

// AudioTheme styles the audio status chip.
type AudioTheme struct {
	On  lipgloss.Style
	Off lipgloss.Style
}

// StartupTheme styles the boot overlay.
type StartupTheme struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Countdown lipgloss.Style
	Hint      lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	return Theme{
		Header: HeaderTheme{
			Date:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			Day:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Class:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			School: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Clock:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		},
		Column: ColumnTheme{
			Frame:      frame,
			Title:      title,
			TitleToday: title.Foreground(lipgloss.Color("214")).Underline(true),
			Time:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Content:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Empty:      muted,
		},
		Notice: NoticeTheme{
			Frame:     frame,
			Title:     title,
			Item:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			Empty:     muted,
		},
		Assignment: AssignmentTheme{
			Frame:    frame,
			Title:    title,
			Row:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Overdue:  lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241")),
			DueToday: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			Urgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			Empty:    muted,
		},
		Ad: AdTheme{
			Frame:       frame.BorderForeground(lipgloss.Color("61")),
			Label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("183")),
			Placeholder: muted,
			QuietNote:   muted,
		},
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("214")).
			Padding(0, 2),
		Audio: AudioTheme{
			On:  lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("114")).Padding(0, 1),
			Off: lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("203")).Padding(0, 1),
		},
		Startup: StartupTheme{
			Frame:     frame.Padding(1, 4),
			Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			Countdown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			Hint:      muted,
		},
	}
}
