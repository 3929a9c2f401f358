// Package tui renders the queues and mascot in the terminal. It observes app
// state read-only; every mutation goes through the app layer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/SusanLiu63/PRNeko/internal/app"
	"github.com/SusanLiu63/PRNeko/internal/model"
	"github.com/SusanLiu63/PRNeko/internal/queue"
)

const refreshPollEvery = time.Second

type dashboardMode int

const (
	modeList dashboardMode = iota
	modeAddURL
)

// Dashboard is the bubbletea model for the main view.
type Dashboard struct {
	app        *app.App
	quietHours bool

	snap     queue.Snapshot
	mood     model.Mood
	fetching bool
	lastErr  string

	mode    dashboardMode
	cursor  int
	width   int
	height  int
	message string

	spin   spinner.Model
	input  textinput.Model
	styles Styles
}

type stateMsg struct {
	snap queue.Snapshot
}

type tickMsg time.Time

type refreshedMsg struct {
	err error
}

type addedMsg struct {
	url string
	err error
}

// NewDashboard creates the dashboard model.
func NewDashboard(a *app.App, quietHours bool) *Dashboard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "https://github.com/owner/repo/pull/123"
	in.CharLimit = 200

	return &Dashboard{
		app:        a,
		quietHours: quietHours,
		snap:       a.Snapshot(),
		mood:       a.Mood(),
		spin:       sp,
		input:      in,
		styles:     DefaultStyles(),
	}
}

// Run starts the bubbletea program. Queue-store notifications are forwarded
// into the program as messages.
func (d *Dashboard) Run() error {
	program := tea.NewProgram(d, tea.WithAltScreen())
	d.app.Queues().Subscribe(func(snap queue.Snapshot) {
		program.Send(stateMsg{snap: snap})
	})
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.spin.Tick, d.tickCmd(), d.refreshCmd())
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case stateMsg:
		d.snap = msg.snap
		d.mood = queue.Mood(msg.snap)
		d.clampCursor()
		return d, nil

	case tickMsg:
		d.fetching = d.app.IsFetching()
		d.lastErr = d.app.LastError()
		return d, d.tickCmd()

	case refreshedMsg:
		d.fetching = d.app.IsFetching()
		d.lastErr = d.app.LastError()
		return d, nil

	case addedMsg:
		d.lastErr = d.app.LastError()
		if msg.err == nil {
			d.message = "added " + msg.url
		}
		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		return d.handleKey(msg)

	default:
		return d, nil
	}
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	var b strings.Builder
	b.WriteString(d.viewHeader())
	b.WriteString("\n")
	for _, q := range model.Queues {
		b.WriteString(d.viewSection(q))
	}
	if d.mode == modeAddURL {
		b.WriteString("\nAdd PR to review: " + d.input.View() + "\n")
	}
	if d.lastErr != "" {
		b.WriteString("\n" + d.styles.Error.Render("! "+d.lastErr) + "\n")
	} else if d.message != "" {
		b.WriteString("\n" + d.styles.Muted.Render(d.message) + "\n")
	}
	b.WriteString(d.viewHelp())
	return d.styles.Box.Render(b.String())
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.mode == modeAddURL {
		switch msg.String() {
		case "enter":
			url := strings.TrimSpace(d.input.Value())
			d.mode = modeList
			d.input.Blur()
			d.input.SetValue("")
			if url == "" {
				return d, nil
			}
			return d, d.addCmd(url)
		case "esc":
			d.mode = modeList
			d.input.Blur()
			d.input.SetValue("")
			return d, nil
		default:
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return d, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "r":
		return d, d.refreshCmd()
	case "a":
		d.mode = modeAddURL
		d.message = ""
		d.input.Focus()
		return d, textinput.Blink
	case "x", "d":
		return d, d.removeSelectedCmd()
	case "B":
		d.app.ClearBlocked()
		return d, nil
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		return d, nil
	case "down", "j":
		d.cursor++
		d.clampCursor()
		return d, nil
	default:
		return d, nil
	}
}

func (d *Dashboard) clampCursor() {
	if n := len(d.snap.PendingReviews); d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *Dashboard) tickCmd() tea.Cmd {
	return tea.Tick(refreshPollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (d *Dashboard) refreshCmd() tea.Cmd {
	d.fetching = true
	return func() tea.Msg {
		err := d.app.RefreshAuthored(context.Background())
		return refreshedMsg{err: err}
	}
}

func (d *Dashboard) addCmd(url string) tea.Cmd {
	return func() tea.Msg {
		err := d.app.AddPendingByURL(context.Background(), url)
		return addedMsg{url: url, err: err}
	}
}

func (d *Dashboard) removeSelectedCmd() tea.Cmd {
	if d.cursor >= len(d.snap.PendingReviews) {
		return nil
	}
	id := d.snap.PendingReviews[d.cursor].ID
	return func() tea.Msg {
		err := d.app.RemovePending(id)
		return addedMsg{err: err}
	}
}

func (d *Dashboard) viewHeader() string {
	mascotStyle := d.styles.Mascot
	if d.quietHours {
		mascotStyle = d.styles.MascotDim
	}
	mascot := mascotStyle.Render(mascotArt(d.mood))

	mood := d.styles.moodStyle(d.mood).Render(d.mood.Face() + " " + d.mood.Label())
	badge := fmt.Sprintf("%d open items", d.snap.Total())
	status := d.styles.Muted.Render(badge)
	if d.fetching {
		status = d.spin.View() + " " + d.styles.Muted.Render("fetching…")
	}

	info := d.styles.Header.Render("PRNeko") + "\n" + mood + "\n" + status
	return lipgloss.JoinHorizontal(lipgloss.Top, mascot, "  ", info)
}

func (d *Dashboard) viewSection(q model.Queue) string {
	items := d.snap.Items(q)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(d.styles.Section.Render(fmt.Sprintf("%s (%d)", q.Title(), len(items))))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(d.styles.Muted.Render("  nothing here"))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range items {
		selected := q == model.QueuePendingReviews && i == d.cursor
		b.WriteString(d.viewRow(item, selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Dashboard) viewRow(item model.Item, selected bool) string {
	width := d.width - 4
	if width < 40 {
		width = 76
	}
	glyph := d.styles.statusStyle(item.Status).Render(item.Status.Glyph())
	meta := d.styles.Muted.Render(fmt.Sprintf("%s · %s", item.Repo, item.Age()))

	titleWidth := width - runewidth.StringWidth(item.Repo) - 14
	title := truncate(item.Title, titleWidth)
	if selected {
		title = d.styles.Selected.Render("› " + title)
	} else {
		title = d.styles.Normal.Render("  " + title)
	}
	return fmt.Sprintf("  %s %s  %s", glyph, title, meta)
}

func (d *Dashboard) viewHelp() string {
	help := "a add · x remove · r refresh · B clear blocked · j/k move · q quit"
	return "\n" + d.styles.HelpBar.Render(help)
}

// truncate shortens s to width display cells with an ellipsis.
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
