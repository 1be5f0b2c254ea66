package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

const (
	maxLogLines     = 6
	statusLineDelay = 2 * time.Second
)

// syncRunner performs one sync or compare run.
type syncRunner func(ctx context.Context) (models.ReplicationStatus, error)

type syncModel struct {
	ctx    context.Context
	run    syncRunner
	cancel func()
	events <-chan models.ProgressEvent

	build  models.AppBuildInfo
	device models.DeviceInfo

	spinner spinner.Model
	bar     progress.Model

	state   string
	pushed  int
	pulled  int
	percent float64
	lines   []string

	running    bool
	cancelling bool
	quitting   bool
	showInfo   bool

	status     models.ReplicationStatus
	err        error
	statusLine string

	showError    bool
	errorOverlay errorOverlayModel
}

func newSyncModel(ctx context.Context, run syncRunner, cancel func(), events <-chan models.ProgressEvent) syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return syncModel{
		ctx:     ctx,
		run:     run,
		cancel:  cancel,
		events:  events,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		running: true,
	}
}

func (m syncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRun(), m.cmdWaitEvent())
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-8, 60))
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m = m.apply(models.ProgressEvent(msg))
		return m, m.cmdWaitEvent()

	case syncFinishedMsg:
		m.running = false
		m.cancelling = false
		m.status = msg.status
		m.err = msg.err
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.showError = true
			m.errorOverlay.message = msg.err.Error()
			return m, nil
		}
		m.statusLine = "Report copied to the clipboard"
		return m, tea.Tick(statusLineDelay, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.statusLine = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m syncModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showInfo = false
		}
		if key.Matches(msg, keys.quit) {
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m.quit()

	case key.Matches(msg, keys.cancel):
		if m.running && !m.cancelling {
			m.cancelling = true
			m.cancel()
		}
		return m, nil

	case key.Matches(msg, keys.retry):
		if m.running {
			return m, nil
		}
		m = m.reset()
		return m, tea.Batch(m.spinner.Tick, m.cmdRun())

	case key.Matches(msg, keys.copy):
		if m.running {
			return m, nil
		}
		return m, cmdCopyReport(m.status)

	case key.Matches(msg, keys.info):
		m.showInfo = true
		return m, nil
	}

	return m, nil
}

// quit stops a running sync at its next checkpoint and leaves once it has
// returned.
func (m syncModel) quit() (tea.Model, tea.Cmd) {
	if !m.running {
		return m, tea.Quit
	}
	m.quitting = true
	if !m.cancelling {
		m.cancelling = true
		m.cancel()
	}
	return m, nil
}

func (m syncModel) reset() syncModel {
	m.running = true
	m.state = ""
	m.pushed, m.pulled = 0, 0
	m.percent = 0
	m.lines = nil
	m.status = models.ReplicationStatus{}
	m.err = nil
	return m
}

func (m syncModel) apply(ev models.ProgressEvent) syncModel {
	switch ev.Type {
	case models.ProgressState:
		m.state = ev.State
	case models.ProgressChange:
		if ev.Direction == models.DirectionPush {
			m.pushed = ev.Count
		} else {
			m.pulled = ev.Count
		}
	case models.ProgressIndex:
		m.percent = float64(ev.Percent) / 100
	case models.ProgressMessage, models.ProgressCancelled:
		if ev.Message != "" {
			m.lines = append(m.lines, ev.Message)
			if len(m.lines) > maxLogLines {
				m.lines = m.lines[len(m.lines)-maxLogLines:]
			}
		}
	}
	return m
}

func (m syncModel) cmdRun() tea.Cmd {
	ctx, run := m.ctx, m.run
	return func() tea.Msg {
		st, err := run(ctx)
		return syncFinishedMsg{status: st, err: err}
	}
}

func (m syncModel) cmdWaitEvent() tea.Cmd {
	ctx, events := m.ctx, m.events
	return func() tea.Msg {
		select {
		case ev := <-events:
			return progressMsg(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

func cmdCopyReport(status models.ReplicationStatus) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return copiedMsg{err: fmt.Errorf("encode report: %w", err)}
		}
		if err = clipboard.WriteAll(string(data)); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func (m syncModel) View() string {
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.build, m.device))
	}

	var b strings.Builder
	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		label := stateLabel(m.state)
		if m.cancelling {
			label = "stopping after the current batch"
		}
		b.WriteString(stateStyle.Render(label))
		b.WriteString("\n\n")
	}

	b.WriteString(countLine(m.pushed, m.pulled))
	b.WriteString("\n")

	if m.percent > 0 {
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(m.percent))
		b.WriteString("\n")
	}

	if len(m.lines) > 0 {
		b.WriteString("\n")
		for _, line := range m.lines {
			b.WriteString(helpStyle.Render("· " + fitText(line, 70)))
			b.WriteString("\n")
		}
	}

	if !m.running {
		b.WriteString("\n")
		msg := service.StatusMessage(m.status, m.err)
		if m.err != nil || m.status.HasErrors() {
			b.WriteString(errorStyle.Render(msg))
		} else {
			b.WriteString(okStyle.Render(msg))
		}
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(fitText(humanizeServerUnavailableError(m.err), 70))
			b.WriteString("\n")
		}
	}

	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteString("\n")
	}

	page := renderPage("FIELD SYNC", b.String(), m.hotKeys())
	if m.showError {
		page += "\n\n" + m.errorOverlay.View()
	}
	return appStyle.Render(page)
}

func (m syncModel) hotKeys() string {
	if m.running {
		return "x: cancel  i: about  q: quit"
	}
	return "r: sync again  c: copy report  i: about  q: quit"
}
