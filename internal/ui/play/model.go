package play

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quiz/pkg/quiz"
)

// Options configures the play model.
type Options struct {
	AttemptID        string
	NoColor          bool
	TickInterval     time.Duration
	AutosaveInterval time.Duration
	RequestTimeout   time.Duration
}

// Model renders an interactive quiz attempt using Bubble Tea.
type Model struct {
	api              quiz.API
	state            State
	table            table.Model
	tickInterval     time.Duration
	autosaveInterval time.Duration
	requestTimeout   time.Duration
	noColor          bool
	quitting         bool
}

// NewModel constructs a play model for one attempt.
func NewModel(api quiz.API, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	autosaveInterval := opts.AutosaveInterval
	if autosaveInterval <= 0 {
		autosaveInterval = 5 * time.Second
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	t := table.New(
		table.WithColumns(resultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(len(resultLabels)+1),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		api:              api,
		state:            State{AttemptID: opts.AttemptID, Phase: PhaseLoading},
		table:            t,
		tickInterval:     tickInterval,
		autosaveInterval: autosaveInterval,
		requestTimeout:   requestTimeout,
		noColor:          opts.NoColor,
	}
}

// State returns the current screen state.
func (m Model) State() State {
	return m.state
}

// Init loads the catalog and the stored attempt.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update handles keys, timer ticks and API responses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case loadedMsg:
		m.state = Restore(m.state, typed.questions, typed.attempt)
		if m.state.Phase == PhaseFinishing || m.state.RemainingSec <= 0 {
			m.state.Phase = PhaseFinishing
			return m, m.finish(false)
		}
		return m, tea.Batch(tick(m.tickInterval), autosave(m.autosaveInterval))
	case tickMsg:
		if m.state.Phase != PhaseAnswering {
			return m, nil
		}
		var expired bool
		m.state, expired = Tick(m.state)
		if expired {
			m.state.Phase = PhaseFinishing
			return m, m.finish(true)
		}
		return m, tick(m.tickInterval)
	case autosaveMsg:
		if m.state.Phase != PhaseAnswering {
			return m, nil
		}
		return m, tea.Batch(m.save(), autosave(m.autosaveInterval))
	case savedMsg:
		m.state.Err = ""
		if typed.err != nil {
			m.state.Err = "autosave failed: " + typed.err.Error()
		}
		return m, nil
	case finishedMsg:
		results := typed.results
		m.state.Results = &results
		m.state.Phase = PhaseFinished
		m.state.Err = ""
		m.table.SetRows(resultRows(results))
		return m, nil
	case failedMsg:
		m.state.Phase = PhaseFailed
		m.state.Err = typed.err.Error()
		return m, nil
	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the play screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.state.Phase {
	case PhaseLoading:
		return stylize("Loading attempt "+m.state.AttemptID+"...", m.noColor, lipgloss.Color("244"))
	case PhaseFinishing:
		return stylize("Finishing attempt "+m.state.AttemptID+"...", m.noColor, lipgloss.Color("244"))
	case PhaseFailed:
		return lipgloss.JoinVertical(lipgloss.Left,
			stylize("Error: "+m.state.Err, m.noColor, lipgloss.Color("196")),
			renderHelp("q quit", m.noColor))
	case PhaseFinished:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderHeader(m.state, m.noColor),
			stylize("Results", m.noColor, lipgloss.Color("42")),
			m.table.View(),
			renderHelp("q quit", m.noColor))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.noColor),
		renderQuestion(m.state, m.noColor),
		renderStatus(m.state, m.noColor),
		renderHelp("up/down choose  enter answer  left/right navigate  f finish  q save and quit", m.noColor))
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.state.Phase != PhaseAnswering {
		if key.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.state = MoveCursor(m.state, -1)
	case "down", "j":
		m.state = MoveCursor(m.state, 1)
	case "left", "h":
		m.state = MoveQuestion(m.state, -1)
	case "right", "l":
		m.state = MoveQuestion(m.state, 1)
	case "enter", " ":
		m.state = SelectAnswer(m.state)
		return m, m.save()
	case "f":
		m.state.Phase = PhaseFinishing
		return m, m.finish(true)
	case "q":
		return m.quit()
	}
	return m, nil
}

// quit saves progress of an unfinished attempt before exiting.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.state.Phase != PhaseAnswering {
		m.quitting = true
		return m, tea.Quit
	}
	req := SaveRequest(m.state)
	return m, func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		_ = m.api.Save(ctx, req)
		return quitMsg{}
	}
}

func (m Model) load() tea.Cmd {
	attemptID := m.state.AttemptID
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		questions, err := m.api.Questions(ctx)
		if err != nil {
			return failedMsg{err: err}
		}
		stored, err := m.api.Attempt(ctx, attemptID)
		if err != nil {
			return failedMsg{err: err}
		}
		return loadedMsg{questions: questions, attempt: stored}
	}
}

func (m Model) save() tea.Cmd {
	req := SaveRequest(m.state)
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		return savedMsg{err: m.api.Save(ctx, req)}
	}
}

// finish scores the attempt, saving the latest answers first when asked.
func (m Model) finish(saveFirst bool) tea.Cmd {
	req := SaveRequest(m.state)
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		if saveFirst {
			if err := m.api.Save(ctx, req); err != nil {
				return failedMsg{err: err}
			}
		}
		results, err := m.api.Finish(ctx, req.AttemptID)
		if err != nil {
			return failedMsg{err: err}
		}
		return finishedMsg{results: results}
	}
}

func (m Model) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.requestTimeout)
}

type loadedMsg struct {
	questions []quiz.Question
	attempt   quiz.AttemptResponse
}

type savedMsg struct {
	err error
}

type finishedMsg struct {
	results quiz.Results
}

type failedMsg struct {
	err error
}

type quitMsg struct{}

// tickMsg advances the countdown.
type tickMsg time.Time

// autosaveMsg triggers a periodic save.
type autosaveMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func autosave(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return autosaveMsg(t) })
}
