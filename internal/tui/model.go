// Package tui is the interactive terminal calculator.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
	"github.com/zephyrtronium/calc/panel/age"
	"github.com/zephyrtronium/calc/panel/bmi"
)

// Config holds the dependencies of the interface.
type Config struct {
	Theme  string
	Panel  string
	// Places is the number of decimal places results are rounded to. Nil
	// means calc.DefaultPlaces.
	Places *int
	// Converter serves the currency panel. If it is nil, conversions fail.
	Converter *currency.Converter
	From, To  string
	// Timeout bounds each rate fetch.
	Timeout time.Duration
	History history.Recorder
	Log     *slog.Logger
	Now     func() time.Time
}

// Model is the main TUI model
type Model struct {
	panel  panelID
	theme  Theme
	styles styles
	width  int
	height int

	standard   *keypad
	scientific *keypad
	bmi        *form
	age        *form
	currency   *currencyPanel

	spinner spinner.Model
	help    help.Model

	conv    *currency.Converter
	timeout time.Duration
	rec     history.Recorder
	log     *slog.Logger
	now     func() time.Time
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	places := calc.DefaultPlaces
	if cfg.Places != nil {
		places = *cfg.Places
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.History == nil {
		cfg.History = history.Nop{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := ThemeByName(cfg.Theme)
	return Model{
		panel:      parsePanel(cfg.Panel),
		theme:      theme,
		styles:     newStyles(theme),
		standard:   newKeypad(calc.ModeStandard, places),
		scientific: newKeypad(calc.ModeScientific, places),
		bmi:        newBMIForm(),
		age:        newAgeForm(),
		currency:   newCurrencyPanel(cfg.From, cfg.To),
		spinner:    sp,
		help:       help.New(),
		conv:       cfg.Converter,
		timeout:    cfg.Timeout,
		rec:        cfg.History,
		log:        cfg.Log,
		now:        cfg.Now,
	}
}

// Run starts the interface and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.panel = (m.panel + 1) % numPanels
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.panel = (m.panel + numPanels - 1) % numPanels
			return m, nil
		case key.Matches(msg, keys.Theme):
			m.theme = m.theme.Toggle()
			m.styles = newStyles(m.theme)
			m.log.Debug("theme changed", "theme", m.theme.Name)
			return m, nil
		}
		switch m.panel {
		case panelStandard:
			return m.updateKeypad(m.standard, msg)
		case panelScientific:
			return m.updateKeypad(m.scientific, msg)
		case panelBMI:
			return m.updateBMI(msg)
		case panelAge:
			return m.updateAge(msg)
		case panelCurrency:
			return m.updateCurrency(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case conversionMsg:
		m.currency.loading = false
		e := history.Entry{Panel: history.PanelCurrency, Input: msg.input}
		if msg.err != nil {
			m.log.Warn("conversion failed", "input", msg.input, "error", msg.err)
			m.currency.setResult(currency.Message(msg.err), true)
			e.Output, e.Failed = m.currency.result, true
		} else {
			m.currency.setResult(msg.conv.String(), false)
			e.Output = m.currency.result
		}
		return m, m.record(e)

	case recordedMsg:
		if msg.err != nil {
			m.log.Warn("failed to record history", "panel", msg.panel, "error", msg.err)
		}

	case spinner.TickMsg:
		if m.currency.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	default:
		return m, m.focusedForm().update(msg)
	}
	return m, nil
}

// focusedForm returns the form of the current panel, or an empty form.
func (m Model) focusedForm() *form {
	switch m.panel {
	case panelBMI:
		return m.bmi
	case panelAge:
		return m.age
	case panelCurrency:
		return m.currency.form
	}
	return &form{}
}

func (m Model) updateKeypad(k *keypad, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Backspace) {
		k.backspace()
		return m, nil
	}
	label, ok := k.button(msg)
	if !ok {
		return m, nil
	}
	r, evaluated := k.press(label)
	if !evaluated {
		return m, nil
	}
	if r.Failed() {
		m.log.Debug("evaluation failed", "mode", k.buf.Mode(), "error", r.Err)
	}
	return m, m.record(history.Entry{Panel: k.buf.Mode().String(), Input: r.Input, Output: r.String(), Failed: r.Failed()})
}

func (m Model) updateBMI(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.bmi
	switch {
	case key.Matches(msg, keys.Up):
		f.move(-1, len(f.inputs))
	case key.Matches(msg, keys.Down):
		f.move(1, len(f.inputs))
	case key.Matches(msg, keys.Enter):
		w, h := f.value(0), f.value(1)
		e := history.Entry{Panel: history.PanelBMI, Input: fmt.Sprintf("%s kg, %s cm", strings.TrimSpace(w), strings.TrimSpace(h))}
		r, err := bmi.Parse(w, h)
		if err != nil {
			f.setResult(bmi.ErrInvalidInput.Error(), true)
			e.Failed = true
		} else {
			f.setResult(r.String(), false)
		}
		e.Output = f.result
		return m, m.record(e)
	default:
		return m, f.update(msg)
	}
	return m, nil
}

func (m Model) updateAge(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.age
	if !key.Matches(msg, keys.Enter) {
		return m, f.update(msg)
	}
	dob := strings.TrimSpace(f.value(0))
	e := history.Entry{Panel: history.PanelAge, Input: dob}
	r, err := age.Compute(dob, m.now())
	if err != nil {
		f.setResult(age.Message(err), true)
		e.Failed = true
	} else {
		f.setResult(r.String(), false)
	}
	e.Output = f.result
	return m, m.record(e)
}

func (m Model) updateCurrency(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.currency
	switch {
	case key.Matches(msg, keys.Up):
		c.move(-1, currencyFields)
	case key.Matches(msg, keys.Down):
		c.move(1, currencyFields)
	case key.Matches(msg, keys.Left) && c.focus != fieldAmount:
		c.cycle(-1)
	case key.Matches(msg, keys.Right) && c.focus != fieldAmount:
		c.cycle(1)
	case key.Matches(msg, keys.Enter):
		if c.loading {
			return m, nil
		}
		c.loading = true
		return m, tea.Batch(m.spinner.Tick, m.convert(c.value(fieldAmount), c.from, c.to))
	default:
		return m, c.update(msg)
	}
	return m, nil
}

// convert fetches rates and converts off the event loop.
func (m Model) convert(amount, from, to string) tea.Cmd {
	conv, timeout := m.conv, m.timeout
	input := fmt.Sprintf("%s %s to %s", strings.TrimSpace(amount), from, to)
	return func() tea.Msg {
		if conv == nil {
			return conversionMsg{input: input, err: fmt.Errorf("no rate source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c, err := conv.ConvertString(ctx, amount, from, to)
		return conversionMsg{input: input, conv: c, err: err}
	}
}

// record writes a history entry off the event loop.
func (m Model) record(e history.Entry) tea.Cmd {
	rec := m.rec
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now()
	}
	return func() tea.Msg {
		return recordedMsg{panel: e.Panel, err: rec.Record(context.Background(), e)}
	}
}

// View renders the UI
func (m Model) View() string {
	st := m.styles
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	switch m.panel {
	case panelStandard:
		s.WriteString(m.standard.view(st))
	case panelScientific:
		s.WriteString(m.scientific.view(st))
	case panelBMI:
		s.WriteString(m.bmi.view(st))
	case panelAge:
		s.WriteString(m.age.view(st))
	case panelCurrency:
		s.WriteString(m.currency.view(st, m.spinner.View()))
	}

	s.WriteString("\n")
	s.WriteString(st.Help.Render(m.help.View(keys)))

	out := st.App.Render(s.String())
	if m.width > 0 && m.height > 0 {
		out = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out,
			lipgloss.WithWhitespaceBackground(m.theme.Bg))
	}
	return out
}

func (m Model) renderHeader() string {
	st := m.styles
	var tabs []string
	for i := panelID(0); i < numPanels; i++ {
		if i == m.panel {
			tabs = append(tabs, st.ActiveTab.Render(i.String()))
		} else {
			tabs = append(tabs, st.Tab.Render(i.String()))
		}
	}
	title := st.Title.Render("Calculator")
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
