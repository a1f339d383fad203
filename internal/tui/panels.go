package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
)

// panelID identifies a panel, in tab order.
type panelID int

const (
	panelStandard panelID = iota
	panelScientific
	panelBMI
	panelAge
	panelCurrency
	numPanels
)

var panelTitles = [numPanels]string{"Standard", "Scientific", "BMI", "Age", "Currency"}

var panelHistoryNames = [numPanels]string{
	history.PanelStandard,
	history.PanelScientific,
	history.PanelBMI,
	history.PanelAge,
	history.PanelCurrency,
}

func (p panelID) String() string {
	return panelTitles[p]
}

// parsePanel returns the panel with the given name, or the standard panel.
func parsePanel(name string) panelID {
	for i, n := range panelHistoryNames {
		if strings.EqualFold(name, n) {
			return panelID(i)
		}
	}
	return panelStandard
}

var (
	standardGrid = [][]string{
		{"7", "8", "9", "+"},
		{"4", "5", "6", "-"},
		{"1", "2", "3", "*"},
		{"0", ".", "C", "/"},
		{"="},
	}
	scientificGrid = [][]string{
		{"7", "8", "9", "/", "sqrt"},
		{"4", "5", "6", "*", "log"},
		{"1", "2", "3", "-", "sin"},
		{"0", ".", "=", "+", "cos"},
		{"C", "(", ")", "^", "tan"},
	}
)

// Letters that type a scientific function name.
var functionKeys = map[string]string{
	"s": "sin",
	"o": "cos",
	"t": "tan",
	"r": "sqrt",
	"l": "log",
	"n": "ln",
	"p": "pi",
	"e": "e",
}

// keypad is a calculator panel driven by buttons.
type keypad struct {
	buf     *calc.Buffer
	grid    [][]string
	labels  map[string]bool
	pressed string
}

func newKeypad(mode calc.Mode, places int) *keypad {
	grid := standardGrid
	if mode == calc.ModeScientific {
		grid = scientificGrid
	}
	labels := make(map[string]bool)
	for _, row := range grid {
		for _, l := range row {
			labels[l] = true
		}
	}
	return &keypad{
		buf:    calc.NewBuffer(mode, calc.RoundTo(places)),
		grid:   grid,
		labels: labels,
	}
}

// button returns the button label a key press stands for.
func (k *keypad) button(msg tea.KeyMsg) (string, bool) {
	if msg.Type == tea.KeyEnter {
		return "=", true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return "", false
	}
	s := string(msg.Runes)
	switch {
	case k.labels[s]:
		return s, true
	case s == "c":
		return "C", true
	case s == "x" && k.labels["*"]:
		return "*", true
	}
	if k.buf.Mode() == calc.ModeScientific {
		if f, ok := functionKeys[s]; ok {
			return f, true
		}
	}
	return "", false
}

// press handles a button. It returns the result if the button evaluated the
// expression.
func (k *keypad) press(label string) (calc.Result, bool) {
	k.pressed = label
	if label == "=" {
		return k.buf.Evaluate(), true
	}
	k.buf.Press(label)
	return calc.Result{}, false
}

func (k *keypad) backspace() {
	k.pressed = ""
	k.buf.Backspace()
}

func (k *keypad) view(st styles) string {
	var rows []string
	rows = append(rows, st.Display.Render(k.buf.Display()))
	for _, row := range k.grid {
		var btns []string
		for _, l := range row {
			s := st.Button
			if l == k.pressed {
				s = st.ActiveButton
			}
			btns = append(btns, s.Render(l))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, btns...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// form is a panel of labelled text fields with a result line.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
	result string
	failed bool
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 20
	in.Prompt = ""
	return in
}

func newForm(labels []string, inputs ...textinput.Model) *form {
	f := &form{labels: labels, inputs: inputs}
	f.setFocus(0)
	return f
}

func newBMIForm() *form {
	return newForm([]string{"Weight (kg)", "Height (cm)"}, newInput("70", 10), newInput("175", 10))
}

func newAgeForm() *form {
	return newForm([]string{"Date of birth"}, newInput("YYYY-MM-DD", 10))
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// move moves focus among n fields, wrapping around.
func (f *form) move(step, n int) {
	f.setFocus(((f.focus+step)%n + n) % n)
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) setResult(s string, failed bool) {
	f.result = s
	f.failed = failed
}

// update forwards a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) fieldView(st styles, i int) string {
	s := st.Input
	if i == f.focus {
		s = st.FocusedInput
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, st.Label.Render(f.labels[i]), s.Render(f.inputs[i].View()))
}

func (f *form) resultView(st styles) string {
	if f.result == "" {
		return ""
	}
	if f.failed {
		return st.Error.Render(f.result)
	}
	return st.Result.Render(f.result)
}

func (f *form) view(st styles) string {
	var rows []string
	for i := range f.inputs {
		rows = append(rows, f.fieldView(st, i))
	}
	rows = append(rows, f.resultView(st))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Fields of the currency panel.
const (
	fieldAmount = iota
	fieldFrom
	fieldTo
	currencyFields
)

// currencyPanel is a form with an amount and two currency selectors.
type currencyPanel struct {
	*form
	from, to string
	loading  bool
}

func newCurrencyPanel(from, to string) *currencyPanel {
	if c, err := currency.Lookup(from); err == nil {
		from = c.Code
	} else {
		from = currency.USD.Code
	}
	if c, err := currency.Lookup(to); err == nil {
		to = c.Code
	} else {
		to = currency.INR.Code
	}
	return &currencyPanel{
		form: newForm([]string{"Amount"}, newInput("100", 20)),
		from: from,
		to:   to,
	}
}

// cycle changes the focused currency selector.
func (c *currencyPanel) cycle(step int) {
	switch c.focus {
	case fieldFrom:
		c.from = currency.Next(c.from, step)
	case fieldTo:
		c.to = currency.Next(c.to, step)
	}
}

func (c *currencyPanel) selectorView(st styles, field int, label, code string) string {
	s := st.Input
	if c.focus == field {
		s = st.FocusedInput
	}
	cur, _ := currency.Lookup(code)
	return lipgloss.JoinHorizontal(lipgloss.Center, st.Label.Render(label), s.Render("◀ "+cur.Code+" "+cur.Symbol+" ▶"))
}

func (c *currencyPanel) view(st styles, spinner string) string {
	rows := []string{
		c.fieldView(st, fieldAmount),
		c.selectorView(st, fieldFrom, "From", c.from),
		c.selectorView(st, fieldTo, "To", c.to),
	}
	if c.loading {
		rows = append(rows, st.Result.Render(spinner+" Fetching rates..."))
	} else {
		rows = append(rows, c.resultView(st))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
