// Package tui provides the interactive Bubble Tea calculator for endow.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/endow/internal/cli"
	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"
	"github.com/theirongolddev/endow/internal/tui/components"
	"github.com/theirongolddev/endow/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Form rows, top to bottom.
const (
	fieldAmount = iota
	fieldPledge
	fieldROI
	fieldDisbursement
	fieldAdminFee
	fieldHorizon
	fieldVariant
	fieldCount // sentinel
)

const (
	tabCalculator = 0
	tabChart      = 1
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
	windowCardWidth  = 36
)

// Options configures a new App.
type Options struct {
	Params     model.Params
	Money      cli.Money
	ShowImpact bool
	NeedSetup  bool // show the first-run preferences form before the calculator
}

// App is the root Bubble Tea model.
type App struct {
	state *pipeline.State
	money cli.Money

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	showImpact bool

	// Form state
	cursor  int
	editing bool
	input   textinput.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
	setupErr  error
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	a := App{
		state:      pipeline.NewState(opts.Params),
		money:      opts.Money,
		showImpact: opts.ShowImpact,
		needSetup:  opts.NeedSetup,
	}
	if a.needSetup {
		a.setupVals = setupValues{
			theme:   theme.Active.Name,
			locale:  opts.Money.Locale,
			variant: string(a.state.Params().Variant),
		}
		a.setupForm = newSetupForm(&a.setupVals)
	}
	return a
}

// State exposes the calculator state driven by the app.
func (a App) State() *pipeline.State { return a.state }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.editing {
			return a.updateFieldInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		return a.updateKeys(key)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "c":
		a.state.Calculate()
	case "i":
		a.showImpact = !a.showImpact
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "j", "down":
		if a.cursor < fieldCount-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "+", "=", "l", "right":
		a.stepField(+1)
	case "-", "h", "left":
		a.stepField(-1)
	case "enter":
		if a.cursor == fieldAmount || a.cursor == fieldROI {
			return a.startEdit()
		}
		a.stepField(+1)
	default:
		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// stepField applies a -/+ press to the focused row. Read-only rows ignore it.
func (a *App) stepField(dir int) {
	p := a.state.Params()
	switch a.cursor {
	case fieldAmount:
		a.state.StepAnnualContribution(dir)
	case fieldPledge:
		a.state.SetPledgePeriod(cycle(pipeline.PledgePeriodChoices, p.PledgePeriod, dir))
	case fieldROI:
		a.state.StepROI(dir)
	case fieldHorizon:
		a.state.SetHorizon(cycle(pipeline.HorizonChoices, p.Horizon, dir))
	case fieldVariant:
		if p.Variant == model.VariantSeeded {
			a.state.SetVariant(model.VariantDepositFirst)
		} else {
			a.state.SetVariant(model.VariantSeeded)
		}
	}
}

// cycle moves dir places through choices from cur, wrapping at both ends.
// A cur outside choices starts from the first entry.
func cycle(choices []int, cur, dir int) int {
	for i, c := range choices {
		if c == cur {
			n := len(choices)
			return choices[((i+dir)%n+n)%n]
		}
	}
	return choices[0]
}

func (a App) startEdit() (tea.Model, tea.Cmd) {
	p := a.state.Params()

	ti := textinput.New()
	ti.CharLimit = 24
	ti.Width = 16
	switch a.cursor {
	case fieldAmount:
		ti.Placeholder = "10000"
		ti.SetValue(p.AnnualContribution.StringFixed(0))
	case fieldROI:
		ti.Placeholder = "6"
		ti.SetValue(p.ROIRate.String())
	}
	ti.Focus()

	a.input = ti
	a.editing = true
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateFieldInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := a.input.Value()
		switch a.cursor {
		case fieldAmount:
			a.state.SetAnnualContributionText(val)
		case fieldROI:
			a.state.SetROIText(val)
		}
		a.editing = false
		return a, nil
	case "esc":
		a.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupErr = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  endow needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Form", []struct{ key, desc string }{
			{"j k", "Move between fields"},
			{"- +", "Decrease / Increase"},
			{"Enter", "Type a value (Donation, ROI)"},
			{"Esc", "Cancel typing"},
		}},
		{"Results", []struct{ key, desc string }{
			{"c", "Calculate"},
			{"i", "Toggle donation impact"},
			{"1 2 Tab", "Calculator / Chart"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	status, isErr := a.statusText()
	statusBar := components.RenderStatusBar(w, status, isErr)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw)
	case tabChart:
		content = a.renderChartTab(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// statusText returns the status-bar message and whether it is an error.
func (a App) statusText() (string, bool) {
	if a.setupErr != nil {
		return "config not saved: " + a.setupErr.Error(), true
	}
	if err := a.state.Err(); err != nil {
		return err.Error(), true
	}
	p := a.state.Params()
	return fmt.Sprintf("Variant %s · %s", strings.ToUpper(string(p.Variant)), cli.FormatYears(p.Horizon)), false
}

// ─── Calculator tab ─────────────────────────────────────────────

func (a App) renderCalculatorTab(cw int) string {
	formW := min(cw, 56)
	form := components.ContentCard("Endowment Calculator", a.renderForm(components.CardInnerWidth(formW)), formW, true)

	var b strings.Builder
	b.WriteString(form)
	b.WriteString("\n")
	b.WriteString(a.renderResults(cw))
	return b.String()
}

type formRow struct {
	label    string
	value    string
	editable bool
}

func (a App) formRows() []formRow {
	p := a.state.Params()
	return []formRow{
		fieldAmount:       {"Annual Donation", a.money.Format(p.AnnualContribution), true},
		fieldPledge:       {"Pledge Period", cli.FormatYears(p.PledgePeriod), true},
		fieldROI:          {"Return on Investment", cli.FormatPercent(p.ROIRate), true},
		fieldDisbursement: {"Disbursement", cli.FormatPercent(projection.DisbursementRate), false},
		fieldAdminFee:     {"Admin Fee", cli.FormatPercent(projection.AdminFeeRate), false},
		fieldHorizon:      {"Display Growth", cli.FormatYears(p.Horizon), true},
		fieldVariant:      {"Method", p.Variant.Label(), true},
	}
}

func (a App) renderForm(innerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.Accent)
	fixedStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	focusStyle := lipgloss.NewStyle().Background(t.Highlight).Width(innerW)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	labelW := 22
	var b strings.Builder
	for i, row := range a.formRows() {
		marker := "  "
		if i == a.cursor {
			marker = "▸ "
		}

		value := fixedStyle.Render(row.value)
		switch {
		case i == a.cursor && a.editing:
			value = a.input.View()
		case row.editable:
			value = valueStyle.Render(row.value)
		}

		line := marker + labelStyle.Render(fmt.Sprintf("%-*s", labelW, row.label)) + value
		if i == a.cursor {
			line = focusStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("-/+ adjust · enter edit · c calculate"))
	return b.String()
}

func (a App) renderResults(cw int) string {
	t := theme.Active

	if err := a.state.Err(); err != nil {
		return lipgloss.NewStyle().Foreground(t.Red).Render("  " + err.Error())
	}
	if !a.state.ShowResults() {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("  Press c to calculate.")
	}

	res := a.state.Result()
	s := res.Summary
	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Final Balance", Value: a.money.Format(s.FinalBalance)},
		{Label: "Contributed", Value: a.money.Format(s.TotalContributed)},
		{Label: "Donation Impact", Value: a.money.Format(s.TotalDisbursed), Note: "disbursed at 4%"},
		{Label: "Growth", Value: a.money.Format(s.Growth)},
	}, cw)

	opts := cli.ProjectionOptions{Money: a.money, ShowImpact: a.showImpact}
	cardW := windowCardWidth
	if a.showImpact {
		cardW += 18
	}
	perRow := max(cw/cardW, 1)

	var rows []string
	var cards []string
	for _, w := range res.Windows {
		tbl := cli.WindowTable(w, opts)
		title := tbl.Title
		tbl.Title = ""
		cards = append(cards, components.ContentCard(title, strings.TrimRight(cli.RenderTable(tbl), "\n"), cardW, false))
		if len(cards) == perRow {
			rows = append(rows, components.CardRow(cards))
			cards = nil
		}
	}
	if len(cards) > 0 {
		rows = append(rows, components.CardRow(cards))
	}

	return metrics + "\n" + strings.Join(rows, "\n")
}

// ─── Chart tab ──────────────────────────────────────────────────

func (a App) renderChartTab(cw int) string {
	t := theme.Active

	if err := a.state.Err(); err != nil {
		return lipgloss.NewStyle().Foreground(t.Red).Render("  " + err.Error())
	}
	if !a.state.ShowResults() {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("  Press c to calculate, then view the chart here.")
	}

	res := a.state.Result()
	balances := pipeline.Balances(res.Years)
	labels := make([]string, len(res.Years))
	for i, r := range res.Years {
		labels[i] = fmt.Sprintf("Y%d", r.Year)
	}

	innerW := components.CardInnerWidth(cw)
	chart := components.BarChart(balances, labels, t.Green, innerW, 12)

	peak := 0.0
	for _, v := range balances {
		peak = max(peak, v)
	}
	var bars strings.Builder
	for _, w := range res.Windows {
		last := w.Years[len(w.Years)-1]
		bars.WriteString(components.GrowthBar(
			fmt.Sprintf("Year %d", last.Year),
			last.Balance.InexactFloat64(), peak,
			a.money.Format(last.Balance),
			9, max(innerW-30, 10)))
		bars.WriteString("\n")
	}

	s := res.Summary
	share := 0.0
	if s.FinalBalance.IsPositive() {
		share = s.TotalContributed.Div(s.FinalBalance).InexactFloat64()
	}
	bars.WriteString(components.ShareBar("Deposits share of balance", share, innerW))

	return components.ContentCard("Balance by Year", chart, cw, false) + "\n" +
		components.ContentCard("Window Totals", bars.String(), cw, false)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// tabAtX returns the tab index at the given X coordinate of the tab bar,
// or -1 if none. Hitboxes follow RenderTabBar's layout.
func (a App) tabAtX(x int) int {
	pos := components.TabBarIndent
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + components.TabGap
	}
	return -1
}
