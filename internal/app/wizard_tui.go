package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"sitewiz/internal/domain"
	"sitewiz/internal/state"
	"sitewiz/internal/wizard"
)

const summaryHeading = "Your Website Configuration"

const (
	reviewButtonSubmit = iota
	reviewButtonEdit
	reviewButtonCount
)

type wizardKeyMap struct {
	NextStep  key.Binding
	PrevStep  key.Binding
	JumpTo    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Select    key.Binding
	Advance   key.Binding
	Back      key.Binding
	NextBtn   key.Binding
	Submit    key.Binding
	Edit      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Back, k.NextField, k.Select, k.Help, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextStep, k.PrevStep, k.JumpTo, k.NextField, k.PrevField, k.Back, k.Advance},
		{k.Select, k.NextBtn, k.Submit, k.Edit, k.Help, k.Quit},
	}
}

func defaultWizardKeyMap() wizardKeyMap {
	return wizardKeyMap{
		NextStep: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next step/button"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev step/button"),
		),
		JumpTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to step (tabs)"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next option"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev option / focus tabs"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select/toggle"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next step"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "previous step"),
		),
		NextBtn: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch button"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit answers"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

var (
	textColor      = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	mutedTextColor = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	borderColor    = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	panelBgColor   = lipgloss.AdaptiveColor{Light: "#F6F8FA", Dark: "#0D1117"}
	accentColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	accentBgColor  = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#1F2937"}
	successColor   = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	errorFgColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}

	pageStyle = lipgloss.NewStyle().Padding(1, 2)

	titleBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("31")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorFgColor)
	hintStyle   = lipgloss.NewStyle().Foreground(mutedTextColor)
	doneStyle   = lipgloss.NewStyle().Foreground(successColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Background(panelBgColor).
			Padding(0, 2)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(errorFgColor).
			PaddingLeft(1)

	helpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(borderColor).
			PaddingLeft(1)

	fieldFocusStyle = fieldStyle.BorderForeground(accentColor)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	inputFocusStyle = inputStyle.BorderForeground(accentColor)

	optionStyle = lipgloss.NewStyle().
			Foreground(mutedTextColor).
			Padding(0, 1)

	optionCursorStyle = optionStyle.
				Background(accentBgColor).
				Foreground(textColor)

	optionChosenStyle = optionStyle.
				Foreground(textColor).
				Bold(true)

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	tabActiveBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBaseStyle = lipgloss.NewStyle().
			Border(tabBorder, true).
			BorderForeground(borderColor).
			Foreground(mutedTextColor).
			Padding(0, 1)

	tabCurrentStyle = tabBaseStyle.
			BorderForeground(accentColor).
			Foreground(textColor).
			Bold(true)

	tabFocusedStyle = tabCurrentStyle.
			Border(tabActiveBorder, true).
			Background(accentBgColor)

	tabGapStyle = tabBaseStyle.
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false)

	buttonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.AdaptiveColor{Light: "#F6F8FA", Dark: "#161B22"}).
			Padding(0, 2).
			MarginRight(1)

	buttonPrimaryStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("31")).
				Bold(true)

	buttonFocusStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("33")).
				Bold(true).
				Underline(true)

	buttonPrimaryFocusStyle = buttonPrimaryStyle.
				Background(lipgloss.Color("33")).
				Underline(true)

	buttonDisabledStyle = buttonStyle.
				Foreground(mutedTextColor)
)

type wizardModel struct {
	ctrl *wizard.Controller

	width  int
	height int

	help     help.Model
	keys     wizardKeyMap
	progress progress.Model

	// text backs free-text steps; custom backs the hex input on color steps
	// and the follow-up input unlocked by a custom option.
	text   textinput.Model
	custom textinput.Model

	cursor       int
	focusTabs    bool
	reviewButton int

	errorText   string
	dirty       bool
	confirmQuit bool
	allowQuit   bool
	submitted   bool
}

func defaultIsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runWizardInteractive(ctx context.Context, ctrl *wizard.Controller, settings state.Settings) (WizardOutcome, error) {
	model := newWizardModel(ctrl)
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithFilter(wizardQuitFilter)}
	if settings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	finalModel, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return WizardOutcome{}, err
	}
	m, ok := finalModel.(*wizardModel)
	if !ok {
		return WizardOutcome{}, fmt.Errorf("unexpected wizard model type %T", finalModel)
	}
	return WizardOutcome{Submitted: m.submitted}, nil
}

func wizardQuitFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.QuitMsg); !ok {
		return msg
	}
	m, ok := model.(*wizardModel)
	if !ok {
		return msg
	}
	if m.dirty && !m.allowQuit && !m.submitted {
		return nil
	}
	return msg
}

func newWizardModel(ctrl *wizard.Controller) *wizardModel {
	text := textinput.New()
	text.CharLimit = 120
	custom := textinput.New()
	custom.CharLimit = 32

	m := &wizardModel{
		ctrl:     ctrl,
		help:     help.New(),
		keys:     defaultWizardKeyMap(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		text:     text,
		custom:   custom,
	}
	m.syncStep()
	return m
}

func (m *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := m.viewContentWidth(); w > 0 {
			m.progress.Width = w - 6
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if !m.dirty || m.confirmQuit {
				m.allowQuit = true
				return m, tea.Quit
			}
			m.confirmQuit = true
			return m, nil
		}
		m.confirmQuit = false
		m.errorText = ""
		if m.ctrl.IsReviewing() {
			return m.updateReview(msg)
		}
		return m.updateEditing(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m *wizardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := m.inputFocused()
	switch {
	case key.Matches(msg, m.keys.Help) && !typing:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.ctrl.GoPrevious()
		return m, m.syncStep()
	case key.Matches(msg, m.keys.Advance):
		return m, m.advance()
	case m.focusTabs:
		switch {
		case key.Matches(msg, m.keys.PrevStep):
			return m, m.jump(m.ctrl.StepIndex() - 1)
		case key.Matches(msg, m.keys.NextStep):
			return m, m.jump(m.ctrl.StepIndex() + 1)
		case key.Matches(msg, m.keys.JumpTo):
			return m, m.jump(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.NextField):
			m.focusTabs = false
			return m, m.syncFocus()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		if m.cursor == 0 {
			m.focusTabs = true
			return m, m.syncFocus()
		}
		m.cursor--
		return m, m.syncFocus()
	case key.Matches(msg, m.keys.NextField):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		return m, m.syncFocus()
	case key.Matches(msg, m.keys.Select) && !typing:
		return m, m.selectRow()
	}
	if typing {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

func (m *wizardModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Back):
		return m, m.edit()
	case key.Matches(msg, m.keys.NextBtn), key.Matches(msg, m.keys.NextStep):
		m.reviewButton = (m.reviewButton + 1) % reviewButtonCount
	case key.Matches(msg, m.keys.PrevStep):
		m.reviewButton = (m.reviewButton + reviewButtonCount - 1) % reviewButtonCount
	case key.Matches(msg, m.keys.Advance):
		if m.reviewButton == reviewButtonSubmit {
			return m, m.submit()
		}
		return m, m.edit()
	}
	return m, nil
}

func (m *wizardModel) submit() tea.Cmd {
	m.submitted = true
	m.allowQuit = true
	return tea.Quit
}

func (m *wizardModel) edit() tea.Cmd {
	m.ctrl.ResetToEdit()
	m.focusTabs = false
	return m.syncStep()
}

func (m *wizardModel) advance() tea.Cmd {
	step := m.ctrl.CurrentStep()
	if !m.focusTabs && m.onOptionRow() && step.Kind != domain.KindMultiSelect {
		cmd := m.selectRow()
		if m.inputFocused() && !m.ctrl.CanAdvance() {
			return cmd
		}
	}
	if !m.ctrl.CanAdvance() {
		m.errorText = incompleteStepText(step)
		return nil
	}
	m.ctrl.GoNext()
	if m.ctrl.IsReviewing() {
		m.reviewButton = reviewButtonSubmit
		m.text.Blur()
		m.custom.Blur()
		return nil
	}
	return m.syncStep()
}

func (m *wizardModel) jump(j int) tea.Cmd {
	if j < 0 || j >= m.ctrl.StepCount() {
		return nil
	}
	if !m.ctrl.JumpToStep(j) {
		m.errorText = incompleteStepText(m.ctrl.CurrentStep())
		return nil
	}
	cmd := m.syncStep()
	m.focusTabs = true
	m.text.Blur()
	m.custom.Blur()
	return cmd
}

// selectRow applies the option under the cursor. Choosing an option that
// unlocks an empty follow-up input moves the cursor onto that input.
func (m *wizardModel) selectRow() tea.Cmd {
	step := m.ctrl.CurrentStep()
	opts := domain.Options(step.Field)
	if m.cursor >= len(opts) {
		return nil
	}
	value := opts[m.cursor].Value
	m.dirty = true
	switch step.Kind {
	case domain.KindMultiSelect:
		m.ctrl.ToggleFeature(value)
	case domain.KindColorPicker:
		m.ctrl.UpdateField(step.Field, value)
		m.custom.SetValue("")
	case domain.KindSingleChoice:
		m.ctrl.UpdateField(step.Field, value)
		if step.HasCustomInput(value) && strings.TrimSpace(m.custom.Value()) == "" {
			m.cursor = len(opts)
			return m.syncFocus()
		}
	}
	return nil
}

func (m *wizardModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.inputFocused() {
		return m, nil
	}
	step := m.ctrl.CurrentStep()
	var cmd tea.Cmd
	switch step.Kind {
	case domain.KindFreeText:
		before := m.text.Value()
		m.text, cmd = m.text.Update(msg)
		if v := m.text.Value(); v != before {
			m.dirty = true
			m.ctrl.UpdateField(step.Field, v)
		}
	case domain.KindColorPicker:
		before := m.custom.Value()
		m.custom, cmd = m.custom.Update(msg)
		if v := m.custom.Value(); v != before {
			m.dirty = true
			m.ctrl.UpdateField(step.Field, strings.TrimSpace(v))
		}
	case domain.KindSingleChoice:
		before := m.custom.Value()
		m.custom, cmd = m.custom.Update(msg)
		if v := m.custom.Value(); v != before {
			m.dirty = true
			m.ctrl.UpdateField(step.CustomField, strings.TrimSpace(v))
		}
	}
	return m, cmd
}

// syncStep loads the current step's values into the cursor and inputs.
func (m *wizardModel) syncStep() tea.Cmd {
	step := m.ctrl.CurrentStep()
	values := m.ctrl.Values()
	current := values.Get(step.Field)
	opts := domain.Options(step.Field)
	m.cursor = 0
	m.text.Placeholder = ""
	m.custom.Placeholder = ""

	switch step.Kind {
	case domain.KindFreeText:
		m.text.SetValue(current)
		m.text.Placeholder = "Enter your " + strings.ToLower(step.Label)
	case domain.KindColorPicker:
		m.custom.Placeholder = "#RRGGBB"
		m.custom.SetValue("")
		if i := optionIndex(opts, current); i >= 0 {
			m.cursor = i
		} else if current != "" {
			m.cursor = len(opts)
			m.custom.SetValue(current)
		}
	case domain.KindSingleChoice:
		if i := optionIndex(opts, current); i >= 0 {
			m.cursor = i
		}
		m.custom.SetValue("")
		if step.CustomOption != "" {
			m.custom.Placeholder = "Enter number of pages"
			m.custom.SetValue(values.Get(step.CustomField))
		}
	case domain.KindMultiSelect:
	}
	return m.syncFocus()
}

func (m *wizardModel) syncFocus() tea.Cmd {
	m.text.Blur()
	m.custom.Blur()
	if !m.inputFocused() {
		return nil
	}
	if m.ctrl.CurrentStep().Kind == domain.KindFreeText {
		return m.text.Focus()
	}
	return m.custom.Focus()
}

func (m *wizardModel) rowCount() int {
	step := m.ctrl.CurrentStep()
	n := len(domain.Options(step.Field))
	switch step.Kind {
	case domain.KindFreeText:
		return 1
	case domain.KindColorPicker:
		return n + 1
	case domain.KindSingleChoice:
		if step.HasCustomInput(m.ctrl.Values().Get(step.Field)) {
			return n + 1
		}
		return n
	default:
		return n
	}
}

func (m *wizardModel) onOptionRow() bool {
	return m.cursor < len(domain.Options(m.ctrl.CurrentStep().Field))
}

func (m *wizardModel) inputFocused() bool {
	if m.focusTabs || m.ctrl.IsReviewing() {
		return false
	}
	step := m.ctrl.CurrentStep()
	switch step.Kind {
	case domain.KindFreeText:
		return true
	case domain.KindColorPicker, domain.KindSingleChoice:
		return m.cursor == len(domain.Options(step.Field)) && m.cursor < m.rowCount()
	default:
		return false
	}
}

func incompleteStepText(step domain.Step) string {
	if step.Kind == domain.KindMultiSelect {
		return "Select at least one option to continue."
	}
	if step.CustomOption != "" {
		return "Choose an option (and enter a custom value if needed) to continue."
	}
	return fmt.Sprintf("%s is required to continue.", step.Label)
}

func optionIndex(opts []domain.Option, value string) int {
	for i, opt := range opts {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

func (m *wizardModel) View() string {
	var b strings.Builder

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		titleBadgeStyle.Render("sitewiz"),
		" "+headerStyle.Render("website setup"),
	)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Answer each step to configure your website"))
	b.WriteString("\n\n")
	b.WriteString(m.stepsHeader())
	b.WriteString("\n")

	content := ""
	if m.ctrl.IsReviewing() {
		content = m.viewReview()
	} else {
		content = m.viewStep()
	}
	contentPanel := panelStyle
	if w := m.viewContentWidth(); w > 0 {
		contentPanel = contentPanel.Width(w)
	}
	b.WriteString(contentPanel.Render(content))
	b.WriteString("\n")

	if m.errorText != "" {
		b.WriteString(alertStyle.Render(errorStyle.Render(m.errorText)))
		b.WriteString("\n")
	}
	if m.confirmQuit {
		b.WriteString(alertStyle.Render(errorStyle.Render("Unsaved answers. Press Ctrl+C again to discard and quit.")))
		b.WriteString("\n")
	}

	helpPanel := helpPanelStyle
	if w := m.viewContentWidth(); w > 0 {
		helpPanel = helpPanel.Width(w)
	}
	helpBlock := helpPanel.Render(m.help.View(m.keys))

	body := b.String()
	spacer := ""
	if m.height > 0 {
		const pageVerticalPadding = 2
		const separatorLines = 2
		total := lipgloss.Height(body) + separatorLines + lipgloss.Height(helpBlock) + pageVerticalPadding
		if gap := m.height - total; gap > 0 {
			spacer = strings.Repeat("\n", gap)
		}
	}
	return pageStyle.Render(body+"\n\n"+spacer+helpBlock) + "\n"
}

func (m *wizardModel) viewContentWidth() int {
	if m.width <= 0 {
		return 0
	}
	contentWidth := m.width - 8
	if contentWidth < 52 {
		return 0
	}
	return contentWidth
}

func (m *wizardModel) stepsHeader() string {
	steps := m.ctrl.Steps()
	reviewing := m.ctrl.IsReviewing()
	parts := make([]string, 0, len(steps)+1)
	for i, step := range steps {
		label := step.ShortLabel
		if m.ctrl.IsStepComplete(i) {
			label = doneStyle.Render("✓") + " " + label
		}
		if !reviewing && i == m.ctrl.StepIndex() {
			active := tabCurrentStyle
			if m.focusTabs {
				active = tabFocusedStyle
			}
			parts = append(parts, active.Render(label))
			continue
		}
		parts = append(parts, tabBaseStyle.Render(label))
	}
	if reviewing {
		parts = append(parts, tabFocusedStyle.Render("Review"))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
	if m.width <= 0 {
		return row
	}
	gap := m.width - lipgloss.Width(row) - 4
	if gap <= 0 {
		return row
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, tabGapStyle.Render(strings.Repeat(" ", gap)))
}

func (m *wizardModel) viewStep() string {
	step := m.ctrl.CurrentStep()
	var b strings.Builder

	position := fmt.Sprintf("Step %d of %d", m.ctrl.StepIndex()+1, m.ctrl.StepCount())
	percent := fmt.Sprintf("%d%% Complete", m.ctrl.Progress())
	b.WriteString(hintStyle.Render(position + "  ·  " + percent))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(float64(m.ctrl.Progress()) / 100))
	b.WriteString("\n\n")

	badge := renderBadge("REQUIRED", badgeToneWarning)
	if m.ctrl.CanAdvance() {
		badge = renderBadge("DONE", badgeToneSuccess)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render(step.Label), " ", badge))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(step.Prompt))
	b.WriteString("\n\n")

	switch step.Kind {
	case domain.KindFreeText:
		b.WriteString(renderInputContainer(m.text.View(), m.inputFocused()))
	case domain.KindSingleChoice:
		b.WriteString(m.viewSingleChoice(step))
	case domain.KindColorPicker:
		b.WriteString(m.viewColorPicker(step))
	case domain.KindMultiSelect:
		b.WriteString(m.viewMultiSelect(step))
	}
	b.WriteString("\n\n")

	nextLabel := "Next"
	if m.ctrl.IsLastStep() {
		nextLabel = "Review"
	}
	b.WriteString(renderNavButtons(m.ctrl.StepIndex() > 0, m.ctrl.CanAdvance(), nextLabel))
	return b.String()
}

func (m *wizardModel) viewSingleChoice(step domain.Step) string {
	current := m.ctrl.Values().Get(step.Field)
	opts := domain.Options(step.Field)
	rows := make([]string, 0, len(opts)+1)
	for i, opt := range opts {
		marker := "○"
		if opt.Value == current {
			marker = "●"
		}
		rows = append(rows, m.renderOptionRow(i, opt.Value == current, marker+" "+opt.Label))
	}
	out := strings.Join(rows, "\n")
	if step.HasCustomInput(current) {
		focused := m.inputFocused()
		out += "\n\n" + renderFieldBlock(focused, "Custom "+step.Label, "Enter number of pages", renderInputContainer(m.custom.View(), focused), "")
	}
	return out
}

func (m *wizardModel) viewColorPicker(step domain.Step) string {
	current := m.ctrl.Values().Get(step.Field)
	opts := domain.Options(step.Field)
	rows := make([]string, 0, len(opts)+2)
	for i, opt := range opts {
		chosen := opt.Value == current
		marker := "○"
		if chosen {
			marker = "●"
		}
		rows = append(rows, m.renderOptionRow(i, chosen, marker+" "+renderSwatch(opt.Value)+" "+opt.Label+" "+hintStyle.Render(opt.Value)))
	}
	focused := m.inputFocused()
	preview := ""
	if current != "" {
		preview = "Current: " + renderSwatch(current) + " " + current
	}
	rows = append(rows, "", renderFieldBlock(focused, "Custom color", "Or enter a hex code", renderInputContainer(m.custom.View(), focused), ""))
	if preview != "" {
		rows = append(rows, hintStyle.Render(preview))
	}
	return strings.Join(rows, "\n")
}

func (m *wizardModel) viewMultiSelect(step domain.Step) string {
	values := m.ctrl.Values()
	opts := domain.Options(step.Field)
	rows := make([]string, 0, len(opts)+1)
	for i, opt := range opts {
		selected := values.HasFeature(opt.Value)
		box := "☐"
		if selected {
			box = "☑"
		}
		rows = append(rows, m.renderOptionRow(i, selected, box+" "+opt.Label))
	}
	rows = append(rows, "", hintStyle.Render(fmt.Sprintf("%d selected", len(values.Features()))))
	return strings.Join(rows, "\n")
}

func (m *wizardModel) renderOptionRow(i int, chosen bool, label string) string {
	style := optionStyle
	if chosen {
		style = optionChosenStyle
	}
	prefix := "  "
	if !m.focusTabs && i == m.cursor {
		style = optionCursorStyle
		prefix = "› "
	}
	return prefix + style.Render(label)
}

func (m *wizardModel) viewReview() string {
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(summaryHeading),
		" ",
		renderBadge("REVIEW", badgeToneInfo),
	))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Check your answers, then submit or go back to edit."))
	b.WriteString("\n\n")

	lines := wizard.Summarize(m.ctrl.Values())
	width := 0
	for _, line := range lines {
		if w := lipgloss.Width(line.Label); w > width {
			width = w
		}
	}
	for _, line := range lines {
		label := labelStyle.Width(width + 2).Render(line.Label + ":")
		value := line.Value
		switch {
		case line.Empty:
			value = hintStyle.Render(value)
		case line.Swatch != "":
			value = renderSwatch(line.Swatch) + " " + value + " " + hintStyle.Render(line.Swatch)
		}
		b.WriteString(label + " " + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderReviewButtons(m.reviewButton))
	return b.String()
}

func renderSwatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}

func renderInputContainer(input string, focused bool) string {
	style := inputStyle
	if focused {
		style = inputFocusStyle
	}
	return style.Render(input)
}

func renderFieldBlock(focused bool, title, description, value, err string) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(title))
	if description != "" {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(description))
	}
	if value != "" {
		b.WriteString("\n")
		b.WriteString(value)
	}
	if err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(err))
	}
	style := fieldStyle
	if focused {
		style = fieldFocusStyle
	}
	return style.Render(b.String())
}

func renderNavButtons(canGoBack, canAdvance bool, nextLabel string) string {
	prev := buttonDisabledStyle.Render("Previous")
	if canGoBack {
		prev = buttonStyle.Render("Previous")
	}
	next := buttonDisabledStyle.Render(nextLabel)
	if canAdvance {
		next = buttonPrimaryStyle.Render(nextLabel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, next)
}

func renderReviewButtons(focus int) string {
	submit := buttonPrimaryStyle.Render("Submit Configuration")
	if focus == reviewButtonSubmit {
		submit = buttonPrimaryFocusStyle.Render("Submit Configuration")
	}
	edit := buttonStyle.Render("Edit Configuration")
	if focus == reviewButtonEdit {
		edit = buttonFocusStyle.Render("Edit Configuration")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, submit, edit)
}
