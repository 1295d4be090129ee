// Package menu implements the interactive catalog view: a record table with
// add, issue, return and title-search actions.
package menu

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"libris/internal/config"
	"libris/internal/library/application"
	domain "libris/internal/library/domain"
	"libris/internal/library/infrastructure"
	"libris/internal/log"
	"libris/internal/ui/styles"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
)

// Column layout: identifier and status are fixed, title and author share the
// remainder.
const (
	colIdentifierWidth = 14
	colStatusWidth     = 10
)

// Zone identifiers for clickable footer actions.
const (
	zoneAdd    = "menu-add"
	zoneIssue  = "menu-issue"
	zoneReturn = "menu-return"
	zoneSearch = "menu-search"
	zoneQuit   = "menu-quit"
)

// refreshMsg reports an external change to the catalog file.
type refreshMsg struct{}

// keyMap defines the menu keybindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Issue  key.Binding
	Return key.Binding
	Search key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Issue:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "issue")),
		Return: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Issue, k.Return, k.Search, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Issue, k.Return},
		{k.Search, k.Back, k.Quit},
	}
}

// Model holds the menu state.
type Model struct {
	svc *application.Service
	cfg config.Config

	mode    mode
	records []domain.Record
	query   string
	cursor  int

	inputs   []textinput.Model
	focusIdx int

	search textinput.Model

	keys   keyMap
	help   help.Model
	status string
	errMsg bool

	watcher *infrastructure.Watcher

	width  int
	height int
}

// Option configures the menu model.
type Option func(*Model)

// WithWatcher enables auto-refresh from an external catalog watcher.
func WithWatcher(w *infrastructure.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// New creates the menu over the given service.
func New(svc *application.Service, cfg config.Config, opts ...Option) Model {
	zone.NewGlobal()

	inputs := make([]textinput.Model, 3)
	for i, placeholder := range []string{"Title", "Author", "Identifier"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		inputs[i] = in
	}

	search := textinput.New()
	search.Placeholder = "title contains..."

	m := Model{
		svc:     svc,
		cfg:     cfg,
		inputs:  inputs,
		search:  search,
		keys:    defaultKeyMap(),
		help:    help.New(),
		records: svc.List(context.Background()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher until the catalog file changes.
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return refreshMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		log.Debug(log.CatUI, "catalog changed on disk, reloading")
		if err := m.svc.Reload(context.Background()); err != nil {
			m = m.setError("Could not reload the catalog.")
		} else {
			m = m.refreshRows()
			m = m.setStatus("Catalog reloaded.")
		}
		return m, m.waitForChange()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch {
	case zone.Get(zoneAdd).InBounds(msg):
		return m.enterAddMode(), nil
	case zone.Get(zoneIssue).InBounds(msg):
		return m.issueSelected(), nil
	case zone.Get(zoneReturn).InBounds(msg):
		return m.returnSelected(), nil
	case zone.Get(zoneSearch).InBounds(msg):
		return m.enterSearchMode(), nil
	case zone.Get(zoneQuit).InBounds(msg):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m.enterAddMode(), textinput.Blink
	case key.Matches(msg, m.keys.Issue):
		return m.issueSelected(), nil
	case key.Matches(msg, m.keys.Return):
		return m.returnSelected(), nil
	case key.Matches(msg, m.keys.Search):
		return m.enterSearchMode(), textinput.Blink
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.query = ""
			m = m.refreshRows()
		}
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m = m.setStatus("Add cancelled.")
		return m, nil

	case "enter":
		if m.focusIdx < len(m.inputs)-1 {
			return m.focusInput(m.focusIdx + 1)
		}
		return m.submitAdd()

	case "tab", "down":
		return m.focusInput((m.focusIdx + 1) % len(m.inputs))

	case "shift+tab", "up":
		return m.focusInput((m.focusIdx + len(m.inputs) - 1) % len(m.inputs))
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.query = ""
		m = m.refreshRows()
		return m, nil

	case "enter":
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m = m.refreshRows()
	return m, cmd
}

func (m Model) enterAddMode() Model {
	m.mode = modeAdd
	m.focusIdx = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[0].Focus()
	m.status = ""
	return m
}

func (m Model) enterSearchMode() Model {
	m.mode = modeSearch
	m.search.SetValue("")
	m.search.Focus()
	m.query = ""
	m.status = ""
	return m
}

func (m Model) focusInput(idx int) (Model, tea.Cmd) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	return m, m.inputs[idx].Focus()
}

func (m Model) submitAdd() (Model, tea.Cmd) {
	title := m.inputs[0].Value()
	author := m.inputs[1].Value()
	identifier := m.inputs[2].Value()

	record, err := m.svc.AddRecord(context.Background(), title, author, identifier)
	if err != nil {
		// Stay in the form so the user can fix the input.
		return m.setError(userMessage(err)), nil
	}

	m.mode = modeList
	m = m.refreshRows()
	m = m.setStatus("Added " + record.String())
	return m, nil
}

func (m Model) issueSelected() Model {
	record, ok := m.selected()
	if !ok {
		return m.setError("No record selected.")
	}
	if err := m.svc.IssueRecord(context.Background(), record.Identifier); err != nil {
		return m.setError(userMessage(err))
	}
	m = m.refreshRows()
	return m.setStatus("Issued " + record.Identifier + ".")
}

func (m Model) returnSelected() Model {
	record, ok := m.selected()
	if !ok {
		return m.setError("No record selected.")
	}
	if err := m.svc.ReturnRecord(context.Background(), record.Identifier); err != nil {
		return m.setError(userMessage(err))
	}
	m = m.refreshRows()
	return m.setStatus("Returned " + record.Identifier + ".")
}

func (m Model) selected() (domain.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return domain.Record{}, false
	}
	return m.records[m.cursor], true
}

// refreshRows re-reads the visible rows from the service, honoring the
// active search query and clamping the cursor.
func (m Model) refreshRows() Model {
	ctx := context.Background()
	if strings.TrimSpace(m.query) != "" {
		m.records = m.svc.Search(ctx, m.query)
	} else {
		m.records = m.svc.List(ctx)
	}
	if m.cursor >= len(m.records) {
		m.cursor = len(m.records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) setStatus(s string) Model {
	m.status = s
	m.errMsg = false
	return m
}

func (m Model) setError(s string) Model {
	m.status = s
	m.errMsg = true
	return m
}

// userMessage converts domain errors into short user-facing messages and
// hides anything unexpected behind a generic one.
func userMessage(err error) string {
	switch err.(type) {
	case *domain.EmptyFieldError,
		*domain.DuplicateIdentifierError,
		*domain.AlreadyIssuedError,
		*domain.NotIssuedError,
		*domain.RecordNotFoundError:
		return err.Error()
	default:
		log.ErrorErr(log.CatUI, "unexpected failure", err)
		return "Something went wrong; see the log for details."
	}
}

// View renders the menu.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.viewAddForm())
	default:
		if m.mode == modeSearch {
			b.WriteString("Search: " + m.search.View() + "\n\n")
		}
		b.WriteString(m.viewTable())
	}

	b.WriteString("\n")
	if m.cfg.UI.ShowStatusBar {
		b.WriteString(m.viewStatusBar())
		b.WriteString("\n")
	}
	b.WriteString(m.viewFooter())

	return zone.Scan(b.String())
}

func (m Model) viewHeader() string {
	title := styles.TitleStyle.Render("Libris")
	if !m.cfg.UI.ShowCounts {
		return title
	}
	count := styles.HintStyle.Render(styles.FormatCount(len(m.records)))
	return title + "  " + count
}

func (m Model) viewTable() string {
	if len(m.records) == 0 {
		if strings.TrimSpace(m.query) != "" {
			return styles.HintStyle.Render("No records match the search.")
		}
		return styles.HintStyle.Render("The catalog is empty. Press a to add a record.")
	}

	flex := m.width - colIdentifierWidth - colStatusWidth - 6
	titleWidth := flex / 2
	authorWidth := flex - titleWidth

	var b strings.Builder
	header := "  " +
		styles.Pad("IDENTIFIER", colIdentifierWidth) + " " +
		styles.Pad("TITLE", titleWidth) + " " +
		styles.Pad("AUTHOR", authorWidth) + " " +
		styles.Pad("STATUS", colStatusWidth)
	b.WriteString(styles.HintStyle.Render(header))
	b.WriteString("\n")

	for i, record := range m.records {
		prefix := "  "
		if i == m.cursor {
			prefix = styles.SelectionIndicatorStyle.Render("> ")
		}
		row := prefix +
			styles.Pad(record.Identifier, colIdentifierWidth) + " " +
			styles.Pad(record.Title, titleWidth) + " " +
			styles.Pad(record.Author, authorWidth) + " " +
			styles.FormatStatus(record.Status)
		b.WriteString(row)
		if i < len(m.records)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewAddForm() string {
	labels := []string{"Title", "Author", "Identifier"}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Add record"))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		b.WriteString(labels[i] + ":\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HintStyle.Render("enter: next field / submit, esc: cancel"))
	return b.String()
}

func (m Model) viewStatusBar() string {
	if m.status == "" {
		return ""
	}
	style := styles.StatusBarStyle
	if m.errMsg {
		style = styles.ErrorStyle
	}
	return style.Render(wordwrap.String(m.status, max(m.width, 20)))
}

func (m Model) viewFooter() string {
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneAdd, "[a]dd"), "  ",
		zone.Mark(zoneIssue, "[i]ssue"), "  ",
		zone.Mark(zoneReturn, "[r]eturn"), "  ",
		zone.Mark(zoneSearch, "[/] search"), "  ",
		zone.Mark(zoneQuit, "[q]uit"),
	)
	return styles.HintStyle.Render(actions) + "\n" + m.help.View(m.keys)
}
