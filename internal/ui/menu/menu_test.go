package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/internal/config"
	"libris/internal/library/application"
	"libris/internal/library/infrastructure"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestMenu(t *testing.T) (Model, *application.Service) {
	t.Helper()
	store, err := infrastructure.New(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, err)
	svc := application.NewService(store)
	m := New(svc, config.Defaults())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(Model), svc
}

func seed(t *testing.T, svc *application.Service) {
	t.Helper()
	_, err := svc.AddRecord(context.Background(), "Dune", "Herbert", "111")
	require.NoError(t, err)
	_, err = svc.AddRecord(context.Background(), "Hyperion", "Simmons", "222")
	require.NoError(t, err)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestMenu_EmptyDimensions(t *testing.T) {
	m, _ := newTestMenu(t)
	m.width, m.height = 0, 0
	assert.Equal(t, "", m.View())
}

func TestMenu_EmptyCatalogMessage(t *testing.T) {
	m, _ := newTestMenu(t)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "The catalog is empty")
}

func TestMenu_ListsRecords(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Herbert")
	assert.Contains(t, view, "Hyperion")
	assert.Contains(t, view, "2 records")
}

func TestMenu_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newTestMenu(t)
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "expected quit command")
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	}
}

func TestMenu_CursorNavigation(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	require.Equal(t, 0, m.cursor)

	m = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.cursor)

	// Clamped at the bottom.
	m = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.cursor)

	// Clamped at the top.
	m = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestMenu_AddFlow(t *testing.T) {
	m, _ := newTestMenu(t)

	m = update(t, m, keyRunes("a"))
	require.Equal(t, modeAdd, m.mode)

	m = update(t, m, keyRunes("Dune"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("Herbert"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("111"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeList, m.mode)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Added")
}

func TestMenu_AddFlow_EmptyFieldKeepsForm(t *testing.T) {
	m, _ := newTestMenu(t)

	m = update(t, m, keyRunes("a"))
	// Submit with everything empty: enter walks the fields, the final
	// enter is refused with a validation message.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeAdd, m.mode, "form stays open for a re-prompt")
	assert.Contains(t, ansi.Strip(m.View()), "must not be empty")
}

func TestMenu_AddFlow_DuplicateIdentifier(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	m = update(t, m, keyRunes("a"))
	m = update(t, m, keyRunes("Other"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("Writer"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("111"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeAdd, m.mode)
	assert.Contains(t, ansi.Strip(m.View()), "already exists")
}

func TestMenu_AddFlow_EscCancels(t *testing.T) {
	m, _ := newTestMenu(t)

	m = update(t, m, keyRunes("a"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeList, m.mode)
	assert.Contains(t, ansi.Strip(m.View()), "cancelled")
}

func TestMenu_IssueAndReturnSelected(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	m = update(t, m, keyRunes("i"))
	assert.Contains(t, ansi.Strip(m.View()), "Issued 111")
	record, ok := svc.Find(context.Background(), "111")
	require.True(t, ok)
	assert.False(t, record.IsAvailable())

	// Issuing again is refused with a short message.
	m = update(t, m, keyRunes("i"))
	assert.Contains(t, ansi.Strip(m.View()), "already issued")

	m = update(t, m, keyRunes("r"))
	assert.Contains(t, ansi.Strip(m.View()), "Returned 111")
	record, ok = svc.Find(context.Background(), "111")
	require.True(t, ok)
	assert.True(t, record.IsAvailable())
}

func TestMenu_IssueWithEmptyCatalog(t *testing.T) {
	m, _ := newTestMenu(t)

	m = update(t, m, keyRunes("i"))
	assert.Contains(t, ansi.Strip(m.View()), "No record selected")
}

func TestMenu_SearchFiltersRows(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	m = update(t, m, keyRunes("/"))
	require.Equal(t, modeSearch, m.mode)

	m = update(t, m, keyRunes("dun"))
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Dune")
	assert.NotContains(t, view, "Hyperion")

	// Esc clears the filter.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	view = ansi.Strip(m.View())
	assert.Contains(t, view, "Hyperion")
}

func TestMenu_SearchNoMatches(t *testing.T) {
	m, svc := newTestMenu(t)
	seed(t, svc)
	m = m.refreshRows()

	m = update(t, m, keyRunes("/"))
	m = update(t, m, keyRunes("asimov"))

	assert.Contains(t, ansi.Strip(m.View()), "No records match")
}

func TestMenu_FooterActions(t *testing.T) {
	m, _ := newTestMenu(t)
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "[a]dd")
	assert.Contains(t, view, "[i]ssue")
	assert.Contains(t, view, "[q]uit")
}

func TestMenu_StatusBarHidden(t *testing.T) {
	m, svc := newTestMenu(t)
	m.cfg.UI.ShowStatusBar = false
	seed(t, svc)
	m = m.refreshRows()

	m = update(t, m, keyRunes("i"))
	assert.NotContains(t, ansi.Strip(m.View()), "Issued 111")
}

func TestMenu_Teatest_RunAndQuit(t *testing.T) {
	store, err := infrastructure.New(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, err)
	svc := application.NewService(store)
	_, err = svc.AddRecord(context.Background(), "Dune", "Herbert", "111")
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, New(svc, config.Defaults()),
		teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Dune"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(keyRunes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
}
