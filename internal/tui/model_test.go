package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/shopping"
	"github.com/idilsaglam/compras/internal/store"
	"github.com/idilsaglam/compras/internal/store/sqlitestore"
)

func newService(t *testing.T) *shopping.Service {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), filepath.Join(t.TempDir(), "compras.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return shopping.NewService(s, nil)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = press(t, m, string(r))
	}
	return m
}

// run executes a background task synchronously and feeds its result back.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

// started returns a model whose initial load has completed, on the Compras tab.
func started(t *testing.T, svc Service) Model {
	t.Helper()
	m := New(context.Background(), svc)
	m = run(t, m, m.Init())
	m, cmd := press(t, m, "enter")
	return run(t, m, cmd)
}

func descriptions(items []model.PurchaseItem) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Description)
	}
	return out
}

func TestInit_LoadsSeededList(t *testing.T) {
	m := New(context.Background(), newService(t))
	assert.True(t, m.Busy())

	m = run(t, m, m.Init())
	assert.False(t, m.Busy())
	assert.NoError(t, m.Err())
	assert.Empty(t, m.Lists().Pending)
	assert.Equal(t, shopping.SeedItems, descriptions(m.Lists().Done))
}

func TestWelcome_EnterOpensCompras(t *testing.T) {
	m := New(context.Background(), newService(t))
	m = run(t, m, m.Init())
	assert.Contains(t, m.View(), "Bienvenido")
	assert.Contains(t, m.View(), "Ir a Compras")

	m, cmd := press(t, m, "enter")
	assert.Equal(t, tabCompras, m.tab)
	m = run(t, m, cmd)
	assert.Contains(t, m.View(), "Queso Mantecoso")
	assert.Contains(t, m.View(), "Volver")

	m, _ = press(t, m, "esc")
	assert.Equal(t, tabPrincipal, m.tab)
}

func TestTabKeysSwitchTabs(t *testing.T) {
	m := New(context.Background(), newService(t))
	m = run(t, m, m.Init())

	m, cmd := press(t, m, "tab")
	assert.Equal(t, tabCompras, m.tab)
	assert.NotNil(t, cmd)
	m = run(t, m, cmd)

	m, cmd = press(t, m, "1")
	assert.Equal(t, tabPrincipal, m.tab)
	assert.Nil(t, cmd)

	m, cmd = press(t, m, "2")
	assert.Equal(t, tabCompras, m.tab)
	assert.NotNil(t, cmd)
}

func TestToggle_RepopulatesBothLists(t *testing.T) {
	m := started(t, newService(t))

	// cursor starts on Huevos, which is seeded as done
	m, cmd := press(t, m, " ")
	m = run(t, m, cmd)
	assert.Equal(t, []string{"Huevos"}, descriptions(m.Lists().Pending))
	assert.Len(t, m.Lists().Done, 6)
	assert.NotContains(t, descriptions(m.Lists().Done), "Huevos")

	// Huevos now sits first among pending items; marking it bought moves it back
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)
	assert.Empty(t, m.Lists().Pending)
	assert.Len(t, m.Lists().Done, 7)
}

func TestDelete_RemovesSelected(t *testing.T) {
	m := started(t, newService(t))

	m, _ = press(t, m, "j")
	m, cmd := press(t, m, "d")
	m = run(t, m, cmd)

	assert.Equal(t, 6, m.Lists().Len())
	assert.NotContains(t, descriptions(m.Lists().All()), "Cecinas")
}

func TestDelete_LastRowClampsCursor(t *testing.T) {
	m := started(t, newService(t))
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, "j")
	}
	assert.Equal(t, 6, m.cursor)

	m, cmd := press(t, m, "x")
	m = run(t, m, cmd)
	assert.Equal(t, 5, m.cursor)
}

func TestAdd_InlineInput(t *testing.T) {
	m := started(t, newService(t))

	m, _ = press(t, m, "a")
	assert.Equal(t, inputAdd, m.mode)
	m = typeText(t, m, "Milk")
	m, cmd := press(t, m, "enter")
	assert.Equal(t, inputNone, m.mode)
	m = run(t, m, cmd)

	assert.Equal(t, []string{"Milk"}, descriptions(m.Lists().Pending))
	assert.Equal(t, 8, m.Lists().Len())
}

func TestAdd_EmptyIsRejectedLocally(t *testing.T) {
	m := started(t, newService(t))

	m, _ = press(t, m, "a")
	m = typeText(t, m, "   ")
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, inputAdd, m.mode)
	assert.Contains(t, m.View(), "no puede estar vacía")

	m, _ = press(t, m, "esc")
	assert.Equal(t, inputNone, m.mode)
	assert.Equal(t, 7, m.Lists().Len())
}

func TestEdit_RenamesSelected(t *testing.T) {
	m := started(t, newService(t))

	m, _ = press(t, m, "e")
	assert.Equal(t, inputEdit, m.mode)
	m = typeText(t, m, " blancos")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	assert.Equal(t, "Huevos blancos", m.Lists().Done[0].Description)
	assert.True(t, m.Lists().Done[0].Done)
}

func TestQuit(t *testing.T) {
	m := started(t, newService(t))
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

// fakeService returns canned results.
type fakeService struct {
	lists shopping.Lists
	err   error
	found bool
}

func (f *fakeService) Snapshot(context.Context) (shopping.Lists, error) { return f.lists, f.err }

func (f *fakeService) Toggle(context.Context, model.PurchaseItem) (shopping.Result, error) {
	return shopping.Result{Lists: f.lists, Found: f.found}, f.err
}

func (f *fakeService) Rename(context.Context, model.PurchaseItem, string) (shopping.Result, error) {
	return shopping.Result{Lists: f.lists, Found: f.found}, f.err
}

func (f *fakeService) Remove(context.Context, int64) (shopping.Result, error) {
	return shopping.Result{Lists: f.lists, Found: f.found}, f.err
}

func (f *fakeService) Add(context.Context, string) (shopping.Result, error) {
	return shopping.Result{Lists: f.lists, Found: true}, f.err
}

func TestFailedTask_KeepsStaleLists(t *testing.T) {
	svc := &fakeService{
		lists: shopping.Lists{
			Pending: []model.PurchaseItem{{ID: 8, Description: "Milk"}},
			Done:    []model.PurchaseItem{{ID: 1, Description: "Pan", Done: true}},
		},
		found: true,
	}
	m := started(t, svc)
	before := m.Lists()

	svc.err = store.Wrap("update", errors.New("database is locked"))
	svc.lists = shopping.Lists{}
	m, cmd := press(t, m, " ")
	m = run(t, m, cmd)

	assert.Equal(t, before, m.Lists())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "No se pudo actualizar")
	assert.Contains(t, m.View(), "database is locked")

	// a later successful reload clears the error and replaces the lists
	svc.err = nil
	svc.lists = shopping.Lists{Done: before.Done}
	m, cmd = press(t, m, "r")
	m = run(t, m, cmd)
	assert.NoError(t, m.Err())
	assert.Equal(t, svc.lists, m.Lists())
}

func TestNotFound_ShowsStatus(t *testing.T) {
	svc := &fakeService{
		lists: shopping.Lists{Pending: []model.PurchaseItem{{ID: 8, Description: "Milk"}}},
		found: true,
	}
	m := started(t, svc)

	svc.found = false
	svc.lists = shopping.Lists{}
	m, cmd := press(t, m, "d")
	m = run(t, m, cmd)

	assert.Zero(t, m.Lists().Len())
	assert.Contains(t, m.View(), "El producto ya no existe")
	assert.Contains(t, m.View(), "(lista vacía)")
}

func TestEmptyList_IgnoresItemKeys(t *testing.T) {
	m := started(t, &fakeService{found: true})

	for _, k := range []string{" ", "d", "e"} {
		var cmd tea.Cmd
		m, cmd = press(t, m, k)
		assert.Nil(t, cmd, "key %q", k)
	}
	assert.Equal(t, inputNone, m.mode)
}

func TestOutOfOrderSnapshotIsDropped(t *testing.T) {
	svc := &fakeService{
		lists: shopping.Lists{Pending: []model.PurchaseItem{{ID: 8, Description: "Milk"}}},
		found: true,
	}
	m := started(t, svc)

	m, reload := press(t, m, "r")
	m, toggle := press(t, m, " ")
	require.NotNil(t, reload)
	require.NotNil(t, toggle)

	// the reload reads before the toggle lands but its reply arrives last
	stale := reload()
	fresh := shopping.Lists{Done: []model.PurchaseItem{{ID: 8, Description: "Milk", Done: true}}}
	svc.lists = fresh
	m = run(t, m, toggle)
	next, _ := m.Update(stale)
	m = next.(Model)

	assert.Equal(t, fresh, m.Lists())
	assert.False(t, m.Busy())
}
