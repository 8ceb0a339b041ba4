package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/shopping"
	"github.com/idilsaglam/compras/internal/store"
)

// Service is what the shell needs from the shopping layer.
type Service interface {
	Snapshot(ctx context.Context) (shopping.Lists, error)
	Toggle(ctx context.Context, item model.PurchaseItem) (shopping.Result, error)
	Rename(ctx context.Context, item model.PurchaseItem, description string) (shopping.Result, error)
	Remove(ctx context.Context, id int64) (shopping.Result, error)
	Add(ctx context.Context, description string) (shopping.Result, error)
}

type tab int

const (
	tabPrincipal tab = iota
	tabCompras
)

var tabNames = []string{"Principal", "Compras"}

// refreshedMsg carries a fresh snapshot; the model replaces its lists with it
// unless a task dispatched later has already been applied.
type refreshedMsg struct {
	seq    int
	lists  shopping.Lists
	status string
}

// errMsg reports a failed task. The displayed lists stay as they were.
type errMsg struct {
	seq int
	op  string
	err error
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
)

// Model is the Bubble Tea model for the two-tab app.
type Model struct {
	ctx  context.Context
	svc  Service
	keys keyMap
	help help.Model

	tab     tab
	lists   shopping.Lists
	loaded  bool
	cursor  int
	busy    int
	seq     int // last dispatched task
	applied int // task whose snapshot is displayed

	mode     inputMode
	editing  model.PurchaseItem
	input    textinput.Model
	inputErr string

	status string
	err    error
	errOp  string
	width  int
}

func New(ctx context.Context, svc Service) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = shopping.MaxDescription

	return Model{
		ctx:   ctx,
		svc:   svc,
		keys:  defaultKeys(),
		help:  help.New(),
		input: ti,
		width: 80,
		busy:  1, // Init's load, seq 0
	}
}

// Init loads the list in the background so the first visit to Compras is
// already populated. The first read also seeds an empty store.
func (m Model) Init() tea.Cmd {
	return m.loadCmd(0)
}

// Lists is the currently displayed snapshot.
func (m Model) Lists() shopping.Lists { return m.lists }

func (m Model) Err() error { return m.err }

func (m Model) Busy() bool { return m.busy > 0 }

func (m Model) selected() (model.PurchaseItem, bool) {
	all := m.lists.All()
	if m.cursor < 0 || m.cursor >= len(all) {
		return model.PurchaseItem{}, false
	}
	return all[m.cursor], true
}

// --- background tasks ------------------------------------------------------

func (m Model) loadCmd(seq int) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		lists, err := svc.Snapshot(ctx)
		if err != nil {
			return errMsg{seq: seq, op: "cargar", err: err}
		}
		return refreshedMsg{seq: seq, lists: lists}
	}
}

func (m Model) mutationCmd(op string, fn func(context.Context) (shopping.Result, error)) func(int) tea.Cmd {
	ctx := m.ctx
	return func(seq int) tea.Cmd {
		return func() tea.Msg {
			res, err := fn(ctx)
			if err != nil {
				return errMsg{seq: seq, op: op, err: err}
			}
			msg := refreshedMsg{seq: seq, lists: res.Lists}
			if !res.Found {
				msg.status = "El producto ya no existe"
			}
			return msg
		}
	}
}

// dispatch numbers the task built by build and counts it as in flight.
func (m Model) dispatch(build func(seq int) tea.Cmd) (Model, tea.Cmd) {
	m.busy++
	m.seq++
	return m, build(m.seq)
}

// --- update ----------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refreshedMsg:
		m.busy = max(m.busy-1, 0)
		if msg.seq < m.applied {
			return m, nil
		}
		m.applied = msg.seq
		m.lists = msg.lists
		m.loaded = true
		m.err = nil
		m.status = msg.status
		m.clampCursor()
		return m, nil

	case errMsg:
		m.busy = max(m.busy-1, 0)
		m.err = msg.err
		m.errOp = msg.op
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := m.lists.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) switchTab(t tab) (Model, tea.Cmd) {
	if m.tab == t {
		return m, nil
	}
	m.tab = t
	if t == tabCompras {
		return m.dispatch(m.loadCmd)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + 1) % 2)
	case key.Matches(msg, m.keys.TabPrincipal):
		return m.switchTab(tabPrincipal)
	case key.Matches(msg, m.keys.TabCompras):
		return m.switchTab(tabCompras)
	}

	if m.tab == tabPrincipal {
		if key.Matches(msg, m.keys.Open) {
			return m.switchTab(tabCompras)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.switchTab(tabPrincipal)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.lists.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(m.loadCmd)
	case key.Matches(msg, m.keys.Toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		svc := m.svc
		return m.dispatch(m.mutationCmd("actualizar", func(ctx context.Context) (shopping.Result, error) {
			return svc.Toggle(ctx, it)
		}))
	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		svc := m.svc
		return m.dispatch(m.mutationCmd("eliminar", func(ctx context.Context) (shopping.Result, error) {
			return svc.Remove(ctx, it.ID)
		}))
	case key.Matches(msg, m.keys.Add):
		m.mode = inputAdd
		m.inputErr = ""
		m.input.SetValue("")
		m.input.Placeholder = "Nuevo producto..."
		m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = inputEdit
		m.editing = it
		m.inputErr = ""
		m.input.SetValue(it.Description)
		m.input.CursorEnd()
		m.input.Placeholder = "Descripción..."
		m.input.Focus()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		d := strings.TrimSpace(m.input.Value())
		if d == "" {
			m.inputErr = "La descripción no puede estar vacía"
			return m, nil
		}
		mode, item, svc := m.mode, m.editing, m.svc
		m.closeInput()
		if mode == inputEdit {
			return m.dispatch(m.mutationCmd("editar", func(ctx context.Context) (shopping.Result, error) {
				return svc.Rename(ctx, item, d)
			}))
		}
		return m.dispatch(m.mutationCmd("agregar", func(ctx context.Context) (shopping.Result, error) {
			return svc.Add(ctx, d)
		}))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.editing = model.PurchaseItem{}
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
}

// errText renders err for the status line.
func errText(err error) string {
	if store.IsStorageError(err) {
		return "error de almacenamiento: " + err.Error()
	}
	return err.Error()
}
