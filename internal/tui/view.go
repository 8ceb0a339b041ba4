package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/ui"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	if m.tab == tabPrincipal {
		b.WriteString(m.welcomeView())
	} else {
		b.WriteString(m.listView())
	}
	return ui.PanelString(b.String())
}

func (m Model) tabBar() string {
	t := ui.Current()
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs = append(tabs, t.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, t.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) welcomeView() string {
	t := ui.Current()
	body := lipgloss.JoinVertical(lipgloss.Center,
		t.Title.Render("Bienvenido"),
		"",
		t.Button.Render("Ir a Compras"),
	)
	width := max(m.width-4, lipgloss.Width(body))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body) +
		"\n\n" + m.help.View(welcomeKeys(m.keys))
}

func (m Model) listView() string {
	t := ui.Current()
	all := m.lists.All()
	done, pending := model.Stats(all)

	lines := []string{
		ui.Header("Compras", done, pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}

	switch {
	case !m.loaded:
		lines = append(lines, t.Muted.Render("Cargando..."))
	case len(all) == 0:
		lines = append(lines, t.Muted.Render("(lista vacía)"))
	default:
		for i, it := range all {
			lines = append(lines, m.row(i, it))
		}
	}

	if m.mode != inputNone {
		lines = append(lines, "", m.inputBox())
	}

	lines = append(lines, "", m.statusLine(), t.Button.Render("Volver"), m.help.View(listKeys(m.keys)))
	return strings.Join(lines, "\n")
}

func (m Model) row(i int, it model.PurchaseItem) string {
	t := ui.Current()
	icon := t.Pending.Render(t.Cart)
	text := it.Description
	if it.Done {
		icon = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	prefix := "  "
	if i == m.cursor {
		prefix = t.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%s  %s  %s", prefix, icon, text, t.Muted.Render(t.Trash))
}

func (m Model) inputBox() string {
	t := ui.Current()
	title := "Agregar producto"
	if m.mode == inputEdit {
		title = "Editar producto"
	}
	if m.inputErr != "" {
		title += "  " + t.Error.Render(m.inputErr)
	}
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	return bar.Render(title + "\n" + m.input.View())
}

func (m Model) statusLine() string {
	t := ui.Current()
	switch {
	case m.err != nil:
		return t.Error.Render(fmt.Sprintf("No se pudo %s: %s", m.errOp, errText(m.err)))
	case m.busy > 0:
		return t.Muted.Render("…")
	case m.status != "":
		return t.Pending.Render(m.status)
	}
	return ""
}

var _ help.KeyMap = listKeys{}
var _ help.KeyMap = welcomeKeys{}
