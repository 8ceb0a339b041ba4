package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down     key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	Add, Edit    key.Binding
	Reload       key.Binding
	Back         key.Binding
	Open         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	TabPrincipal key.Binding
	TabCompras   key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Toggle:       key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("espacio", "comprar/desmarcar")),
		Delete:       key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "eliminar")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agregar")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		Back:         key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "volver")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ir a compras")),
		NextTab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pestaña")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab")),
		TabPrincipal: key.NewBinding(key.WithKeys("1")),
		TabCompras:   key.NewBinding(key.WithKeys("2")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

// listKeys is the help shown on the Compras tab.
type listKeys keyMap

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Add, k.Edit, k.Back, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Add, k.Edit, k.Reload},
		{k.Back, k.NextTab, k.Quit},
	}
}

// welcomeKeys is the help shown on the Principal tab.
type welcomeKeys keyMap

func (k welcomeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.NextTab, k.Quit}
}

func (k welcomeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
