// Package tui is the interactive list view: the whole list is kept in
// memory, edited in place, and saved back through storage on quit.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todokit/internal/filter"
	"github.com/idilsaglam/todokit/internal/model"
	"github.com/idilsaglam/todokit/internal/storage"
	"github.com/idilsaglam/todokit/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Title }

// IDGen hands out ids for new items.
type IDGen interface {
	NextID() int
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

type modelTUI struct {
	list   list.Model
	ids    IDGen
	items  []model.Item // canonical list, visible subset lives in list
	filter filter.Filter

	changed bool

	// Inline add/edit share one text input.
	mode    mode
	ti      textinput.Model
	editID  int
	errText string

	// Undo support (single-level)
	undoItem  *model.Item
	undoIndex int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Title
	if it.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	filterBind = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view"))
)

func newModel(items []model.Item, ids IDGen, f filter.Filter) modelTUI {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	extra := func() []key.Binding {
		return []key.Binding{toggleBind, addBind, editBind, deleteBind, undoBind, filterBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := modelTUI{
		list:   l,
		ids:    ids,
		items:  append([]model.Item(nil), items...),
		filter: f,
		ti:     ti,
	}
	m.refresh()
	return m
}

// refresh rebuilds the visible rows and header from the canonical list.
func (m *modelTUI) refresh() {
	visible := filter.Apply(m.filter, m.items)
	li := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)
	if n := len(li); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	t := ui.Current()
	active, completed := model.Count(m.items)
	m.list.Title = fmt.Sprintf("Todos [%s]   %s %d  %s %d  Total %d",
		m.filter,
		t.SymDone, completed,
		t.SymPending, active,
		len(m.items),
	)
}

// selected returns the canonical index of the highlighted row.
func (m modelTUI) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return -1, false
	}
	return m.indexOf(it.ID)
}

func (m modelTUI) indexOf(id int) (int, bool) {
	for i, it := range m.items {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Init, Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}
	if m.mode != browsing {
		return m.updateInput(msg)
	}

	// Let the list own the keyboard while its fuzzy filter is being typed.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			// First esc clears an applied fuzzy filter.
			if m.list.FilterState() != list.Unfiltered {
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}
			return m, tea.Quit
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			if i, ok := m.selected(); ok {
				m.items[i].Completed = !m.items[i].Completed
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "tab":
			m.filter = m.filter.Next()
			m.refresh()
			return m, nil
		case "d":
			if i, ok := m.selected(); ok {
				removed := m.items[i]
				m.undoItem = &removed
				m.undoIndex = i
				m.items = append(m.items[:i], m.items[i+1:]...)
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "u":
			if m.undoItem != nil {
				idx := min(max(m.undoIndex, 0), len(m.items))
				m.items = append(m.items[:idx], append([]model.Item{*m.undoItem}, m.items[idx:]...)...)
				m.undoItem = nil
				m.changed = true
				m.refresh()
			}
			return m, nil
		case "a":
			m.mode = adding
			m.errText = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			return m, m.ti.Focus()
		case "e":
			if i, ok := m.selected(); ok {
				m.mode = editing
				m.errText = ""
				m.editID = m.items[i].ID
				m.ti.SetValue(m.items[i].Title)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				return m, m.ti.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.errText = "Title cannot be empty"
				return m, nil
			}
			if m.mode == adding {
				m.insertAfterSelection(model.Item{ID: m.ids.NextID(), Title: title})
			} else if i, ok := m.indexOf(m.editID); ok {
				m.items[i].Title = title
				m.changed = true
			}
			m.closeInput()
			m.refresh()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) insertAfterSelection(it model.Item) {
	at := len(m.items)
	if i, ok := m.selected(); ok {
		at = i + 1
	}
	m.items = append(m.items[:at], append([]model.Item{it}, m.items[at:]...)...)
	m.changed = true
}

func (m *modelTUI) closeInput() {
	m.mode = browsing
	m.errText = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) View() string {
	t := ui.Current()
	content := m.list.View()
	if m.mode != browsing {
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.mode == editing {
			title = "Edit item"
		}
		if m.errText != "" {
			title += ": " + t.Error.Render(m.errText)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.Panel([]string{content})
}

// Run loads the list, runs the interactive view until the user quits, and
// saves the list if anything changed. It reports whether a save happened.
func Run(st *storage.Storage, f filter.Filter, opts ...tea.ProgramOption) (bool, error) {
	items, err := st.Load()
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(newModel(items, st, f), opts...)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(modelTUI)
	if !ok || !fm.changed {
		return false, nil
	}
	if err := st.Save(fm.items); err != nil {
		return false, err
	}
	return true, nil
}
