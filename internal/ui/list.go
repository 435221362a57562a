package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/listview"
	"vitrine/internal/product"
)

// listState holds the list screen's own state: the search input, the
// filter/pagination model, and the cursor within the visible page.
type listState struct {
	search    textinput.Model
	view      listview.Model
	cursor    int
	searching bool
}

func newListState(pageSize int) listState {
	ti := textinput.New()
	ti.Placeholder = "search id, name, description"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	return listState{
		search: ti,
		view:   listview.New(pageSize),
	}
}

func (l *listState) clampCursor(rows int) {
	if rows == 0 {
		l.cursor = 0
		return
	}
	if l.cursor >= rows {
		l.cursor = rows - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func searchWidth(total int) int {
	w := total - 8
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	return w
}

// visibleRows returns the current page of filtered records.
func (m Model) visibleRows() []product.Product {
	return m.list.view.Rows(m.snapshot.Records)
}

func (m Model) selectedRecord() (product.Product, bool) {
	rows := m.visibleRows()
	if len(rows) == 0 || m.list.cursor >= len(rows) {
		return product.Product{}, false
	}
	return rows[m.list.cursor], true
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search input has focus every key belongs to it; the filter
	// tracks the input live.
	if m.list.searching {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			m.list.searching = false
			m.list.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		m.list.view = m.list.view.SetSearch(m.list.search.Value())
		m.list.cursor = 0
		return m, cmd
	}

	records := m.snapshot.Records

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.list.searching = true
		m.list.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Reload):
		return m, loadCmd(m.ctx, m.store)

	case key.Matches(msg, m.keys.Add):
		m.enterCreate()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		return m.startEdit(rec.ID)

	case key.Matches(msg, m.keys.Delete):
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.modal = deleteModal{
			rec: rec,
			accept: func(r product.Product) tea.Cmd {
				return deleteCmd(m.ctx, m.store, r.ID, r.Name)
			},
		}
		return m, nil

	case key.Matches(msg, m.keys.CyclePageSz):
		m.list.view = m.list.view.CyclePageSize()
		m.list.cursor = 0
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.list.view = m.list.view.Next(records)
		m.list.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.list.view = m.list.view.Prev(records)
		m.list.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.FirstPage):
		m.list.view = m.list.view.GoTo(1, records)
		m.list.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.LastPage):
		m.list.view = m.list.view.GoTo(m.list.view.TotalPages(records), records)
		m.list.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.list.cursor > 0 {
			m.list.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.list.cursor < len(m.visibleRows())-1 {
			m.list.cursor++
		}
		return m, nil
	}

	return m, nil
}

// startEdit resolves the record for an edit session: cache first, then the
// network.
func (m Model) startEdit(id string) (tea.Model, tea.Cmd) {
	if rec, ok := m.store.GetLocal(id); ok {
		m.enterEdit(rec)
		return m, textinput.Blink
	}
	return m, editRecordCmd(m.ctx, m.store, id)
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	var b strings.Builder

	search := m.list.search.View()
	if !m.list.searching && strings.TrimSpace(m.list.search.Value()) == "" {
		search = styles.MutedText.Render("/ press / to search")
	}
	b.WriteString(search)
	b.WriteString("\n\n")

	rows := m.visibleRows()
	widths := columnWidths(m.width)

	head := tableRow(widths,
		"ID", "Name", "Description", "Release", "Revision")
	b.WriteString(styles.TableHead.Render(head))
	b.WriteString("\n")

	if m.snapshot.Loading && len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("Loading records..."))
		b.WriteString("\n")
	}
	if !m.snapshot.Loading && len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("No records to show."))
		b.WriteString("\n")
	}

	for i, rec := range rows {
		line := tableRow(widths,
			rec.ID, rec.Name, rec.Description, rec.DateRelease, rec.DateRevision)
		if i == m.list.cursor {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	from, to, total := m.list.view.Showing(m.snapshot.Records)
	pages := m.list.view.TotalPages(m.snapshot.Records)
	page := m.list.view.Page()
	if pages == 0 {
		page = 0
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf(
		"Showing %d–%d of %d  •  page %d/%d  •  size %d",
		from, to, total, page, pages, m.list.view.PageSize())))

	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	title := styles.Title.Render("vitrine")
	sub := styles.MutedText.Render("product catalog")

	status := ""
	switch {
	case m.snapshot.Loading:
		status = styles.Warning.Render("working...")
	case m.snapshot.LastError != "":
		status = styles.Danger.Render(truncateRight(m.snapshot.LastError, m.width-30))
	}

	return styles.Header.Width(m.width).Render(title + "  " + sub + "  " + status)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var hints string
	if m.screen == screenForm {
		hints = "tab fields  •  ctrl+s submit  •  ctrl+r reset  •  esc back"
	} else {
		hints = "a add  •  e edit  •  d delete  •  / search  •  s size  •  h/l pages  •  r reload  •  ? help  •  q quit"
	}
	return styles.Footer.Width(m.width).Render(hints)
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Title.Render("vitrine keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				styles.AccentText.Render(help.Key), styles.Text.Render(help.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("press any key to close"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
