package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/filedeck/filedeck/internal/actions"
	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// Fixed column widths; the name column takes the rest of the line.
const (
	markWidth     = 2
	modifiedWidth = 16
	typeWidth     = 12
	sizeWidth     = 9
	minNameWidth  = 12
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(m.headerLine()))
	b.WriteString("\n")
	b.WriteString(m.rowsView())
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) titleView() string {
	nav := ""
	if m.canBack {
		nav += "◀"
	} else {
		nav += dimStyle.Render("◀")
	}
	if m.canForward {
		nav += "▶"
	} else {
		nav += dimStyle.Render("▶")
	}
	title := titleStyle.Render("filedeck") + nav + " " + pathStyle.Render(m.path)
	if m.filter != "" {
		title += dimStyle.Render(fmt.Sprintf("  filter: %s", m.filter))
	}
	if m.showHidden {
		title += dimStyle.Render("  [hidden]")
	}
	return title
}

func (m Model) nameWidth() int {
	w := m.width - markWidth - modifiedWidth - typeWidth - sizeWidth - 3
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m Model) headerLine() string {
	label := func(c localfs.SortColumn, title string) string {
		if c != m.sortBy {
			return title
		}
		if m.ascending {
			return title + " ▲"
		}
		return title + " ▼"
	}
	return formatRow(m.nameWidth(), "",
		label(localfs.SortByName, "Name"),
		label(localfs.SortByModified, "Modified On"),
		label(localfs.SortByType, "Type"),
		label(localfs.SortBySize, "Size"))
}

func (m Model) rowsView() string {
	items := m.list.Items()
	visible := m.visibleRows()
	cursor := m.list.Cursor()

	var b strings.Builder
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
		visible--
	}
	end := m.offset + visible
	if end > len(items) {
		end = len(items)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.rowView(items[i], i == cursor))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rowView(e localfs.Entry, isCursor bool) string {
	mark := ""
	switch {
	case m.list.IsSelected(e.Name):
		mark = "*"
	case e.Cut:
		mark = "x"
	}
	name := e.Name
	if e.IsDir() {
		name += "/"
	}
	line := formatRow(m.nameWidth(), mark, name, e.ModifiedLabel(), e.TypeLabel(), strings.TrimSpace(e.SizeLabel()))

	switch {
	case isCursor:
		return cursorStyle.Render(line)
	case mark == "*":
		return markedStyle.Render(line)
	case e.Cut || e.Hidden:
		return dimStyle.Render(line)
	case e.IsDir():
		return dirStyle.Render(line)
	}
	return line
}

func (m Model) statusView() string {
	left := m.status
	style := statusBarStyle
	switch m.statusLevel {
	case events.WarnLevel, events.ErrorLevel:
		style = warnStyle
	case events.SuccessLevel:
		style = successStyle
	}
	if m.progress != "" {
		left = m.progress
		style = statusBarStyle
	}

	right := fmt.Sprintf("%d items", m.list.Count())
	if n := m.list.SelectedCount(); n > 0 {
		right += fmt.Sprintf(", %d selected", n)
	}
	if m.clipCount > 0 {
		verb := "copied"
		if m.clipCut {
			verb = "cut"
		}
		right += fmt.Sprintf(" | %d %s", m.clipCount, verb)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) footerView() string {
	switch m.mode {
	case modeAddress:
		return promptStyle.Render("Go to:") + " " + m.input.View()
	case modeFilter:
		return promptStyle.Render("Filter:") + " " + m.input.View()
	case modeMove:
		return promptStyle.Render(fmt.Sprintf("Move %d item(s) to folder:", len(m.selection))) + " " + m.input.View()
	case modeEdit:
		return promptStyle.Render("Name:") + " " + m.input.View() + helpStyle.Render("  enter save • esc cancel")
	case modeConfirm:
		if m.pending == nil {
			return ""
		}
		return promptStyle.Render(m.pending.title) + " " + m.pending.message + helpStyle.Render("  [y/n]")
	case modeSort:
		return promptStyle.Render("Sort by:") + helpStyle.Render(" n name • t type • m modified • s size (again to reverse)")
	case modeBulk:
		return m.bulkView()
	}
	return helpStyle.Render(shortHelp())
}

func (m Model) bulkView() string {
	labels := [bulkFieldCount]string{"Extension", "Prefix", "Start"}
	var b strings.Builder
	only := "all files"
	if m.bulkOnly {
		only = fmt.Sprintf("%d selected", len(m.selection))
	}
	b.WriteString(promptStyle.Render("Bulk rename") + helpStyle.Render(fmt.Sprintf("  %s (ctrl+o) • tab next • enter rename • esc cancel", only)))
	for i, in := range m.bulkInputs {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %-10s %s", labels[i], in.View()))
	}
	return b.String()
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, line := range [][2]string{
		{"↑/k ↓/j", "move"},
		{"pgup pgdown g G", "page, first, last"},
		{"space", "select"},
		{"ctrl+a / esc", "select all / clear"},
		{"h / ←", "parent folder"},
		{"l / →", "open"},
		{"ctrl+l", "go to path"},
		{"1-9", "shortcuts"},
		{"q", "quit"},
	} {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", line[0], line[1]))
	}
	for _, d := range actions.All() {
		if d.Key == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-18s %s\n", d.Key, d.Label))
	}
	if len(m.shortcuts) > 0 {
		b.WriteString("\n")
		for i, s := range m.shortcuts {
			if i >= 9 {
				break
			}
			b.WriteString(fmt.Sprintf("  %-18d %s  %s\n", i+1, s.Name, dimStyle.Render(s.Path)))
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("press any key to return"))
	return b.String()
}

// shortHelp lists the most used keys on one line.
func shortHelp() string {
	keys := []actions.ID{actions.Open, actions.NewFile, actions.Rename, actions.Copy, actions.Cut, actions.Paste, actions.Delete}
	parts := make([]string, 0, len(keys)+1)
	for _, id := range keys {
		d, ok := actions.Lookup(id)
		if !ok {
			continue
		}
		parts = append(parts, d.Key+" "+strings.ToLower(d.Label))
	}
	parts = append(parts, "? help")
	return strings.Join(parts, " • ")
}

func formatRow(nameWidth int, mark, name, modified, typ, size string) string {
	return fmt.Sprintf("%-*s%s %s %s %s",
		markWidth, mark,
		pad(name, nameWidth),
		pad(modified, modifiedWidth),
		pad(typ, typeWidth),
		padLeft(size, sizeWidth))
}

// pad truncates or right-pads s to w cells.
func pad(s string, w int) string {
	s = truncate(s, w)
	if gap := w - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	s = truncate(s, w)
	if gap := w - lipgloss.Width(s); gap > 0 {
		s = strings.Repeat(" ", gap) + s
	}
	return s
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
