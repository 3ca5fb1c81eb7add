package cli

import (
	"fmt"

	"github.com/idilsaglam/todokit/internal/filter"
	"github.com/idilsaglam/todokit/internal/model"
	"github.com/idilsaglam/todokit/internal/ui"
)

const maxTitle = 80

// listLines builds the `todo ls` panel body. Numbers shown are positions
// in the full list so they stay valid for done/rm/edit under any filter.
func listLines(items []model.Item, f filter.Filter, group bool) []string {
	t := ui.Current()
	active, completed := model.Count(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), completed,
		t.Pending.Render(t.SymPending), active,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{
		header,
		t.Muted.Render(ui.ProgressBar(completed, len(items), 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items, f)...)
	} else {
		lines = append(lines, flatLines(filter.Apply(f, items))...)
	}
	lines = append(lines, "")
	if f != filter.All {
		lines = append(lines, t.Muted.Render("Showing: "+f.String()))
	}
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", it.ID+1)
		box := t.Muted.Render(t.BoxUnchecked)
		title := truncate(it.Title, maxTitle)
		if it.Completed {
			box = t.Success.Render(t.BoxChecked)
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, title))
	}
	return out
}

func groupLines(items []model.Item, f filter.Filter) []string {
	t := ui.Current()
	section := func(name string, part []model.Item) []string {
		lines := []string{t.Accent.Render(name)}
		if len(part) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(part)...)
	}

	var lines []string
	if f != filter.Completed {
		lines = append(lines, section("Pending", filter.Apply(filter.Active, items))...)
	}
	if f == filter.All {
		lines = append(lines, "")
	}
	if f != filter.Active {
		lines = append(lines, section("Done", filter.Apply(filter.Completed, items))...)
	}
	return lines
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
