// Package filter narrows a todo list down to the items a view shows.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todokit/internal/model"
)

// ErrUnknownFilter is returned by Parse for names outside the known set.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects a view over the list.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

// Names lists the accepted filter names in cycling order.
func Names() []string {
	return []string{All.String(), Active.String(), Completed.String()}
}

func (f Filter) String() string {
	switch f {
	case All:
		return "all"
	case Active:
		return "active"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Parse maps a user-supplied name to a Filter. An empty name means All.
func Parse(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed":
		return Completed, nil
	}
	return All, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFilter, name, strings.Join(Names(), ", "))
}

// Next returns the filter that follows f, wrapping after Completed.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Active
	case Active:
		return Completed
	}
	return All
}

// Set implements pflag.Value.
func (f *Filter) Set(name string) error {
	v, err := Parse(name)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *Filter) Type() string { return "filter" }

// Apply returns the items f keeps, in their original order.
// All hands back the input slice itself; the other filters allocate
// a new slice and never touch the input. A value outside the declared
// constants is a programming error and panics.
func Apply(f Filter, items []model.Item) []model.Item {
	switch f {
	case All:
		return items
	case Active:
		return keep(items, func(it model.Item) bool { return !it.Completed })
	case Completed:
		return keep(items, func(it model.Item) bool { return it.Completed })
	}
	panic(fmt.Sprintf("filter: invalid %v", f))
}

func keep(items []model.Item, pred func(model.Item) bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
