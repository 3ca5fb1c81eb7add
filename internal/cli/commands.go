package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todokit/internal/export"
	"github.com/idilsaglam/todokit/internal/filter"
	"github.com/idilsaglam/todokit/internal/model"
	"github.com/idilsaglam/todokit/internal/tui"
	"github.com/idilsaglam/todokit/internal/ui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "todo "+Version)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new item (title can be multiple words)",
		Example: `  todo add "Buy milk"`,
		Args:    minArgs(1, "todo add <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			items, err := a.st.Load()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			items = append(items, model.Item{ID: a.st.NextID(), Title: title})
			if err := a.st.Save(items); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", len(items)))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		f     filter.Filter
		group bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("filter") {
				f = a.cfg.DefaultFilter
			}
			items, err := a.st.Load()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(items, f, group)))
			return nil
		},
	}
	cmd.Flags().VarP(&f, "filter", "f", "which items to show: "+strings.Join(filter.Names(), ", "))
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for item at 1-based index",
		Args:  exactArgs(1, "todo done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], "toggled", func(items []model.Item, i int) []model.Item {
				items[i].Completed = !items[i].Completed
				return items
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove item at 1-based index",
		Args:  exactArgs(1, "todo rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], "removed", func(items []model.Item, i int) []model.Item {
				return append(items[:i], items[i+1:]...)
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Change the title of the item at 1-based index",
		Args:  minArgs(2, "todo edit <index> <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return usagef("edit: empty title")
			}
			return a.mutate(cmd, args[0], "renamed", func(items []model.Item, i int) []model.Item {
				items[i].Title = title
				return items
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed items",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.st.Load()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			kept := filter.Apply(filter.Active, items)
			if len(kept) == len(items) {
				ui.Hint(cmd.OutOrStdout(), "nothing to clear")
				return nil
			}
			if err := a.st.Save(kept); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("cleared %d completed", len(items)-len(kept)))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		f      filter.Filter
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list as json, yaml or pdf",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			items, err := a.st.Load()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			items = filter.Apply(f, items)

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() {
					if cerr := file.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("close %s: %w", output, cerr)
					}
				}()
				w = file
			}
			if err := export.Write(w, format, items); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().VarP(&f, "filter", "f", "which items to export: "+strings.Join(filter.Names(), ", "))
	cmd.Flags().StringVar(&format, "format", "json", "output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	var f filter.Filter
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("filter") {
				f = a.cfg.DefaultFilter
			}
			saved, err := tui.Run(a.st, f, tea.WithAltScreen())
			if err != nil {
				return err
			}
			if saved {
				ui.OK(cmd.OutOrStdout(), "saved")
			}
			return nil
		},
	}
	cmd.Flags().VarP(&f, "filter", "f", "initial view: "+strings.Join(filter.Names(), ", "))
	return cmd
}

// mutate loads the list, applies fn to the item at the 1-based position
// arg, and saves the result.
func (a *app) mutate(cmd *cobra.Command, arg, verb string, fn func([]model.Item, int) []model.Item) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return usagef("%s: not a number: %s", cmd.Name(), arg)
	}
	items, err := a.st.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if n < 1 || n > len(items) {
		ui.Hint(cmd.ErrOrStderr(), "Hint: run `todo ls` to see valid indexes")
		return usagef("index out of range: have %d, got %d", len(items), n)
	}
	if err := a.st.Save(fn(items, n-1)); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(cmd.OutOrStdout(), verb)
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("usage: todo %s (takes no arguments)", cmd.Name())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
