// Package cli is the todo command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todokit/internal/config"
	"github.com/idilsaglam/todokit/internal/storage"
	"github.com/idilsaglam/todokit/internal/ui"
)

// Version is printed by `todo version`.
const Version = "v0.2.0"

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks mistakes in how the command was called.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// skipStorage names commands that never touch the list.
var skipStorage = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// app is the composed application for one invocation.
type app struct {
	configDir string
	verbose   bool

	cfg     config.Config
	st      *storage.Storage
	closeFn func() error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny todo list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("missing subcommand")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd == cmd.Root() || skipStorage[cmd.Name()] {
				return nil
			}
			return a.open(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "directory holding todo.yaml (default: working directory)")
	pf.String("data-dir", "", "directory for the file and sqlite backends (default: working directory)")
	pf.String("backend", "", "storage backend: file, sqlite, mysql or memory")
	pf.String("key", "", "storage key the list is saved under")
	pf.String("mysql-dsn", "", "DSN for the mysql backend")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log storage activity to stderr")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		newVersionCmd(),
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newEditCmd(a),
		newClearCmd(a),
		newExportCmd(a),
		newTUICmd(a),
	)
	return root
}

// open resolves config and wires the storage for this invocation.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configDir, cmd.Flags())
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return usageError{err}
		}
		return err
	}
	ui.SetTheme(cfg.Theme)

	blob, closeFn, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	logger := log.New(io.Discard, "", 0)
	if a.verbose {
		logger = log.New(cmd.ErrOrStderr(), "todo: ", log.LstdFlags)
	}
	a.cfg = cfg
	a.st = storage.New(blob, storage.WithKey(cfg.Key), storage.WithLogger(logger))
	a.closeFn = closeFn
	return nil
}

func (a *app) close() error {
	if a.closeFn == nil {
		return nil
	}
	err := a.closeFn()
	a.closeFn = nil
	return err
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = fmt.Errorf("close backend: %w", cerr)
	}
	if err == nil {
		return exitOK
	}

	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}
