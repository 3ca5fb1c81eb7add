package cli

import (
	"fmt"

	"github.com/idilsaglam/todokit/internal/config"
	"github.com/idilsaglam/todokit/internal/store"
	"github.com/idilsaglam/todokit/internal/store/filestore"
	"github.com/idilsaglam/todokit/internal/store/memstore"
	"github.com/idilsaglam/todokit/internal/store/sqlstore"
)

func noopClose() error { return nil }

// openBackend builds the Blob named by cfg.Backend.
func openBackend(cfg config.Config) (store.Blob, func() error, error) {
	switch cfg.Backend {
	case config.BackendFile:
		s, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noopClose, nil
	case config.BackendSQLite:
		s, err := sqlstore.OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendMySQL:
		s, err := sqlstore.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return memstore.New(), noopClose, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
