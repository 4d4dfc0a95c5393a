package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/config"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/directory"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memoryengine"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
)

type loanStore interface {
	shell.LoanStore
	CreateSchema(ctx context.Context) error
}

// backend bundles the loan store and directories of one DB_ADAPTER together with their lifecycle.
type backend struct {
	loanStore loanStore
	users     shell.UserDirectory
	books     shell.BookDirectory
	ping      func(ctx context.Context) error
	closers   []func()
}

func (b backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger, storeOptions ...postgresengine.Option) (backend, error) {
	logger.Info("using database adapter", "db_adapter", cfg.DBAdapter)

	if cfg.DBAdapter == config.AdapterMemory {
		return openMemoryBackend(cfg, logger)
	}

	storeOptions = append(storeOptions, postgresengine.WithTableName(cfg.LoansTable))

	b := backend{}

	// The directories always read through sqlx.
	directoryDB, err := config.NewPostgresSQLXDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return backend{}, err
	}

	b.closers = append(b.closers, func() { _ = directoryDB.Close() })

	sqlDirectory, err := directory.NewSQLDirectory(
		directoryDB,
		directory.WithUsersTable(cfg.UsersTable),
		directory.WithBooksTable(cfg.BooksTable),
	)
	if err != nil {
		b.close()
		return backend{}, err
	}

	b.users, b.books = sqlDirectory, sqlDirectory

	switch cfg.DBAdapter {
	case config.AdapterPGX:
		pool, poolErr := config.NewPostgresPGXPool(ctx, cfg.DatabaseURL)
		if poolErr != nil {
			b.close()
			return backend{}, poolErr
		}

		b.closers = append(b.closers, pool.Close)
		b.ping = pool.Ping
		b.loanStore, err = postgresengine.NewLoanStoreFromPGXPool(pool, storeOptions...)

	case config.AdapterSQL:
		db, dbErr := config.NewPostgresSQLDB(ctx, cfg.DatabaseURL)
		if dbErr != nil {
			b.close()
			return backend{}, dbErr
		}

		b.closers = append(b.closers, func() { _ = db.Close() })
		b.ping = db.PingContext
		b.loanStore, err = postgresengine.NewLoanStoreFromSQLDB(db, storeOptions...)

	case config.AdapterSQLX:
		b.ping = directoryDB.PingContext
		b.loanStore, err = postgresengine.NewLoanStoreFromSQLX(directoryDB, storeOptions...)

	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownAdapter, cfg.DBAdapter)
	}

	if err != nil {
		b.close()
		return backend{}, err
	}

	return b, nil
}

func openMemoryBackend(cfg config.Config, logger *slog.Logger) (backend, error) {
	memoryDirectory := directory.NewMemoryDirectory()

	if cfg.SeedFile != "" {
		f, err := os.Open(cfg.SeedFile)
		if err != nil {
			return backend{}, err
		}
		defer f.Close()

		if memoryDirectory, err = directory.LoadMemoryDirectory(f); err != nil {
			return backend{}, err
		}
	}

	return backend{
		loanStore: memoryengine.NewLoanStore(memoryengine.WithLogger(logger)),
		users:     memoryDirectory,
		books:     memoryDirectory,
		ping:      func(ctx context.Context) error { return ctx.Err() },
	}, nil
}
