package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine/internal/adapters"
)

// fakeDB records every statement and answers with canned rows or results.
type fakeDB struct {
	statements   []string
	rows         [][]any
	queryErr     error
	execErr      error
	rowsAffected int64
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.statements = append(f.statements, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{rows: f.rows, index: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.statements = append(f.statements, query)
	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult(f.rowsAffected), nil
}

func (f *fakeDB) lastStatement() string {
	if len(f.statements) == 0 {
		return ""
	}

	return f.statements[len(f.statements)-1]
}

type fakeRows struct {
	rows  [][]any
	index int
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d columns, got %d", len(dest), len(row))
	}

	for i, value := range row {
		switch target := dest[i].(type) {
		case *string:
			s, ok := value.(string)
			if !ok {
				return errors.New("column is not a string")
			}
			*target = s
		case *time.Time:
			t, ok := value.(time.Time)
			if !ok {
				return errors.New("column is not a time")
			}
			*target = t
		case **time.Time:
			if value == nil {
				*target = nil
				continue
			}
			t, ok := value.(time.Time)
			if !ok {
				return errors.New("column is not a time")
			}
			*target = &t
		default:
			return fmt.Errorf("unsupported scan target %T", dest[i])
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

type fakeResult int64

func (f fakeResult) RowsAffected() (int64, error) {
	return int64(f), nil
}
