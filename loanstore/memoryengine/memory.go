package memoryengine

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore keeps loans in a map guarded by a mutex.
type LoanStore struct {
	mu     sync.RWMutex
	loans  map[uuid.UUID]loanstore.StorableLoan
	logger loanstore.Logger
}

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore)

// WithLogger sets the logger for the LoanStore.
func WithLogger(logger loanstore.Logger) Option {
	return func(s *LoanStore) {
		s.logger = logger
	}
}

// WithLoans seeds the store.
func WithLoans(loans ...loanstore.StorableLoan) Option {
	return func(s *LoanStore) {
		for _, loan := range loans {
			s.loans[loan.ID] = loan
		}
	}
}

// NewLoanStore creates an empty LoanStore.
func NewLoanStore(options ...Option) *LoanStore {
	s := &LoanStore{loans: make(map[uuid.UUID]loanstore.StorableLoan)}

	for _, option := range options {
		option(s)
	}

	return s
}

// GetByID returns the loan with the given id or loanstore.ErrLoanNotFound.
func (s *LoanStore) GetByID(ctx context.Context, loanID uuid.UUID) (loanstore.StorableLoan, error) {
	if err := ctx.Err(); err != nil {
		return loanstore.StorableLoan{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, found := s.loans[loanID]
	if !found {
		return loanstore.StorableLoan{}, loanstore.ErrLoanNotFound
	}

	return loan, nil
}

// ListByFilter returns matching loans, newest borrowed first, ties broken by id descending.
func (s *LoanStore) ListByFilter(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	loans := make(loanstore.StorableLoans, 0)
	for _, loan := range s.loans {
		if filter.Matches(loan) {
			loans = append(loans, loan)
		}
	}
	s.mu.RUnlock()

	sort.Slice(loans, func(i, j int) bool {
		if c := loans[i].BorrowedOn.Compare(loans[j].BorrowedOn); c != 0 {
			return c > 0
		}

		return bytes.Compare(loans[i].ID[:], loans[j].ID[:]) > 0
	})

	return loans, nil
}

// Insert stores loan and returns its id. A second open loan for the same book is rejected
// with loanstore.ErrConcurrencyConflict, mirroring the unique index of the PostgreSQL engine.
func (s *LoanStore) Insert(ctx context.Context, loan loanstore.StorableLoan) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.loans[loan.ID]; exists {
		return uuid.Nil, loanstore.ErrConcurrencyConflict
	}

	if loan.IsOpen() && s.hasOpenLoanFor(loan.BookID) {
		return uuid.Nil, loanstore.ErrConcurrencyConflict
	}

	s.loans[loan.ID] = loan
	s.logInfo("loan inserted", "loan_id", loan.ID.String())

	return loan.ID, nil
}

// CheckConflictAndInsert inserts loan unless its book already has an open loan.
func (s *LoanStore) CheckConflictAndInsert(ctx context.Context, loan loanstore.StorableLoan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.loans[loan.ID]; exists {
		return loanstore.ErrConcurrencyConflict
	}

	if s.hasOpenLoanFor(loan.BookID) {
		s.logInfo("book already on loan", "book_id", loan.BookID.String())
		return loanstore.ErrBookAlreadyOnLoan
	}

	s.loans[loan.ID] = loan
	s.logInfo("loan inserted", "loan_id", loan.ID.String())

	return nil
}

// Update applies patch to the loan with the given id.
func (s *LoanStore) Update(ctx context.Context, loanID uuid.UUID, patch loanstore.Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if patch.IsEmpty() {
		return loanstore.ErrEmptyPatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loan, found := s.loans[loanID]
	switch {
	case !found && patch.IsGuarded():
		return loanstore.ErrConcurrencyConflict
	case !found:
		return loanstore.ErrLoanNotFound
	case !patch.Admits(loan):
		return loanstore.ErrConcurrencyConflict
	}

	s.loans[loanID] = patch.ApplyTo(loan)
	s.logInfo("loan updated", "loan_id", loanID.String())

	return nil
}

// Delete removes the loan with the given id.
func (s *LoanStore) Delete(ctx context.Context, loanID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.loans[loanID]; !found {
		return loanstore.ErrLoanNotFound
	}

	delete(s.loans, loanID)
	s.logInfo("loan deleted", "loan_id", loanID.String())

	return nil
}

// CreateSchema is a no-op; it exists so both engines can be set up the same way.
func (s *LoanStore) CreateSchema(ctx context.Context) error {
	return ctx.Err()
}

// hasOpenLoanFor must be called with s.mu held.
func (s *LoanStore) hasOpenLoanFor(bookID uuid.UUID) bool {
	for _, existing := range s.loans {
		if existing.BookID == bookID && existing.IsOpen() {
			return true
		}
	}

	return false
}

func (s *LoanStore) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info("loanstore operation: "+msg, args...)
	}
}
