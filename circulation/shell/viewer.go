package shell

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// LoanViewer derives loan views and fills in the borrower name and book title.
// A user or book that no longer resolves leaves its display name empty.
type LoanViewer struct {
	users        UserDirectory
	books        BookDirectory
	storeTimeout time.Duration
}

// NewLoanViewer creates a LoanViewer. Each directory lookup runs under storeTimeout.
func NewLoanViewer(users UserDirectory, books BookDirectory, storeTimeout time.Duration) LoanViewer {
	return LoanViewer{users: users, books: books, storeTimeout: storeTimeout}
}

// View derives loan as of today and resolves its display names.
func (v LoanViewer) View(ctx context.Context, loan core.Loan, today calendar.Date) (core.LoanView, error) {
	views, err := v.ViewAll(ctx, []core.Loan{loan}, today)
	if err != nil {
		return core.LoanView{}, err
	}

	return views[0], nil
}

// ViewAll derives all loans as of today, keeping their order.
// Every distinct user and book is looked up once.
func (v LoanViewer) ViewAll(ctx context.Context, loans []core.Loan, today calendar.Date) ([]core.LoanView, error) {
	views := core.DeriveAll(loans, today)
	userNames := make(map[uuid.UUID]string)
	bookTitles := make(map[uuid.UUID]string)

	for i := range views {
		name, known := userNames[views[i].UserID]
		if !known {
			var err error
			if name, err = v.userName(ctx, views[i].UserID); err != nil {
				return nil, err
			}
			userNames[views[i].UserID] = name
		}

		title, known := bookTitles[views[i].BookID]
		if !known {
			var err error
			if title, err = v.bookTitle(ctx, views[i].BookID); err != nil {
				return nil, err
			}
			bookTitles[views[i].BookID] = title
		}

		views[i].UserName = name
		views[i].BookTitle = title
	}

	return views, nil
}

func (v LoanViewer) userName(ctx context.Context, userID uuid.UUID) (string, error) {
	callCtx, cancel := StoreContext(ctx, v.storeTimeout)
	defer cancel()

	name, _, err := v.users.LookupUser(callCtx, userID)
	if err != nil {
		return "", core.Unavailable(err)
	}

	return name, nil
}

func (v LoanViewer) bookTitle(ctx context.Context, bookID uuid.UUID) (string, error) {
	callCtx, cancel := StoreContext(ctx, v.storeTimeout)
	defer cancel()

	title, _, err := v.books.LookupBook(callCtx, bookID)
	if err != nil {
		return "", core.Unavailable(err)
	}

	return title, nil
}
