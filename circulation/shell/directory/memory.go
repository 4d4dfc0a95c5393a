package directory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryDirectory keeps users and books in maps. It is safe for concurrent use.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]string
	books map[uuid.UUID]string
}

// NewMemoryDirectory creates an empty MemoryDirectory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		users: make(map[uuid.UUID]string),
		books: make(map[uuid.UUID]string),
	}
}

// AddUser registers or renames a user.
func (d *MemoryDirectory) AddUser(userID uuid.UUID, name string) *MemoryDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users[userID] = name

	return d
}

// AddBook registers or renames a book.
func (d *MemoryDirectory) AddBook(bookID uuid.UUID, title string) *MemoryDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.books[bookID] = title

	return d
}

// LookupUser returns the name of the user.
func (d *MemoryDirectory) LookupUser(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	name, found := d.users[userID]

	return name, found, nil
}

// LookupBook returns the title of the book.
func (d *MemoryDirectory) LookupBook(ctx context.Context, bookID uuid.UUID) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	title, found := d.books[bookID]

	return title, found, nil
}
