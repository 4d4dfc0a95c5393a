package directory

import (
	"errors"
	"io"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidSeed is returned when a seed document cannot be decoded.
var ErrInvalidSeed = errors.New("invalid directory seed")

type seedDocument struct {
	Users []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"users"`
	Books []struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	} `json:"books"`
}

// LoadMemoryDirectory builds a MemoryDirectory from a JSON document of the form
//
//	{"users": [{"id": "...", "name": "..."}], "books": [{"id": "...", "title": "..."}]}
func LoadMemoryDirectory(r io.Reader) (*MemoryDirectory, error) {
	var doc seedDocument
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidSeed, err)
	}

	d := NewMemoryDirectory()

	for _, user := range doc.Users {
		d.AddUser(user.ID, user.Name)
	}

	for _, book := range doc.Books {
		d.AddBook(book.ID, book.Title)
	}

	return d, nil
}
