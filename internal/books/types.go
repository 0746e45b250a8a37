package books

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidID is returned for ids that cannot name a book
var ErrInvalidID = errors.New("book id must be a positive integer")

// Book represents a book served by the API
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Client defines the interface for book API access
type Client interface {
	// FetchAll retrieves the whole collection in the order the API returns it
	FetchAll(ctx context.Context) ([]Book, error)

	// FetchOne retrieves a single book by id
	FetchOne(ctx context.Context, id int) (Book, error)
}

// rawBook mirrors Book with pointers so absent keys and nulls can be told apart
// from zero values.
type rawBook struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
}

// DecodeBook parses a single JSON book object. Every field is required.
func DecodeBook(data []byte) (Book, error) {
	if !startsWith(data, '{') {
		return Book{}, errors.New("expected a JSON object")
	}
	return decodeBook(data)
}

// DecodeBooks parses a JSON array of books. One bad element fails the whole
// collection.
func DecodeBooks(data []byte) ([]Book, error) {
	if !startsWith(data, '[') {
		return nil, errors.New("expected a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(items))
	for i, item := range items {
		book, err := decodeBook(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		books = append(books, book)
	}
	return books, nil
}

func decodeBook(data []byte) (Book, error) {
	var raw rawBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return Book{}, err
	}

	switch {
	case raw.ID == nil:
		return Book{}, missingField("id")
	case raw.Title == nil:
		return Book{}, missingField("title")
	case raw.Author == nil:
		return Book{}, missingField("author")
	case raw.Description == nil:
		return Book{}, missingField("description")
	}
	if *raw.ID <= 0 {
		return Book{}, fmt.Errorf("%w: got %d", ErrInvalidID, *raw.ID)
	}

	return Book{
		ID:          *raw.ID,
		Title:       *raw.Title,
		Author:      *raw.Author,
		Description: *raw.Description,
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

func startsWith(data []byte, c byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == c
}
