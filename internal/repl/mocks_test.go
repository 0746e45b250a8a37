package repl

import (
	"context"
	"sync"

	"github.com/billmal071/bookshelf/internal/books"
)

// This file contains mocks definitions needed to perform unit tests.

// MockClient is a books.Client whose behavior is set per test and which counts calls.
type MockClient struct {
	mu           sync.Mutex
	FetchAllFunc func(ctx context.Context) ([]books.Book, error)
	FetchOneFunc func(ctx context.Context, id int) (books.Book, error)
	Calls        []string
}

// FetchAll mocks retrieving the whole collection.
func (m *MockClient) FetchAll(ctx context.Context) ([]books.Book, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "all")
	m.mu.Unlock()
	return m.FetchAllFunc(ctx)
}

// FetchOne mocks retrieving one book.
func (m *MockClient) FetchOne(ctx context.Context, id int) (books.Book, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "one")
	m.mu.Unlock()
	return m.FetchOneFunc(ctx, id)
}

// CallCount returns how many network calls were issued.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type recorded struct {
	command string
	rows    int
	err     error
}

// MockRecorder keeps recorded commands in memory.
type MockRecorder struct {
	Entries []recorded
	Err     error
}

// Record stores the entry and returns the configured error.
func (m *MockRecorder) Record(command string, rows int, err error) error {
	m.Entries = append(m.Entries, recorded{command: command, rows: rows, err: err})
	return m.Err
}
