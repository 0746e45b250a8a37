package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/billmal071/bookshelf/internal/books"
)

var dune = books.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Description: "Desert planet saga"}

func failingClient() *MockClient {
	return &MockClient{
		FetchAllFunc: func(ctx context.Context) ([]books.Book, error) {
			return nil, errors.New("unexpected network call")
		},
		FetchOneFunc: func(ctx context.Context, id int) (books.Book, error) {
			return books.Book{}, errors.New("unexpected network call")
		},
	}
}

func runSession(t *testing.T, client books.Client, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(client, strings.NewReader(input), &out, zap.NewNop()).WithPrompt("> ")
	err := s.Run(context.Background())
	return out.String(), err
}

func TestSession_ExitWithoutNetwork(t *testing.T) {
	client := failingClient()
	out, err := runSession(t, client, "exit\nget\n")

	require.NoError(t, err)
	assert.Zero(t, client.CallCount())
	assert.Equal(t, "> ", out)
}

func TestSession_EOFEndsCleanly(t *testing.T) {
	client := failingClient()
	_, err := runSession(t, client, "")

	require.NoError(t, err)
	assert.Zero(t, client.CallCount())
}

func TestSession_InvalidChoiceReprompts(t *testing.T) {
	client := failingClient()
	out, err := runSession(t, client, "4\n\nGET\nexit\n")

	require.NoError(t, err)
	assert.Zero(t, client.CallCount())
	assert.Equal(t, 3, strings.Count(out, "Invalid choice. Please try again."))
	// one prompt per line read
	assert.Equal(t, 4, strings.Count(out, "> "))
}

func TestSession_LongLineIsInvalidChoice(t *testing.T) {
	client := failingClient()
	out, err := runSession(t, client, strings.Repeat("x", 70*1024)+"\nexit\n")

	require.NoError(t, err)
	assert.Zero(t, client.CallCount())
	assert.Equal(t, 1, strings.Count(out, "Invalid choice. Please try again."))
}

func TestSession_LastLineWithoutNewline(t *testing.T) {
	client := failingClient()
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		return dune, nil
	}

	out, err := runSession(t, client, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, client.CallCount())
	assert.Contains(t, out, "Frank Herbert")
}

func TestSession_InvalidIDReprompts(t *testing.T) {
	client := failingClient()
	out, err := runSession(t, client, "get 0\nget x\nexit\n")

	require.NoError(t, err)
	assert.Zero(t, client.CallCount())
	assert.Equal(t, 2, strings.Count(out, "invalid book id"))
}

func TestSession_ShowOne(t *testing.T) {
	client := failingClient()
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		assert.Equal(t, 1, id)
		return dune, nil
	}

	out, err := runSession(t, client, "1\nexit\n")
	require.NoError(t, err)
	assert.Equal(t, 1, client.CallCount())

	for _, want := range []string{"ID", "Title", "Author", "Description", "Dune", "Frank Herbert", "Desert planet saga"} {
		assert.Contains(t, out, want)
	}
}

func TestSession_GetWithArbitraryID(t *testing.T) {
	client := failingClient()
	var got int
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		got = id
		return books.Book{ID: id, Title: "T", Author: "A", Description: "D"}, nil
	}

	_, err := runSession(t, client, "get 42\nexit\n")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSession_ListEmpty(t *testing.T) {
	client := failingClient()
	client.FetchAllFunc = func(ctx context.Context) ([]books.Book, error) {
		return []books.Book{}, nil
	}

	out, err := runSession(t, client, "get\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Description")
	assert.NotContains(t, out, "Error")
}

func TestSession_FailureDoesNotEndSession(t *testing.T) {
	client := failingClient()
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		return books.Book{}, &books.Error{Kind: books.KindStatus, Target: "book 2", StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	client.FetchAllFunc = func(ctx context.Context) ([]books.Book, error) {
		return []books.Book{dune}, nil
	}

	out, err := runSession(t, client, "2\nget\nexit\n")
	require.NoError(t, err)
	assert.Equal(t, 2, client.CallCount())
	assert.Contains(t, out, "Error: failed to get book 2: 404 Not Found")
	assert.Contains(t, out, "Frank Herbert")
}

func TestSession_RecordsDispatchedCommands(t *testing.T) {
	client := failingClient()
	client.FetchAllFunc = func(ctx context.Context) ([]books.Book, error) {
		return []books.Book{dune, dune}, nil
	}
	fetchErr := errors.New("boom")
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		return books.Book{}, fetchErr
	}

	rec := &MockRecorder{Err: errors.New("disk full")}
	var out bytes.Buffer
	s := NewSession(client, strings.NewReader("get\nnope\nget 5\nhelp\nexit\n"), &out, nil).WithRecorder(rec)
	require.NoError(t, s.Run(context.Background()))

	require.Len(t, rec.Entries, 2)
	assert.Equal(t, "get", rec.Entries[0].command)
	assert.Equal(t, 2, rec.Entries[0].rows)
	assert.NoError(t, rec.Entries[0].err)
	assert.Equal(t, "get 5", rec.Entries[1].command)
	assert.ErrorIs(t, rec.Entries[1].err, fetchErr)
	assert.Contains(t, out.String(), "Commands:")
}

func TestSession_ProgressWrapsRequests(t *testing.T) {
	client := failingClient()
	client.FetchOneFunc = func(ctx context.Context, id int) (books.Book, error) {
		return dune, nil
	}

	var events []string
	progress := func(label string) func() {
		events = append(events, "start "+label)
		return func() { events = append(events, "stop") }
	}

	var out bytes.Buffer
	s := NewSession(client, strings.NewReader("3\nexit\n"), &out, nil).WithProgress(progress)
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"start Fetching book 3", "stop"}, events)
}

func TestSession_ContextCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- NewSession(failingClient(), pr, io.Discard, nil).Run(ctx)
	}()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}
