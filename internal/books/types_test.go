package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBook(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Book
		wantErr string
	}{
		{
			name:  "all fields",
			input: `{"id":4,"title":"Solaris","author":"Stanislaw Lem","description":"Ocean","year":1961}`,
			want:  Book{ID: 4, Title: "Solaris", Author: "Stanislaw Lem", Description: "Ocean"},
		},
		{
			name:  "empty strings are present",
			input: `{"id":4,"title":"","author":"","description":""}`,
			want:  Book{ID: 4},
		},
		{
			name:    "missing author",
			input:   `{"id":4,"title":"Solaris","description":"Ocean"}`,
			wantErr: `missing required field "author"`,
		},
		{
			name:    "null title",
			input:   `{"id":4,"title":null,"author":"Stanislaw Lem","description":"Ocean"}`,
			wantErr: `missing required field "title"`,
		},
		{
			name:    "string id",
			input:   `{"id":"4","title":"Solaris","author":"Stanislaw Lem","description":"Ocean"}`,
			wantErr: "cannot unmarshal string",
		},
		{
			name:    "fractional id",
			input:   `{"id":4.5,"title":"Solaris","author":"Stanislaw Lem","description":"Ocean"}`,
			wantErr: "cannot unmarshal number",
		},
		{
			name:    "zero id",
			input:   `{"id":0,"title":"Solaris","author":"Stanislaw Lem","description":"Ocean"}`,
			wantErr: "positive integer",
		},
		{
			name:    "numeric title",
			input:   `{"id":4,"title":12,"author":"Stanislaw Lem","description":"Ocean"}`,
			wantErr: "cannot unmarshal number",
		},
		{
			name:    "array instead of object",
			input:   `[]`,
			wantErr: "expected a JSON object",
		},
		{
			name:    "not json",
			input:   `<html>`,
			wantErr: "expected a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBook([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBooks(t *testing.T) {
	books, err := DecodeBooks([]byte(` [{"id":1,"title":"a","author":"b","description":"c"},{"id":2,"title":"d","author":"e","description":"f"}]`))
	require.NoError(t, err)
	assert.Equal(t, []Book{
		{ID: 1, Title: "a", Author: "b", Description: "c"},
		{ID: 2, Title: "d", Author: "e", Description: "f"},
	}, books)

	_, err = DecodeBooks([]byte(`[{"id":1,"title":"a","author":"b","description":"c"},null]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")

	_, err = DecodeBooks([]byte(`null`))
	assert.EqualError(t, err, "expected a JSON array")

	_, err = DecodeBooks([]byte(`[{"id":1`))
	assert.Error(t, err)
}
