package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "PlainUTF8",
			input: []byte("Café,200,\"déjeuner\""),
			want:  "Café,200,\"déjeuner\"",
		},
		{
			name:  "UTF8BOMIsStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Type")...),
			want:  "Date,Type",
		},
		{
			name:  "UTF16LE",
			input: []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00},
			want:  "Hi",
		},
		{
			name:  "UTF16BE",
			input: []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'},
			want:  "Hi",
		},
		{
			name: "Windows1252Fallback",
			// "Café" with a Latin-1 é (0xE9) is invalid UTF-8.
			input: []byte{'C', 'a', 'f', 0xE9},
			want:  "Café",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}
