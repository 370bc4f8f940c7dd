package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `[
  {"content": "První článek", "title": "Příliš žluťoučký kůň"},
  {"content": "Druhý", "title": "Dva"},
  {"content": "Třetí a nejdelší ze všech", "title": "Tři"}
]`

func compactLen(t *testing.T, s string) int64 {
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, []byte(s)))
	return int64(buf.Len())
}

func TestShrink(t *testing.T) {
	first := compactLen(t, `{"content": "První článek", "title": "Příliš žluťoučký kůň"}`)
	second := compactLen(t, `{"content": "Druhý", "title": "Dva"}`)

	testCases := []struct {
		name      string
		limit     int64
		wantKept  int
		wantBytes int64
		wantOut   string
	}{
		{
			name:      "everything fits",
			limit:     1 << 20,
			wantKept:  3,
			wantBytes: first + second + compactLen(t, `{"content": "Třetí a nejdelší ze všech", "title": "Tři"}`),
			wantOut: `[
  {
    "content": "První článek",
    "title": "Příliš žluťoučký kůň"
  },
  {
    "content": "Druhý",
    "title": "Dva"
  },
  {
    "content": "Třetí a nejdelší ze všech",
    "title": "Tři"
  }
]`,
		},
		{
			name:      "stops before the record that overflows",
			limit:     first + second,
			wantKept:  2,
			wantBytes: first + second,
			wantOut: `[
  {
    "content": "První článek",
    "title": "Příliš žluťoučký kůň"
  },
  {
    "content": "Druhý",
    "title": "Dva"
  }
]`,
		},
		{
			name:    "nothing fits",
			limit:   first - 1,
			wantOut: `[]`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			res, err := Shrink(bytes.NewReader([]byte(input)), &out, tc.limit)
			require.NoError(t, err)

			assert.Equal(t, 3, res.Total)
			assert.Equal(t, tc.wantKept, res.Kept)
			assert.Equal(t, tc.wantBytes, res.Bytes)
			assert.Len(t, res.Titles, tc.wantKept)
			assert.Equal(t, tc.wantOut, out.String())
			assert.True(t, json.Valid(out.Bytes()))
		})
	}
}

func TestShrink_KeepsKeyOrder(t *testing.T) {
	var out bytes.Buffer
	res, err := Shrink(strings.NewReader(`[{"title":"Z","id":7,"author":"redakce"}]`), &out, 1<<10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z"}, res.Titles)
	assert.Equal(t, "[\n  {\n    \"title\": \"Z\",\n    \"id\": 7,\n    \"author\": \"redakce\"\n  }\n]", out.String())
}

func TestShrink_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		wantErr error
	}{
		{
			name:    "object",
			in:      `{"title":"x"}`,
			wantErr: ErrNotArray,
		},
		{
			name:    "empty",
			in:      ``,
			wantErr: ErrNotArray,
		},
		{
			name: "truncated",
			in:   `[{"title":"x"}, {"title":`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Shrink(strings.NewReader(tc.in), &out, 1<<10)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestShrink_EmptyArray(t *testing.T) {
	var out bytes.Buffer
	res, err := Shrink(strings.NewReader(`  []`), &out, 10)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, "[]", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestShrink_WriteErrorConsumesInput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 20; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"title":"článek %d","content":%q}`, i, strings.Repeat("x", 2048))
	}
	sb.WriteString("]")

	src := strings.NewReader(sb.String())
	res, err := Shrink(src, failingWriter{}, 1<<30)
	require.Error(t, err)
	assert.Less(t, res.Total, 20)
	// the decoder has read to the end, so its goroutine is gone
	assert.Zero(t, src.Len())
}
