package cursor_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"botdash/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []cursor.Cursor{
		{SortKey: "2024-01-15T10:00:00.000Z", ID: 42},
		{SortKey: "2024-01-15T10:00:00.000Z", ID: 42, Backward: true},
		{SortKey: "2023-12-31T23:59:59Z", ID: 1},
		{SortKey: "2025-06-01T08:30:00.123456+02:00", ID: 9007199254740993},
	}

	for _, c := range cases {
		got, err := cursor.Decode(cursor.Encode(c))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c, *got)
	}
}

func TestEncodeWireFormat(t *testing.T) {
	c := cursor.Cursor{SortKey: "2024-01-15T10:00:00.000Z", ID: 42}
	want := base64.StdEncoding.EncodeToString([]byte("2024-01-15T10:00:00.000Z::42"))

	assert.Equal(t, want, cursor.Encode(c))
	assert.Equal(t, "-"+want, cursor.Encode(c.Reverse()))
	assert.Equal(t, cursor.Encode(c), c.String())
}

func TestEncodeDirectionMarker(t *testing.T) {
	for id := int64(1); id < 50; id++ {
		c := cursor.Cursor{SortKey: "2024-03-01T00:00:00Z", ID: id}
		assert.False(t, strings.HasPrefix(cursor.Encode(c), "-"))
		c.Backward = true
		assert.True(t, strings.HasPrefix(cursor.Encode(c), "-"))
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	c := cursor.Cursor{SortKey: "2024-01-15T10:00:00.000Z", ID: 7, Backward: true}
	assert.Equal(t, cursor.Encode(c), cursor.Encode(c))
}

func TestDecodeEmpty(t *testing.T) {
	got, err := cursor.Decode("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"not base64":       "not-valid-base64!!",
		"no separator":     enc("2024-01-15T10:00:00Z"),
		"two separators":   enc("2024-01-15T10:00:00Z::1::2"),
		"non numeric id":   enc("2024-01-15T10:00:00Z::abc"),
		"zero id":          enc("2024-01-15T10:00:00Z::0"),
		"negative id":      enc("2024-01-15T10:00:00Z::-3"),
		"bad timestamp":    enc("yesterday::5"),
		"date only":        enc("2024-01-15::5"),
		"empty parts":      enc("::"),
		"marker only":      "-",
		"double marker":    "--" + enc("2024-01-15T10:00:00Z::1"),
		"invalid utf8":     base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, ':', ':', '1'}),
		"url safe variant": strings.NewReplacer("+", "-", "/", "_").Replace(enc("2024-01-15T10:00:00Z::1>>>")),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := cursor.Decode(token)
			require.ErrorIs(t, err, cursor.ErrInvalidCursor)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeBackward(t *testing.T) {
	token := "-" + base64.StdEncoding.EncodeToString([]byte("2024-01-15T10:00:00Z::99"))

	got, err := cursor.Decode(token)
	require.NoError(t, err)
	assert.True(t, got.Backward)
	assert.Equal(t, int64(99), got.ID)
	assert.Equal(t, 2024, got.Time().Year())
	assert.Equal(t, token, got.String())
}

func TestDecodeRejectsNonCanonical(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	canonical := enc("2024-01-15T10:00:00.000Z::42")

	// "...::4" with non-zero padding bits in the last symbol.
	trailing := []byte(enc("2024-01-15T10:00:00Z::4"))
	trailing[len(trailing)-2] = 'R'

	cases := map[string]string{
		"plus sign":        enc("2024-01-15T10:00:00.000Z::+42"),
		"leading zeros":    enc("2024-01-15T10:00:00.000Z::0042"),
		"embedded newline": canonical[:8] + "\n" + canonical[8:],
		"embedded cr":      canonical[:8] + "\r" + canonical[8:],
		"trailing bits":    string(trailing),
		"backward with ws": "-" + canonical[:4] + "\r\n" + canonical[4:],
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := cursor.Decode(token)
			require.ErrorIs(t, err, cursor.ErrInvalidCursor)
			assert.Nil(t, got)
		})
	}

	got, err := cursor.Decode(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, got.String())
}
