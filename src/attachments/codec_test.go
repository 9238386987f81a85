package attachments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"data url", "data:text/plain;base64,aGk=", "aGk="},
		{"first base64 marker wins over comma", "data:text/plain;base64,ABC,DEF", "ABC,DEF"},
		{"first of two base64 markers", "data:a;base64,X;base64,Y", "X;base64,Y"},
		{"comma fallback takes last segment", "data:text/plain,one,two", "two"},
		{"bare base64", "aGVsbG8=", "aGVsbG8="},
		{"empty payload", "data:text/plain;base64,", ""},
		{"trailing comma", "abc,", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeDataURL(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeDataURLEmptyInput(t *testing.T) {
	_, err := DecodeDataURL("")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestDecodeDataURLIdentityWithoutSeparators(t *testing.T) {
	for _, s := range []string{"a", "QUJD", "text:with:colons", "üñí;çødé", "   "} {
		got, err := DecodeDataURL(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
