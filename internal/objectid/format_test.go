package objectid

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("PBXProject/demo"))

	hexID, err := FromDigest(FormatHex, "PROJ", sum[:])
	require.NoError(t, err)
	assert.Len(t, hexID.String(), 24)
	assert.Regexp(t, `^[0-9A-F]{24}$`, hexID.String())

	prefixed, err := FromDigest(FormatPrefixed, "PROJ", sum[:])
	require.NoError(t, err)
	assert.Equal(t, "PROJ_"+hexID.String(), prefixed.String())

	_, err = FromDigest(FormatHex, "", sum[:4])
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		raw       string
		expected  Format
		expectErr bool
	}{
		{raw: "", expected: FormatHex},
		{raw: "hex", expected: FormatHex},
		{raw: " Prefixed ", expected: FormatPrefixed},
		{raw: "uuid", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			f, err := ParseFormat(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
			assert.Equal(t, tc.expected.String(), f.String())
		})
	}
}
