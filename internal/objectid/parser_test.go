package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{name: "ide hex id", raw: "8D1107310486CEB800E47090"},
		{name: "prefixed id", raw: "FR_0A1B2C3D4E5F60718293A4B5"},
		{name: "legacy non-hex id", raw: "OBJ_12"},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - whitespace", raw: "AB CD", expectErr: true},
		{name: "error - quote", raw: `AB"CD`, expectErr: true},
		{name: "error - temporary prefix", raw: "TEMP_0123", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.raw, id.String())
			assert.False(t, id.IsTemporary())
		})
	}
}

func TestNewTemporary(t *testing.T) {
	a := NewTemporary()
	b := NewTemporary()

	assert.True(t, a.IsTemporary())
	assert.True(t, b.IsTemporary())
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), len(temporaryPrefix)+32)
	assert.False(t, a.IsZero())
	assert.True(t, ID("").IsZero())
}
