package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityLeavesBlockUnchanged(t *testing.T) {
	block := []byte{0x01, 0x02, 0x03}
	orig := append([]byte(nil), block...)

	tr, err := Lookup("identity", "")
	require.NoError(t, err)
	require.NoError(t, tr.Init(3))
	require.NoError(t, tr.Transform(block))
	assert.Equal(t, orig, block)
}

func TestXORRoundTrips(t *testing.T) {
	block := []byte{0x00, 0xFF, 0xAA, 0x55}
	orig := append([]byte(nil), block...)

	tr, err := Lookup("xor", "aa")
	require.NoError(t, err)
	require.NoError(t, tr.Init(len(block)))
	require.NoError(t, tr.Transform(block))
	assert.NotEqual(t, orig, block)

	require.NoError(t, tr.Transform(block))
	assert.Equal(t, orig, block)
}

func TestXORRejectsMultiByteKey(t *testing.T) {
	_, err := Lookup("xor", "aabb")
	assert.Error(t, err)
}

func TestLookupUnknownNameIsUsageError(t *testing.T) {
	_, err := Lookup("no-such-transform", "")
	assert.Error(t, err)
}
