package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/keyslice/internal/testutil"
	"github.com/frudas24/keyslice/internal/wininput"
)

// TestLoadLayout verifies known KLIDs load and activation follows the flag.
func TestLoadLayout(t *testing.T) {
	fake := testutil.NewFakePlatform()
	c := New(fake)

	l, err := c.LoadLayout("00000407", 0)
	require.NoError(t, err)
	assert.Equal(t, wininput.Layout(0x04070407), l)
	assert.Equal(t, wininput.Layout(0x04090409), c.ActiveLayout(0))

	_, err = c.LoadLayout("00000407", LayoutActivate)
	require.NoError(t, err)
	assert.Equal(t, wininput.Layout(0x04070407), c.ActiveLayout(0))
}

// TestLoadLayout_Errors verifies malformed and unknown KLIDs are rejected.
func TestLoadLayout_Errors(t *testing.T) {
	c := New(testutil.NewFakePlatform())

	_, err := c.LoadLayout("409", 0)
	assert.ErrorIs(t, err, ErrInvalidLayoutID)
	_, err = c.LoadLayout("0000040G", 0)
	assert.ErrorIs(t, err, ErrInvalidLayoutID)
	_, err = c.LoadLayout("0000080c", 0)
	assert.ErrorIs(t, err, ErrLayoutNotLoaded)
}

// TestSetLayout verifies the previous layout is returned.
func TestSetLayout(t *testing.T) {
	fake := testutil.NewFakePlatform()
	c := New(fake)

	prev, err := c.SetLayout(0x04070407, 0)
	require.NoError(t, err)
	assert.Equal(t, wininput.Layout(0x04090409), prev)
	assert.Equal(t, wininput.Layout(0x04070407), c.ActiveLayout(0))

	_, err = c.SetLayout(0x12345678, 0)
	assert.Error(t, err)
}

// TestListLayouts verifies buffer and count behavior.
func TestListLayouts(t *testing.T) {
	c := New(testutil.NewFakePlatform())

	n, err := c.ListLayouts(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	buf := make([]wininput.Layout, 1)
	n, err = c.ListLayouts(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, wininput.Layout(0x04090409), buf[0])

	all, err := c.Layouts()
	require.NoError(t, err)
	assert.Equal(t, []wininput.Layout{0x04090409, 0x04070407}, all)
}

// TestValidKLID covers the accepted identifier shape.
func TestValidKLID(t *testing.T) {
	assert.True(t, ValidKLID("00000409"))
	assert.True(t, ValidKLID("0001040c"))
	assert.False(t, ValidKLID(""))
	assert.False(t, ValidKLID("000004090"))
	assert.False(t, ValidKLID("us"))
}
