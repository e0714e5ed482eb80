package symtab

import (
	"bytes"
	"testing"

	"github.com/pontaoski/dendron/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	vals := New()

	vals.Set("id1", 1)
	vals.Set("id2", 2)

	v, err := vals.Get("id1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	vals.Set("id1", -5)
	v, err = vals.Get("id1")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v)

	_, ok := vals.Lookup("id3")
	assert.False(t, ok)

	assert.Equal(t, 2, vals.Len())
	assert.Equal(t, []string{"id1", "id2"}, vals.Names())
	assert.Equal(t, map[string]int64{"id1": -5, "id2": 2}, vals.Map())
}

func TestUninitialized(t *testing.T) {
	vals := New()

	_, err := vals.Get("x")
	assert.Equal(t, errors.Uninitialized{Name: "x"}, err)
	assert.Equal(t, errors.KindUninitialized, errors.KindOf(err))

	vals.Set("charlie", 25)
	vals.Set("able", 77)

	_, err = vals.Get("charli")
	assert.Equal(t, errors.Uninitialized{Name: "charli", Suggestion: "charlie"}, err)

	_, err = vals.Get("chr")
	assert.Equal(t, errors.Uninitialized{Name: "chr"}, err)

	vals.Set("xylophone", 1)
	_, err = vals.Get("x")
	assert.Equal(t, errors.Uninitialized{Name: "x"}, err)

	_, err = vals.Get("charly")
	assert.Equal(t, errors.Uninitialized{Name: "charly", Suggestion: "charlie"}, err)

	_, err = vals.Get("zzzzzz")
	assert.Equal(t, errors.Uninitialized{Name: "zzzzzz"}, err)
	assert.EqualError(t, err, "uninitialized variable in expression: zzzzzz")
}

func TestDump(t *testing.T) {
	vals := New()
	vals.Set("x", 55)
	vals.Set("able", -3)

	var buf bytes.Buffer
	require.NoError(t, vals.Dump(&buf))

	assert.Equal(t, "Symbol Table Contents\n"+
		"=====================\n"+
		"\n"+
		"        able :          -3\n"+
		"           x :          55\n", buf.String())
}
