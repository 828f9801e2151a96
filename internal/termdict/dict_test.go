package termdict

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoSubseq/internal/testutil"
)

func TestBuilder_SortedInsert(t *testing.T) {
	b := NewBuilder()
	for _, k := range []string{"", "a", "ab", "abc", "b", "ba"} {
		require.NoError(t, b.Insert([]byte(k)))
	}
	d := b.Build()

	assert.Equal(t, 6, d.Len())
	assert.Equal(t, []string{"", "a", "ab", "abc", "b", "ba"}, d.Keys())
}

func TestBuilder_RejectsOutOfOrder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert([]byte("b")))

	err := b.Insert([]byte("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyOutOfOrder))
	assert.Contains(t, err.Error(), `"a" after "b"`)

	err = b.Insert([]byte("b"))
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	// A failed insert leaves the builder usable.
	require.NoError(t, b.Insert([]byte("c")))
	assert.Equal(t, []string{"b", "c"}, b.Build().Keys())
}

func TestBuilder_InsertAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.Build()
	assert.Equal(t, ErrBuilderFinished, b.Insert([]byte("a")))
}

func TestFromKeys_SortsAndDedups(t *testing.T) {
	d := FromKeys([]string{"pear", "apple", "pea", "apple", "Zebra"})

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"Zebra", "apple", "pea", "pear"}, d.Keys())
}

func TestDict_Contains(t *testing.T) {
	d := FromKeys(testutil.SampleTerms())

	for _, k := range testutil.SampleTerms() {
		assert.True(t, d.Contains([]byte(k)), "Contains(%q)", k)
	}
	for _, k := range []string{"", "sq", "squeal", "squeal.cc", "makefile"} {
		assert.False(t, d.Contains([]byte(k)), "Contains(%q)", k)
	}
}

func TestDict_Empty(t *testing.T) {
	d := NewBuilder().Build()

	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Keys())
	assert.False(t, d.Contains(nil))
}

func TestDict_NilAndZero(t *testing.T) {
	for name, d := range map[string]*Dict{"nil": nil, "zero": {}} {
		assert.Equal(t, 0, d.Len(), name)
		assert.Empty(t, d.Keys(), name)
		assert.False(t, d.Contains(nil), name)
		assert.False(t, d.Contains([]byte("a")), name)
	}
}
