package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	err := Newf("fetch failed: %s", "timeout").
		Component("imagestore").
		Category(CategoryObjectFetch).
		Context("bucket", "fish-uploads").
		Context("key", "uploads/a.jpg").
		Build()

	assert.Equal(t, "fetch failed: timeout", err.Error())
	assert.Equal(t, "imagestore", err.Component)
	assert.Equal(t, CategoryObjectFetch, err.Category)
	assert.Equal(t, "fish-uploads", err.GetContext()["bucket"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("boom").Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestWrapCarriesMetadata(t *testing.T) {
	t.Parallel()

	inner := Newf("open failed").
		Component("datastore").
		Category(CategoryDatabase).
		Context("path", "results.db").
		Build()

	outer := Wrap(inner).Context("image_id", "uploads/a.jpg").Build()

	assert.Equal(t, "datastore", outer.Component)
	assert.Equal(t, CategoryDatabase, outer.Category)
	assert.Equal(t, "results.db", outer.GetContext()["path"])
	assert.Equal(t, "uploads/a.jpg", outer.GetContext()["image_id"])
}

func TestChainPreserved(t *testing.T) {
	t.Parallel()

	err := New(fs.ErrNotExist).
		Component("imagestore").
		Category(CategoryObjectFetch).
		Build()

	// The original error stays reachable through the chain.
	assert.True(t, Is(err, fs.ErrNotExist))

	var ee *EnhancedError
	require.True(t, As(error(err), &ee))
	assert.Equal(t, CategoryObjectFetch, ee.Category)
}

func TestContextIsCopied(t *testing.T) {
	t.Parallel()

	err := Newf("boom").Context("k", "v").Build()
	ctx := err.GetContext()
	ctx["k"] = "mutated"
	assert.Equal(t, "v", err.GetContext()["k"])
}
