package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpBack/internal/models"
)

type fakeSource struct {
	categories []models.Category
	err        error
	calls      int
}

func (f *fakeSource) ListCategories(context.Context) ([]models.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func seededSource() *fakeSource {
	return &fakeSource{categories: []models.Category{
		{ID: "2", Name: "Mobile Phones", Attributes: []string{"Screen Size", "Camera"}},
		{ID: "1", Name: "Laptops", Attributes: []string{"Processor", "RAM"}},
	}}
}

func TestRegistryRefreshAndLookup(t *testing.T) {
	src := seededSource()
	reg := NewRegistry(src, nil)
	require.NoError(t, reg.Refresh(context.Background()))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Laptops", list[0].Name)
	assert.Equal(t, "Mobile Phones", list[1].Name)

	c, ok := reg.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, "Mobile Phones", c.Name)

	_, ok = reg.FindByID("missing")
	assert.False(t, ok)
	_, ok = reg.FindByID("")
	assert.False(t, ok)

	c, ok = reg.FindByName("laptops")
	require.True(t, ok)
	assert.Equal(t, "1", c.ID)

	assert.Equal(t, []string{"Processor", "RAM"}, reg.Attributes("1"))
	assert.Nil(t, reg.Attributes("nope"))

	first, ok := reg.First()
	require.True(t, ok)
	assert.Equal(t, "1", first.ID)
	assert.False(t, reg.LoadedAt().IsZero())
}

func TestRegistryFindByNamePrefersExactMatch(t *testing.T) {
	reg := NewRegistry(&fakeSource{}, nil)
	reg.Replace([]models.Category{
		{ID: "a", Name: "gpu"},
		{ID: "b", Name: "GPU"},
	})

	c, ok := reg.FindByName("GPU")
	require.True(t, ok)
	assert.Equal(t, "b", c.ID)
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry(seededSource(), nil)
	require.NoError(t, reg.Refresh(context.Background()))

	c, ok := reg.Resolve("2", "Laptops")
	require.True(t, ok)
	assert.Equal(t, "2", c.ID)

	c, ok = reg.Resolve("", "Laptops")
	require.True(t, ok)
	assert.Equal(t, "1", c.ID)

	_, ok = reg.Resolve("x", "Unknown")
	assert.False(t, ok)
}

func TestRegistryKeepsSnapshotOnFailure(t *testing.T) {
	src := seededSource()
	reg := NewRegistry(src, nil)
	require.NoError(t, reg.Refresh(context.Background()))

	src.err = errors.New("store down")
	err := reg.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, reg.List(), 2)
}

func TestRegistryEmptyLookups(t *testing.T) {
	reg := NewRegistry(&fakeSource{err: errors.New("unreachable")}, nil)
	require.Error(t, reg.Refresh(context.Background()))

	assert.Empty(t, reg.List())
	_, ok := reg.FindByName("Laptops")
	assert.False(t, ok)
	_, ok = reg.First()
	assert.False(t, ok)
}

func TestRegistryReturnsCopies(t *testing.T) {
	reg := NewRegistry(seededSource(), nil)
	require.NoError(t, reg.Refresh(context.Background()))

	c, _ := reg.FindByID("1")
	c.Attributes[0] = "changed"

	again, _ := reg.FindByID("1")
	assert.Equal(t, "Processor", again.Attributes[0])
}

func TestRegistryHandleEventRefreshes(t *testing.T) {
	src := seededSource()
	reg := NewRegistry(src, nil)
	require.NoError(t, reg.Refresh(context.Background()))

	src.categories = append(src.categories, models.Category{ID: "3", Name: "GPU", Attributes: []string{"Memory"}})
	reg.HandleEvent(context.Background(), NewEvent(EventCreated, "3", "GPU"))

	c, ok := reg.FindByID("3")
	require.True(t, ok)
	assert.Equal(t, []string{"Memory"}, c.Attributes)
	assert.Equal(t, 2, src.calls)
}
