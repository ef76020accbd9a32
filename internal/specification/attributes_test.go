package specification

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = []string{"Brand", "Model"}

func TestNewAttributeListPinsDefaults(t *testing.T) {
	l := NewAttributeList(testDefaults, []string{"RAM", "model", "CPU", "RAM", " "}, AttributeListOptions{})
	assert.Equal(t, []string{"Brand", "Model", "RAM", "CPU"}, l.Items())
}

func TestAttributeListAdd(t *testing.T) {
	t.Run("appends after defaults", func(t *testing.T) {
		l := NewAttributeList(testDefaults, nil, AttributeListOptions{})
		require.NoError(t, l.Add(" RAM "))
		require.NoError(t, l.Add("CPU"))
		assert.Equal(t, []string{"Brand", "Model", "RAM", "CPU"}, l.Items())
	})

	t.Run("blank ignored", func(t *testing.T) {
		l := NewAttributeList(testDefaults, nil, AttributeListOptions{})
		require.NoError(t, l.Add("   "))
		assert.Equal(t, []string{"Brand", "Model"}, l.Items())
	})

	t.Run("default rejected", func(t *testing.T) {
		l := NewAttributeList(testDefaults, []string{"RAM"}, AttributeListOptions{})
		err := l.Add("brand")

		var protected *ProtectedAttributeError
		require.True(t, errors.As(err, &protected))
		assert.Equal(t, "brand is a default attribute and cannot be added manually", err.Error())
		assert.Equal(t, []string{"Brand", "Model", "RAM"}, l.Items())
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		l := NewAttributeList(testDefaults, []string{"RAM"}, AttributeListOptions{})
		assert.ErrorIs(t, l.Add("ram"), ErrDuplicateAttribute)
		assert.Equal(t, []string{"Brand", "Model", "RAM"}, l.Items())
	})

	t.Run("duplicate allowed", func(t *testing.T) {
		l := NewAttributeList(nil, []string{"RAM"}, AttributeListOptions{AllowDuplicates: true})
		require.NoError(t, l.Add("RAM"))
		assert.Equal(t, []string{"RAM", "RAM"}, l.Items())
	})

	t.Run("capacity", func(t *testing.T) {
		l := NewAttributeList(testDefaults, []string{"RAM"}, AttributeListOptions{MaxItems: 3})
		assert.ErrorIs(t, l.Add("CPU"), ErrAttributeLimit)
		assert.Equal(t, []string{"Brand", "Model", "RAM"}, l.Items())
	})
}

func TestAttributeListRemove(t *testing.T) {
	t.Run("non default", func(t *testing.T) {
		l := NewAttributeList(testDefaults, []string{"RAM", "CPU"}, AttributeListOptions{})
		require.NoError(t, l.Remove(2))
		assert.Equal(t, []string{"Brand", "Model", "CPU"}, l.Items())
	})

	t.Run("default protected", func(t *testing.T) {
		l := NewAttributeList(testDefaults, []string{"RAM"}, AttributeListOptions{})
		err := l.Remove(1)

		var protected *ProtectedAttributeError
		require.True(t, errors.As(err, &protected))
		assert.Equal(t, "Model", protected.Attribute)
		assert.Equal(t, "Model is a default attribute and cannot be removed", err.Error())
		assert.Equal(t, []string{"Brand", "Model", "RAM"}, l.Items())
	})

	t.Run("out of range", func(t *testing.T) {
		l := NewAttributeList(testDefaults, nil, AttributeListOptions{})
		assert.ErrorIs(t, l.Remove(-1), ErrAttributeIndex)
		assert.ErrorIs(t, l.Remove(2), ErrAttributeIndex)
	})
}

func TestAttributeListPrefixInvariant(t *testing.T) {
	words := []string{"Brand", "model", "RAM", "CPU", "GPU", "Color", "Size", "ram"}
	rng := rand.New(rand.NewSource(42))
	l := NewAttributeList(testDefaults, nil, AttributeListOptions{MaxItems: 6})

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			_ = l.Add(words[rng.Intn(len(words))])
		} else if n := len(l.Items()); n > 0 {
			_ = l.Remove(rng.Intn(n))
		}

		items := l.Items()
		require.GreaterOrEqual(t, len(items), len(testDefaults))
		assert.Equal(t, testDefaults, items[:len(testDefaults)])
		for _, item := range items[len(testDefaults):] {
			assert.False(t, l.IsDefault(item))
		}
	}
}
