package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpBack/internal/catalog"
)

func TestLocalPublishesInOrder(t *testing.T) {
	bus := NewLocal()
	var got []string
	bus.Subscribe(func(_ context.Context, ev catalog.Event) { got = append(got, "first:"+ev.CategoryID) })
	bus.Subscribe(func(_ context.Context, ev catalog.Event) { got = append(got, "second:"+ev.CategoryID) })

	require.NoError(t, bus.Publish(context.Background(), catalog.NewEvent(catalog.EventCreated, "c1", "Laptops")))
	assert.Equal(t, []string{"first:c1", "second:c1"}, got)
}

func TestEventCodec(t *testing.T) {
	ev := catalog.Event{Type: catalog.EventUpdated, CategoryID: "c1", Name: "GPU", At: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

	payload, err := encodeEvent(ev)
	require.NoError(t, err)

	decoded, err := decodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, ev, decoded)

	_, err = decodeEvent("{")
	assert.Error(t, err)

	_, err = decodeEvent(`{"category_id":"c1"}`)
	assert.Error(t, err)
}

func TestNewRedisBusDefaultsChannel(t *testing.T) {
	bus := NewRedisBus(nil, "", nil)
	assert.Equal(t, DefaultChannel, bus.channel)
}
