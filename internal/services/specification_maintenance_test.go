package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpBack/internal/repositories"
)

type memorySpecs struct {
	specs   map[string]sql.NullString
	order   []string
	updates int
}

func (m *memorySpecs) ListSpecifications(context.Context) ([]repositories.StoredSpecification, error) {
	out := make([]repositories.StoredSpecification, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, repositories.StoredSpecification{ItemID: id, Raw: m.specs[id]})
	}
	return out, nil
}

func (m *memorySpecs) UpdateSpecifications(_ context.Context, itemID, specs string) error {
	m.specs[itemID] = sql.NullString{String: specs, Valid: true}
	m.updates++
	return nil
}

func newMemorySpecs() *memorySpecs {
	m := &memorySpecs{specs: map[string]sql.NullString{}}
	add := func(id string, raw sql.NullString) {
		m.specs[id] = raw
		m.order = append(m.order, id)
	}
	add("flat", sql.NullString{String: `{"RAM":"8GB"}`, Valid: true})
	add("legacy", sql.NullString{String: `{"features":["{\"RAM\":\"8GB\",\"description\":\"x\"}"]}`, Valid: true})
	add("double", sql.NullString{String: `"{\"CPU\":\"i5\"}"`, Valid: true})
	add("broken", sql.NullString{String: `{not json`, Valid: true})
	add("null", sql.NullString{})
	return m
}

func TestNormalizeSpecifications(t *testing.T) {
	store := newMemorySpecs()

	report, err := NormalizeSpecifications(context.Background(), store, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, NormalizeReport{Scanned: 5, Rewritten: 4}, report)

	assert.Equal(t, `{"RAM":"8GB"}`, store.specs["flat"].String)
	assert.Equal(t, `{"RAM":"8GB"}`, store.specs["legacy"].String)
	assert.Equal(t, `{}`, store.specs["double"].String)
	assert.Equal(t, `{}`, store.specs["broken"].String)
	assert.Equal(t, `{}`, store.specs["null"].String)

	again, err := NormalizeSpecifications(context.Background(), store, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Rewritten)
}

func TestNormalizeSpecificationsDryRun(t *testing.T) {
	store := newMemorySpecs()

	report, err := NormalizeSpecifications(context.Background(), store, true, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Rewritten)
	assert.Zero(t, store.updates)
}
