package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"erpBack/internal/catalog"
	"erpBack/internal/models"
)

type memoryCategories struct {
	mu         sync.Mutex
	categories map[string]models.Category
}

func newMemoryCategories(list ...models.Category) *memoryCategories {
	m := &memoryCategories{categories: map[string]models.Category{}}
	for _, c := range list {
		m.categories[c.ID] = c
	}
	return m
}

func (m *memoryCategories) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryCategories) GetCategoryByID(_ context.Context, id string) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return c, nil
}

func (m *memoryCategories) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return models.Category{}, models.ErrDuplicateCategory
		}
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *memoryCategories) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; !ok {
		return models.Category{}, models.ErrCategoryNotFound
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *memoryCategories) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return models.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type memoryItems struct {
	mu          sync.Mutex
	items       map[string]models.InventoryItemRow
	adjustments []models.InventoryAdjustment
	failWrite   error
	failAdjust  error
}

func newMemoryItems() *memoryItems {
	return &memoryItems{items: map[string]models.InventoryItemRow{}}
}

func (m *memoryItems) ListItems(_ context.Context, businessID string) ([]models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.InventoryItem{}
	for _, row := range m.items {
		if row.BusinessID == businessID {
			out = append(out, row.ToItem())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryItems) GetItemByID(_ context.Context, id string) (models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.items[id]
	if !ok {
		return models.InventoryItem{}, models.ErrItemNotFound
	}
	return row.ToItem(), nil
}

func (m *memoryItems) CreateItem(_ context.Context, row models.InventoryItemRow) (models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return models.InventoryItem{}, m.failWrite
	}
	m.items[row.ID] = row
	return row.ToItem(), nil
}

func (m *memoryItems) UpdateItem(_ context.Context, row models.InventoryItemRow, correction models.InventoryAdjustment) (models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return models.InventoryItem{}, m.failWrite
	}
	existing, ok := m.items[row.ID]
	if !ok {
		return models.InventoryItem{}, models.ErrItemNotFound
	}
	if row.CurrentStock != existing.CurrentStock {
		if m.failAdjust != nil {
			return models.InventoryItem{}, m.failAdjust
		}
		correction.ItemID = row.ID
		correction.PreviousQuantity = existing.CurrentStock
		correction.NewQuantity = row.CurrentStock
		m.adjustments = append([]models.InventoryAdjustment{correction}, m.adjustments...)
	}
	m.items[row.ID] = row
	return row.ToItem(), nil
}

func (m *memoryItems) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryItems) AdjustStock(_ context.Context, adj models.InventoryAdjustment, change int) (models.StockAdjustmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.items[adj.ItemID]
	if !ok {
		return models.StockAdjustmentResult{}, models.ErrItemNotFound
	}
	next := row.CurrentStock + change
	if next < 0 {
		return models.StockAdjustmentResult{}, models.ErrNegativeStock
	}
	adj.PreviousQuantity = row.CurrentStock
	adj.NewQuantity = next
	row.CurrentStock = next
	m.items[adj.ItemID] = row
	m.adjustments = append([]models.InventoryAdjustment{adj}, m.adjustments...)
	return models.StockAdjustmentResult{PreviousQuantity: adj.PreviousQuantity, NewQuantity: next, Adjustment: adj}, nil
}

func (m *memoryItems) ListAdjustments(_ context.Context, _ string, itemID string) ([]models.InventoryAdjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.InventoryAdjustment{}
	for _, a := range m.adjustments {
		if itemID == "" || a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	events []catalog.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, ev catalog.Event) error {
	n.events = append(n.events, ev)
	return n.err
}

func eventTypes(events []catalog.Event) string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return strings.Join(types, ",")
}
