// Package catalog keeps the in-memory category schema that item editing
// reconciles against.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"erpBack/internal/models"
)

// Source loads the full category list, ordered by name.
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Logger is the minimal logging interface required by the registry.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// Registry is a passive cache of categories. It never reloads on its own:
// callers refresh it explicitly or feed it change events.
type Registry struct {
	source Source
	logger Logger

	mu         sync.RWMutex
	categories []models.Category
	byID       map[string]int
	loadedAt   time.Time
}

// NewRegistry constructs an empty registry backed by source.
func NewRegistry(source Source, logger Logger) *Registry {
	return &Registry{source: source, logger: logger, byID: map[string]int{}}
}

// Refresh reloads every category from the source. On failure the previous
// snapshot is kept and the error returned.
func (r *Registry) Refresh(ctx context.Context) error {
	list, err := r.source.ListCategories(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Errorf("catalog refresh failed: %v", err)
		}
		return err
	}
	r.Replace(list)
	return nil
}

// Replace swaps the cached snapshot.
func (r *Registry) Replace(list []models.Category) {
	snapshot := make([]models.Category, len(list))
	for i, c := range list {
		snapshot[i] = cloneCategory(c)
	}
	sort.SliceStable(snapshot, func(i, j int) bool { return snapshot[i].Name < snapshot[j].Name })

	byID := make(map[string]int, len(snapshot))
	for i, c := range snapshot {
		byID[c.ID] = i
	}

	r.mu.Lock()
	r.categories = snapshot
	r.byID = byID
	r.loadedAt = time.Now()
	r.mu.Unlock()
}

// List returns the cached categories ordered by name.
func (r *Registry) List() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, len(r.categories))
	for i, c := range r.categories {
		out[i] = cloneCategory(c)
	}
	return out
}

// FindByID looks a category up by id.
func (r *Registry) FindByID(id string) (models.Category, bool) {
	if id == "" {
		return models.Category{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return models.Category{}, false
	}
	return cloneCategory(r.categories[i]), true
}

// FindByName looks a category up by display name. Legacy rows stored the name
// instead of the id; an exact match wins over a case-insensitive one.
func (r *Registry) FindByName(name string) (models.Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Name == name {
			return cloneCategory(c), true
		}
	}
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return cloneCategory(c), true
		}
	}
	return models.Category{}, false
}

// Resolve finds the category of an item, by id first and by legacy name second.
func (r *Registry) Resolve(id, name string) (models.Category, bool) {
	if c, ok := r.FindByID(id); ok {
		return c, true
	}
	return r.FindByName(name)
}

// Attributes returns the schema of a category, or nil when it is unknown.
func (r *Registry) Attributes(id string) []string {
	c, ok := r.FindByID(id)
	if !ok {
		return nil
	}
	return c.Attributes
}

// First returns the first category by name, used as the default selection.
func (r *Registry) First() (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.categories) == 0 {
		return models.Category{}, false
	}
	return cloneCategory(r.categories[0]), true
}

// LoadedAt reports when the snapshot was last replaced.
func (r *Registry) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// HandleEvent refreshes the registry after a category change elsewhere.
func (r *Registry) HandleEvent(ctx context.Context, ev Event) {
	if err := r.Refresh(ctx); err != nil {
		return
	}
	if r.logger != nil {
		r.logger.Infof("catalog refreshed after %s of category %s", ev.Type, ev.CategoryID)
	}
}

func cloneCategory(c models.Category) models.Category {
	attrs := make([]string, len(c.Attributes))
	copy(attrs, c.Attributes)
	c.Attributes = attrs
	return c
}
