package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"erpBack/internal/catalog"
	"erpBack/internal/models"
	"erpBack/internal/specification"
)

// CategoryStore is the persistence the category service needs.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Notifier announces category changes to the rest of the system.
type Notifier interface {
	Publish(ctx context.Context, ev catalog.Event) error
}

type CategoryService struct {
	CategoryRepo      CategoryStore
	Registry          *catalog.Registry
	Notifier          Notifier
	DefaultAttributes []string
	MaxAttributes     int
	Log               zerolog.Logger
}

// ListCategories refreshes the registry and returns its contents. When the
// refresh fails the previous snapshot is returned together with the error.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	err := s.Registry.Refresh(ctx)
	return s.Registry.List(), err
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, input models.CategoryInput) (models.Category, error) {
	category, err := s.categoryFromInput(input)
	if err != nil {
		return models.Category{}, err
	}
	category.ID = uuid.NewString()

	created, err := s.CategoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return models.Category{}, err
	}
	s.publish(ctx, catalog.EventCreated, created)
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input models.CategoryInput) (models.Category, error) {
	category, err := s.categoryFromInput(input)
	if err != nil {
		return models.Category{}, err
	}
	category.ID = id

	updated, err := s.CategoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		return models.Category{}, err
	}
	s.publish(ctx, catalog.EventUpdated, updated)
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.CategoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, catalog.EventDeleted, models.Category{ID: id})
	return nil
}

// AttributeList returns the pinned list for a selection made in the category editor.
func (s *CategoryService) AttributeList(selected []string) *specification.AttributeList {
	return specification.NewAttributeList(s.DefaultAttributes, selected, specification.AttributeListOptions{
		MaxItems: s.MaxAttributes,
	})
}

// AddAttribute applies one add to the client's current selection.
func (s *CategoryService) AddAttribute(edit models.AttributeEdit) ([]string, error) {
	list := s.AttributeList(edit.Attributes)
	if err := list.Add(edit.Value); err != nil {
		return nil, err
	}
	return list.Items(), nil
}

// RemoveAttribute applies one removal to the client's current selection.
func (s *CategoryService) RemoveAttribute(edit models.AttributeEdit) ([]string, error) {
	list := s.AttributeList(edit.Attributes)
	if err := list.Remove(edit.Index); err != nil {
		return nil, err
	}
	return list.Items(), nil
}

func (s *CategoryService) categoryFromInput(input models.CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, models.NewValidationError("name", "Category name is required")
	}
	attributes := s.AttributeList(input.Attributes).Items()
	if s.MaxAttributes > 0 && len(attributes) > s.MaxAttributes {
		return models.Category{}, models.NewValidationError("attributes", specification.ErrAttributeLimit.Error())
	}
	return models.Category{Name: name, Attributes: attributes}, nil
}

// publish announces a change. Without a notifier, or when publishing fails,
// the local registry is refreshed directly so this instance stays current.
func (s *CategoryService) publish(ctx context.Context, typ string, category models.Category) {
	ev := catalog.NewEvent(typ, category.ID, category.Name)
	if s.Notifier != nil {
		err := s.Notifier.Publish(ctx, ev)
		if err == nil {
			return
		}
		s.Log.Error().Err(err).Str("category_id", category.ID).Msg("publish category event")
	}
	s.Registry.HandleEvent(ctx, ev)
}
