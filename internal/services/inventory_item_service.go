package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"erpBack/internal/catalog"
	"erpBack/internal/models"
	"erpBack/internal/specification"
)

const adjustmentAuthor = "User"

// ItemStore is the persistence the inventory service needs.
type ItemStore interface {
	ListItems(ctx context.Context, businessID string) ([]models.InventoryItem, error)
	GetItemByID(ctx context.Context, id string) (models.InventoryItem, error)
	CreateItem(ctx context.Context, row models.InventoryItemRow) (models.InventoryItem, error)
	UpdateItem(ctx context.Context, row models.InventoryItemRow, correction models.InventoryAdjustment) (models.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, adj models.InventoryAdjustment, change int) (models.StockAdjustmentResult, error)
	ListAdjustments(ctx context.Context, businessID, itemID string) ([]models.InventoryAdjustment, error)
}

type InventoryItemService struct {
	ItemRepo   ItemStore
	Registry   *catalog.Registry
	BusinessID string
	Log        zerolog.Logger
}

func (s *InventoryItemService) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.ItemRepo.ListItems(ctx, s.BusinessID)
}

func (s *InventoryItemService) GetItemByID(ctx context.Context, id string) (models.InventoryItem, error) {
	return s.ItemRepo.GetItemByID(ctx, id)
}

func (s *InventoryItemService) DeleteItem(ctx context.Context, id string) error {
	return s.ItemRepo.DeleteItem(ctx, id)
}

// LoadDraft opens an existing item for editing. The category is resolved by
// id, or by the stored name for rows written before category ids existed.
// Keys outside the category schema become custom fields.
func (s *InventoryItemService) LoadDraft(ctx context.Context, id string) (models.DraftView, error) {
	item, err := s.ItemRepo.GetItemByID(ctx, id)
	if err != nil {
		return models.DraftView{}, err
	}

	categoryID := ""
	if item.CategoryID != nil {
		categoryID = *item.CategoryID
	}
	var attributes []string
	if category, ok := s.Registry.Resolve(categoryID, item.Category); ok {
		categoryID = category.ID
		attributes = category.Attributes
	}

	spec, custom := specification.Split(specification.Normalize(item.Specifications), attributes)
	return models.DraftView{
		Item:       &item,
		Draft:      newDraft(categoryID, spec, custom),
		Attributes: nonNil(attributes),
	}, nil
}

// NewDraft starts an empty form. Without a category id the first category is
// preselected; an unknown id yields a draft without schema.
func (s *InventoryItemService) NewDraft(ctx context.Context, categoryID string) (models.DraftView, error) {
	var attributes []string
	if categoryID == "" {
		if category, ok := s.Registry.First(); ok {
			categoryID = category.ID
			attributes = category.Attributes
		}
	} else {
		attributes = s.Registry.Attributes(categoryID)
	}

	spec, custom := specification.Split(specification.Specification{}, attributes)
	return models.DraftView{
		Draft:      newDraft(categoryID, spec, custom),
		Attributes: nonNil(attributes),
	}, nil
}

// SwitchCategory moves values between the schema and the custom fields when
// the draft's category changes. Unknown categories have no schema.
func (s *InventoryItemService) SwitchCategory(ctx context.Context, req models.SwitchCategoryRequest) (models.DraftView, error) {
	oldAttrs := s.Registry.Attributes(req.Draft.CategoryID)
	newAttrs := s.Registry.Attributes(req.CategoryID)

	spec, custom := specification.Redistribute(req.Draft.Specification, req.Draft.CustomFields, oldAttrs, newAttrs)
	return models.DraftView{
		Draft:      newDraft(req.CategoryID, spec, custom),
		Attributes: nonNil(newAttrs),
	}, nil
}

func (s *InventoryItemService) CreateItem(ctx context.Context, form models.ItemForm) (models.InventoryItem, error) {
	if err := validateItemForm(form); err != nil {
		return models.InventoryItem{}, err
	}

	item, err := s.buildItem(form)
	if err != nil {
		return models.InventoryItem{}, err
	}
	item.ID = uuid.NewString()
	item.CurrentStock = form.CurrentStock
	item.IsActive = form.IsActive == nil || *form.IsActive

	created, err := s.ItemRepo.CreateItem(ctx, models.NewItemRow(item))
	if err != nil {
		return models.InventoryItem{}, err
	}
	s.Log.Info().Str("item_id", created.ID).Str("category", created.Category).Msg("inventory item created")
	return created, nil
}

// UpdateItem saves an edited form. A changed stock level is recorded as a
// correction adjustment in the same write; if either part fails the item is
// left as it was.
func (s *InventoryItemService) UpdateItem(ctx context.Context, id string, form models.ItemForm) (models.InventoryItem, error) {
	if err := validateItemForm(form); err != nil {
		return models.InventoryItem{}, err
	}

	existing, err := s.ItemRepo.GetItemByID(ctx, id)
	if err != nil {
		return models.InventoryItem{}, err
	}

	item, err := s.buildItem(form)
	if err != nil {
		return models.InventoryItem{}, err
	}
	item.ID = existing.ID
	item.BusinessID = existing.BusinessID
	item.CurrentStock = form.CurrentStock
	item.CreatedAt = existing.CreatedAt
	item.IsActive = existing.IsActive
	if form.IsActive != nil {
		item.IsActive = *form.IsActive
	}

	updated, err := s.ItemRepo.UpdateItem(ctx, models.NewItemRow(item), models.InventoryAdjustment{
		ID:        uuid.NewString(),
		Reason:    models.ReasonCorrection,
		Notes:     "Stock edited on item form",
		CreatedBy: adjustmentAuthor,
	})
	if err != nil {
		return models.InventoryItem{}, err
	}
	s.Log.Info().Str("item_id", updated.ID).Int("stock", updated.CurrentStock).Msg("inventory item updated")
	return updated, nil
}

// AdjustStock changes the stock of an item and records why.
func (s *InventoryItemService) AdjustStock(ctx context.Context, itemID string, req models.StockAdjustmentRequest) (models.StockAdjustmentResult, error) {
	if req.QuantityChange == 0 {
		return models.StockAdjustmentResult{}, models.NewValidationError("quantity_change", "Quantity change must not be zero")
	}
	if !models.ValidAdjustmentReason(req.Reason) {
		return models.StockAdjustmentResult{}, models.NewValidationError("reason", fmt.Sprintf("Unknown adjustment reason %q", req.Reason))
	}

	res, err := s.ItemRepo.AdjustStock(ctx, models.InventoryAdjustment{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		Reason:    req.Reason,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedBy: adjustmentAuthor,
	}, req.QuantityChange)
	if err != nil {
		return models.StockAdjustmentResult{}, err
	}
	s.Log.Info().
		Str("item_id", itemID).
		Int("previous", res.PreviousQuantity).
		Int("new", res.NewQuantity).
		Str("reason", req.Reason).
		Msg("stock adjusted")
	return res, nil
}

// IncreaseStock adds quantity, by default as a customer return.
func (s *InventoryItemService) IncreaseStock(ctx context.Context, itemID string, quantity int, reason, notes string) (models.StockAdjustmentResult, error) {
	if quantity <= 0 {
		return models.StockAdjustmentResult{}, models.NewValidationError("quantity", "Quantity must be a positive number")
	}
	if reason == "" {
		reason = models.ReasonReturn
	}
	return s.AdjustStock(ctx, itemID, models.StockAdjustmentRequest{QuantityChange: quantity, Reason: reason, Notes: notes})
}

func (s *InventoryItemService) ListAdjustments(ctx context.Context, itemID string) ([]models.InventoryAdjustment, error) {
	return s.ItemRepo.ListAdjustments(ctx, s.BusinessID, itemID)
}

// buildItem assembles the stored item from a validated form. The category
// name is kept alongside the id for older readers.
func (s *InventoryItemService) buildItem(form models.ItemForm) (models.InventoryItem, error) {
	var attributes []string
	item := models.InventoryItem{
		BusinessID:    s.BusinessID,
		Name:          strings.TrimSpace(form.Name),
		Description:   strings.TrimSpace(form.Specification.Description()),
		UnitOfMeasure: form.UnitOfMeasure,
		PurchaseCost:  form.PurchaseCost,
		SellingPrice:  form.SellingPrice,
		ReorderLevel:  form.ReorderLevel,
		SKU:           strings.TrimSpace(form.SKU),
		IsWebsiteItem: form.IsWebsiteItem,
	}
	if item.UnitOfMeasure == "" {
		item.UnitOfMeasure = models.UnitPieces
	}

	if form.CategoryID != "" {
		categoryID := form.CategoryID
		item.CategoryID = &categoryID
		if category, ok := s.Registry.FindByID(form.CategoryID); ok {
			item.Category = category.Name
			attributes = category.Attributes
		}
	}

	if form.IsWebsiteItem {
		item.ImageURL = strings.TrimSpace(form.ImageURL)
		item.SalePrice = form.SalePrice
		item.Weight = form.Weight
	}

	specs, err := specification.AssembleJSON(form.Specification, form.CustomFields, attributes)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("assemble specification: %w", err)
	}
	item.Specifications = specs
	return item, nil
}

func validateItemForm(form models.ItemForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return models.NewValidationError("name", "Item name is required")
	}
	if !nonNegative(form.PurchaseCost) {
		return models.NewValidationError("purchase_cost", "Purchase cost must be a positive number")
	}
	if !nonNegative(form.SellingPrice) {
		return models.NewValidationError("selling_price", "Selling price must be a positive number")
	}
	if form.CurrentStock < 0 {
		return models.NewValidationError("current_stock", "Current stock must be a positive number")
	}
	if form.ReorderLevel < 0 {
		return models.NewValidationError("reorder_level", "Reorder level must be a positive number")
	}
	if form.UnitOfMeasure != "" && !models.ValidUnit(form.UnitOfMeasure) {
		return models.NewValidationError("unit_of_measure", fmt.Sprintf("Unknown unit of measure %q", form.UnitOfMeasure))
	}
	if form.IsWebsiteItem {
		if form.SalePrice != nil && !nonNegative(*form.SalePrice) {
			return models.NewValidationError("sale_price", "Sale price must be a positive number")
		}
		if form.Weight != nil && !nonNegative(*form.Weight) {
			return models.NewValidationError("weight", "Weight must be a positive number")
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func newDraft(categoryID string, spec specification.Specification, custom []specification.CustomField) models.ItemDraft {
	if spec == nil {
		spec = specification.Specification{}
	}
	if custom == nil {
		custom = []specification.CustomField{}
	}
	return models.ItemDraft{CategoryID: categoryID, Specification: spec, CustomFields: custom}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

