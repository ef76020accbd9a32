package models

import (
	"database/sql"
	"strings"
	"time"
)

const (
	UnitPieces = "pieces"
	UnitKG     = "kg"
	UnitLiters = "liters"
	UnitMeters = "meters"
	UnitUnits  = "units"
)

// ValidUnit reports whether u is a supported unit of measure.
func ValidUnit(u string) bool {
	switch u {
	case UnitPieces, UnitKG, UnitLiters, UnitMeters, UnitUnits:
		return true
	}
	return false
}

type InventoryItem struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	CategoryID     *string   `json:"category_id"`
	UnitOfMeasure  string    `json:"unit_of_measure"`
	PurchaseCost   float64   `json:"purchase_cost"`
	SellingPrice   float64   `json:"selling_price"`
	CurrentStock   int       `json:"current_stock"`
	ReorderLevel   int       `json:"reorder_level"`
	SKU            string    `json:"sku"`
	IsActive       bool      `json:"is_active"`
	IsWebsiteItem  bool      `json:"is_website_item"`
	ImageURL       string    `json:"image_url"`
	SalePrice      *float64  `json:"sale_price"`
	Weight         *float64  `json:"weight"`
	Specifications string    `json:"specifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InventoryItemRow is the inventory_items table as the database returns it.
// Optional columns stay nullable here and get their defaults in ToItem.
type InventoryItemRow struct {
	ID             string
	BusinessID     string
	Name           string
	Description    sql.NullString
	Category       sql.NullString
	CategoryID     sql.NullString
	UnitOfMeasure  string
	PurchaseCost   float64
	SellingPrice   float64
	CurrentStock   int
	ReorderLevel   int
	SKU            sql.NullString
	IsActive       bool
	IsWebsiteItem  sql.NullBool
	ImageURL       sql.NullString
	SalePrice      sql.NullFloat64
	Weight         sql.NullFloat64
	Specifications sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToItem converts a row into the API shape.
func (r InventoryItemRow) ToItem() InventoryItem {
	item := InventoryItem{
		ID:             r.ID,
		BusinessID:     r.BusinessID,
		Name:           r.Name,
		Description:    r.Description.String,
		Category:       r.Category.String,
		UnitOfMeasure:  r.UnitOfMeasure,
		PurchaseCost:   r.PurchaseCost,
		SellingPrice:   r.SellingPrice,
		CurrentStock:   r.CurrentStock,
		ReorderLevel:   r.ReorderLevel,
		SKU:            r.SKU.String,
		IsActive:       r.IsActive,
		IsWebsiteItem:  r.IsWebsiteItem.Valid && r.IsWebsiteItem.Bool,
		ImageURL:       r.ImageURL.String,
		Specifications: "{}",
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if !ValidUnit(item.UnitOfMeasure) {
		item.UnitOfMeasure = UnitPieces
	}
	if r.CategoryID.Valid && r.CategoryID.String != "" {
		id := r.CategoryID.String
		item.CategoryID = &id
	}
	if r.SalePrice.Valid {
		price := r.SalePrice.Float64
		item.SalePrice = &price
	}
	if r.Weight.Valid {
		weight := r.Weight.Float64
		item.Weight = &weight
	}
	if r.Specifications.Valid && strings.TrimSpace(r.Specifications.String) != "" {
		item.Specifications = r.Specifications.String
	}
	return item
}

// NewItemRow converts an item into the row that gets written.
func NewItemRow(item InventoryItem) InventoryItemRow {
	row := InventoryItemRow{
		ID:             item.ID,
		BusinessID:     item.BusinessID,
		Name:           item.Name,
		Description:    sql.NullString{String: item.Description, Valid: true},
		Category:       sql.NullString{String: item.Category, Valid: true},
		UnitOfMeasure:  item.UnitOfMeasure,
		PurchaseCost:   item.PurchaseCost,
		SellingPrice:   item.SellingPrice,
		CurrentStock:   item.CurrentStock,
		ReorderLevel:   item.ReorderLevel,
		SKU:            nullString(item.SKU),
		IsActive:       item.IsActive,
		IsWebsiteItem:  sql.NullBool{Bool: item.IsWebsiteItem, Valid: true},
		ImageURL:       nullString(item.ImageURL),
		Specifications: sql.NullString{String: item.Specifications, Valid: true},
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.CategoryID != nil {
		row.CategoryID = nullString(*item.CategoryID)
	}
	if item.SalePrice != nil {
		row.SalePrice = sql.NullFloat64{Float64: *item.SalePrice, Valid: true}
	}
	if item.Weight != nil {
		row.Weight = sql.NullFloat64{Float64: *item.Weight, Valid: true}
	}
	if row.Specifications.String == "" {
		row.Specifications.String = "{}"
	}
	return row
}

func nullString(s string) sql.NullString {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: trimmed, Valid: true}
}
