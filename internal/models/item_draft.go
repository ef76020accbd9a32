package models

import "erpBack/internal/specification"

// ItemDraft is the editable state of an item form. Clients keep it between
// calls and send it back for every transition.
type ItemDraft struct {
	CategoryID    string                      `json:"category_id"`
	Specification specification.Specification `json:"specification"`
	CustomFields  []specification.CustomField `json:"custom_fields"`
}

// ItemForm is a submitted item form.
type ItemForm struct {
	ItemDraft
	Name          string   `json:"name"`
	UnitOfMeasure string   `json:"unit_of_measure"`
	PurchaseCost  float64  `json:"purchase_cost"`
	SellingPrice  float64  `json:"selling_price"`
	CurrentStock  int      `json:"current_stock"`
	ReorderLevel  int      `json:"reorder_level"`
	SKU           string   `json:"sku"`
	IsActive      *bool    `json:"is_active"`
	IsWebsiteItem bool     `json:"is_website_item"`
	ImageURL      string   `json:"image_url"`
	SalePrice     *float64 `json:"sale_price"`
	Weight        *float64 `json:"weight"`
}

type SwitchCategoryRequest struct {
	Draft      ItemDraft `json:"draft"`
	CategoryID string    `json:"category_id"`
}

// DraftView is what the draft endpoints return: the successor draft, the
// attribute schema it was reconciled against and, when editing, the item.
type DraftView struct {
	Item       *InventoryItem `json:"item,omitempty"`
	Draft      ItemDraft      `json:"draft"`
	Attributes []string       `json:"attributes"`
}
