package models

import "time"

const (
	ReasonPurchase   = "purchase"
	ReasonSale       = "sale"
	ReasonReturn     = "return"
	ReasonDamage     = "damage"
	ReasonCorrection = "correction"
	ReasonOther      = "other"
)

func ValidAdjustmentReason(reason string) bool {
	switch reason {
	case ReasonPurchase, ReasonSale, ReasonReturn, ReasonDamage, ReasonCorrection, ReasonOther:
		return true
	}
	return false
}

type InventoryAdjustment struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes"`
	AdjustmentDate   time.Time `json:"adjustment_date"`
	CreatedBy        string    `json:"created_by"`
}

type StockAdjustmentRequest struct {
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

type StockAdjustmentResult struct {
	PreviousQuantity int                 `json:"previous_quantity"`
	NewQuantity      int                 `json:"new_quantity"`
	Adjustment       InventoryAdjustment `json:"adjustment"`
}
