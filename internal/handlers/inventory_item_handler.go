package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"erpBack/internal/models"
	"erpBack/internal/services"
)

type InventoryItemHandler struct {
	Service *services.InventoryItemService
	Log     zerolog.Logger
}

func (h *InventoryItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems(r.Context())
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *InventoryItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	item, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *InventoryItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var form models.ItemForm
	if !decodeBody(w, r, &form) {
		return
	}

	item, err := h.Service.CreateItem(r.Context(), form)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *InventoryItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	var form models.ItemForm
	if !decodeBody(w, r, &form) {
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, form)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *InventoryItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDraft opens an item in the editor.
func (h *InventoryItemHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	view, err := h.Service.LoadDraft(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *InventoryItemHandler) NewDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.NewDraft(r.Context(), r.URL.Query().Get("category_id"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *InventoryItemHandler) SwitchCategory(w http.ResponseWriter, r *http.Request) {
	var req models.SwitchCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Service.SwitchCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *InventoryItemHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	var req models.StockAdjustmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.Service.AdjustStock(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// IncreaseStock adds stock back, as a return unless another reason is given.
func (h *InventoryItemHandler) IncreaseStock(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	var req models.StockAdjustmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.Service.IncreaseStock(r.Context(), id, req.QuantityChange, req.Reason, req.Notes)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *InventoryItemHandler) GetAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.Service.ListAdjustments(r.Context(), r.URL.Query().Get("item_id"))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, adjustments)
}
