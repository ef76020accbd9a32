package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"erpBack/internal/models"
)

var itemColumns = []string{
	"id", "business_id", "name", "description", "category", "category_id",
	"unit_of_measure", "purchase_cost", "selling_price", "current_stock", "reorder_level",
	"sku", "is_active", "is_website_item", "image_url", "sale_price", "weight",
	"specifications", "created_at", "updated_at",
}

var adjustmentColumns = []string{
	"id", "item_id", "previous_quantity", "new_quantity", "reason", "notes", "adjustment_date", "created_by",
}

// StoredSpecification is the raw specifications column of one item.
type StoredSpecification struct {
	ItemID string
	Raw    sql.NullString
}

type InventoryItemRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewInventoryItemRepository(db *sql.DB, dialect Dialect) *InventoryItemRepository {
	return &InventoryItemRepository{DB: db, Dialect: dialect}
}

func (r *InventoryItemRepository) ListItems(ctx context.Context, businessID string) ([]models.InventoryItem, error) {
	query, args, err := r.Dialect.Builder().
		Select(itemColumns...).
		From("inventory_items").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		row, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, row.ToItem())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryItemRepository) GetItemByID(ctx context.Context, id string) (models.InventoryItem, error) {
	query, args, err := r.Dialect.Builder().
		Select(itemColumns...).
		From("inventory_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.InventoryItem{}, err
	}

	row, err := scanItemRow(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InventoryItem{}, models.ErrItemNotFound
		}
		return models.InventoryItem{}, err
	}
	return row.ToItem(), nil
}

func (r *InventoryItemRepository) CreateItem(ctx context.Context, row models.InventoryItemRow) (models.InventoryItem, error) {
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	query, args, err := r.Dialect.Builder().
		Insert("inventory_items").
		Columns(itemColumns...).
		Values(
			row.ID, row.BusinessID, row.Name, row.Description, row.Category, row.CategoryID,
			row.UnitOfMeasure, row.PurchaseCost, row.SellingPrice, row.CurrentStock, row.ReorderLevel,
			row.SKU, row.IsActive, row.IsWebsiteItem, row.ImageURL, row.SalePrice, row.Weight,
			row.Specifications, row.CreatedAt, row.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return models.InventoryItem{}, err
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return models.InventoryItem{}, classifyItemWriteError(err)
	}
	return row.ToItem(), nil
}

// UpdateItem overwrites every editable column and moves current_stock to
// row.CurrentStock in one transaction. A stock change is measured against the
// locked row and recorded as correction; nothing is written when any step fails.
func (r *InventoryItemRepository) UpdateItem(ctx context.Context, row models.InventoryItemRow, correction models.InventoryAdjustment) (models.InventoryItem, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.InventoryItem{}, err
	}
	defer tx.Rollback()

	previous, err := r.lockStock(ctx, tx, row.ID)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if row.CurrentStock < 0 {
		return models.InventoryItem{}, models.ErrNegativeStock
	}
	row.UpdatedAt = time.Now().UTC()

	query, args, err := r.Dialect.Builder().
		Update("inventory_items").
		SetMap(map[string]any{
			"name":            row.Name,
			"description":     row.Description,
			"category":        row.Category,
			"category_id":     row.CategoryID,
			"unit_of_measure": row.UnitOfMeasure,
			"purchase_cost":   row.PurchaseCost,
			"selling_price":   row.SellingPrice,
			"current_stock":   row.CurrentStock,
			"reorder_level":   row.ReorderLevel,
			"sku":             row.SKU,
			"is_active":       row.IsActive,
			"is_website_item": row.IsWebsiteItem,
			"image_url":       row.ImageURL,
			"sale_price":      row.SalePrice,
			"weight":          row.Weight,
			"specifications":  row.Specifications,
			"updated_at":      row.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": row.ID}).
		ToSql()
	if err != nil {
		return models.InventoryItem{}, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return models.InventoryItem{}, classifyItemWriteError(err)
	}

	if row.CurrentStock != previous {
		correction.ItemID = row.ID
		correction.PreviousQuantity = previous
		correction.NewQuantity = row.CurrentStock
		correction.AdjustmentDate = row.UpdatedAt
		if err := r.insertAdjustment(ctx, tx, correction); err != nil {
			return models.InventoryItem{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.InventoryItem{}, err
	}
	return r.GetItemByID(ctx, row.ID)
}

func (r *InventoryItemRepository) DeleteItem(ctx context.Context, id string) error {
	query, args, err := r.Dialect.Builder().
		Delete("inventory_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(result, models.ErrItemNotFound)
}

// AdjustStock applies a quantity change and records it in one transaction.
// The adjustment's ID, reason, notes and author come from adj; the quantities
// are filled in from the locked row.
func (r *InventoryItemRepository) AdjustStock(ctx context.Context, adj models.InventoryAdjustment, change int) (models.StockAdjustmentResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.StockAdjustmentResult{}, err
	}
	defer tx.Rollback()

	previous, err := r.lockStock(ctx, tx, adj.ItemID)
	if err != nil {
		return models.StockAdjustmentResult{}, err
	}

	next := previous + change
	if next < 0 {
		return models.StockAdjustmentResult{}, models.ErrNegativeStock
	}
	now := time.Now().UTC()

	query, args, err := r.Dialect.Builder().
		Update("inventory_items").
		Set("current_stock", next).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": adj.ItemID}).
		ToSql()
	if err != nil {
		return models.StockAdjustmentResult{}, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return models.StockAdjustmentResult{}, err
	}

	adj.PreviousQuantity = previous
	adj.NewQuantity = next
	adj.AdjustmentDate = now
	if err := r.insertAdjustment(ctx, tx, adj); err != nil {
		return models.StockAdjustmentResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.StockAdjustmentResult{}, err
	}
	return models.StockAdjustmentResult{PreviousQuantity: previous, NewQuantity: next, Adjustment: adj}, nil
}

// lockStock reads the current stock of an item and holds its row until tx ends.
func (r *InventoryItemRepository) lockStock(ctx context.Context, tx *sql.Tx, itemID string) (int, error) {
	query, args, err := r.Dialect.lockRows(r.Dialect.Builder().
		Select("current_stock").
		From("inventory_items").
		Where(squirrel.Eq{"id": itemID})).
		ToSql()
	if err != nil {
		return 0, err
	}

	var stock int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrItemNotFound
		}
		return 0, err
	}
	return stock, nil
}

func (r *InventoryItemRepository) insertAdjustment(ctx context.Context, tx *sql.Tx, adj models.InventoryAdjustment) error {
	query, args, err := r.Dialect.Builder().
		Insert("inventory_adjustments").
		Columns(adjustmentColumns...).
		Values(adj.ID, adj.ItemID, adj.PreviousQuantity, adj.NewQuantity, adj.Reason, adj.Notes, adj.AdjustmentDate, adj.CreatedBy).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// ListAdjustments returns the stock history of a business, newest first.
// A non-empty itemID narrows it to one item.
func (r *InventoryItemRepository) ListAdjustments(ctx context.Context, businessID, itemID string) ([]models.InventoryAdjustment, error) {
	columns := make([]string, len(adjustmentColumns))
	for i, c := range adjustmentColumns {
		columns[i] = "a." + c
	}

	where := squirrel.Eq{"i.business_id": businessID}
	if itemID != "" {
		where["a.item_id"] = itemID
	}

	query, args, err := r.Dialect.Builder().
		Select(columns...).
		From("inventory_adjustments a").
		Join("inventory_items i ON i.id = a.item_id").
		Where(where).
		OrderBy("a.adjustment_date DESC", "a.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := []models.InventoryAdjustment{}
	for rows.Next() {
		var (
			a     models.InventoryAdjustment
			notes sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.ItemID, &a.PreviousQuantity, &a.NewQuantity, &a.Reason, &notes, &a.AdjustmentDate, &a.CreatedBy); err != nil {
			return nil, err
		}
		a.Notes = notes.String
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return adjustments, nil
}

// ListSpecifications returns the stored specifications of every item, for maintenance runs.
func (r *InventoryItemRepository) ListSpecifications(ctx context.Context) ([]StoredSpecification, error) {
	query, args, err := r.Dialect.Builder().
		Select("id", "specifications").
		From("inventory_items").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []StoredSpecification
	for rows.Next() {
		var s StoredSpecification
		if err := rows.Scan(&s.ItemID, &s.Raw); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, rows.Err()
}

// UpdateSpecifications rewrites only the specifications column of one item.
func (r *InventoryItemRepository) UpdateSpecifications(ctx context.Context, itemID, specifications string) error {
	query, args, err := r.Dialect.Builder().
		Update("inventory_items").
		Set("specifications", specifications).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(result, models.ErrItemNotFound)
}

func scanItemRow(row rowScanner) (models.InventoryItemRow, error) {
	var r models.InventoryItemRow
	err := row.Scan(
		&r.ID,
		&r.BusinessID,
		&r.Name,
		&r.Description,
		&r.Category,
		&r.CategoryID,
		&r.UnitOfMeasure,
		&r.PurchaseCost,
		&r.SellingPrice,
		&r.CurrentStock,
		&r.ReorderLevel,
		&r.SKU,
		&r.IsActive,
		&r.IsWebsiteItem,
		&r.ImageURL,
		&r.SalePrice,
		&r.Weight,
		&r.Specifications,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
