package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"erpBack/internal/models"
)

var categoryColumns = []string{"id", "name", "attributes", "created_at", "updated_at"}

type CategoryRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewCategoryRepository(db *sql.DB, dialect Dialect) *CategoryRepository {
	return &CategoryRepository{DB: db, Dialect: dialect}
}

// ListCategories returns every category ordered by name.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query, args, err := r.Dialect.Builder().
		Select(categoryColumns...).
		From("categories").
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

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	return r.getCategory(ctx, squirrel.Eq{"id": id})
}

func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (models.Category, error) {
	return r.getCategory(ctx, squirrel.Eq{"name": name})
}

func (r *CategoryRepository) getCategory(ctx context.Context, where squirrel.Eq) (models.Category, error) {
	query, args, err := r.Dialect.Builder().
		Select(categoryColumns...).
		From("categories").
		Where(where).
		ToSql()
	if err != nil {
		return models.Category{}, err
	}

	category, err := scanCategory(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, models.ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	attributes, err := encodeAttributes(category.Attributes)
	if err != nil {
		return models.Category{}, err
	}

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	query, args, err := r.Dialect.Builder().
		Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.Name, attributes, category.CreatedAt, category.UpdatedAt).
		ToSql()
	if err != nil {
		return models.Category{}, err
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return models.Category{}, classifyCategoryWriteError(err)
	}
	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	attributes, err := encodeAttributes(category.Attributes)
	if err != nil {
		return models.Category{}, err
	}
	category.UpdatedAt = time.Now().UTC()

	query, args, err := r.Dialect.Builder().
		Update("categories").
		Set("name", category.Name).
		Set("attributes", attributes).
		Set("updated_at", category.UpdatedAt).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return models.Category{}, err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Category{}, classifyCategoryWriteError(err)
	}
	if err := expectAffected(result, models.ErrCategoryNotFound); err != nil {
		return models.Category{}, err
	}
	return r.GetCategoryByID(ctx, category.ID)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	query, args, err := r.Dialect.Builder().
		Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(result, models.ErrCategoryNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (models.Category, error) {
	var (
		category models.Category
		raw      []byte
	)
	if err := row.Scan(&category.ID, &category.Name, &raw, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return models.Category{}, err
	}
	attributes, err := decodeAttributes(raw)
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: %w", category.ID, err)
	}
	category.Attributes = attributes
	return category, nil
}

// attributes are stored as a JSON array of strings
func encodeAttributes(attributes []string) (string, error) {
	if attributes == nil {
		attributes = []string{}
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeAttributes(raw []byte) ([]string, error) {
	attributes := []string{}
	if len(raw) == 0 {
		return attributes, nil
	}
	if err := json.Unmarshal(raw, &attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if attributes == nil {
		attributes = []string{}
	}
	return attributes, nil
}

// expectAffected reports notFound when a write matched no rows.
func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
