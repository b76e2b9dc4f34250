package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inventory-api/internal/audit"
	domain "github.com/BruksfildServices01/inventory-api/internal/domain/product"
	"github.com/BruksfildServices01/inventory-api/internal/models"
)

type ProductGormRepository struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewProductGormRepository(db *gorm.DB, auditLogger *audit.Logger) *ProductGormRepository {
	return &ProductGormRepository{db: db, audit: auditLogger}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *ProductGormRepository) Create(
	ctx context.Context,
	in domain.Input,
) (*models.Product, error) {

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		Price:       in.Price,
		Category:    in.Category,
		Brand:       in.Brand,
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return r.audit.LogTx(tx, audit.ActionCreate, product.ID, product)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// --------------------------------------------------
// GetByID (soft-deleted rows are invisible)
// --------------------------------------------------

func (r *ProductGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// --------------------------------------------------
// Update (full replacement of the mutable fields)
// --------------------------------------------------

// Update targets the row by id regardless of its soft-delete state:
// soft-deleted products remain writable.
func (r *ProductGormRepository) Update(
	ctx context.Context,
	id string,
	in domain.Input,
) (*models.Product, error) {

	var product models.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Tags = in.Tags
		product.Price = in.Price
		product.Category = in.Category
		product.Brand = in.Brand
		if product.Tags == nil {
			product.Tags = []string{}
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		// Audit carries the submitted payload, not the stored row.
		return r.audit.LogTx(tx, audit.ActionUpdate, id, in)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// --------------------------------------------------
// SoftDelete
// --------------------------------------------------

func (r *ProductGormRepository) SoftDelete(
	ctx context.Context,
	id string,
) (*models.Product, error) {

	var product models.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		now := time.Now()
		product.DeletedAt = &now

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		return r.audit.LogTx(tx, audit.ActionSoftDelete, id, product)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// --------------------------------------------------
// List (cursor pagination)
// --------------------------------------------------

func (r *ProductGormRepository) List(
	ctx context.Context,
	p domain.ListParams,
) ([]models.Product, error) {

	limit := p.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}

	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("deleted_at IS NULL")

	if search := strings.TrimSpace(p.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		// Tags are stored as a JSON array, so an exact tag match is a
		// substring match on the JSON-encoded value, quotes included.
		quoted, _ := json.Marshal(search)
		tagMatch := "%" + escapeLike(string(quoted)) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'`, like, tagMatch)
	}

	if p.Cursor != "" {
		var after models.Product
		if err := r.db.WithContext(ctx).
			Select("id", "created_at").
			Where("id = ?", p.Cursor).
			First(&after).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrInvalidCursor
			}
			return nil, err
		}

		// Skip one past the cursor on the (created_at, id) tuple so pages
		// stay stable when timestamps collide.
		q = q.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			after.CreatedAt, after.CreatedAt, after.ID,
		)
	}

	var products []models.Product
	if err := q.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// --------------------------------------------------
// SetImageURL
// --------------------------------------------------

func (r *ProductGormRepository) SetImageURL(
	ctx context.Context,
	id string,
	url string,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	product.ImageURL = url
	if err := r.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

// Compile-time check
var _ domain.Repository = (*ProductGormRepository)(nil)
