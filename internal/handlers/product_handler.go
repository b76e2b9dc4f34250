package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/inventory-api/internal/domain/product"
	"github.com/BruksfildServices01/inventory-api/internal/httperr"
	"github.com/BruksfildServices01/inventory-api/internal/httpresp"
)

type ProductHandler struct {
	repo domain.Repository
}

func NewProductHandler(repo domain.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// --------- Requests ---------

type ProductRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description" binding:"required,max=2000"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"omitempty,max=100"`
	Brand       string   `json:"brand" binding:"omitempty,max=100"`
}

func (r ProductRequest) toInput() domain.Input {
	return domain.Input{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Price:       r.Price,
		Category:    r.Category,
		Brand:       r.Brand,
	}
}

// --------- Handlers ---------

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	product, err := h.repo.Create(c.Request.Context(), req.toInput())
	if err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create product.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load product.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	product, err := h.repo.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_product", "Could not update product.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if _, err := h.repo.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_product", "Could not delete product.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.repo.List(c.Request.Context(), domain.ListParams{
		Cursor: c.Query("cursor"),
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			httperr.BadRequest(c, "invalid_cursor", "Cursor does not reference a known product.")
			return
		}
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.OK(c, products)
}
