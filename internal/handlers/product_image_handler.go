package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/inventory-api/internal/domain/product"
	"github.com/BruksfildServices01/inventory-api/internal/httperr"
	"github.com/BruksfildServices01/inventory-api/internal/httpresp"
	"github.com/BruksfildServices01/inventory-api/internal/images"
)

// 10 MB upload cap before decoding.
const maxImageUploadBytes = 10 << 20

// ImageStore uploads a processed image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type ProductImageHandler struct {
	repo  domain.Repository
	store ImageStore
}

func NewProductImageHandler(repo domain.Repository, store ImageStore) *ProductImageHandler {
	return &ProductImageHandler{repo: repo, store: store}
}

func (h *ProductImageHandler) Upload(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load product.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field 'image' is required.")
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Image must be at most 10 MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read upload.")
		return
	}
	defer file.Close()

	encoded, err := images.EncodeWebP(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Upload is not a supported image.")
		return
	}

	key := "products/" + id + ".webp"
	url, err := h.store.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		log.Printf("image upload failed: %v", err)
		httperr.Internal(c, "failed_to_store_image", "Could not store image.")
		return
	}

	product, err := h.repo.SetImageURL(c.Request.Context(), id, url)
	if err != nil {
		httperr.Internal(c, "failed_to_update_product", "Could not update product.")
		return
	}

	httpresp.OK(c, product)
}
