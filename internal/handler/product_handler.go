package handler

import (
	"net/http"
	"strconv"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q domain.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badJSON(c, err)
		return
	}

	records, err := h.productService.List(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		writeError(c, err)
		return
	}
	if records == nil {
		records = []domain.ProductRecord{}
	}

	c.JSON(http.StatusOK, records)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	rec, err := h.productService.Create(c.Request.Context(), req, c.GetString("request_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	rec, err := h.productService.Update(c.Request.Context(), id, req, c.GetString("request_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id, c.GetString("request_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.DeleteProductResponse{
		Message: "Product deleted successfully",
		ID:      id,
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid ID is required", "code": domain.CodeInvalidID})
		return 0, false
	}
	return id, true
}
