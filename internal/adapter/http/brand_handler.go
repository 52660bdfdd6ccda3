package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoporbit/shop-api/internal/usecase"
)

type BrandHandler struct {
	catalog    *usecase.Catalog
	production bool
}

func NewBrandHandler(catalog *usecase.Catalog, production bool) *BrandHandler {
	return &BrandHandler{catalog: catalog, production: production}
}

type brandReq struct {
	BrandName string `json:"brandName" binding:"required"`
}

// POST /brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req brandReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	b, err := h.catalog.CreateBrand(c.Request.Context(), req.BrandName)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusCreated, b)
}

// GET /brands/:id
func (h *BrandHandler) GetByID(c *gin.Context) {
	b, err := h.catalog.GetBrand(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, b)
}

// GET /brands
func (h *BrandHandler) List(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	brands, total, err := h.catalog.ListBrands(c.Request.Context(), pageNum, limit)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	page(c, brands, total, pageNum, limit)
}

// PATCH /brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	var req brandReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	b, err := h.catalog.UpdateBrand(c.Request.Context(), c.Param("id"), req.BrandName)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, b)
}

// DELETE /brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteBrand(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, h.production)
		return
	}
	okMessage(c, http.StatusOK, "Brand deleted")
}
