package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoporbit/shop-api/internal/adapter/http/middleware"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type ProductHandler struct {
	catalog    *usecase.Catalog
	production bool
}

func NewProductHandler(catalog *usecase.Catalog, production bool) *ProductHandler {
	return &ProductHandler{catalog: catalog, production: production}
}

type productReq struct {
	ProductName string `json:"productName" binding:"required"`
	Cost        int64  `json:"cost" binding:"required,gte=0"`
	BrandID     string `json:"brandId"`
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	var req productReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), usecase.ProductInput{
		Name:    req.ProductName,
		Cost:    req.Cost,
		BrandID: req.BrandID,
	}, id.UserID)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, p)
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, total, err := h.catalog.ListProducts(c.Request.Context(),
		c.Query("productName"), pageNum, limit)
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
	page(c, products, total, pageNum, limit)
}

// PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	var req productReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), usecase.ProductInput{
		Name:    req.ProductName,
		Cost:    req.Cost,
		BrandID: req.BrandID,
	}, id.UserID, id.Role)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"), id.UserID, id.Role); err != nil {
		fail(c, err, h.production)
		return
	}
	okMessage(c, http.StatusOK, "Product deleted")
}
