package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoporbit/shop-api/internal/adapter/http/middleware"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type OrderHandler struct {
	create     *usecase.CreateOrder
	update     *usecase.UpdateShippingStatus
	queries    *usecase.OrderQueries
	production bool
}

func NewOrderHandler(create *usecase.CreateOrder, update *usecase.UpdateShippingStatus, queries *usecase.OrderQueries, production bool) *OrderHandler {
	return &OrderHandler{create: create, update: update, queries: queries, production: production}
}

type orderItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type createOrderReq struct {
	Items []orderItemReq `json:"items" binding:"required,dive"`
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	var req createOrderReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	items := make([]usecase.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = usecase.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	order, err := h.create.Execute(c.Request.Context(), usecase.CreateOrderInput{
		CustomerID: id.UserID,
		Items:      items,
	})
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusCreated, orderView(order))
}

// GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	order, err := h.queries.GetByID(c.Request.Context(), c.Param("id"), id.UserID, id.Role)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, orderView(order))
}

// GET /orders/my-orders/:orderId
func (h *OrderHandler) GetMyOrderByCode(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	order, err := h.queries.GetMyOrderByCode(c.Request.Context(), c.Param("orderId"), id.UserID)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, orderView(order))
}

// GET /orders and GET /users/order-history
func (h *OrderHandler) List(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	filter := usecase.OrderFilter{
		ShippingStatus: c.Query("status"),
		ProductName:    c.Query("productName"),
		Page:           pageNum,
		Limit:          limit,
	}

	summaries, total, err := h.queries.List(c.Request.Context(), filter, id.UserID, id.Role)
	if err != nil {
		fail(c, err, h.production)
		return
	}

	docs := make([]gin.H, len(summaries))
	for i, s := range summaries {
		docs[i] = orderSummaryView(s)
	}
	page(c, docs, total, filter.Page, filter.Limit)
}

// GET /orders/:id/status
func (h *OrderHandler) GetStatus(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	status, err := h.queries.Status(c.Request.Context(), c.Param("id"), id.UserID, id.Role)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, gin.H{"shippingStatus": status})
}

type updateStatusReq struct {
	ShippingStatus string `json:"shippingStatus" binding:"required"`
}

// PATCH /orders/status/:id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	order, err := h.update.Execute(c.Request.Context(), c.Param("id"),
		domain.ShippingStatus(req.ShippingStatus))
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, orderView(order))
}

// orderView shapes the API representation: the display code is the order id
// clients see, and the total is always derived from the frozen items.
func orderView(o *domain.Order) gin.H {
	return gin.H{
		"orderId":        o.OrderCode,
		"items":          o.Items,
		"totalOrderCost": o.TotalCost(),
		"shippingStatus": o.ShippingStatus,
		"createdAt":      o.CreatedAt,
		"updatedAt":      o.UpdatedAt,
	}
}

func orderSummaryView(s usecase.OrderSummary) gin.H {
	v := orderView(s.Order)
	v["customer"] = gin.H{"name": s.CustomerName, "email": s.CustomerEmail}
	// Admin listings address rows by the internal id for status updates.
	v["id"] = s.Order.ID
	return v
}
