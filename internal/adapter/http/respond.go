package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoporbit/shop-api/internal/apperr"
	"github.com/shoporbit/shop-api/internal/logging"
)

// fail translates any error into the JSON error envelope. Internal causes
// are logged; in production the client only sees a generic message.
func fail(c *gin.Context, err error, production bool) {
	ae := apperr.As(err)
	if ae.Kind == apperr.KindInternal {
		logging.From(c).Error("request failed", "err", err)
	}

	body := gin.H{"status": "error", "message": ae.Message}
	if ae.Kind == apperr.KindInternal && !production && ae.Err != nil {
		body["detail"] = ae.Err.Error()
	}
	c.AbortWithStatusJSON(ae.HTTPStatus(), body)
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func okMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "success", "message": message})
}

// page wraps a result slice in the standard pagination envelope.
func page(c *gin.Context, docs any, total, pageNum, limit int) {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"data":        docs,
		"totalDocs":   total,
		"totalPages":  totalPages,
		"currentPage": pageNum,
		"hasNextPage": pageNum < totalPages,
		"hasPrevPage": pageNum > 1,
	})
}
