package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoporbit/shop-api/internal/adapter/http/middleware"
	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type UserHandler struct {
	auth       *usecase.Auth
	users      usecase.UserRepo
	production bool
}

func NewUserHandler(auth *usecase.Auth, users usecase.UserRepo, production bool) *UserHandler {
	return &UserHandler{auth: auth, users: users, production: production}
}

type createUserReq struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// POST /admin/users
func (h *UserHandler) CreateByAdmin(c *gin.Context) {
	var req createUserReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	user, err := h.auth.CreateUserByAdmin(c.Request.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}, domain.Role(req.Role))
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusCreated, user)
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	user, err := h.users.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			fail(c, apperr.NotFound("Customer not found"), h.production)
			return
		}
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, user)
}
