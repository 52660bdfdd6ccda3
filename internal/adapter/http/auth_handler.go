package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type AuthHandler struct {
	auth       *usecase.Auth
	production bool
}

func NewAuthHandler(auth *usecase.Auth, production bool) *AuthHandler {
	return &AuthHandler{auth: auth, production: production}
}

type registerReq struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err, h.production)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registered. Please verify your email with the OTP we sent.",
		"data":    user,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, h.production)
		return
	}
	ok(c, http.StatusOK, gin.H{"token": token, "user": user})
}

type otpReq struct {
	Email   string `json:"email" binding:"required,email"`
	Otp     string `json:"otp" binding:"required"`
	Purpose string `json:"purpose"`
}

// POST /auth/verify-otp
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req otpReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	purpose := domain.OtpPurpose(req.Purpose)
	if req.Purpose == "" {
		purpose = domain.PurposeVerifyEmail
	}
	if err := h.auth.VerifyOtp(c.Request.Context(), req.Email, req.Otp, purpose); err != nil {
		fail(c, err, h.production)
		return
	}
	okMessage(c, http.StatusOK, "OTP verified")
}

type resendOtpReq struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose"`
}

// POST /auth/resend-otp
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req resendOtpReq
	if err := bindJSON(c, &req); err != nil {
		fail(c, err, h.production)
		return
	}

	purpose := domain.OtpPurpose(req.Purpose)
	if req.Purpose == "" {
		purpose = domain.PurposeVerifyEmail
	}
	if err := h.auth.ResendOtp(c.Request.Context(), req.Email, purpose); err != nil {
		fail(c, err, h.production)
		return
	}
	okMessage(c, http.StatusOK, "OTP sent")
}
