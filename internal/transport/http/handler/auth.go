package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kpione/internal/app"
	"kpione/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

// LoginRequest is form-encoded; the username field carries the email, the
// shape the OAuth2 password flow prescribes for the login form.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		return
	}

	response.OK(c, result)
}
