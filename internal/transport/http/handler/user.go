package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kpione/internal/app"
	"kpione/internal/transport/http/response"
)

type UserHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewUserHandler(authService *app.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserExists):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not created: "+err.Error())
		default:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not created")
		}
		return
	}

	// The user model marshals without the password hash.
	response.Created(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	user, err := h.authService.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch user failed")
		return
	}
	if user == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found")
		return
	}

	response.OK(c, user)
}
