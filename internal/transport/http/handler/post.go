package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kpione/internal/app"
	"kpione/internal/transport/http/middleware"
	"kpione/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published"`
}

type UpdatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published" binding:"required"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	search := c.Query("search")

	posts, err := h.postService.List(app.ListPostsInput{
		Search: search,
		Limit:  limit,
		Skip:   skip,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}

	response.OK(c, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post failed")
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.postService.Create(user, app.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not created")
		return
	}

	response.Created(c, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Update(user, id, app.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: *req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		case errors.Is(err, app.ErrNotPostOwner):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "not authorized to update this post")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update post failed")
		}
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(user, id); err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		case errors.Is(err, app.ErrNotPostOwner):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "not authorized to delete this post")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete post failed")
		}
		return
	}

	response.NoContent(c)
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return 0, false
	}
	return uint(id), true
}
