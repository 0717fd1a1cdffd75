package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kpione/internal/app"
	"kpione/internal/transport/http/middleware"
	"kpione/internal/transport/http/response"
)

type VoteHandler struct {
	voteService *app.VoteService
}

type VoteRequest struct {
	PostID uint `json:"post_id" binding:"required"`
	// Direction 1 casts a vote, 0 retracts it. A pointer so that an absent
	// field is distinguishable from an explicit 0.
	Direction *int `json:"direction" binding:"required"`
}

func NewVoteHandler(voteService *app.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

func (h *VoteHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if *req.Direction != 0 && *req.Direction != 1 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "direction must be 0 or 1")
		return
	}

	if *req.Direction == 1 {
		vote, err := h.voteService.Cast(user, req.PostID)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrAlreadyVoted):
				response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
			case errors.Is(err, app.ErrPostNotFound):
				response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
			default:
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "cast vote failed")
			}
			return
		}
		response.Created(c, vote)
		return
	}

	removed, err := h.voteService.Retract(user, req.PostID)
	if err != nil {
		if errors.Is(err, app.ErrNoVoteToRemove) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "retract vote failed")
		return
	}
	response.Created(c, removed)
}
