package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"quillhub/internal/common"
)

type CreatePostRequest struct {
	Content   string `json:"content" validate:"required"`
	CompanyID *int64 `json:"companyId" validate:"omitempty,gt=0"`
}

// LikeRequest carries the post id as a string, the way the front end sends it.
type LikeRequest struct {
	PostID string `json:"postId" validate:"required"`
}

type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

type LikeResponse struct {
	Success bool `json:"success"`
	Liked   bool `json:"liked"`
	Likes   int  `json:"likes"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.Create(r.Context(), user.UserID, req.Content, req.CompanyID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.cursorRequest(r, "limit")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.PostService.Feed(r.Context(), cursor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req LikeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	postID, err := strconv.ParseInt(strings.TrimSpace(req.PostID), 10, 64)
	if err != nil {
		h.writeServiceError(w, r, common.Invalid("postId", "must be a numeric id"))
		return
	}

	res, err := h.EngagementService.ToggleLike(r.Context(), user.UserID, postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, LikeResponse{Success: true, Liked: res.Active, Likes: res.Count}, http.StatusOK)
}

func (h *Handlers) LikeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	liked, err := h.EngagementService.IsLiked(r.Context(), user.UserID, postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, LikeStatusResponse{Liked: liked}, http.StatusOK)
}
