package handlers

import (
	"net/http"
	"strconv"

	"quillhub/internal/service"
)

type BookmarkRequest struct {
	CompetitionID int64  `json:"competitionId" validate:"required,gt=0"`
	Action        string `json:"action" validate:"required,oneof=add remove"`
}

func competitionQuery(r *http.Request) service.CompetitionQuery {
	q := r.URL.Query()
	open, _ := strconv.ParseBool(q.Get("open"))
	return service.CompetitionQuery{
		Q:           q.Get("q"),
		ContentType: q.Get("contentType"),
		Sort:        q.Get("sort"),
		OnlyOpen:    open,
	}
}

func (h *Handlers) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	page, err := h.offsetRequest(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.DiscoveryService.Competitions(r.Context(), competitionQuery(r), page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

// ListAllCompetitions serves the infinite-scroll listing.
func (h *Handlers) ListAllCompetitions(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.cursorRequest(r, "take")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.DiscoveryService.AllCompetitions(r.Context(), competitionQuery(r), cursor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) Bookmark(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req BookmarkRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	err := h.EngagementService.SetBookmark(r.Context(), user.UserID, req.CompetitionID, service.BookmarkAction(req.Action))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

type BookmarkStatusResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

func (h *Handlers) BookmarkStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	competitionID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	on, err := h.EngagementService.IsBookmarked(r.Context(), user.UserID, competitionID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, BookmarkStatusResponse{Bookmarked: on}, http.StatusOK)
}

func (h *Handlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.offsetRequest(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.DiscoveryService.Bookmarked(r.Context(), user.UserID, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
