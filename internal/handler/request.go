package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/pagination"
	"quillhub/internal/requestctx"
)

// decodeJSON decodes and validates a request body. It writes the 400 itself
// and reports whether the handler may continue.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if h.MaxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodySize)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

// currentUser writes a 401 when the request is anonymous.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := requestctx.UserFromContext(r.Context())
	if user == nil {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.Invalid(key, "must be an integer")
	}
	return v, nil
}

func (h *Handlers) offsetRequest(r *http.Request) (pagination.OffsetRequest, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return pagination.OffsetRequest{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return pagination.OffsetRequest{}, err
	}
	return pagination.NewOffsetRequest(page, limit, h.Pages)
}

func (h *Handlers) cursorRequest(r *http.Request, sizeKey string) (pagination.CursorRequest, error) {
	take, err := queryInt(r, sizeKey)
	if err != nil {
		return pagination.CursorRequest{}, err
	}
	return pagination.ParseCursor(r.URL.Query().Get("cursor"), take, h.Pages)
}
