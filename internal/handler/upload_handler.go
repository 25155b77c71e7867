package handlers

import "net/http"

type UploadRequest struct {
	FileName string `json:"fileName" validate:"required,max=255"`
}

func (h *Handlers) PresignUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req UploadRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.UploadService.PresignDocument(r.Context(), user.UserID, req.FileName)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, ticket, http.StatusOK)
}
