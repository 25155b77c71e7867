package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/service"
)

type SubmitDeliveryRequest struct {
	Docs  []string `json:"docs" validate:"omitempty,dive,max=2048"`
	Links []string `json:"links" validate:"omitempty,dive,max=2048"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SUBMITTED REJECTED ACCEPTED"`
}

type DeliveryResponse struct {
	*models.Delivery
	StatusLabel string `json:"statusLabel"`
}

func competitionPath(id int64) string {
	return fmt.Sprintf("/competitions/%d", id)
}

// readDocs accepts a JSON body or an HTML form post with repeated docs/links fields.
func (h *Handlers) readDocs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(h.MaxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			WriteError(w, "Invalid form", http.StatusBadRequest)
			return nil, false
		}
		return service.MergeDocs(r.Form["docs"], r.Form["links"]), true
	default:
		var req SubmitDeliveryRequest
		if !h.decodeJSON(w, r, &req) {
			return nil, false
		}
		return service.MergeDocs(req.Docs, req.Links), true
	}
}

// SubmitDelivery redirects back to the competition page. A missed deadline
// redirects without the delivered flag.
func (h *Handlers) SubmitDelivery(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	competitionID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	docs, ok := h.readDocs(w, r)
	if !ok {
		return
	}

	delivery, err := h.DeliveryService.Submit(r.Context(), user.UserID, competitionID, docs)
	if err != nil {
		if errors.Is(err, common.ErrDeadlinePassed) {
			http.Redirect(w, r, competitionPath(competitionID), http.StatusSeeOther)
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	h.Log.Info(r.Context(), "delivery submitted",
		"delivery_id", delivery.DeliveryID,
		"competition_id", competitionID,
		"user_id", user.UserID,
		"docs", len(docs),
	)

	http.Redirect(w, r, competitionPath(competitionID)+"?delivered=1", http.StatusSeeOther)
}

func (h *Handlers) ListCompetitionDeliveries(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	competitionID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	page, err := h.offsetRequest(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.DeliveryService.ListForCompetition(r.Context(), user.UserID, competitionID, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) ListMyDeliveries(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.offsetRequest(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.DeliveryService.ListForUser(r.Context(), user.UserID, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	deliveryID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req UpdateStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	delivery, err := h.DeliveryService.UpdateStatus(r.Context(), user.UserID, deliveryID, models.DeliveryStatus(req.Status))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, DeliveryResponse{Delivery: delivery, StatusLabel: delivery.Status.Label()}, http.StatusOK)
}
