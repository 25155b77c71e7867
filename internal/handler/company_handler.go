package handlers

import (
	"net/http"
	"time"

	"quillhub/internal/models"
)

type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CreateCompetitionRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=10000"`
	ContentType string    `json:"contentType" validate:"required,max=50"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
}

func (h *Handlers) CreateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	company, err := h.CompanyService.CreateCompany(r.Context(), user.UserID, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, company, http.StatusCreated)
}

func (h *Handlers) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	companyID, err := pathID(r, "id")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req CreateCompetitionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	competition := &models.Competition{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := h.CompanyService.CreateCompetition(r.Context(), user.UserID, competition); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, competition, http.StatusCreated)
}
